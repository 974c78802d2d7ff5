package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/termtouch/internal/config"
	"github.com/Gaurav-Gosain/termtouch/internal/input"
)

// =============================================================================
// Default Configuration Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}

	if cfg.Gesture.LongPress.Std() != 500*time.Millisecond {
		t.Errorf("Expected long press of 500ms, got %v", cfg.Gesture.LongPress.Std())
	}
	if cfg.Swipe.MaxTime.Std() != time.Second {
		t.Errorf("Expected swipe max time of 1s, got %v", cfg.Swipe.MaxTime.Std())
	}
	if cfg.Grid.Width != 80 || cfg.Grid.Height != 24 {
		t.Errorf("Expected 80x24 grid, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}
}

func TestDefaultConfigMatchesInput(t *testing.T) {
	if got, want := config.DefaultConfig().Input(), input.DefaultConfig(); got != want {
		t.Errorf("Input() = %+v, want %+v", got, want)
	}
}

// =============================================================================
// Validation Tests
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr []string
	}{
		{
			name:   "defaults",
			mutate: func(*config.Config) {},
		},
		{
			name:    "zero long press",
			mutate:  func(c *config.Config) { c.Gesture.LongPress = 0 },
			wantErr: []string{"gesture.long_press"},
		},
		{
			name:    "negative swipe distance",
			mutate:  func(c *config.Config) { c.Swipe.MinDistance = -1 },
			wantErr: []string{"swipe.min_distance"},
		},
		{
			name:    "bad log level",
			mutate:  func(c *config.Config) { c.Log.Level = "loud" },
			wantErr: []string{"log.level"},
		},
		{
			name: "several fields",
			mutate: func(c *config.Config) {
				c.Grid.Width = 0
				c.Grid.CellHeight = 0
				c.Gesture.ScrollDecay = -5
			},
			wantErr: []string{"grid.width", "grid.cell_height", "gesture.scroll_decay"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if len(tc.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			for _, field := range tc.wantErr {
				if !strings.Contains(err.Error(), field) {
					t.Errorf("Validate() = %q, want mention of %s", err, field)
				}
			}
		})
	}
}

// =============================================================================
// Loading Tests
// =============================================================================

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[gesture]
long_press = "750ms"

[grid]
width = 40
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Gesture.LongPress.Std() != 750*time.Millisecond {
		t.Errorf("long_press = %v, want 750ms", cfg.Gesture.LongPress.Std())
	}
	if cfg.Grid.Width != 40 {
		t.Errorf("width = %d, want 40", cfg.Grid.Width)
	}

	def := config.DefaultConfig()
	if cfg.Grid.Height != def.Grid.Height {
		t.Errorf("height = %d, want default %d", cfg.Grid.Height, def.Grid.Height)
	}
	if cfg.Gesture.MultiTapInterval != def.Gesture.MultiTapInterval {
		t.Errorf("multi_tap_interval = %v, want default", cfg.Gesture.MultiTapInterval.Std())
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad duration", "[gesture]\nlong_press = \"soon\"\n"},
		{"unknown key", "[gesture]\nlong_pres = \"1s\"\n"},
		{"invalid value", "[grid]\nheight = -3\n"},
		{"syntax", "[grid\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := config.Parse([]byte(tc.data)); err == nil {
				t.Error("Parse() = nil error, want failure")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, config.ErrNotExist) {
		t.Errorf("Load() error = %v, want ErrNotExist", err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := config.DefaultConfig()
	cfg.Swipe.MaxTime = config.Duration(800 * time.Millisecond)
	cfg.Appearance.Theme = "dracula"
	if err := config.Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# termtouch configuration") {
		t.Error("saved file is missing its header")
	}
	if !strings.Contains(string(data), `max_time = '800ms'`) && !strings.Contains(string(data), `max_time = "800ms"`) {
		t.Errorf("duration not written as a string:\n%s", data)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

// =============================================================================
// Watcher Tests
// =============================================================================

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.Save(config.DefaultConfig(), path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 8)
	err := config.Watch(ctx, path, func(cfg *config.Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Grid.Width = 100
	if err := config.Save(cfg, path); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-reloaded:
			if got.Grid.Width == 100 {
				return
			}
		case <-timeout:
			t.Fatal("no reload observed")
		}
	}
}

// =============================================================================
// Gesture Help Tests
// =============================================================================

func TestGetGesturesUsesThresholds(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Gesture.LongPress = config.Duration(750 * time.Millisecond)

	found := false
	for _, s := range config.GetGestures(cfg) {
		for _, g := range s.Bindings {
			if g.Gesture == "Hold 750ms" {
				found = true
			}
		}
	}
	if !found {
		t.Error("Expected long press entry to show the configured hold time")
	}
}

func TestFilterGestures(t *testing.T) {
	sections := config.GetGestures(nil)

	tests := []struct {
		keyboardOpen bool
		want         string
		hidden       string
	}{
		{false, "GRID", "KEYBOARD"},
		{true, "KEYBOARD", "GRID"},
	}

	for _, tc := range tests {
		name := "closed"
		if tc.keyboardOpen {
			name = "open"
		}
		t.Run(name, func(t *testing.T) {
			titles := map[string]bool{}
			for _, s := range config.FilterGestures(sections, tc.keyboardOpen) {
				titles[s.Title] = true
			}
			if !titles[tc.want] {
				t.Errorf("Expected section %s to be shown", tc.want)
			}
			if titles[tc.hidden] {
				t.Errorf("Expected section %s to be hidden", tc.hidden)
			}
			if !titles["MULTI-TAP"] {
				t.Error("Expected unconditional section to be shown")
			}
		})
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkParse(b *testing.B) {
	data, err := config.Marshal(config.DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		_, _ = config.Parse(data)
	}
}
