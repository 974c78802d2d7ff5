// Package config loads, validates and watches the termtouch TOML
// configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/termtouch/internal/input"
	"github.com/Gaurav-Gosain/termtouch/internal/logging"
	"github.com/Gaurav-Gosain/termtouch/internal/vt"
)

var logger = logging.New("config")

// Duration is a time.Duration written as a Go duration string ("500ms").
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the root of the configuration file.
type Config struct {
	Gesture    GestureConfig    `toml:"gesture"`
	Swipe      SwipeConfig      `toml:"swipe"`
	Grid       GridConfig       `toml:"grid"`
	Log        LogConfig        `toml:"log"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GestureConfig holds the press, tap and scroll thresholds.
type GestureConfig struct {
	LongPress        Duration `toml:"long_press" comment:"Hold time that turns a press into a word selection"`
	MultiTapInterval Duration `toml:"multi_tap_interval" comment:"Longest gap between the presses of a double or triple tap"`
	MultiTapDistance float64  `toml:"multi_tap_distance" comment:"Farthest a repeated tap may land from the previous one, in cells"`
	ScrollDecay      float64  `toml:"scroll_decay" comment:"Inertial scroll deceleration, rows per second squared"`
	ScrollGain       float64  `toml:"scroll_gain" comment:"Velocity added per dragged row, rows per second"`
}

// SwipeConfig holds the swipe recognition thresholds.
type SwipeConfig struct {
	MaxTime     Duration `toml:"max_time" comment:"Longest touch that still counts as a swipe"`
	MinDistance float64  `toml:"min_distance" comment:"Displacement a swipe must exceed, in cells"`
}

// GridConfig describes the demo grid.
type GridConfig struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	History    int     `toml:"history" comment:"Number of commands kept in the shell history"`
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
	Padding    float64 `toml:"padding"`
	Spacing    float64 `toml:"spacing"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `toml:"level" comment:"debug, info, warn or error"`
}

// AppearanceConfig selects the color theme.
type AppearanceConfig struct {
	Theme string `toml:"theme" comment:"bubbletint theme id, empty for terminal colors"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	in := input.DefaultConfig()
	metrics := vt.DefaultMetrics()

	return &Config{
		Gesture: GestureConfig{
			LongPress:        Duration(in.LongPress),
			MultiTapInterval: Duration(in.MultiTapInterval),
			MultiTapDistance: in.MultiTapDistance,
			ScrollDecay:      in.ScrollDecay,
			ScrollGain:       in.ScrollGain,
		},
		Swipe: SwipeConfig{
			MaxTime:     Duration(in.Swipe.MaxTime),
			MinDistance: in.Swipe.MinDistance,
		},
		Grid: GridConfig{
			Width:      80,
			Height:     24,
			History:    vt.DefaultHistorySize,
			CellWidth:  metrics.CellWidth,
			CellHeight: metrics.CellHeight,
			Padding:    metrics.Padding,
			Spacing:    metrics.Spacing,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Gesture.LongPress > 0, "gesture.long_press must be positive, got %s", c.Gesture.LongPress.Std())
	check(c.Gesture.MultiTapInterval > 0, "gesture.multi_tap_interval must be positive, got %s", c.Gesture.MultiTapInterval.Std())
	check(c.Gesture.MultiTapDistance >= 0, "gesture.multi_tap_distance must not be negative, got %g", c.Gesture.MultiTapDistance)
	check(c.Gesture.ScrollDecay > 0, "gesture.scroll_decay must be positive, got %g", c.Gesture.ScrollDecay)
	check(c.Gesture.ScrollGain > 0, "gesture.scroll_gain must be positive, got %g", c.Gesture.ScrollGain)

	check(c.Swipe.MaxTime > 0, "swipe.max_time must be positive, got %s", c.Swipe.MaxTime.Std())
	check(c.Swipe.MinDistance >= 0, "swipe.min_distance must not be negative, got %g", c.Swipe.MinDistance)

	check(c.Grid.Width > 0, "grid.width must be positive, got %d", c.Grid.Width)
	check(c.Grid.Height > 0, "grid.height must be positive, got %d", c.Grid.Height)
	check(c.Grid.History > 0, "grid.history must be positive, got %d", c.Grid.History)
	check(c.Grid.CellWidth > 0, "grid.cell_width must be positive, got %g", c.Grid.CellWidth)
	check(c.Grid.CellHeight > 0, "grid.cell_height must be positive, got %g", c.Grid.CellHeight)
	check(c.Grid.Padding >= 0, "grid.padding must not be negative, got %g", c.Grid.Padding)
	check(c.Grid.Spacing >= 0, "grid.spacing must not be negative, got %g", c.Grid.Spacing)

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// Input returns the gesture thresholds for an input.Controller.
func (c *Config) Input() input.Config {
	return input.Config{
		LongPress:        c.Gesture.LongPress.Std(),
		MultiTapInterval: c.Gesture.MultiTapInterval.Std(),
		MultiTapDistance: c.Gesture.MultiTapDistance,
		ScrollDecay:      c.Gesture.ScrollDecay,
		ScrollGain:       c.Gesture.ScrollGain,
		Swipe: input.SwipeConfig{
			MaxTime:     c.Swipe.MaxTime.Std(),
			MinDistance: c.Swipe.MinDistance,
		},
	}
}

// Metrics returns the cell geometry for a vt.Buffer.
func (c *Config) Metrics() vt.Metrics {
	return vt.Metrics{
		CellWidth:  c.Grid.CellWidth,
		CellHeight: c.Grid.CellHeight,
		Padding:    c.Grid.Padding,
		Spacing:    c.Grid.Spacing,
	}
}
