package theme

import (
	"testing"

	"charm.land/lipgloss/v2"
)

func TestColorToString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"white", "#ffffff", "#ffffff"},
		{"selection", "#264f78", "#264f78"},
		{"black", "#000000", "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorToString(lipgloss.Color(tt.in)); got != tt.want {
				t.Errorf("ColorToString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if got := ColorToString(nil); got != "#000000" {
		t.Errorf("ColorToString(nil) = %q, want #000000", got)
	}
}

func TestDisabledThemeUsesFallbacks(t *testing.T) {
	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if IsEnabled() || Current() != nil {
		t.Fatal("empty theme name should disable theming")
	}

	bg, fg := SelectionColors()
	if got := ColorToString(bg); got != "#264f78" {
		t.Errorf("selection background = %s, want #264f78", got)
	}
	if got := ColorToString(fg); got != "#ffffff" {
		t.Errorf("selection foreground = %s, want #ffffff", got)
	}
	if ColorToString(Border(true)) == ColorToString(Border(false)) {
		t.Error("focused border should differ from the unfocused one")
	}
}
