// Package theme provides the color palette used by the demo and the CLI.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"

	"github.com/Gaurav-Gosain/termtouch/internal/logging"
)

var (
	enabled bool
	logger  = logging.New("theme")
)

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming is disabled and the fallback palette is used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if !tint.SetTintID(themeName) {
		logger.Warn("unknown theme, using default", "theme", themeName)
		tint.SetTintID("default")
	}
	logger.Debug("theme initialized", "theme", themeName, "fg", ColorToString(tint.Current().Fg))

	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Grid text colors
func TerminalFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// Border returns the grid border color, brighter while the keyboard is up.
func Border(focused bool) color.Color {
	t := Current()
	if t == nil {
		if focused {
			return lipgloss.Color("#00ffff")
		}
		return lipgloss.Color("#7f7f7f")
	}
	if focused {
		return t.BrightCyan
	}
	return t.BrightBlack
}

// SelectionColors returns the colors of a committed selection.
func SelectionColors() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#264f78"), lipgloss.Color("#ffffff")
	}
	return t.Blue, t.BrightWhite
}

// SelectingColors returns the colors of the range being dragged out.
func SelectingColors() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd00cd"), lipgloss.Color("#ffffff")
	}
	return t.Purple, t.BrightWhite
}

// Status line colors
func StatusFg() color.Color {
	return lipgloss.Color("8")
}

func StatusAccent() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffff00")
	}
	return t.Yellow
}

// Keyboard bar colors
func KeyboardBar() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#1a1a2e"), lipgloss.Color("#a0a0b0")
	}
	return t.BrightBlack, t.Fg
}

func KeyboardCaret() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ff00"), lipgloss.Color("#000000")
	}
	return t.Cursor, t.Black
}

// Help overlay colors
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5") // Purple/magenta
}

func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

func HelpGray() color.Color {
	return lipgloss.Color("8")
}

// CLI table colors
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns values in range 0-65535, convert to 0-255
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	return fmt.Sprintf("#%02x%02x%02x", r8, g8, b8)
}
