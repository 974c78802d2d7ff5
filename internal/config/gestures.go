package config

import "fmt"

// Gesture represents a single gesture entry
type Gesture struct {
	Gesture     string
	Description string
}

// GestureSection represents a section of related gestures
type GestureSection struct {
	Title     string
	Condition string // Empty for always shown, "keyboard" while the keyboard is open, "!keyboard" while it is closed
	Bindings  []Gesture
}

// Shown reports whether the section applies for the given keyboard state.
func (s GestureSection) Shown(keyboardOpen bool) bool {
	switch s.Condition {
	case "keyboard":
		return keyboardOpen
	case "!keyboard":
		return !keyboardOpen
	default:
		return true
	}
}

// GetGestures returns all gesture sections for the help views.
// If cfg is nil, the default thresholds are shown.
func GetGestures(cfg *Config) []GestureSection {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	hold := cfg.Gesture.LongPress.Std()
	interval := cfg.Gesture.MultiTapInterval.Std()

	return []GestureSection{
		{
			Title:     "GRID",
			Condition: "!keyboard",
			Bindings: []Gesture{
				{"Tap", "Open the keyboard on the command line"},
				{"Tap with a selection", "Clear the selection"},
				{fmt.Sprintf("Hold %s", hold), "Select the word under the pointer"},
				{"Hold, then drag", "Extend the selection"},
				{"Drag", "Scroll, release to keep scrolling"},
				{"Press while scrolling", "Stop scrolling"},
			},
		},
		{
			Title: "MULTI-TAP",
			Bindings: []Gesture{
				{fmt.Sprintf("Taps within %s", interval), "Count as double and triple taps"},
				{fmt.Sprintf("Taps over %g cells apart", cfg.Gesture.MultiTapDistance), "Start a new count"},
			},
		},
		{
			Title:     "KEYBOARD",
			Condition: "keyboard",
			Bindings: []Gesture{
				{"Swipe ↑", "Previous history entry"},
				{"Swipe ↓", "Next history entry"},
				{"Swipe ←", "Previous completion"},
				{"Swipe →", "Next completion"},
				{"Enter", "Run the command"},
				{"Esc", "Close the keyboard"},
			},
		},
		{
			Title: "DEMO",
			Bindings: []Gesture{
				{"Right drag", "Swipe"},
				{"Ctrl+C", "Quit"},
			},
		},
	}
}

// FilterGestures returns the sections shown for the given keyboard state.
func FilterGestures(sections []GestureSection, keyboardOpen bool) []GestureSection {
	out := make([]GestureSection, 0, len(sections))
	for _, s := range sections {
		if s.Shown(keyboardOpen) {
			out = append(out, s)
		}
	}
	return out
}
