// Package keyboard models the on-screen keyboard the touch input core opens
// to edit the current command.
package keyboard

import (
	"github.com/Gaurav-Gosain/termtouch/internal/notify"
	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
)

// EventKind identifies a keyboard status change.
type EventKind int

const (
	// Opened is published when the keyboard becomes visible.
	Opened EventKind = iota
	// Changed is published whenever the edited text or selection changes.
	Changed
	// Done is published when the user submits the text.
	Done
	// Canceled is published when the user dismisses the keyboard.
	Canceled
)

func (k EventKind) String() string {
	switch k {
	case Opened:
		return "opened"
	case Changed:
		return "changed"
	case Done:
		return "done"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Event carries the keyboard text at the time of the change.
type Event struct {
	Kind      EventKind
	Text      string
	Selection terminal.Span
}

// Keyboard is an on-screen text input surface.
type Keyboard interface {
	// Open shows the keyboard editing text.
	Open(text string)
	// Close hides the keyboard without publishing Done or Canceled.
	Close()
	IsOpen() bool

	Text() string
	// SetText replaces the edited text and moves the caret to its end.
	SetText(text string)
	Selection() terminal.Span

	Events() *notify.Feed[Event]
}
