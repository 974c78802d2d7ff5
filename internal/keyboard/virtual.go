package keyboard

import (
	"github.com/Gaurav-Gosain/termtouch/internal/notify"
	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
)

// Virtual is an in-memory Keyboard driven by key presses from the host
// terminal or by a tape script.
type Virtual struct {
	open      bool
	text      []rune
	selection terminal.Span
	events    notify.Feed[Event]
}

// NewVirtual returns a closed keyboard.
func NewVirtual() *Virtual {
	return &Virtual{}
}

func (v *Virtual) Events() *notify.Feed[Event] { return &v.events }

func (v *Virtual) IsOpen() bool { return v.open }

func (v *Virtual) Text() string { return string(v.text) }

func (v *Virtual) Selection() terminal.Span { return v.selection }

// Open shows the keyboard. Opening an already open keyboard only replaces
// the text.
func (v *Virtual) Open(text string) {
	wasOpen := v.open
	v.open = true
	v.text = []rune(text)
	v.selection = terminal.Span{Start: len(v.text)}

	if wasOpen {
		v.emit(Changed)
		return
	}
	v.emit(Opened)
}

func (v *Virtual) Close() {
	v.open = false
}

func (v *Virtual) SetText(text string) {
	if string(v.text) == text {
		return
	}
	v.text = []rune(text)
	v.selection = terminal.Span{Start: len(v.text)}
	v.emit(Changed)
}

// Insert replaces the selection with s.
func (v *Virtual) Insert(s string) {
	if !v.open || s == "" {
		return
	}
	start, end := v.bounds()
	ins := []rune(s)

	text := make([]rune, 0, len(v.text)+len(ins))
	text = append(text, v.text[:start]...)
	text = append(text, ins...)
	text = append(text, v.text[end:]...)

	v.text = text
	v.selection = terminal.Span{Start: start + len(ins)}
	v.emit(Changed)
}

// Backspace deletes the selection, or the rune before the caret.
func (v *Virtual) Backspace() {
	if !v.open {
		return
	}
	start, end := v.bounds()
	if start == end {
		if start == 0 {
			return
		}
		start--
	}
	v.text = append(v.text[:start], v.text[end:]...)
	v.selection = terminal.Span{Start: start}
	v.emit(Changed)
}

// MoveCaret moves the caret by delta runes and collapses the selection.
func (v *Virtual) MoveCaret(delta int) {
	if !v.open {
		return
	}
	pos := min(max(v.selection.End()+delta, 0), len(v.text))
	if v.selection.Length == 0 && pos == v.selection.Start {
		return
	}
	v.selection = terminal.Span{Start: pos}
	v.emit(Changed)
}

// Submit closes the keyboard and publishes Done.
func (v *Virtual) Submit() {
	if !v.open {
		return
	}
	v.open = false
	v.emit(Done)
}

// Cancel closes the keyboard and publishes Canceled.
func (v *Virtual) Cancel() {
	if !v.open {
		return
	}
	v.open = false
	v.emit(Canceled)
}

func (v *Virtual) bounds() (int, int) {
	start := min(max(v.selection.Start, 0), len(v.text))
	end := min(max(v.selection.End(), start), len(v.text))
	return start, end
}

func (v *Virtual) emit(kind EventKind) {
	v.events.Emit(Event{Kind: kind, Text: string(v.text), Selection: v.selection})
}
