package terminal

import (
	"io"

	"github.com/charmbracelet/x/ansi"
)

// ResetTerminal writes the sequences that undo what the demo turns on:
// mouse reporting, focus events, the alternate screen and a hidden cursor.
// It is used when the program exits abnormally and bubbletea did not get a
// chance to restore the terminal itself.
func ResetTerminal(w io.Writer) error {
	seq := ansi.ResetMode(
		ansi.ModeMouseNormal,
		ansi.ModeMouseButtonEvent,
		ansi.ModeMouseAnyEvent,
		ansi.ModeMouseExtSgr,
		ansi.ModeFocusEvent,
		ansi.ModeAltScreen,
	) + ansi.SetMode(ansi.ModeTextCursorEnable) + ansi.ResetStyle + "\r\n"

	_, err := io.WriteString(w, seq)
	return err
}
