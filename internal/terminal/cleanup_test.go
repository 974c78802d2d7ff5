package terminal

import (
	"strings"
	"testing"
)

func TestResetTerminalDisablesMouse(t *testing.T) {
	var b strings.Builder
	if err := ResetTerminal(&b); err != nil {
		t.Fatalf("ResetTerminal: %v", err)
	}

	out := b.String()
	for _, want := range []string{"1000", "1002", "1003", "1006", "?25h"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
