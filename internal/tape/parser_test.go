package tape

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestParseCommands(t *testing.T) {
	script := `# a scripted session
Set LongPress 750ms
Size 40 10
Write "hello\n"
Down 3 1
Move 3.5 -1
Up 3 2
Tap 0 0
Swipe Left
Swipe Up 4
Type@50ms "ls"
Backspace 2
Submit
Cancel
Sleep 1.5s
Tick 3
Wait
Wait 2s
Print
Output "out.txt"
`

	commands, errs := ParseFile(script)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	expected := []struct {
		typ   CommandType
		args  []string
		delay time.Duration
	}{
		{CommandType_Set, []string{"LongPress", "750ms"}, 0},
		{CommandType_Size, []string{"40", "10"}, 0},
		{CommandType_Write, []string{"hello\n"}, 0},
		{CommandType_Down, []string{"3", "1"}, 0},
		{CommandType_Move, []string{"3.5", "-1"}, 0},
		{CommandType_Up, []string{"3", "2"}, 0},
		{CommandType_Tap, []string{"0", "0"}, 0},
		{CommandType_Swipe, []string{"Left"}, 0},
		{CommandType_Swipe, []string{"Up", "4"}, 0},
		{CommandType_Type, []string{"ls"}, 50 * time.Millisecond},
		{CommandType_Backspace, []string{"2"}, 0},
		{CommandType_Submit, nil, 0},
		{CommandType_Cancel, nil, 0},
		{CommandType_Sleep, []string{"1.5s"}, 1500 * time.Millisecond},
		{CommandType_Tick, []string{"3"}, 0},
		{CommandType_Wait, nil, 0},
		{CommandType_Wait, []string{"2s"}, 2 * time.Second},
		{CommandType_Print, nil, 0},
		{CommandType_Output, []string{"out.txt"}, 0},
	}

	if len(commands) != len(expected) {
		t.Fatalf("Expected %d commands, got %d", len(expected), len(commands))
	}

	for i, want := range expected {
		got := commands[i]
		if got.Type != want.typ {
			t.Errorf("Command %d: expected %s, got %s", i, want.typ, got.Type)
			continue
		}
		if strings.Join(got.Args, ",") != strings.Join(want.args, ",") {
			t.Errorf("Command %d (%s): expected args %q, got %q", i, got.Type, want.args, got.Args)
		}
		if got.Delay != want.delay {
			t.Errorf("Command %d (%s): expected delay %v, got %v", i, got.Type, want.delay, got.Delay)
		}
	}

	// The first command sits on line 2, after the comment.
	if commands[0].Line != 2 {
		t.Errorf("Expected Set on line 2, got %d", commands[0].Line)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"missing coordinate", "Tap 1", "Tap expects 2 numbers"},
		{"bad direction", "Swipe Sideways", "Swipe expects"},
		{"missing string", "Type 3", "Type command expects a string"},
		{"missing sleep duration", "Sleep", "Sleep command expects a duration"},
		{"trailing token", "Print 3", "after command"},
		{"unknown command", "Jump 1 1", "unexpected token"},
		{"at without duration", `Type@ "x"`, "expected duration after @"},
		{"set without value", "Set FPS", "Set command expects a value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := ParseFile(tt.script)
			if len(errs) == 0 {
				t.Fatalf("Expected an error for %q", tt.script)
			}
			if !strings.Contains(errs[0], tt.want) {
				t.Errorf("Expected error containing %q, got %q", tt.want, errs[0])
			}
			if !strings.HasPrefix(errs[0], "line 1: ") {
				t.Errorf("Expected error on line 1, got %q", errs[0])
			}
		})
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	commands, errs := ParseFile("Tap 1\nPrint\nSwipe Nowhere\nTick")

	if len(errs) != 2 {
		t.Errorf("Expected 2 errors, got %d: %v", len(errs), errs)
	}
	if len(commands) != 2 || commands[0].Type != CommandType_Print || commands[1].Type != CommandType_Tick {
		t.Errorf("Expected Print and Tick to survive, got %v", commands)
	}
}

func TestCommandStringRoundTrip(t *testing.T) {
	scripts := []string{
		`Type@50ms "a \"quoted\" word"`,
		`Write "two\nlines"`,
		`Swipe Down 3`,
		`Move 1.5 -2`,
		`Set Padding 4`,
		`Set LongPress 750ms`,
		`Output "out file.txt"`,
	}

	for _, script := range scripts {
		t.Run(script, func(t *testing.T) {
			commands, errs := ParseFile(script)
			if len(errs) > 0 || len(commands) != 1 {
				t.Fatalf("parse %q: %v", script, errs)
			}

			again, errs := ParseFile(commands[0].String())
			if len(errs) > 0 || len(again) != 1 {
				t.Fatalf("reparse %q: %v", commands[0].String(), errs)
			}

			a, b := commands[0], again[0]
			if a.Type != b.Type || a.Delay != b.Delay || strings.Join(a.Args, "\x00") != strings.Join(b.Args, "\x00") {
				t.Errorf("round trip changed %q into %q", a.String(), b.String())
			}
		})
	}
}

func TestCommandCountAndPoint(t *testing.T) {
	cmd := Command{Type: CommandType_Tick}
	if cmd.Count() != 1 {
		t.Errorf("Count() without args = %d, want 1", cmd.Count())
	}
	cmd.Args = []string{"4"}
	if cmd.Count() != 4 {
		t.Errorf("Count() = %d, want 4", cmd.Count())
	}

	tap := Command{Type: CommandType_Tap, Args: []string{"2.5", "-1"}}
	x, y, err := tap.Point()
	if err != nil || x != 2.5 || y != -1 {
		t.Errorf("Point() = %v, %v, %v", x, y, err)
	}

	tap.Args = []string{"2"}
	if _, _, err := tap.Point(); err == nil {
		t.Error("Point() accepted a single argument")
	}
}

func TestPlayer(t *testing.T) {
	commands, _ := ParseFile("Tap 0 0\nPrint")
	p := NewPlayer(commands)

	var got []string
	for {
		cmd, ok := p.Next()
		if !ok {
			break
		}
		got = append(got, fmt.Sprintf("%d/%d %s", p.Position(), p.Len(), cmd))
	}

	want := []string{"1/2 Tap 0 0", "2/2 Print"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("played %q, want %q", got, want)
	}
	if _, ok := p.Next(); ok {
		t.Error("Next() after the last command returned ok")
	}
	if _, ok := NewPlayer(nil).Next(); ok {
		t.Error("empty player returned a command")
	}
}

func TestValidateScript(t *testing.T) {
	if ok, errs := ValidateScript("Tap 1 1\n"); !ok {
		t.Errorf("valid script rejected: %v", errs)
	}
	if ok, _ := ValidateScript("# only a comment\n"); ok {
		t.Error("empty script accepted")
	}
	if ok, _ := ValidateScript("Tap\n"); ok {
		t.Error("broken script accepted")
	}
}
