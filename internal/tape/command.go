package tape

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CommandType represents the type of a tape command
type CommandType string

const (
	// Grid
	CommandType_Size  CommandType = "Size"
	CommandType_Write CommandType = "Write"

	// Pointer
	CommandType_Down CommandType = "Down"
	CommandType_Move CommandType = "Move"
	CommandType_Up   CommandType = "Up"
	CommandType_Tap  CommandType = "Tap"

	// Touch
	CommandType_Swipe CommandType = "Swipe"

	// Keyboard
	CommandType_Type      CommandType = "Type"
	CommandType_Backspace CommandType = "Backspace"
	CommandType_Submit    CommandType = "Submit"
	CommandType_Cancel    CommandType = "Cancel"

	// Time
	CommandType_Sleep CommandType = "Sleep"
	CommandType_Tick  CommandType = "Tick"
	CommandType_Wait  CommandType = "Wait"

	// Output and settings
	CommandType_Print  CommandType = "Print"
	CommandType_Set    CommandType = "Set"
	CommandType_Output CommandType = "Output"
)

// Command represents a parsed tape command
type Command struct {
	Type   CommandType
	Args   []string      // Command arguments
	Delay  time.Duration // Per-step delay (Type@50ms), or the duration of Sleep and Wait
	Line   int           // Source line number
	Column int           // Source column number
}

// String returns the command in tape syntax
func (c *Command) String() string {
	var sb strings.Builder
	sb.WriteString(string(c.Type))

	switch c.Type {
	case CommandType_Type, CommandType_Write, CommandType_Output:
		if c.Delay > 0 {
			fmt.Fprintf(&sb, "@%s", c.Delay)
		}
		for _, a := range c.Args {
			fmt.Fprintf(&sb, " %q", a)
		}
	case CommandType_Set:
		if len(c.Args) == 2 {
			fmt.Fprintf(&sb, " %s %s", c.Args[0], quoteIfNeeded(c.Args[1]))
		}
	default:
		for _, a := range c.Args {
			sb.WriteByte(' ')
			sb.WriteString(a)
		}
	}
	return sb.String()
}

// quoteIfNeeded quotes values the lexer would not read back as one token
func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'`#@") {
		return strconv.Quote(s)
	}
	return s
}

// IsCommand returns true if the command type is a valid command
func (ct CommandType) IsCommand() bool {
	switch ct {
	case CommandType_Size, CommandType_Write,
		CommandType_Down, CommandType_Move, CommandType_Up, CommandType_Tap,
		CommandType_Swipe,
		CommandType_Type, CommandType_Backspace, CommandType_Submit, CommandType_Cancel,
		CommandType_Sleep, CommandType_Tick, CommandType_Wait,
		CommandType_Print, CommandType_Set, CommandType_Output:
		return true
	}
	return false
}

// ParseDuration parses a duration string (e.g., "500ms", "1s")
func ParseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

// Count returns the optional repeat count in Args[0], or 1.
func (c *Command) Count() int {
	if len(c.Args) == 0 {
		return 1
	}
	n, err := strconv.Atoi(c.Args[0])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Point returns the two numeric arguments of a pointer command.
func (c *Command) Point() (x, y float64, err error) {
	if len(c.Args) != 2 {
		return 0, 0, fmt.Errorf("%s expects a column and a row", c.Type)
	}
	if x, err = strconv.ParseFloat(c.Args[0], 64); err != nil {
		return 0, 0, fmt.Errorf("invalid column %q: %w", c.Args[0], err)
	}
	if y, err = strconv.ParseFloat(c.Args[1], 64); err != nil {
		return 0, 0, fmt.Errorf("invalid row %q: %w", c.Args[1], err)
	}
	return x, y, nil
}
