package tape

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/termtouch/internal/input"
)

// Recorder records user interactions as tape commands
type Recorder struct {
	commands      []Command
	startTime     time.Time
	lastEventTime time.Time
	enabled       bool
	minDelay      time.Duration // Shorter pauses between events are not recorded
	clock         func() time.Time
}

// NewRecorder creates a new tape recorder
func NewRecorder() *Recorder {
	r := &Recorder{
		minDelay: 100 * time.Millisecond,
		clock:    time.Now,
	}
	r.Clear()
	return r
}

// Start begins recording
func (r *Recorder) Start() {
	r.Clear()
	r.enabled = true
}

// Stop ends recording
func (r *Recorder) Stop() {
	r.enabled = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.enabled
}

// gap records a Sleep for the pause since the previous event and returns
// how long it was.
func (r *Recorder) gap() time.Duration {
	now := r.clock()
	d := now.Sub(r.lastEventTime)
	r.lastEventTime = now
	if d >= r.minDelay && len(r.commands) > 0 {
		d = d.Round(time.Millisecond)
		r.commands = append(r.commands, Command{
			Type:  CommandType_Sleep,
			Args:  []string{d.String()},
			Delay: d,
		})
	}
	return d
}

func (r *Recorder) last() *Command {
	if len(r.commands) == 0 {
		return nil
	}
	return &r.commands[len(r.commands)-1]
}

func (r *Recorder) add(t CommandType, args ...string) {
	r.commands = append(r.commands, Command{Type: t, Args: args})
}

func cell(col, row int) []string {
	return []string{strconv.Itoa(col), strconv.Itoa(row)}
}

// RecordDown records the pointer going down on a visible cell
func (r *Recorder) RecordDown(col, row int) {
	if !r.enabled {
		return
	}
	r.gap()
	r.add(CommandType_Down, cell(col, row)...)
}

// RecordMove records pointer motion. Motion within the cell of the previous
// Move is dropped.
func (r *Recorder) RecordMove(col, row int) {
	if !r.enabled {
		return
	}
	args := cell(col, row)
	if last := r.last(); last != nil && last.Type == CommandType_Move &&
		last.Args[0] == args[0] && last.Args[1] == args[1] {
		return
	}
	r.gap()
	r.add(CommandType_Move, args...)
}

// RecordUp records the pointer going up. A quick Down and Up on the same
// cell collapse into a Tap.
func (r *Recorder) RecordUp(col, row int) {
	if !r.enabled {
		return
	}
	args := cell(col, row)
	last := r.last()
	if d := r.gap(); d < r.minDelay && last != nil && last.Type == CommandType_Down &&
		last.Args[0] == args[0] && last.Args[1] == args[1] {
		last.Type = CommandType_Tap
		return
	}
	r.add(CommandType_Up, args...)
}

var swipeTokens = map[input.Direction]TokenType{
	input.SwipeLeft:  TOKEN_LEFT,
	input.SwipeRight: TOKEN_RIGHT,
	input.SwipeUp:    TOKEN_UP,
	input.SwipeDown:  TOKEN_DOWN,
}

// RecordSwipe records a swipe of distance cells
func (r *Recorder) RecordSwipe(dir input.Direction, distance int) {
	if !r.enabled {
		return
	}
	tok, ok := swipeTokens[dir]
	if !ok {
		return
	}
	r.gap()
	args := []string{string(tok)}
	if distance > 0 && distance != DefaultSwipeDistance {
		args = append(args, strconv.Itoa(distance))
	}
	r.add(CommandType_Swipe, args...)
}

// RecordType records typing text. Typing without a pause extends the
// previous Type command.
func (r *Recorder) RecordType(text string) {
	if !r.enabled || text == "" {
		return
	}
	last := r.last()
	if d := r.gap(); d < r.minDelay && last != nil && last.Type == CommandType_Type {
		last.Args[0] += text
		return
	}
	r.add(CommandType_Type, text)
}

// RecordBackspace records one backspace, folding repeats into a count
func (r *Recorder) RecordBackspace() {
	if !r.enabled {
		return
	}
	last := r.last()
	if d := r.gap(); d < r.minDelay && last != nil && last.Type == CommandType_Backspace {
		last.Args = []string{strconv.Itoa(last.Count() + 1)}
		return
	}
	r.add(CommandType_Backspace)
}

// RecordSubmit records the keyboard's return key
func (r *Recorder) RecordSubmit() {
	if !r.enabled {
		return
	}
	r.gap()
	r.add(CommandType_Submit)
}

// RecordCancel records dismissing the keyboard
func (r *Recorder) RecordCancel() {
	if !r.enabled {
		return
	}
	r.gap()
	r.add(CommandType_Cancel)
}

// GetCommands returns all recorded commands
func (r *Recorder) GetCommands() []Command {
	return r.commands
}

// WriteToFile saves the recorded tape to a file
func (r *Recorder) WriteToFile(filename string, header string) error {
	return os.WriteFile(filename, []byte(r.String(header)), 0o644)
}

// String returns the tape content as a formatted string
func (r *Recorder) String(header string) string {
	var sb strings.Builder

	if header != "" {
		fmt.Fprintf(&sb, "# %s\n", header)
		fmt.Fprintf(&sb, "# Recorded: %s\n\n", r.startTime.Format(time.RFC3339))
	}

	for _, cmd := range r.commands {
		sb.WriteString(cmd.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}

// CommandCount returns the number of recorded commands
func (r *Recorder) CommandCount() int {
	return len(r.commands)
}

// RecordingStats contains statistics about the recording
type RecordingStats struct {
	CommandCount int
	Duration     time.Duration
	IsRecording  bool
}

// GetStats returns recording statistics
func (r *Recorder) GetStats() RecordingStats {
	return RecordingStats{
		CommandCount: len(r.commands),
		Duration:     r.clock().Sub(r.startTime),
		IsRecording:  r.enabled,
	}
}

// Clear clears all recorded commands
func (r *Recorder) Clear() {
	r.commands = []Command{}
	r.startTime = r.clock()
	r.lastEventTime = r.startTime
}
