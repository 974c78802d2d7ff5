package vt

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Gaurav-Gosain/termtouch/internal/notify"
	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
)

// Prompt is written in front of every executed command.
const Prompt = "$ "

// ErrCommandNotFound is returned by the builtin runner for unknown commands.
var ErrCommandNotFound = errors.New("command not found")

// Request is what a Runner receives for one command. History is a snapshot
// taken when the command was submitted.
type Request struct {
	Command string
	History []string
}

// Result is the outcome of running a command.
type Result struct {
	Output string
	// Clear asks the shell to erase the buffer instead of printing Output.
	Clear bool
}

// Runner executes a command. It is called on its own goroutine.
type Runner func(ctx context.Context, req Request) (Result, error)

type completion struct {
	req    Request
	result Result
	err    error
}

// Shell is a terminal.Terminal that echoes commands and their output into a
// Buffer. Commands run asynchronously; call Poll from the host loop to
// deliver their results.
type Shell struct {
	ctx    context.Context
	buf    *Buffer
	runner Runner

	command   []rune
	selection terminal.Span

	history *History
	// histPos is the history index being shown, or -1 for the draft line.
	histPos int
	draft   string

	candidates []string
	candPos    int
	// shown is the text the completion cycle last put on the command line.
	shown string

	results chan completion
	pending int

	executed notify.Feed[terminal.ExecutedEvent]
	props    notify.Feed[terminal.Property]
}

// NewShell creates a shell writing into buf. A nil runner selects Builtins.
func NewShell(ctx context.Context, buf *Buffer, history *History, runner Runner) *Shell {
	if runner == nil {
		runner = Builtins
	}
	if history == nil {
		history = NewHistory(DefaultHistorySize)
	}
	return &Shell{
		ctx:     ctx,
		buf:     buf,
		runner:  runner,
		history: history,
		histPos: -1,
		results: make(chan completion, 16),
	}
}

func (s *Shell) Executed() *notify.Feed[terminal.ExecutedEvent] { return &s.executed }

func (s *Shell) PropertyChanged() *notify.Feed[terminal.Property] { return &s.props }

// History returns the command history.
func (s *Shell) History() *History { return s.history }

// Pending returns the number of submitted commands not yet delivered by Poll.
func (s *Shell) Pending() int { return s.pending }

func (s *Shell) Command() string { return string(s.command) }

func (s *Shell) SetCommand(text string) {
	if text == string(s.command) {
		return
	}
	s.command = []rune(text)
	s.props.Emit(terminal.PropertyCommand)
	s.SetCommandSelection(terminal.Span{Start: len(s.command)})
}

func (s *Shell) CommandSelection() terminal.Span { return s.selection }

func (s *Shell) SetCommandSelection(sel terminal.Span) {
	start := min(max(sel.Start, 0), len(s.command))
	length := min(max(sel.Length, 0), len(s.command)-start)
	sel = terminal.Span{Start: start, Length: length}
	if sel == s.selection {
		return
	}
	s.selection = sel
	s.props.Emit(terminal.PropertyCommandSelection)
}

// Execute echoes the command into the buffer, records it in the history and
// starts the runner. The command line is cleared immediately.
func (s *Shell) Execute() {
	cmd := strings.TrimSpace(s.Command())
	s.buf.Write(Prompt + s.Command() + "\n")

	s.history.Push(cmd)
	s.histPos = -1
	s.draft = ""
	s.candidates = nil
	s.SetCommand("")

	req := Request{Command: cmd, History: s.history.Entries()}
	s.pending++
	logger.Debug("executing command", "command", cmd)

	go func() {
		res, err := s.runner(s.ctx, req)
		s.results <- completion{req: req, result: res, err: err}
	}()
}

// Poll delivers finished commands without blocking and returns how many
// were delivered.
func (s *Shell) Poll() int {
	n := 0
	for {
		select {
		case c := <-s.results:
			s.deliver(c)
			n++
		default:
			return n
		}
	}
}

// Wait blocks until every submitted command has been delivered or ctx is
// done.
func (s *Shell) Wait(ctx context.Context) error {
	for s.pending > 0 {
		select {
		case c := <-s.results:
			s.deliver(c)
		case <-ctx.Done():
			return fmt.Errorf("waiting for %d commands: %w", s.pending, ctx.Err())
		}
	}
	return nil
}

func (s *Shell) deliver(c completion) {
	s.pending--

	switch {
	case c.err != nil:
		s.buf.Write(fmt.Sprintf("termtouch: %v\n", c.err))
	case c.result.Clear:
		s.buf.Clear()
	case c.result.Output != "":
		out := c.result.Output
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		s.buf.Write(out)
	}

	s.executed.Emit(terminal.ExecutedEvent{
		Command: c.req.Command,
		Output:  c.result.Output,
		Err:     c.err,
	})
}

func (s *Shell) PreviousHistory() {
	if s.history.Len() == 0 {
		return
	}
	if s.histPos == -1 {
		s.draft = s.Command()
		s.histPos = s.history.Len()
	}
	if s.histPos == 0 {
		return
	}
	s.histPos--
	s.SetCommand(s.history.At(s.histPos))
}

func (s *Shell) NextHistory() {
	if s.histPos == -1 {
		return
	}
	s.histPos++
	if s.histPos >= s.history.Len() {
		s.histPos = -1
		s.SetCommand(s.draft)
		return
	}
	s.SetCommand(s.history.At(s.histPos))
}

func (s *Shell) NextCompletion()     { s.complete(1) }
func (s *Shell) PreviousCompletion() { s.complete(-1) }

// complete cycles through the commands starting with the text typed before
// the cycle began. Editing the command line starts a new cycle.
func (s *Shell) complete(step int) {
	if s.candidates == nil || s.Command() != s.shown {
		s.candidates = s.completions(s.Command())
		if len(s.candidates) == 0 {
			s.candidates = nil
			return
		}
		s.candPos = 0
		if step < 0 {
			s.candPos = len(s.candidates) - 1
		}
	} else {
		n := len(s.candidates)
		s.candPos = ((s.candPos+step)%n + n) % n
	}

	s.shown = s.candidates[s.candPos]
	s.SetCommand(s.shown)
}

func (s *Shell) completions(prefix string) []string {
	var out []string
	add := func(c string) {
		if c != prefix && strings.HasPrefix(c, prefix) && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	for _, name := range BuiltinNames() {
		add(name)
	}
	entries := s.history.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		add(entries[i])
	}
	return out
}
