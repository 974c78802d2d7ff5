// Package session assembles a touch-driven terminal widget: the grid, the
// shell behind it, the on-screen keyboard and the gesture controller wired
// to all three. The demo and the tape runner both drive a Session.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/termtouch/internal/config"
	"github.com/Gaurav-Gosain/termtouch/internal/input"
	"github.com/Gaurav-Gosain/termtouch/internal/keyboard"
	"github.com/Gaurav-Gosain/termtouch/internal/logging"
	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
	"github.com/Gaurav-Gosain/termtouch/internal/vt"
	"github.com/google/uuid"
)

var logger = logging.New("session")

// Session owns one widget and the controller attached to it. It is not safe
// for concurrent use; every call belongs on the host goroutine.
type Session struct {
	ID         string
	Buffer     *vt.Buffer
	Shell      *vt.Shell
	Keyboard   *keyboard.Virtual
	Controller *input.Controller

	cancel context.CancelFunc
	closed bool
}

// New builds a session sized and tuned by cfg. A nil runner selects the
// shell builtins.
func New(ctx context.Context, cfg *config.Config, runner vt.Runner) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	buf, err := vt.NewBuffer(cfg.Grid.Width, cfg.Grid.Height, cfg.Metrics())
	if err != nil {
		return nil, fmt.Errorf("failed to create grid: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		ID:       uuid.NewString(),
		Buffer:   buf,
		Shell:    vt.NewShell(ctx, buf, vt.NewHistory(cfg.Grid.History), runner),
		Keyboard: keyboard.NewVirtual(),
		cancel:   cancel,
	}
	s.Controller = input.NewController(cfg.Input(), s.Buffer, s.Shell, s.Keyboard)
	if err := s.Controller.Attach(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to attach controller: %w", err)
	}

	logger.Debug("session created", "id", s.ID, "width", cfg.Grid.Width, "height", cfg.Grid.Height)
	return s, nil
}

// Close detaches the controller and cancels running commands.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel()
	return s.Controller.Detach()
}

// Frame advances gestures by dt, samples the touches and delivers finished
// commands. It returns the number of commands delivered.
func (s *Session) Frame(dt time.Duration, touches ...input.Touch) int {
	s.Controller.Update(dt, touches...)
	return s.Shell.Poll()
}

// CellCenter returns the screen position of the center of visible cell
// (col, row). Fractional and out-of-grid cells are allowed.
func (s *Session) CellCenter(col, row float64) terminal.Vec2 {
	m := s.Buffer.Metrics()
	cell := s.Buffer.CellSize()
	return terminal.Vec2{
		X: m.Padding + (col+0.5)*cell.X,
		Y: m.Padding + (row+0.5)*cell.Y,
	}
}

// Resize changes the grid size. Committed selections follow their text.
func (s *Session) Resize(width, height int) error {
	return s.Buffer.Resize(width, height)
}

// Reconfigure swaps in new thresholds, cell metrics and history size. The
// controller is re-attached so the new thresholds take effect; a gesture in
// progress is abandoned.
func (s *Session) Reconfigure(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := s.Controller.Detach(); err != nil {
		return err
	}

	s.Buffer.SetMetrics(cfg.Metrics())
	s.Shell.History().SetMax(cfg.Grid.History)
	s.Controller = input.NewController(cfg.Input(), s.Buffer, s.Shell, s.Keyboard)
	if err := s.Controller.Attach(); err != nil {
		return fmt.Errorf("failed to attach controller: %w", err)
	}
	if err := s.Resize(cfg.Grid.Width, cfg.Grid.Height); err != nil {
		return err
	}

	logger.Info("session reconfigured", "id", s.ID)
	return nil
}

// Selection is a committed range together with the text it covers.
type Selection struct {
	Range terminal.Range
	Text  string
}

// Snapshot is a point-in-time view of the widget.
type Snapshot struct {
	Width   int
	Height  int
	Visible int
	Max     int
	// Rows holds the visible rows with trailing blanks trimmed.
	Rows []string

	State      input.State
	Scrolling  bool
	Selections []Selection
	Selecting  Selection

	KeyboardOpen bool
	KeyboardText string
	History      []string
}

// Snapshot captures the visible rows and the gesture state.
func (s *Session) Snapshot() Snapshot {
	b := s.Buffer
	snap := Snapshot{
		Width:        b.BufferWidth(),
		Height:       b.BufferHeight(),
		Visible:      b.VisibleIndex(),
		Max:          b.MaxVisibleIndex(),
		State:        s.Controller.State(),
		Scrolling:    b.IsScrolling(),
		KeyboardOpen: s.Keyboard.IsOpen(),
		KeyboardText: s.Keyboard.Text(),
		History:      s.Shell.History().Entries(),
	}

	for row := snap.Visible; row < snap.Visible+snap.Height; row++ {
		var sb strings.Builder
		for col := range snap.Width {
			r, ok := b.Cell(terminal.Point{Column: col, Row: row})
			if !ok {
				r = ' '
			}
			sb.WriteRune(r)
		}
		snap.Rows = append(snap.Rows, strings.TrimRight(sb.String(), " "))
	}

	for _, r := range b.Selections().All() {
		snap.Selections = append(snap.Selections, Selection{Range: r, Text: b.TextOf(r)})
	}
	snap.Selecting = Selection{Range: b.SelectingRange(), Text: b.TextOf(b.SelectingRange())}
	return snap
}

// String renders the snapshot as plain text.
func (snap Snapshot) String() string {
	var sb strings.Builder
	edge := "+" + strings.Repeat("-", snap.Width) + "+\n"

	sb.WriteString(edge)
	for _, row := range snap.Rows {
		fmt.Fprintf(&sb, "|%-*s|\n", snap.Width, row)
	}
	sb.WriteString(edge)

	fmt.Fprintf(&sb, "state=%s visible=%d/%d scrolling=%t\n", snap.State, snap.Visible, snap.Max, snap.Scrolling)
	for i, sel := range snap.Selections {
		fmt.Fprintf(&sb, "selection[%d] %s %q\n", i, sel.Range, sel.Text)
	}
	if !snap.Selecting.Range.IsEmpty() {
		fmt.Fprintf(&sb, "selecting %s %q\n", snap.Selecting.Range, snap.Selecting.Text)
	}
	if snap.KeyboardOpen {
		fmt.Fprintf(&sb, "keyboard %q\n", snap.KeyboardText)
	} else {
		sb.WriteString("keyboard closed\n")
	}
	return sb.String()
}
