// Package app implements the interactive demo: a Bubble Tea model hosting one
// touch-driven terminal session. The left mouse button stands in for a
// finger on the grid, the right button draws swipes and the physical keyboard
// types into the on-screen keyboard while it is open.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/termtouch/internal/config"
	"github.com/Gaurav-Gosain/termtouch/internal/input"
	"github.com/Gaurav-Gosain/termtouch/internal/logging"
	"github.com/Gaurav-Gosain/termtouch/internal/session"
	"github.com/Gaurav-Gosain/termtouch/internal/tape"
	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
)

var logger = logging.New("app")

// Rows taken by everything but the grid: two border rows, the status line,
// the keyboard bar and the hint line.
const chromeRows = 5

// NotificationDuration is how long a notice stays in the hint line.
const NotificationDuration = 3 * time.Second

// Options configures a Model.
type Options struct {
	Config *config.Config
	// ConfigPath is watched for changes when non-empty.
	ConfigPath string
	// RecordPath receives a tape of the session on exit when non-empty.
	RecordPath string
}

// Model is the demo's Bubble Tea model.
type Model struct {
	session *session.Session
	cfg     *config.Config
	opts    Options

	ctx    context.Context
	cancel context.CancelFunc

	Width  int
	Height int

	ShowHelp    bool
	notice      string
	noticeUntil time.Time
	lastTick    time.Time

	// Left button state
	pressed  bool
	dragging bool
	lastPos  terminal.Vec2
	lastCell [2]int

	// Right button state
	swiping   bool
	swipeFrom [2]int
	touches   []input.Touch

	recorder *tape.Recorder
	reloads  chan configReloadMsg
}

// New creates the model and its session.
func New(ctx context.Context, opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ctx, cancel := context.WithCancel(ctx)
	s, err := session.New(ctx, cfg, nil)
	if err != nil {
		cancel()
		return nil, err
	}

	m := &Model{
		session:  s,
		cfg:      cfg,
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		Width:    cfg.Grid.Width + 2,
		Height:   cfg.Grid.Height + chromeRows,
		recorder: tape.NewRecorder(),
		reloads:  make(chan configReloadMsg, 1),
	}

	if opts.RecordPath != "" {
		m.recorder.Start()
	}

	if opts.ConfigPath != "" {
		err := config.Watch(ctx, opts.ConfigPath, func(c *config.Config, err error) {
			select {
			case m.reloads <- configReloadMsg{Config: c, Err: err}:
			default:
				logger.Warn("dropping config reload, previous one still pending")
			}
		})
		if err != nil {
			logger.Warn("config hot reload disabled", "err", err)
		}
	}

	s.Buffer.Write("touch the grid to open the keyboard, type help for commands\n")
	logger.Info("demo started", "session", s.ID)
	return m, nil
}

// Session returns the hosted session.
func (m *Model) Session() *session.Session {
	return m.session
}

// Recorder returns the tape recorder.
func (m *Model) Recorder() *tape.Recorder {
	return m.recorder
}

// Notify shows msg in the hint line for NotificationDuration.
func (m *Model) Notify(msg string) {
	m.notice = msg
	m.noticeUntil = time.Now().Add(NotificationDuration)
}

// gridSize returns the grid size that fits the window.
func (m *Model) gridSize() (int, int) {
	return max(1, m.Width-2), max(1, m.Height-chromeRows)
}

// cellAt maps a window cell to a visible grid cell. The grid starts inside
// the border at (1, 1).
func cellAt(x, y int) [2]int {
	return [2]int{x - 1, y - 1}
}

func (m *Model) screen(c [2]int) terminal.Vec2 {
	return m.session.CellCenter(float64(c[0]), float64(c[1]))
}

// Shutdown stops the session, writing the recorded tape if one was
// requested. It is safe to call more than once.
func (m *Model) Shutdown() error {
	var err error
	if m.recorder.IsRecording() {
		m.recorder.Stop()
		header := fmt.Sprintf("termtouch session %s", m.session.ID)
		if err = m.recorder.WriteToFile(m.opts.RecordPath, header); err != nil {
			err = fmt.Errorf("failed to write recording: %w", err)
		} else {
			logger.Info("recording saved", "path", m.opts.RecordPath, "commands", m.recorder.CommandCount())
		}
	}
	m.cancel()
	if cerr := m.session.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
