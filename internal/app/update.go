package app

import (
	"math"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/termtouch/internal/config"
	"github.com/Gaurav-Gosain/termtouch/internal/input"
	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
)

// NormalFPS is the frame rate of the gesture clock.
const NormalFPS = 60

// maxFrame caps the time one tick may advance after a stall.
const maxFrame = 100 * time.Millisecond

// TickerMsg represents a periodic tick event for updating the UI.
type TickerMsg time.Time

type configReloadMsg struct {
	Config *config.Config
	Err    error
}

// TickCmd creates a command that generates tick messages at 60 FPS.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// WaitForReloadCmd waits for the next configuration reload.
func WaitForReloadCmd(ch <-chan configReloadMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// Init starts the frame clock and the config listener.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd()}
	if m.opts.ConfigPath != "" {
		cmds = append(cmds, WaitForReloadCmd(m.reloads))
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages and updates the application state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		m.frame(time.Time(msg))
		return m, TickCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		w, h := m.gridSize()
		if err := m.session.Resize(w, h); err != nil {
			logger.Error("resize failed", "err", err)
		}
		return m, nil

	case tea.MouseClickMsg:
		m.handleMouseClick(msg.Mouse(), time.Now())
		return m, nil

	case tea.MouseMotionMsg:
		m.handleMouseMotion(msg.Mouse(), time.Now())
		return m, nil

	case tea.MouseReleaseMsg:
		m.handleMouseRelease(msg.Mouse(), time.Now())
		return m, nil

	case tea.MouseWheelMsg:
		m.handleMouseWheel(msg.Mouse())
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case configReloadMsg:
		m.applyConfig(msg)
		return m, WaitForReloadCmd(m.reloads)
	}

	return m, nil
}

// frame advances the session to now and hands it the next queued touch.
func (m *Model) frame(now time.Time) {
	dt := time.Second / NormalFPS
	if !m.lastTick.IsZero() {
		dt = min(max(now.Sub(m.lastTick), 0), maxFrame)
	}
	m.lastTick = now

	// The swiper samples one touch per frame.
	if len(m.touches) > 0 {
		t := m.touches[0]
		m.touches = m.touches[1:]
		m.session.Frame(dt, t)
	} else {
		m.session.Frame(dt)
	}

	if m.notice != "" && now.After(m.noticeUntil) {
		m.notice = ""
	}
}

func (m *Model) event(pos terminal.Vec2, at time.Time) input.PointerEvent {
	return input.PointerEvent{Button: input.ButtonPrimary, Position: pos, Time: at}
}

func (m *Model) handleMouseClick(mouse tea.Mouse, at time.Time) {
	c := cellAt(mouse.X, mouse.Y)

	switch mouse.Button {
	case tea.MouseLeft:
		if m.pressed || m.swiping {
			return
		}
		pos := m.screen(c)
		m.session.Controller.PointerDown(m.event(pos, at))
		m.pressed = true
		m.dragging = false
		m.lastPos = pos
		m.lastCell = c
		m.recorder.RecordDown(c[0], c[1])

	case tea.MouseRight:
		if m.pressed || m.swiping {
			return
		}
		m.swiping = true
		m.swipeFrom = c
		m.touches = append(m.touches, input.Touch{Phase: input.TouchBegan, Position: m.screen(c), Time: at})
	}
}

func (m *Model) handleMouseMotion(mouse tea.Mouse, at time.Time) {
	if !m.pressed {
		return
	}
	c := cellAt(mouse.X, mouse.Y)
	if c == m.lastCell {
		return
	}

	pos := m.screen(c)
	ctl := m.session.Controller
	if !m.dragging {
		ctl.BeginDrag(m.event(m.lastPos, at))
		m.dragging = true
	}
	ctl.Drag(m.event(pos, at))
	m.lastPos = pos
	m.lastCell = c
	m.recorder.RecordMove(c[0], c[1])
}

// handleMouseRelease ends whichever gesture is in progress. Release events
// do not reliably carry a button, so the model's own state decides.
func (m *Model) handleMouseRelease(mouse tea.Mouse, at time.Time) {
	c := cellAt(mouse.X, mouse.Y)

	switch {
	case m.pressed:
		pos := m.screen(c)
		ctl := m.session.Controller
		if m.dragging {
			ctl.EndDrag(m.event(pos, at))
		}
		ctl.PointerUp(m.event(pos, at))
		m.pressed = false
		m.dragging = false
		m.recorder.RecordUp(c[0], c[1])

	case m.swiping:
		m.swiping = false
		m.touches = append(m.touches, input.Touch{Phase: input.TouchEnded, Position: m.screen(c), Time: at})

		delta := terminal.Vec2{X: float64(c[0] - m.swipeFrom[0]), Y: float64(c[1] - m.swipeFrom[1])}
		if dir, ok := input.Classify(delta); ok && delta.Len() > m.cfg.Swipe.MinDistance {
			m.recorder.RecordSwipe(dir, int(math.Round(delta.Len())))
		}
	}
}

// handleMouseWheel scrolls the grid three rows per notch.
func (m *Model) handleMouseWheel(mouse tea.Mouse) {
	b := m.session.Buffer
	switch mouse.Button {
	case tea.MouseWheelUp:
		b.SetVisibleIndex(b.VisibleIndex() - 3)
	case tea.MouseWheelDown:
		b.SetVisibleIndex(b.VisibleIndex() + 3)
	}
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		if err := m.Shutdown(); err != nil {
			logger.Error("shutdown", "err", err)
		}
		return m, tea.Quit
	}

	kb := m.session.Keyboard
	if !kb.IsOpen() {
		switch key {
		case "?":
			m.ShowHelp = !m.ShowHelp
		case "esc":
			m.ShowHelp = false
		}
		return m, nil
	}

	switch key {
	case "enter":
		kb.Submit()
		m.recorder.RecordSubmit()
	case "esc":
		kb.Cancel()
		m.recorder.RecordCancel()
	case "backspace":
		kb.Backspace()
		m.recorder.RecordBackspace()
	case "left":
		kb.MoveCaret(-1)
	case "right":
		kb.MoveCaret(1)
	default:
		if msg.Text != "" {
			kb.Insert(msg.Text)
			m.recorder.RecordType(msg.Text)
		}
	}
	return m, nil
}

// applyConfig swaps in a reloaded configuration. The grid keeps the size of
// the window.
func (m *Model) applyConfig(msg configReloadMsg) {
	if msg.Err != nil {
		m.Notify("config error: " + msg.Err.Error())
		return
	}

	cfg := *msg.Config
	cfg.Grid.Width, cfg.Grid.Height = m.gridSize()
	if err := m.session.Reconfigure(&cfg); err != nil {
		m.Notify("config rejected: " + err.Error())
		return
	}
	m.cfg = &cfg
	m.pressed, m.dragging, m.swiping = false, false, false
	m.Notify("config reloaded")
}
