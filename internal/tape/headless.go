package tape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/termtouch/internal/config"
	"github.com/Gaurav-Gosain/termtouch/internal/input"
	"github.com/Gaurav-Gosain/termtouch/internal/logging"
	"github.com/Gaurav-Gosain/termtouch/internal/session"
	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
	"github.com/Gaurav-Gosain/termtouch/internal/theme"
)

var logger = logging.New("tape")

var (
	// ErrKeyboardClosed is returned by keyboard commands while the keyboard is closed.
	ErrKeyboardClosed = errors.New("keyboard is closed")
	// ErrNotPressed is returned by Move and Up without a preceding Down.
	ErrNotPressed = errors.New("pointer is not down")
	// ErrPressed is returned by Down and Tap while the pointer is already down.
	ErrPressed = errors.New("pointer is already down")
	// ErrLateSetting is returned by Set once the grid exists.
	ErrLateSetting = errors.New("settings must come before the first command that uses the grid")
	// ErrUnknownSetting is returned by Set for an unknown key.
	ErrUnknownSetting = errors.New("unknown setting")
)

const (
	// DefaultFPS is the frame rate of the virtual clock.
	DefaultFPS = 60
	// DefaultSwipeDistance is the length of a Swipe without a distance, in cells.
	DefaultSwipeDistance = 5
	// swipeDuration is how long a scripted swipe keeps the finger down.
	swipeDuration = 100 * time.Millisecond
	// defaultWait bounds Wait without a duration.
	defaultWait = 5 * time.Second
)

// HeadlessRunner plays a tape script against a session without rendering a
// TUI. Time is virtual: Sleep and Tick advance a clock frame by frame, so a
// script produces the same transcript on every run.
type HeadlessRunner struct {
	commands []Command
	player   *Player
	cfg      *config.Config
	fps      int

	session  *session.Session
	now      time.Time
	pressed  bool
	dragging bool
	lastPos  terminal.Vec2

	outputPath string
	output     strings.Builder
	outputLock sync.Mutex
	verbose    bool
	styled     bool

	stats ScriptExecutionStats
}

// ScriptExecutionStats contains statistics about a script execution
type ScriptExecutionStats struct {
	TotalCommands int
	ExecutedCount int
	Frames        int
	VirtualTime   time.Duration
	WallTime      time.Duration
	Success       bool
	ErrorMessage  string
}

// NewHeadlessRunner creates a runner for commands. cfg seeds the grid and
// gesture thresholds; Set commands in the script override it.
func NewHeadlessRunner(commands []Command, cfg *config.Config) *HeadlessRunner {
	c := config.DefaultConfig()
	if cfg != nil {
		*c = *cfg
	}
	return &HeadlessRunner{
		commands: commands,
		player:   NewPlayer(commands),
		cfg:      c,
		fps:      DefaultFPS,
		now:      time.Unix(0, 0).UTC(),
		stats:    ScriptExecutionStats{TotalCommands: len(commands)},
	}
}

// SetVerbose enables echoing every command into the transcript
func (hr *HeadlessRunner) SetVerbose(verbose bool) {
	hr.verbose = verbose
}

// SetStyled enables ANSI styling in the transcript
func (hr *HeadlessRunner) SetStyled(styled bool) {
	hr.styled = styled
}

// OutputPath returns the path set by an Output command, if any
func (hr *HeadlessRunner) OutputPath() string {
	return hr.outputPath
}

// Session returns the session the script drives, or nil before the first
// command that needs one.
func (hr *HeadlessRunner) Session() *session.Session {
	return hr.session
}

// Now returns the virtual clock.
func (hr *HeadlessRunner) Now() time.Time {
	return hr.now
}

// Stats returns execution statistics
func (hr *HeadlessRunner) Stats() ScriptExecutionStats {
	return hr.stats
}

// Close releases the session.
func (hr *HeadlessRunner) Close() error {
	if hr.session == nil {
		return nil
	}
	return hr.session.Close()
}

// Run executes all commands in the script sequentially
func (hr *HeadlessRunner) Run(ctx context.Context) (err error) {
	wallStart := time.Now()
	virtualStart := hr.now
	defer func() {
		hr.stats.WallTime = time.Since(wallStart)
		hr.stats.VirtualTime = hr.now.Sub(virtualStart)
		hr.stats.Success = err == nil
		if err != nil {
			hr.stats.ErrorMessage = err.Error()
		}
	}()

	logger.Debug("running script", "commands", len(hr.commands))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, ok := hr.player.Next()
		if !ok {
			break
		}
		if hr.verbose {
			hr.echo(fmt.Sprintf("[%d/%d] %s", hr.player.Position(), hr.player.Len(), cmd))
		}
		if err := hr.execute(ctx, cmd); err != nil {
			return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd, err)
		}
		hr.stats.ExecutedCount++
	}

	if hr.session != nil {
		if err := hr.session.Shell.Wait(ctx); err != nil {
			return err
		}
	}

	if hr.verbose {
		hr.echo(fmt.Sprintf("Script finished: %d commands, %s virtual time, %d frames",
			hr.stats.ExecutedCount, hr.now.Sub(virtualStart), hr.stats.Frames))
	}
	return nil
}

func (hr *HeadlessRunner) execute(ctx context.Context, cmd *Command) error {
	switch cmd.Type {
	case CommandType_Set:
		if hr.session != nil {
			return ErrLateSetting
		}
		return hr.set(cmd.Args[0], cmd.Args[1])

	case CommandType_Output:
		hr.outputPath = cmd.Args[0]
		return nil

	case CommandType_Size:
		w, errW := strconv.Atoi(cmd.Args[0])
		h, errH := strconv.Atoi(cmd.Args[1])
		if err := errors.Join(errW, errH); err != nil {
			return err
		}
		if hr.session == nil {
			hr.cfg.Grid.Width, hr.cfg.Grid.Height = w, h
			return hr.cfg.Validate()
		}
		return hr.session.Resize(w, h)
	}

	s, err := hr.ensureSession(ctx)
	if err != nil {
		return err
	}

	switch cmd.Type {
	case CommandType_Write:
		s.Buffer.Write(cmd.Args[0])

	case CommandType_Down, CommandType_Move, CommandType_Up, CommandType_Tap:
		x, y, err := cmd.Point()
		if err != nil {
			return err
		}
		return hr.pointer(cmd.Type, hr.screen(x, y))

	case CommandType_Swipe:
		return hr.swipe(cmd)

	case CommandType_Type:
		if !s.Keyboard.IsOpen() {
			return ErrKeyboardClosed
		}
		if cmd.Delay <= 0 {
			s.Keyboard.Insert(cmd.Args[0])
			return nil
		}
		for _, r := range cmd.Args[0] {
			s.Keyboard.Insert(string(r))
			hr.advance(cmd.Delay)
		}

	case CommandType_Backspace:
		if !s.Keyboard.IsOpen() {
			return ErrKeyboardClosed
		}
		for range cmd.Count() {
			s.Keyboard.Backspace()
		}

	case CommandType_Submit:
		if !s.Keyboard.IsOpen() {
			return ErrKeyboardClosed
		}
		s.Keyboard.Submit()
		return s.Shell.Wait(ctx)

	case CommandType_Cancel:
		if !s.Keyboard.IsOpen() {
			return ErrKeyboardClosed
		}
		s.Keyboard.Cancel()

	case CommandType_Sleep:
		hr.advance(cmd.Delay)

	case CommandType_Tick:
		for range cmd.Count() {
			hr.tick(hr.frame())
		}

	case CommandType_Wait:
		timeout := cmd.Delay
		if timeout <= 0 {
			timeout = defaultWait
		}
		wctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return s.Shell.Wait(wctx)

	case CommandType_Print:
		hr.print(s.Snapshot())

	default:
		return fmt.Errorf("unsupported command %s", cmd.Type)
	}
	return nil
}

func (hr *HeadlessRunner) ensureSession(ctx context.Context) (*session.Session, error) {
	if hr.session != nil {
		return hr.session, nil
	}
	s, err := session.New(ctx, hr.cfg, nil)
	if err != nil {
		return nil, err
	}
	hr.session = s
	return s, nil
}

// set applies a Set command to the configuration.
func (hr *HeadlessRunner) set(key, value string) error {
	c := hr.cfg
	var err error

	switch strings.ToLower(key) {
	case "longpress":
		c.Gesture.LongPress, err = parseDuration(value)
	case "multitapinterval":
		c.Gesture.MultiTapInterval, err = parseDuration(value)
	case "multitapdistance":
		c.Gesture.MultiTapDistance, err = strconv.ParseFloat(value, 64)
	case "scrolldecay":
		c.Gesture.ScrollDecay, err = strconv.ParseFloat(value, 64)
	case "scrollgain":
		c.Gesture.ScrollGain, err = strconv.ParseFloat(value, 64)
	case "swipemaxtime":
		c.Swipe.MaxTime, err = parseDuration(value)
	case "swipemindistance":
		c.Swipe.MinDistance, err = strconv.ParseFloat(value, 64)
	case "cellwidth":
		c.Grid.CellWidth, err = strconv.ParseFloat(value, 64)
	case "cellheight":
		c.Grid.CellHeight, err = strconv.ParseFloat(value, 64)
	case "padding":
		c.Grid.Padding, err = strconv.ParseFloat(value, 64)
	case "spacing":
		c.Grid.Spacing, err = strconv.ParseFloat(value, 64)
	case "history":
		c.Grid.History, err = strconv.Atoi(value)
	case "fps":
		var fps int
		if fps, err = strconv.Atoi(value); err == nil && fps < 1 {
			err = fmt.Errorf("fps must be positive, got %d", fps)
		}
		if err == nil {
			hr.fps = fps
		}
		return err
	default:
		return fmt.Errorf("%w %q", ErrUnknownSetting, key)
	}

	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
	return c.Validate()
}

func parseDuration(s string) (config.Duration, error) {
	d, err := ParseDuration(s)
	return config.Duration(d), err
}

// screen returns the screen position of the center of visible cell (x, y).
func (hr *HeadlessRunner) screen(x, y float64) terminal.Vec2 {
	return hr.session.CellCenter(x, y)
}

func (hr *HeadlessRunner) event(pos terminal.Vec2) input.PointerEvent {
	return input.PointerEvent{Button: input.ButtonPrimary, Position: pos, Time: hr.now}
}

func (hr *HeadlessRunner) pointer(kind CommandType, pos terminal.Vec2) error {
	c := hr.session.Controller

	switch kind {
	case CommandType_Down, CommandType_Tap:
		if hr.pressed {
			return ErrPressed
		}
		c.PointerDown(hr.event(pos))
		hr.pressed = true
		hr.dragging = false
		hr.lastPos = pos
		if kind == CommandType_Down {
			return nil
		}
		hr.tick(hr.frame())
		fallthrough

	case CommandType_Up:
		if !hr.pressed {
			return ErrNotPressed
		}
		if hr.dragging {
			c.EndDrag(hr.event(pos))
		}
		c.PointerUp(hr.event(pos))
		hr.pressed = false
		hr.dragging = false

	case CommandType_Move:
		if !hr.pressed {
			return ErrNotPressed
		}
		if !hr.dragging {
			c.BeginDrag(hr.event(hr.lastPos))
			hr.dragging = true
		}
		c.Drag(hr.event(pos))
		hr.lastPos = pos
	}
	return nil
}

func (hr *HeadlessRunner) swipe(cmd *Command) error {
	distance := float64(DefaultSwipeDistance)
	if len(cmd.Args) > 1 {
		d, err := strconv.ParseFloat(cmd.Args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid distance %q: %w", cmd.Args[1], err)
		}
		distance = d
	}

	var dir terminal.Vec2
	switch TokenType(cmd.Args[0]) {
	case TOKEN_LEFT:
		dir = terminal.Vec2{X: -1}
	case TOKEN_RIGHT:
		dir = terminal.Vec2{X: 1}
	case TOKEN_UP:
		dir = terminal.Vec2{Y: -1}
	case TOKEN_DOWN:
		dir = terminal.Vec2{Y: 1}
	default:
		return fmt.Errorf("unknown direction %q", cmd.Args[0])
	}

	b := hr.session.Buffer
	cell := b.CellSize()
	from := hr.screen(float64(b.BufferWidth())/2, float64(b.BufferHeight())/2)
	to := terminal.Vec2{
		X: from.X + dir.X*distance*cell.X,
		Y: from.Y + dir.Y*distance*cell.Y,
	}

	hr.tick(hr.frame(), input.Touch{Phase: input.TouchBegan, Position: from})
	hr.advance(swipeDuration)
	hr.tick(hr.frame(), input.Touch{Phase: input.TouchEnded, Position: to})
	return nil
}

func (hr *HeadlessRunner) frame() time.Duration {
	return time.Second / time.Duration(hr.fps)
}

// advance moves the virtual clock forward by d, one frame at a time.
func (hr *HeadlessRunner) advance(d time.Duration) {
	frame := hr.frame()
	for d > 0 {
		step := min(frame, d)
		hr.tick(step)
		d -= step
	}
}

// tick runs one frame of length dt. Touches are stamped with the new time.
func (hr *HeadlessRunner) tick(dt time.Duration, touches ...input.Touch) {
	hr.now = hr.now.Add(dt)
	hr.stats.Frames++
	for i := range touches {
		touches[i].Time = hr.now
	}
	hr.session.Frame(dt, touches...)
}

func (hr *HeadlessRunner) echo(line string) {
	if hr.styled {
		line = lipgloss.NewStyle().Foreground(theme.CLITableDim()).Render(line)
	}
	hr.logf("%s\n", line)
}

func (hr *HeadlessRunner) print(snap session.Snapshot) {
	if !hr.styled {
		hr.logf("%s", snap)
		return
	}
	hr.logf("%s\n", snap.Render())
}

// GetOutput returns the captured transcript
func (hr *HeadlessRunner) GetOutput() string {
	hr.outputLock.Lock()
	defer hr.outputLock.Unlock()
	return hr.output.String()
}

// WriteOutput writes the transcript to a writer
func (hr *HeadlessRunner) WriteOutput(w io.Writer) error {
	hr.outputLock.Lock()
	defer hr.outputLock.Unlock()
	_, err := io.WriteString(w, hr.output.String())
	return err
}

// logf appends a message to the transcript
func (hr *HeadlessRunner) logf(format string, args ...any) {
	hr.outputLock.Lock()
	defer hr.outputLock.Unlock()
	fmt.Fprintf(&hr.output, format, args...)
}

// ValidateScript checks if a tape script is valid (parses without errors)
func ValidateScript(content string) (bool, []string) {
	commands, errs := ParseFile(content)
	if len(errs) > 0 {
		return false, errs
	}
	if len(commands) == 0 {
		return false, []string{"no commands found in script"}
	}
	return true, nil
}
