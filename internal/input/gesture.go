package input

import (
	"errors"
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/termtouch/internal/keyboard"
	"github.com/Gaurav-Gosain/termtouch/internal/notify"
	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
)

var (
	// ErrAttached is returned by Attach on an attached controller.
	ErrAttached = errors.New("controller already attached")
	// ErrNotAttached is returned by Detach on a detached controller.
	ErrNotAttached = errors.New("controller not attached")
	// ErrNoFeed is returned by Attach when a collaborator exposes no event feed.
	ErrNoFeed = errors.New("collaborator has no event feed")
)

// Config holds the gesture thresholds.
type Config struct {
	// LongPress is how long a press must be held to select a word.
	LongPress time.Duration
	// MultiTapInterval is the longest gap between presses of a multi-tap.
	MultiTapInterval time.Duration
	// MultiTapDistance is the farthest a multi-tap press may land from the
	// previous one, in screen units.
	MultiTapDistance float64
	// ScrollDecay is the inertial deceleration in rows per second squared.
	ScrollDecay float64
	// ScrollGain converts dragged rows into rows per second of velocity.
	ScrollGain float64

	Swipe SwipeConfig
}

// DefaultConfig returns the default gesture thresholds.
func DefaultConfig() Config {
	return Config{
		LongPress:        500 * time.Millisecond,
		MultiTapInterval: 500 * time.Millisecond,
		MultiTapDistance: 2,
		ScrollDecay:      100,
		ScrollGain:       10,
		Swipe:            DefaultSwipeConfig(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.LongPress <= 0 {
		c.LongPress = def.LongPress
	}
	if c.MultiTapInterval <= 0 {
		c.MultiTapInterval = def.MultiTapInterval
	}
	if c.MultiTapDistance <= 0 {
		c.MultiTapDistance = def.MultiTapDistance
	}
	if c.ScrollDecay <= 0 {
		c.ScrollDecay = def.ScrollDecay
	}
	if c.ScrollGain <= 0 {
		c.ScrollGain = def.ScrollGain
	}
	return c
}

// State is the gesture state of the controller.
type State int

const (
	// StateIdle means no pointer is down.
	StateIdle State = iota
	// StateDown means the pointer is down and has not moved.
	StateDown
	// StateDragging means the pointer moved without scrolling or selecting.
	StateDragging
	// StateScrolling means the pointer drags the view.
	StateScrolling
	// StateSelecting means a long press started a selection.
	StateSelecting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDown:
		return "down"
	case StateDragging:
		return "dragging"
	case StateScrolling:
		return "scrolling"
	case StateSelecting:
		return "selecting"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// PointerEvent is a pointer or touch contact in screen units.
type PointerEvent struct {
	Button   Button
	Position terminal.Vec2
	Time     time.Time
}

// Controller turns pointer and touch input into grid, terminal and keyboard
// actions. All methods must be called from the host loop goroutine.
type Controller struct {
	cfg    Config
	grid   terminal.Grid
	term   terminal.Terminal
	kb     keyboard.Keyboard
	swiper *Swiper
	clicks clickCounter

	tracker  *SelectionTracker
	subs     []*notify.Subscription
	attached bool

	state     State
	pressed   bool
	dragged   bool
	downPos   terminal.Vec2
	downPoint terminal.Point
	downTime  time.Time
	count     int
	held      time.Duration
	lastPos   terminal.Vec2
	lastTime  time.Time
	dragRange terminal.Range
	wordRange terminal.Range
	anchors   gestureAnchors

	scroll    scroller
	executing bool
}

// gestureAnchors hold the in-progress gesture's grid ranges in reflow-safe
// form.
type gestureAnchors struct {
	down RangeInfo
	word RangeInfo
	drag RangeInfo
}

// NewController creates a detached controller. Zero config fields take
// their defaults.
func NewController(cfg Config, grid terminal.Grid, term terminal.Terminal, kb keyboard.Keyboard) *Controller {
	cfg = cfg.withDefaults()
	return &Controller{
		cfg:    cfg,
		grid:   grid,
		term:   term,
		kb:     kb,
		swiper: NewSwiper(cfg.Swipe),
		clicks: clickCounter{
			interval: cfg.MultiTapInterval,
			distance: cfg.MultiTapDistance,
		},
		downPoint: terminal.Invalid,
		dragRange: terminal.Empty,
		wordRange: terminal.Empty,
	}
}

func (c *Controller) State() State { return c.state }
func (c *Controller) ClickCount() int { return c.count }
func (c *Controller) Tracker() *SelectionTracker { return c.tracker }
func (c *Controller) Swiper() *Swiper { return c.swiper }
func (c *Controller) Config() Config { return c.cfg }
func (c *Controller) Attached() bool { return c.attached }
func (c *Controller) Executing() bool { return c.executing }
func (c *Controller) DownPoint() terminal.Point { return c.downPoint }
func (c *Controller) Velocity() float64 { return c.scroll.velocity }
func (c *Controller) Held() time.Duration { return c.held }

// Scrolling reports whether inertial scrolling is in progress.
func (c *Controller) Scrolling() bool { return c.scroll.active }

// Attach subscribes the controller to its collaborators. If any step fails
// every subscription made so far is released.
func (c *Controller) Attach() (err error) {
	if c.attached {
		return ErrAttached
	}

	c.tracker = NewSelectionTracker(c.grid)
	defer func() {
		if err != nil {
			c.release()
		}
	}()

	if err := subscribe(c, "terminal executed", c.term.Executed(), c.onExecuted); err != nil {
		return err
	}
	if err := subscribe(c, "terminal property", c.term.PropertyChanged(), c.onTerminalProperty); err != nil {
		return err
	}
	if err := subscribe(c, "grid property", c.grid.PropertyChanged(), c.onGridProperty); err != nil {
		return err
	}
	if err := subscribe(c, "swipe", c.swiper.Swiped(), c.onSwipe); err != nil {
		return err
	}
	if err := subscribe(c, "keyboard", c.kb.Events(), c.onKeyboard); err != nil {
		return err
	}

	c.attached = true
	logger.Debug("controller attached")
	return nil
}

// subscribe registers fn on feed and records the subscription.
func subscribe[T any](c *Controller, name string, feed *notify.Feed[T], fn func(T)) error {
	if feed == nil {
		return fmt.Errorf("attach %s: %w", name, ErrNoFeed)
	}
	c.subs = append(c.subs, feed.Subscribe(fn))
	return nil
}

// Detach releases every subscription made by Attach and resets the gesture
// state.
func (c *Controller) Detach() error {
	if !c.attached {
		return ErrNotAttached
	}
	c.release()
	logger.Debug("controller detached")
	return nil
}

func (c *Controller) release() {
	for _, sub := range c.subs {
		sub.Cancel()
	}
	c.subs = nil
	if c.tracker != nil {
		c.tracker.Close()
		c.tracker = nil
	}

	if c.state == StateSelecting {
		c.grid.SetSelectingRange(terminal.Empty)
	}
	c.stopScroll()
	c.clicks.reset()
	c.resetGesture()
	c.count = 0
	c.executing = false
	c.attached = false
}

func (c *Controller) resetGesture() {
	c.setState(StateIdle)
	c.pressed = false
	c.dragged = false
	c.held = 0
	c.downPoint = terminal.Invalid
	c.dragRange = terminal.Empty
	c.wordRange = terminal.Empty
	c.anchors = gestureAnchors{}
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	logger.Debug("gesture state", "from", c.state, "to", s)
	c.state = s
}

// PointerDown starts a gesture. Any unfinished gesture is abandoned.
func (c *Controller) PointerDown(ev PointerEvent) {
	if ev.Button != ButtonPrimary {
		return
	}
	if c.state == StateSelecting {
		c.grid.SetSelectingRange(terminal.Empty)
	}

	p := c.grid.ScreenToPoint(ev.Position)
	c.count = c.clicks.press(ev.Position, ev.Time)
	c.grid.Focus()

	c.pressed = true
	c.dragged = false
	c.downPos = ev.Position
	c.downPoint = p
	c.downTime = ev.Time
	c.held = 0
	c.lastPos = ev.Position
	c.lastTime = ev.Time
	c.wordRange = terminal.Empty
	c.dragRange = terminal.Empty
	if p.IsValid() {
		c.dragRange = terminal.Range{Begin: p, End: p.Next()}
		c.anchors.down = RangeToObject(c.grid, c.dragRange)
		c.anchors.drag = c.anchors.down
	}

	if !c.kb.IsOpen() && c.scroll.active {
		c.stopScroll()
		c.downPoint = terminal.Invalid
	}
	c.setState(StateDown)
}

// Update advances time-driven behavior by dt: long-press detection and
// inertial scrolling. touches are the touch samples of this frame.
func (c *Controller) Update(dt time.Duration, touches ...Touch) {
	c.swiper.Tick(touches)

	switch c.state {
	case StateDown, StateDragging:
		c.held += dt
		if c.count == 1 && c.held >= c.cfg.LongPress && c.downPoint.IsValid() {
			c.beginLongPress()
		}
	}

	if !c.pressed && c.scroll.active {
		c.DoScroll(dt)
	}
}

func (c *Controller) beginLongPress() {
	c.wordRange = c.grid.WordRange(c.downPoint)
	if !c.wordRange.IsEmpty() {
		c.anchors.word = RangeToObject(c.grid, c.wordRange)
	}
	c.grid.SetSelectingRange(c.wordRange)
	c.stopScroll()
	c.setState(StateSelecting)
	logger.Debug("long press", "point", c.downPoint, "word", c.wordRange)
}

// BeginDrag is called once the pointer starts moving while down.
func (c *Controller) BeginDrag(ev PointerEvent) {
	if ev.Button != ButtonPrimary || !c.pressed {
		return
	}
	c.dragged = true

	switch {
	case c.state == StateSelecting:
		c.extendSelection(ev.Position)
	case c.state == StateDown && !c.kb.IsOpen() && c.count == 1 && c.held < c.cfg.LongPress:
		c.scroll.pos = float64(c.grid.VisibleIndex())
		c.scroll.velocity = 0
		c.scroll.active = true
		c.setState(StateScrolling)
		c.grid.SetScrolling(true)
	default:
		c.setState(StateDragging)
	}

	c.lastPos = ev.Position
	c.lastTime = ev.Time
}

// Drag is called for every pointer movement after BeginDrag.
func (c *Controller) Drag(ev PointerEvent) {
	if ev.Button != ButtonPrimary || !c.pressed {
		return
	}

	switch c.state {
	case StateScrolling:
		rowHeight := c.grid.CellSize().Y
		if rowHeight <= 0 {
			rowHeight = 1
		}
		dy := ev.Position.Y - c.lastPos.Y
		c.scroll.velocity += -dy / rowHeight * c.cfg.ScrollGain

		dt := max(ev.Time.Sub(c.lastTime), 0)
		c.DoScroll(dt)

	case StateSelecting:
		c.extendSelection(ev.Position)
	}

	c.lastPos = ev.Position
	c.lastTime = ev.Time
}

func (c *Controller) extendSelection(pos terminal.Vec2) {
	p := c.grid.ScreenToPoint(pos)
	if !p.IsValid() || !c.downPoint.IsValid() {
		return
	}
	lo := terminal.MinPoint(c.downPoint, p)
	hi := terminal.MaxPoint(c.downPoint, p)
	c.dragRange = terminal.Range{Begin: lo, End: hi.Next()}
	c.anchors.drag = RangeToObject(c.grid, c.dragRange)
	c.grid.SetSelectingRange(c.wordRange.Union(c.dragRange))
}

// onGridProperty re-resolves the held gesture's points after a reflow so a
// long press in progress keeps covering the same text.
func (c *Controller) onGridProperty(p terminal.Property) {
	if p != terminal.PropertyBufferWidth && p != terminal.PropertyBufferHeight {
		return
	}
	if !c.pressed || !c.downPoint.IsValid() {
		return
	}

	c.downPoint = ObjectToRange(c.grid, c.anchors.down).Begin
	if !c.wordRange.IsEmpty() {
		c.wordRange = ObjectToRange(c.grid, c.anchors.word)
	}
	if !c.dragRange.IsEmpty() {
		c.dragRange = ObjectToRange(c.grid, c.anchors.drag)
	}
	if c.state == StateSelecting {
		c.grid.SetSelectingRange(c.wordRange.Union(c.dragRange))
		logger.Debug("selecting range reflowed", "range", c.grid.SelectingRange())
	}
}

// EndDrag is called when a drag finishes. A selection in progress is
// committed; a scroll keeps its inertia.
func (c *Controller) EndDrag(ev PointerEvent) {
	if ev.Button != ButtonPrimary || !c.pressed {
		return
	}

	switch c.state {
	case StateSelecting:
		c.commit()
		c.setState(StateDragging)
	case StateScrolling:
		c.downPoint = terminal.Invalid
		c.setState(StateDragging)
	}
}

// commit replaces the grid's selections with the selecting range.
func (c *Controller) commit() {
	r := c.grid.SelectingRange()
	if !r.IsEmpty() {
		sel := c.grid.Selections()
		sel.Clear()
		sel.Add(r)
		logger.Debug("selection committed", "range", r)
	}
	c.grid.SetSelectingRange(terminal.Empty)
	c.downPoint = terminal.Invalid
}

// PointerUp ends the gesture. A tap with the keyboard closed commits a long
// press, clears an existing selection or opens the keyboard.
func (c *Controller) PointerUp(ev PointerEvent) {
	if ev.Button != ButtonPrimary || !c.pressed {
		return
	}

	up := c.grid.ScreenToPoint(ev.Position)
	tap := !c.dragged && up.IsValid() && up == c.downPoint && !c.kb.IsOpen()

	switch {
	case tap && c.count == 1:
		switch {
		case c.state == StateSelecting:
			c.commit()
		case c.grid.Selections().Len() > 0:
			c.grid.Selections().Clear()
		case !c.executing:
			c.grid.ScrollToCursor()
			c.kb.Open(c.term.Command())
		}
	case c.state == StateSelecting:
		c.commit()
	}

	c.pressed = false
	c.dragged = false
	c.held = 0
	c.setState(StateIdle)
}

func (c *Controller) onKeyboard(e keyboard.Event) {
	switch e.Kind {
	case keyboard.Opened, keyboard.Changed:
		c.term.SetCommand(e.Text)
		c.term.SetCommandSelection(e.Selection)
	case keyboard.Done:
		c.term.SetCommand(e.Text)
		c.executing = true
		c.term.Execute()
	case keyboard.Canceled:
		c.scroll.pos = float64(c.grid.VisibleIndex())
	}
}

func (c *Controller) onExecuted(terminal.ExecutedEvent) {
	c.executing = false
}

func (c *Controller) onTerminalProperty(p terminal.Property) {
	if p != terminal.PropertyCommand || !c.kb.IsOpen() {
		return
	}
	if cmd := c.term.Command(); cmd != c.kb.Text() {
		c.kb.SetText(cmd)
	}
}

func (c *Controller) onSwipe(s Swipe) {
	if !c.kb.IsOpen() {
		return
	}
	switch s.Direction {
	case SwipeLeft:
		c.term.PreviousCompletion()
	case SwipeRight:
		c.term.NextCompletion()
	case SwipeUp:
		c.term.PreviousHistory()
	case SwipeDown:
		c.term.NextHistory()
	}
}
