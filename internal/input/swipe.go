package input

import (
	"time"

	"github.com/Gaurav-Gosain/termtouch/internal/notify"
	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
)

// TouchPhase is the lifecycle stage of a touch sample.
type TouchPhase int

const (
	TouchBegan TouchPhase = iota
	TouchMoved
	TouchStationary
	TouchEnded
	TouchCanceled
)

func (p TouchPhase) String() string {
	switch p {
	case TouchBegan:
		return "began"
	case TouchMoved:
		return "moved"
	case TouchStationary:
		return "stationary"
	case TouchEnded:
		return "ended"
	case TouchCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Touch is one touch point sampled during a frame.
type Touch struct {
	Phase    TouchPhase
	Position terminal.Vec2
	Time     time.Time
}

// Direction is the direction of a swipe in screen space.
type Direction int

const (
	SwipeLeft Direction = iota
	SwipeRight
	SwipeUp
	SwipeDown
)

func (d Direction) String() string {
	switch d {
	case SwipeLeft:
		return "left"
	case SwipeRight:
		return "right"
	case SwipeUp:
		return "up"
	case SwipeDown:
		return "down"
	default:
		return "unknown"
	}
}

// Swipe is published once per recognized gesture.
type Swipe struct {
	Direction Direction
	Start     terminal.Vec2
	End       terminal.Vec2
}

// SwipeConfig holds the recognition thresholds.
type SwipeConfig struct {
	// MaxTime is the longest a touch may last and still count as a swipe.
	MaxTime time.Duration
	// MinDistance is the displacement a swipe must exceed.
	MinDistance float64
}

// DefaultSwipeConfig returns the default thresholds.
func DefaultSwipeConfig() SwipeConfig {
	return SwipeConfig{
		MaxTime:     time.Second,
		MinDistance: 2,
	}
}

// Swiper recognizes single-finger swipes from per-frame touch samples.
type Swiper struct {
	cfg SwipeConfig

	tracking bool
	start    time.Time
	startPos terminal.Vec2

	swiped notify.Feed[Swipe]
}

// NewSwiper creates a detector. Zero thresholds take their defaults.
func NewSwiper(cfg SwipeConfig) *Swiper {
	def := DefaultSwipeConfig()
	if cfg.MaxTime <= 0 {
		cfg.MaxTime = def.MaxTime
	}
	if cfg.MinDistance <= 0 {
		cfg.MinDistance = def.MinDistance
	}
	return &Swiper{cfg: cfg}
}

// Swiped returns the feed of recognized swipes.
func (s *Swiper) Swiped() *notify.Feed[Swipe] {
	return &s.swiped
}

// Config returns the active thresholds.
func (s *Swiper) Config() SwipeConfig {
	return s.cfg
}

// Tick consumes the touches of one frame. Only the first touch is sampled.
func (s *Swiper) Tick(touches []Touch) {
	if len(touches) == 0 {
		return
	}
	t := touches[0]

	switch t.Phase {
	case TouchBegan:
		s.tracking = true
		s.start = t.Time
		s.startPos = t.Position

	case TouchEnded:
		if !s.tracking {
			return
		}
		s.tracking = false

		if t.Time.Sub(s.start) >= s.cfg.MaxTime {
			return
		}
		delta := t.Position.Sub(s.startPos)
		if delta.Len() <= s.cfg.MinDistance {
			return
		}
		dir, ok := Classify(delta)
		if !ok {
			return
		}
		logger.Debug("swipe", "direction", dir, "dx", delta.X, "dy", delta.Y)
		s.swiped.Emit(Swipe{Direction: dir, Start: s.startPos, End: t.Position})

	case TouchCanceled:
		s.tracking = false
	}
}

// Classify returns the dominant direction of a displacement in y-down screen
// coordinates. Equal horizontal and vertical magnitudes have no direction.
func Classify(delta terminal.Vec2) (Direction, bool) {
	ax, ay := abs(delta.X), abs(delta.Y)
	switch {
	case ax > ay && delta.X > 0:
		return SwipeRight, true
	case ax > ay:
		return SwipeLeft, true
	case ay > ax && delta.Y > 0:
		return SwipeDown, true
	case ay > ax:
		return SwipeUp, true
	}
	return 0, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
