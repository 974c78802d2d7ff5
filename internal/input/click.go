package input

import (
	"time"

	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
)

// clickCounter counts consecutive presses at roughly the same place,
// cycling 1, 2, 3, 1.
type clickCounter struct {
	interval time.Duration
	distance float64

	count   int
	last    time.Time
	lastPos terminal.Vec2
}

// press records a press and returns its click count.
func (c *clickCounter) press(pos terminal.Vec2, at time.Time) int {
	if c.count > 0 &&
		at.Sub(c.last) <= c.interval &&
		pos.Distance(c.lastPos) <= c.distance {
		c.count = c.count%3 + 1
	} else {
		c.count = 1
	}
	c.last = at
	c.lastPos = pos
	return c.count
}

func (c *clickCounter) reset() {
	c.count = 0
	c.last = time.Time{}
}
