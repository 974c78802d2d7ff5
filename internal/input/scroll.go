package input

import "time"

// scroller is the inertial scroll state. Position and velocity are in rows
// and rows per second; positive values move toward newer output.
type scroller struct {
	pos      float64
	velocity float64
	active   bool
}

// decay moves v toward zero by amount without changing its sign.
func decay(v, amount float64) float64 {
	switch {
	case v > 0:
		return max(v-amount, 0)
	case v < 0:
		return min(v+amount, 0)
	}
	return 0
}

// DoScroll advances the inertial scroll by dt.
func (c *Controller) DoScroll(dt time.Duration) {
	s := &c.scroll
	s.pos += dt.Seconds() * s.velocity

	lo := float64(c.grid.MinVisibleIndex())
	hi := float64(c.grid.MaxVisibleIndex())
	switch {
	case s.pos < lo:
		s.pos = lo
		s.velocity = 0
	case s.pos > hi:
		s.pos = hi
		s.velocity = 0
	default:
		s.velocity = decay(s.velocity, c.cfg.ScrollDecay*dt.Seconds())
	}

	held := c.state == StateScrolling
	c.grid.SetVisibleIndex(int(s.pos))
	c.grid.SetScrolling(s.velocity != 0 || held)

	if s.velocity == 0 && !held {
		s.active = false
	}
}

func (c *Controller) stopScroll() {
	c.scroll.velocity = 0
	c.scroll.active = false
	c.grid.SetScrolling(false)
}
