package sim

import (
	"time"

	"tracktor.local/steer/internal/config"
)

// Clock measures the elapsed time between frames. It is the only source of
// dt for interactive runs.
type Clock struct {
	now  func() time.Time
	last time.Time
	max  time.Duration
}

// NewClock creates a clock starting now. Gaps longer than MaxFrameDt are
// capped so a stalled terminal does not make the vehicle jump.
func NewClock() *Clock {
	return newClock(time.Now)
}

func newClock(now func() time.Time) *Clock {
	return &Clock{
		now:  now,
		last: now(),
		max:  config.MaxFrameDt,
	}
}

// Tick returns the seconds elapsed since the previous Tick or Reset.
func (c *Clock) Tick() float64 {
	t := c.now()
	elapsed := t.Sub(c.last)
	c.last = t

	if elapsed < 0 {
		return 0
	}
	if elapsed > c.max {
		elapsed = c.max
	}
	return elapsed.Seconds()
}

// Reset restarts measurement from now, discarding the pending interval.
func (c *Clock) Reset() {
	c.last = c.now()
}
