package core

import "time"

// Clock measures the pipeline's wall-clock uptime. The driving loop calls
// Update once per tick; readers see the value as of the latest tick.
type Clock struct {
	startTime time.Time
	elapsed   time.Duration
}

func NewClock() *Clock {
	return &Clock{}
}

// Start resets the elapsed reading and begins measuring.
func (c *Clock) Start() {
	c.startTime = time.Now()
	c.elapsed = 0
}

// Update refreshes the elapsed reading. Has no effect on stopped clocks.
func (c *Clock) Update() {
	if !c.startTime.IsZero() {
		c.elapsed = time.Since(c.startTime)
	}
}

// Stop freezes the clock at its current reading.
func (c *Clock) Stop() {
	c.startTime = time.Time{}
}

// Elapsed returns the time measured between Start and the latest Update.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}
