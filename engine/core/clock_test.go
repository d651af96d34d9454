package core

import (
	"testing"
	"time"
)

func TestClockMeasuresElapsed(t *testing.T) {
	c := NewClock()

	c.Update()
	if got := c.Elapsed(); got != 0 {
		t.Errorf("non-started clock reads %v, want 0", got)
	}

	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	first := c.Elapsed()
	if first <= 0 {
		t.Fatalf("Elapsed() = %v after sleep, want > 0", first)
	}

	c.Stop()
	c.Update()
	if got := c.Elapsed(); got != first {
		t.Errorf("stopped clock advanced from %v to %v", first, got)
	}

	c.Start()
	if got := c.Elapsed(); got != 0 {
		t.Errorf("Start did not reset elapsed, got %v", got)
	}
}
