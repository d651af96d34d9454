package core

import (
	"sync"
	"time"
)

const AVG_COUNT uint8 = 30

/**
 * LoadMetrics keeps a rolling average of import job durations along with
 * completion counters. Updated by the worker pool, read by anyone.
 */
type LoadMetrics struct {
	mu            sync.Mutex
	jobAVGCounter uint8
	jobMStimes    [AVG_COUNT]float64
	msAVG         float64
	completed     int64
	failed        int64
}

func NewLoadMetrics() *LoadMetrics {
	return &LoadMetrics{
		jobMStimes: [AVG_COUNT]float64{0},
	}
}

func (m *LoadMetrics) RecordJob(elapsed time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobMS := float64(elapsed) / float64(time.Millisecond)
	m.jobMStimes[m.jobAVGCounter] = jobMS
	if m.jobAVGCounter == AVG_COUNT-1 {
		m.msAVG = 0
		for i := uint8(0); i < AVG_COUNT; i++ {
			m.msAVG += m.jobMStimes[i]
		}
		m.msAVG /= float64(AVG_COUNT)
	}
	m.jobAVGCounter++
	m.jobAVGCounter %= AVG_COUNT

	if failed {
		m.failed++
	} else {
		m.completed++
	}
}

// AverageJobMS returns the rolling average job duration in milliseconds.
// Zero until AVG_COUNT jobs have completed.
func (m *LoadMetrics) AverageJobMS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.msAVG
}

func (m *LoadMetrics) Completed() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completed
}

func (m *LoadMetrics) Failed() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failed
}
