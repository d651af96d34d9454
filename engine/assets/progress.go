package assets

import (
	"sync"
	"sync/atomic"

	"github.com/spaghettifunk/atlas/engine/core"
	"golang.org/x/exp/slices"
)

type Completion int

const (
	// At least one load is still outstanding.
	CompletionLoading Completion = iota
	// All loads resolved and at least one of them failed.
	CompletionFailed
	// All loads resolved successfully.
	CompletionComplete
)

func (c Completion) String() string {
	switch c {
	case CompletionLoading:
		return "loading"
	case CompletionFailed:
		return "failed"
	case CompletionComplete:
		return "complete"
	}
	return "unknown"
}

// Tracker is notified of a single load's outcome. It is consumed exactly
// once: either Success or Fail, never both, never twice.
type Tracker interface {
	Success()
	Fail(handleID uint32, typeName, name string, err error)
}

// Progress aggregates the outcome of many loads. Implementations include
// the no-op NoProgress and the counting ProgressCounter.
type Progress interface {
	// AddAssets registers n expected loads.
	AddAssets(n int)
	// CreateTracker returns a one-shot tracker for a single load.
	CreateTracker() Tracker
}

// NoProgress ignores all accounting. Failures are still logged so they
// are never silently dropped.
type NoProgress struct{}

func (NoProgress) AddAssets(int) {}

func (NoProgress) CreateTracker() Tracker { return nopTracker{} }

type nopTracker struct{}

func (nopTracker) Success() {}

func (nopTracker) Fail(handleID uint32, typeName, name string, err error) {
	core.LogError("failed to load %s %q (handle %d): %s", typeName, name, handleID, err.Error())
}

/**
 * ProgressCounter counts outstanding, finished and failed loads across
 * any number of trackers resolving concurrently on worker goroutines.
 * Counters are independently atomic; Complete() reads a snapshot that may
 * be briefly stale but never torn.
 */
type ProgressCounter struct {
	numAssets  atomic.Int64
	numLoading atomic.Int64
	numFailed  atomic.Int64

	mu   sync.Mutex
	errs []LoadError
}

func NewProgressCounter() *ProgressCounter {
	return &ProgressCounter{}
}

func (p *ProgressCounter) AddAssets(n int) {
	p.numAssets.Add(int64(n))
	p.numLoading.Add(int64(n))
}

func (p *ProgressCounter) CreateTracker() Tracker {
	return &counterTracker{counter: p}
}

// Complete reports the aggregate state: CompletionComplete iff nothing is
// loading and nothing failed, CompletionFailed iff anything failed, else
// CompletionLoading.
func (p *ProgressCounter) Complete() Completion {
	switch {
	case p.numFailed.Load() > 0:
		return CompletionFailed
	case p.numLoading.Load() > 0:
		return CompletionLoading
	default:
		return CompletionComplete
	}
}

func (p *ProgressCounter) IsComplete() bool {
	return p.Complete() == CompletionComplete
}

func (p *ProgressCounter) NumAssets() int {
	return int(p.numAssets.Load())
}

func (p *ProgressCounter) NumLoading() int {
	return int(p.numLoading.Load())
}

func (p *ProgressCounter) NumFailed() int {
	return int(p.numFailed.Load())
}

func (p *ProgressCounter) NumFinished() int {
	return int(p.numAssets.Load() - p.numLoading.Load())
}

// Errors returns a copy of the captured load errors.
func (p *ProgressCounter) Errors() []LoadError {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.errs)
}

type counterTracker struct {
	counter *ProgressCounter
	done    atomic.Bool
}

func (t *counterTracker) Success() {
	if t.done.Swap(true) {
		core.LogWarn("tracker resolved more than once, ignoring")
		return
	}
	t.counter.numLoading.Add(-1)
}

func (t *counterTracker) Fail(handleID uint32, typeName, name string, err error) {
	if t.done.Swap(true) {
		core.LogWarn("tracker resolved more than once, ignoring")
		return
	}
	t.counter.mu.Lock()
	t.counter.errs = append(t.counter.errs, LoadError{
		Name:     name,
		TypeName: typeName,
		HandleID: handleID,
		Err:      err,
	})
	t.counter.mu.Unlock()
	t.counter.numFailed.Add(1)
	t.counter.numLoading.Add(-1)
}
