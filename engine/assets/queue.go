package assets

import (
	"github.com/spaghettifunk/atlas/engine/containers"
)

// Processed is one unit of work in flight between a background import job
// and the driving thread: decoded intermediate data (or the error that
// prevented it), the target slot, the tracker to notify and the slot
// generation observed at load time. A result whose generation no longer
// matches the slot arrived after the slot was swept and reused; it is
// retired instead of committed.
type Processed[D any] struct {
	Data       D
	Err        error
	HandleID   uint32
	Name       string
	Generation uint32
	// Tracker may be nil for untracked work such as hot reloads.
	Tracker Tracker
}

// ProcessingState is what a finalize function returns for one item:
// either the finished asset, or updated intermediate data that must go
// through another Process pass. Construct with Loaded or Loading.
type ProcessingState[D, A any] struct {
	loaded bool
	asset  A
	data   D
}

// Loaded signals that the asset is finished.
func Loaded[D, A any](asset A) ProcessingState[D, A] {
	return ProcessingState[D, A]{loaded: true, asset: asset}
}

// Loading signals that more work remains; the item is re-queued with the
// given partial data and finalized again on a later Process call.
func Loading[D, A any](data D) ProcessingState[D, A] {
	return ProcessingState[D, A]{data: data}
}

// ProcessingQueue hands finished import work from any number of worker
// goroutines to the single driving thread. Pushing during a drain is
// safe; such items are seen by the next drain.
type ProcessingQueue[D any] struct {
	queue *containers.Queue[Processed[D]]
}

func NewProcessingQueue[D any]() *ProcessingQueue[D] {
	return &ProcessingQueue[D]{queue: containers.NewQueue[Processed[D]]()}
}

// Push enqueues a processed entry. Safe to call from any goroutine.
func (pq *ProcessingQueue[D]) Push(p Processed[D]) {
	pq.queue.Push(p)
}

func (pq *ProcessingQueue[D]) Len() int {
	return pq.queue.Len()
}

func (pq *ProcessingQueue[D]) drain() []Processed[D] {
	return pq.queue.Drain()
}
