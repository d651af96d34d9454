package assets

import (
	"reflect"
	"sync"

	"github.com/spaghettifunk/atlas/engine/core"
)

// slot is a versioned cell for one asset instance. version only ever
// increases while the same handle owns the slot; it resets when the slot
// is reclaimed for reuse. generation counts reclaims instead, so results
// stamped for a previous occupant can never commit into the next one.
type slot[A any] struct {
	asset      A
	present    bool
	version    uint32
	generation uint32
	ref        *handleRef
}

/**
 * AssetStorage is the authoritative, versioned map from handles to live
 * asset values. D is the intermediate data type produced by formats, A is
 * the finished asset type.
 *
 * Background jobs never touch slots directly; they push onto the owned
 * ProcessingQueue and a single driving goroutine merges the queue into
 * the slots via Process. Get/GetWithVersion may be called from any
 * goroutine.
 */
type AssetStorage[D, A any] struct {
	mu       sync.RWMutex
	slots    []slot[A]
	free     []uint32
	retired  []A
	queue    *ProcessingQueue[D]
	typeName string
	bus      *core.EventBus
}

func NewAssetStorage[D, A any]() *AssetStorage[D, A] {
	return &AssetStorage[D, A]{
		queue:    NewProcessingQueue[D](),
		typeName: reflect.TypeFor[A]().String(),
	}
}

// Queue returns the processing queue background jobs push into.
func (s *AssetStorage[D, A]) Queue() *ProcessingQueue[D] {
	return s.queue
}

// TypeName is the asset type's name, used in error reports.
func (s *AssetStorage[D, A]) TypeName() string {
	return s.typeName
}

// SetEventBus makes the storage fire a load-failed event for every
// processing failure, in addition to notifying the item's tracker.
func (s *AssetStorage[D, A]) SetEventBus(bus *core.EventBus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bus = bus
}

// Allocate reserves a new, empty slot and returns the owning handle.
// Cheap and lock-bounded; never does I/O.
func (s *AssetStorage[D, A]) Allocate() Handle[A] {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id uint32
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot[A]{})
		id = uint32(len(s.slots) - 1)
	}

	ref := &handleRef{}
	ref.strong.Store(1)
	// The generation was bumped by the sweep that freed the slot; it must
	// survive the reset so in-flight results for the old occupant stay out.
	s.slots[id] = slot[A]{ref: ref, generation: s.slots[id].generation}

	return Handle[A]{id: id, ref: ref}
}

// Get returns the asset for the handle, if it has been populated.
func (s *AssetStorage[D, A]) Get(h Handle[A]) (A, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl, ok := s.liveSlot(h)
	if !ok || !sl.present {
		var zero A
		return zero, false
	}
	return sl.asset, true
}

// GetWithVersion additionally returns the slot version, which increments
// on every successful finalize. Consumers caching derived state can
// compare versions to detect hot reloads cheaply.
func (s *AssetStorage[D, A]) GetWithVersion(h Handle[A]) (A, uint32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl, ok := s.liveSlot(h)
	if !ok || !sl.present {
		var zero A
		return zero, 0, false
	}
	return sl.asset, sl.version, true
}

// TryGet is Get with a reason: core.ErrDeadHandle when the slot was
// reclaimed, core.ErrNotLoaded when the load is pending or failed.
func (s *AssetStorage[D, A]) TryGet(h Handle[A]) (A, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero A
	sl, ok := s.liveSlot(h)
	if !ok {
		return zero, core.ErrDeadHandle
	}
	if !sl.present {
		return zero, core.ErrNotLoaded
	}
	return sl.asset, nil
}

// CurrentVersion returns the slot's version counter, zero for empty or
// dead slots.
func (s *AssetStorage[D, A]) CurrentVersion(h Handle[A]) uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sl, ok := s.liveSlot(h); ok {
		return sl.version
	}
	return 0
}

// Len reports how many slots currently hold a populated asset.
func (s *AssetStorage[D, A]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for i := range s.slots {
		if s.slots[i].present {
			count++
		}
	}
	return count
}

// slotGeneration returns the slot's reclaim generation, stamped onto
// queue entries so stale results can be told apart from current ones.
func (s *AssetStorage[D, A]) slotGeneration(h Handle[A]) uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sl, ok := s.liveSlot(h); ok {
		return sl.generation
	}
	return 0
}

// liveSlot resolves a handle to its slot, guarding against reclaimed and
// foreign handles. Callers must hold at least the read lock.
func (s *AssetStorage[D, A]) liveSlot(h Handle[A]) (*slot[A], bool) {
	if h.ref == nil || int(h.id) >= len(s.slots) {
		return nil, false
	}
	sl := &s.slots[h.id]
	if sl.ref != h.ref {
		return nil, false
	}
	return sl, true
}

/**
 * Process drains the queue snapshot and applies finalize to every item.
 * Must be called from a single driving goroutine; producers may keep
 * pushing concurrently. Per-item failures notify the item's tracker and
 * never abort the rest of the batch.
 *
 * finalize outcomes:
 *   - Loaded(asset): the asset is written to the item's slot, the version
 *     is bumped, the tracker is notified of success.
 *   - Loading(data): the item re-enters the queue with the updated data
 *     and is finalized again on a later call.
 *   - error: the tracker is notified of failure and the item is dropped;
 *     the slot is left untouched.
 */
func (s *AssetStorage[D, A]) Process(finalize func(D) (ProcessingState[D, A], error)) {
	for _, p := range s.queue.drain() {
		if p.Err != nil {
			s.notifyFail(p, p.Err)
			continue
		}

		state, err := finalize(p.Data)
		if err != nil {
			s.notifyFail(p, err)
			continue
		}
		if !state.loaded {
			// Partial completion: back onto the queue, same handle,
			// tracker and version, updated data.
			p.Data = state.data
			s.queue.Push(p)
			continue
		}

		s.commit(p, state.asset)
	}
}

// commit writes a finished asset into its slot. If every handle clone was
// released while the load was in flight there is no consumer left; the
// value is retired for cleanup and the tracker still resolves, since the
// load itself did not fail. The same applies when the slot was swept and
// reallocated in the meantime: the entry's generation no longer matches
// and the value must not reach the slot's new occupant.
func (s *AssetStorage[D, A]) commit(p Processed[D], asset A) {
	s.mu.Lock()

	if int(p.HandleID) >= len(s.slots) {
		s.mu.Unlock()
		core.LogError("processed entry for %q targets unknown slot %d, dropping", p.Name, p.HandleID)
		return
	}

	sl := &s.slots[p.HandleID]
	if sl.ref == nil || sl.generation != p.Generation || sl.ref.strong.Load() <= 0 {
		// Routine reclaim, not an error: the asset arrived after all
		// handles were dropped. Retire it so cleanup still runs.
		s.retired = append(s.retired, asset)
		s.mu.Unlock()
		if p.Tracker != nil {
			p.Tracker.Success()
		}
		return
	}

	if sl.present {
		// Hot reload: the old value is not dropped here. It stays on the
		// retired list until the next ProcessCustomDrop so a consumer
		// still reading it this tick is unaffected.
		s.retired = append(s.retired, sl.asset)
	}
	sl.asset = asset
	sl.present = true
	sl.version++
	s.mu.Unlock()

	if p.Tracker != nil {
		p.Tracker.Success()
	}
}

func (s *AssetStorage[D, A]) notifyFail(p Processed[D], err error) {
	s.mu.RLock()
	bus := s.bus
	s.mu.RUnlock()
	if bus != nil {
		bus.Fire(core.EventContext{
			Code:     core.EVENT_CODE_LOAD_FAILED,
			Name:     p.Name,
			HandleID: p.HandleID,
			Err:      err,
		})
	}

	if p.Tracker != nil {
		p.Tracker.Fail(p.HandleID, s.typeName, p.Name, err)
		return
	}
	core.LogError("failed to process %s %q (handle %d): %s", s.typeName, p.Name, p.HandleID, err.Error())
}

/**
 * ProcessCustomDrop sweeps the storage: slots whose handle strong count
 * reached zero are reclaimed for reuse, and values retired by hot reloads
 * or late arrivals are released. drop is invoked once per released asset
 * and is the seam for external cleanup such as freeing a GPU resource;
 * it may be nil.
 *
 * Like Process, this must be called from the single driving goroutine.
 */
func (s *AssetStorage[D, A]) ProcessCustomDrop(drop func(A)) {
	s.mu.Lock()
	released := s.retired
	s.retired = nil

	for i := range s.slots {
		sl := &s.slots[i]
		if sl.ref == nil || sl.ref.strong.Load() > 0 {
			continue
		}
		if sl.present {
			released = append(released, sl.asset)
		}
		// Bumping the generation here is what invalidates in-flight
		// results still addressed to this slot.
		s.slots[i] = slot[A]{generation: sl.generation + 1}
		s.free = append(s.free, uint32(i))
	}
	s.mu.Unlock()

	if drop == nil {
		return
	}
	for _, a := range released {
		drop(a)
	}
}
