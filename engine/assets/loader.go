package assets

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/atlas/engine/systems"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

/**
 * Loader resolves named load requests into handles. Every Load* call
 * allocates a storage slot synchronously and returns at once; byte
 * fetching and decoding happen on the shared worker pool, and results
 * flow back through the storage's processing queue.
 *
 * The worker pool is shared, not owned: other subsystems may submit jobs
 * to it concurrently.
 */
type Loader struct {
	mu       sync.RWMutex
	sources  map[string]Source
	def      Source
	pool     *systems.JobSystem
	reloader *Reloader
}

func NewLoader(pool *systems.JobSystem) *Loader {
	return &Loader{
		sources: make(map[string]Source),
		pool:    pool,
	}
}

// AddSource registers a named source. Must be called before any LoadFrom
// referencing the id.
func (l *Loader) AddSource(id string, src Source) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources[id] = src
}

// SetDefaultSource sets the source used by Load.
func (l *Loader) SetDefaultSource(src Source) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.def = src
}

// EnableHotReload makes the loader register watchable load requests with
// the reloader, so that file changes re-import into the same handles.
func (l *Loader) EnableHotReload(r *Reloader) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reloader = r
}

// source resolves a registered source id. An unknown id is a setup bug,
// not a runtime condition, and panics.
func (l *Loader) source(id string) Source {
	l.mu.RLock()
	defer l.mu.RUnlock()

	src, ok := l.sources[id]
	if !ok {
		ids := maps.Keys(l.sources)
		slices.Sort(ids)
		panic(fmt.Sprintf("asset source %q was never registered via AddSource (registered: %v)", id, ids))
	}
	return src
}

func (l *Loader) defaultSource() Source {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.def == nil {
		panic("no default asset source set; call SetDefaultSource first")
	}
	return l.def
}

func (l *Loader) currentReloader() *Reloader {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reloader
}

// Load enqueues an asynchronous load of the named asset from the default
// source. The returned handle is valid immediately but unpopulated until
// a later storage.Process call; it never blocks on I/O.
//
// Go methods cannot introduce type parameters, so the load operations are
// package-level functions taking the loader first.
func Load[D, A any](l *Loader, name string, format Format[D], progress Progress, storage *AssetStorage[D, A]) Handle[A] {
	return loadFrom(l, name, "", l.defaultSource(), format, progress, storage)
}

// LoadFrom is Load against a source registered under sourceID. It panics
// if the id was never registered.
func LoadFrom[D, A any](l *Loader, name, sourceID string, format Format[D], progress Progress, storage *AssetStorage[D, A]) Handle[A] {
	return loadFrom(l, name, sourceID, l.source(sourceID), format, progress, storage)
}

// LoadFromData is the synchronous variant: no source, no format, no
// background job. The already-decoded data goes straight onto the
// processing queue, so the only asynchronous step left is the next
// storage.Process call.
func LoadFromData[D, A any](data D, progress Progress, storage *AssetStorage[D, A]) Handle[A] {
	if progress == nil {
		progress = NoProgress{}
	}
	handle := storage.Allocate()
	progress.AddAssets(1)

	storage.Queue().Push(Processed[D]{
		Data:       data,
		HandleID:   handle.ID(),
		Name:       "<from data>",
		Generation: storage.slotGeneration(handle),
		Tracker:    progress.CreateTracker(),
	})
	return handle
}

func loadFrom[D, A any](l *Loader, name, sourceID string, src Source, format Format[D], progress Progress, storage *AssetStorage[D, A]) Handle[A] {
	if progress == nil {
		progress = NoProgress{}
	}
	handle := storage.Allocate()
	progress.AddAssets(1)
	tracker := progress.CreateTracker()

	spec := AssetSpec{Name: name, Extension: format.Extension(), SourceID: sourceID}
	queue := storage.Queue()
	generation := storage.slotGeneration(handle)

	// Non-blocking submit: a pool saturated by slow I/O must never stall
	// the caller.
	l.pool.AddWorkNonBlocking(systems.JobTask{
		Name: spec.String(),
		Run: func() error {
			importInto(handle.ID(), name, generation, src, format, tracker, queue)
			return nil
		},
	})

	if r := l.currentReloader(); r != nil {
		if w, ok := src.(Watchable); ok {
			id := handle.ID()
			r.Watch(w.Path(name), func() {
				// Re-import into the same slot. No tracker: reload
				// failures are diagnostic, the old asset stays valid.
				l.pool.AddWorkNonBlocking(systems.JobTask{
					Name: spec.String(),
					Run: func() error {
						importInto(id, name, generation, src, format, nil, queue)
						return nil
					},
				})
			})
		}
	}

	return handle
}

// importInto runs on a worker goroutine. Data-level failures are captured
// as values on the processed entry and never unwind across the worker
// boundary.
func importInto[D any](handleID uint32, name string, generation uint32, src Source, format Format[D], tracker Tracker, queue *ProcessingQueue[D]) {
	entry := Processed[D]{
		HandleID:   handleID,
		Name:       name,
		Generation: generation,
		Tracker:    tracker,
	}

	raw, err := src.Load(name)
	if err != nil {
		entry.Err = fmt.Errorf("loading bytes for %q: %w", name, err)
		queue.Push(entry)
		return
	}

	data, err := format.Import(name, raw)
	if err != nil {
		entry.Err = fmt.Errorf("importing %q as %s: %w", name, format.Extension(), err)
		queue.Push(entry)
		return
	}

	entry.Data = data
	queue.Push(entry)
}
