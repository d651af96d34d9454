package assets

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/atlas/engine/core"
)

// HotReloadStrategy decides on which driving ticks pending reloads are
// flushed. Only the driving goroutine may call Trigger.
type HotReloadStrategy struct {
	everyTicks int
	counter    int
}

// HotReloadEvery flushes pending reloads every n driving ticks.
func HotReloadEvery(n int) *HotReloadStrategy {
	if n <= 0 {
		n = 1
	}
	return &HotReloadStrategy{everyTicks: n}
}

// Trigger advances the tick counter and reports whether reloads should
// flush now.
func (s *HotReloadStrategy) Trigger() bool {
	s.counter++
	if s.counter >= s.everyTicks {
		s.counter = 0
		return true
	}
	return false
}

/**
 * Reloader watches asset files on disk and re-runs their import jobs when
 * they change. File events only mark paths dirty; the actual reload jobs
 * are submitted from Update on the driving thread, at the cadence the
 * strategy allows. Changed data then flows through the normal processing
 * queue and bumps the slot version, which is how consumers notice.
 */
type Reloader struct {
	watcher  *fsnotify.Watcher
	strategy *HotReloadStrategy
	bus      *core.EventBus

	mu          sync.Mutex
	reloads     map[string][]func()
	dirty       map[string]struct{}
	watchedDirs map[string]struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// NewReloader starts the watcher goroutine. strategy may be nil, in which
// case reloads flush on every Update. bus may be nil.
func NewReloader(strategy *HotReloadStrategy, bus *core.EventBus) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	r := &Reloader{
		watcher:     watcher,
		strategy:    strategy,
		bus:         bus,
		reloads:     make(map[string][]func()),
		dirty:       make(map[string]struct{}),
		watchedDirs: make(map[string]struct{}),
		done:        make(chan struct{}),
	}
	go r.run()

	return r, nil
}

func (r *Reloader) run() {
	for {
		select {
		case e, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				r.Invalidate(e.Name)
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			core.LogError("hot reload watcher: %s", err.Error())

		case <-r.done:
			return
		}
	}
}

// Watch registers a reload callback for the file at path. The containing
// directory is added to the watcher the first time it is seen.
func (r *Reloader) Watch(path string, reload func()) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.reloads[abs] = append(r.reloads[abs], reload)

	dir := filepath.Dir(abs)
	if _, ok := r.watchedDirs[dir]; !ok {
		if err := r.watcher.Add(dir); err != nil {
			core.LogWarn("hot reload: cannot watch %s: %s", dir, err.Error())
			return
		}
		r.watchedDirs[dir] = struct{}{}
	}
}

// Invalidate marks the file dirty so its reloads fire on a later Update.
// Called by the watcher goroutine; also useful for forcing a reload by
// hand.
func (r *Reloader) Invalidate(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, watched := r.reloads[abs]; watched {
		r.dirty[abs] = struct{}{}
	}
}

// Update flushes pending reloads if the strategy's cadence allows. Must
// be called from the driving thread, once per tick.
func (r *Reloader) Update() {
	if r.strategy != nil && !r.strategy.Trigger() {
		return
	}

	r.mu.Lock()
	if len(r.dirty) == 0 {
		r.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(r.dirty))
	pending := make([][]func(), 0, len(r.dirty))
	for path := range r.dirty {
		paths = append(paths, path)
		pending = append(pending, r.reloads[path])
	}
	r.dirty = make(map[string]struct{})
	r.mu.Unlock()

	for i, path := range paths {
		core.LogInfo("hot reloading %s", path)
		for _, reload := range pending[i] {
			reload()
		}
		if r.bus != nil {
			r.bus.Fire(core.EventContext{
				Code: core.EVENT_CODE_ASSET_RELOADED,
				Path: path,
			})
		}
	}
}

func (r *Reloader) Close() error {
	var err error
	r.closeOnce.Do(func() {
		close(r.done)
		err = r.watcher.Close()
	})
	return err
}
