package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/atlas/engine/core"
)

func TestHotReloadStrategyCadence(t *testing.T) {
	s := HotReloadEvery(3)

	fired := 0
	for tick := 0; tick < 9; tick++ {
		if s.Trigger() {
			fired++
		}
	}
	if fired != 3 {
		t.Errorf("strategy fired %d times over 9 ticks, want 3", fired)
	}

	// Non-positive cadence degrades to every tick.
	every := HotReloadEvery(0)
	for tick := 0; tick < 3; tick++ {
		if !every.Trigger() {
			t.Fatalf("tick %d: HotReloadEvery(0) did not trigger", tick)
		}
	}
}

func TestReloaderFlushesDirtyPaths(t *testing.T) {
	bus := core.NewEventBus()
	var events []string
	bus.Register(core.EVENT_CODE_ASSET_RELOADED, func(ctx core.EventContext) bool {
		events = append(events, ctx.Path)
		return false
	})

	r, err := NewReloader(HotReloadEvery(2), bus)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.ron")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloads := 0
	r.Watch(path, func() { reloads++ })
	r.Invalidate(path)

	// First tick is held back by the cadence, second flushes.
	r.Update()
	if reloads != 0 {
		t.Fatal("reload fired before the strategy allowed it")
	}
	r.Update()
	if reloads != 1 {
		t.Fatalf("reloads = %d after flush tick, want 1", reloads)
	}
	if len(events) != 1 || events[0] != path {
		t.Errorf("bus events = %v, want [%s]", events, path)
	}

	// The dirty mark is consumed; further ticks do nothing.
	r.Update()
	r.Update()
	if reloads != 1 {
		t.Errorf("reloads = %d after idle ticks, want still 1", reloads)
	}
}

func TestReloaderIgnoresUnwatchedPaths(t *testing.T) {
	r, err := NewReloader(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	r.Invalidate("/never/watched/file.png")
	r.Update()
}

func TestReloaderCoalescesInvalidations(t *testing.T) {
	r, err := NewReloader(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.ron")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloads := 0
	r.Watch(path, func() { reloads++ })

	// Editors fire bursts of writes; one flush reloads once.
	for i := 0; i < 5; i++ {
		r.Invalidate(path)
	}
	r.Update()
	if reloads != 1 {
		t.Errorf("reloads = %d for a burst of invalidations, want 1", reloads)
	}
}

func TestReloaderPicksUpFilesystemWrites(t *testing.T) {
	r, err := NewReloader(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.ron")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan struct{}, 1)
	r.Watch(path, func() {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})

	if err := os.WriteFile(path, []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}

	// The watcher goroutine needs a moment to mark the path dirty.
	deadline := time.Now().Add(10 * time.Second)
	for {
		r.Update()
		select {
		case <-reloaded:
			return
		default:
		}
		if time.Now().After(deadline) {
			t.Fatal("filesystem write never reached the reload callback")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestReloaderCloseIsIdempotent(t *testing.T) {
	r, err := NewReloader(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
