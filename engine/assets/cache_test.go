package assets

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/atlas/engine/core"
)

func TestCacheKeepsSlotAlive(t *testing.T) {
	s := NewAssetStorage[string, *testAsset]()
	c := NewCache[*testAsset]()
	spec := AssetSpec{Name: "grass.png", Extension: ".png"}

	h := s.Allocate()
	c.Insert(spec, h)

	// The caller drops its handle; the cache's clone must keep the slot.
	h.Release()
	s.ProcessCustomDrop(nil)

	cached, ok := c.Get(spec)
	if !ok {
		t.Fatal("spec missing from cache")
	}
	if !cached.IsValid() || cached.ID() != h.ID() {
		t.Fatalf("cached handle = %+v, want live handle for slot %d", cached, h.ID())
	}
	if _, err := s.TryGet(cached); errors.Is(err, core.ErrDeadHandle) {
		t.Error("cached slot was reclaimed while cached")
	}
	cached.Release()

	c.Remove(spec)
	s.ProcessCustomDrop(nil)
	if _, ok := s.Get(h); ok {
		t.Error("slot survived cache removal with no other handles")
	}
}

func TestCacheGetReturnsClones(t *testing.T) {
	s := NewAssetStorage[string, *testAsset]()
	c := NewCache[*testAsset]()
	spec := AssetSpec{Name: "a.ron", Extension: ".ron"}

	h := s.Allocate()
	c.Insert(spec, h)

	before := h.StrongCount()
	clone, _ := c.Get(spec)
	if got := h.StrongCount(); got != before+1 {
		t.Errorf("StrongCount after Get = %d, want %d", got, before+1)
	}
	clone.Release()
	if got := h.StrongCount(); got != before {
		t.Errorf("StrongCount after releasing clone = %d, want %d", got, before)
	}
}

func TestCacheInsertReplacesOldEntry(t *testing.T) {
	s := NewAssetStorage[string, *testAsset]()
	c := NewCache[*testAsset]()
	spec := AssetSpec{Name: "a.ron", Extension: ".ron"}

	first := s.Allocate()
	second := s.Allocate()
	c.Insert(spec, first)
	c.Insert(spec, second)

	if got := c.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
	got, _ := c.Get(spec)
	if got.ID() != second.ID() {
		t.Errorf("cache serves slot %d, want %d", got.ID(), second.ID())
	}
	got.Release()

	// The replaced entry's clone was released; dropping the caller's
	// handle lets the sweep reclaim the first slot.
	first.Release()
	second.Release()
	s.ProcessCustomDrop(nil)
	if _, err := s.TryGet(first); err == nil {
		t.Error("replaced cache entry still pins its slot")
	}
}

func TestCacheMissAndClear(t *testing.T) {
	c := NewCache[*testAsset]()
	if _, ok := c.Get(AssetSpec{Name: "nope"}); ok {
		t.Error("Get on empty cache returned ok")
	}

	s := NewAssetStorage[string, *testAsset]()
	for _, name := range []string{"a", "b", "c"} {
		h := s.Allocate()
		c.Insert(AssetSpec{Name: name}, h)
		h.Release()
	}
	if got := c.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	c.Clear()
	if got := c.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}
}

// Specs differing only in source id are distinct cache entries.
func TestCacheDistinguishesSources(t *testing.T) {
	s := NewAssetStorage[string, *testAsset]()
	c := NewCache[*testAsset]()

	base := s.Allocate()
	modded := s.Allocate()
	c.Insert(AssetSpec{Name: "a.ron"}, base)
	c.Insert(AssetSpec{Name: "a.ron", SourceID: "mods"}, modded)

	if got := c.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	h, _ := c.Get(AssetSpec{Name: "a.ron", SourceID: "mods"})
	if h.ID() != modded.ID() {
		t.Errorf("mods entry serves slot %d, want %d", h.ID(), modded.ID())
	}
	h.Release()
}
