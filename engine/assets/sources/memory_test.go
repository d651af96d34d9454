package sources

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/spaghettifunk/atlas/engine/assets"
)

var _ assets.Source = (*Memory)(nil)

func TestMemoryInsertLoadRemove(t *testing.T) {
	m := NewMemory()
	m.Insert("a.ron", []byte("hello"))

	got, err := m.Load("a.ron")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Errorf("Load = %q, want %q", got, "hello")
	}

	m.Remove("a.ron")
	if _, err := m.Load("a.ron"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load after Remove = %v, want fs.ErrNotExist", err)
	}
}

// Callers must not be able to mutate stored bytes through the slices they
// pass in or get back.
func TestMemoryCopiesBytes(t *testing.T) {
	m := NewMemory()
	in := []byte("abc")
	m.Insert("a", in)
	in[0] = 'X'

	out, err := m.Load("a")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "abc" {
		t.Fatalf("stored bytes were mutated through the caller's slice: %q", out)
	}

	out[0] = 'Y'
	again, _ := m.Load("a")
	if string(again) != "abc" {
		t.Errorf("stored bytes were mutated through a returned slice: %q", again)
	}
}

func TestMemoryModifiedAdvancesOnReplace(t *testing.T) {
	m := NewMemory()
	m.Insert("a", []byte("v1"))
	first, err := m.Modified("a")
	if err != nil {
		t.Fatal(err)
	}

	m.Insert("a", []byte("v2"))
	second, err := m.Modified("a")
	if err != nil {
		t.Fatal(err)
	}
	if second < first {
		t.Errorf("Modified went backwards: %d then %d", first, second)
	}

	if _, err := m.Modified("missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Modified of missing asset = %v, want fs.ErrNotExist", err)
	}
}
