package assets

import "sync/atomic"

// handleRef is the reference count shared by every clone of a handle. The
// storage slot keeps a pointer to it as well, so the sweep can tell when
// no consumer remains.
type handleRef struct {
	strong atomic.Int32
}

/**
 * Handle is a typed, reference-counted identifier for a slot in an
 * AssetStorage. It carries no payload; dereferencing requires pairing it
 * with the storage it was allocated from. The type parameter exists only
 * so handles for different asset types cannot be mixed up.
 *
 * While at least one clone of a handle is alive, its slot is never reused
 * for a different asset. Once the count reaches zero the slot becomes
 * reclaimable at the next storage sweep; reclamation is batched, never
 * immediate.
 */
type Handle[A any] struct {
	id  uint32
	ref *handleRef
}

// ID returns a stable, hashable identifier for the underlying slot.
func (h Handle[A]) ID() uint32 {
	return h.id
}

// Clone increments the shared strong count and returns an equivalent
// handle for the same slot.
func (h Handle[A]) Clone() Handle[A] {
	h.ref.strong.Add(1)
	return h
}

// Release decrements the shared strong count. After the count reaches
// zero the handle and all its clones must not be used again.
func (h Handle[A]) Release() {
	h.ref.strong.Add(-1)
}

// StrongCount reports the current number of live clones.
func (h Handle[A]) StrongCount() int32 {
	return h.ref.strong.Load()
}

// IsValid reports whether the handle was allocated from a storage, as
// opposed to being the zero value.
func (h Handle[A]) IsValid() bool {
	return h.ref != nil
}
