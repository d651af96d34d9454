package core

import (
	"errors"
)

var (
	// ErrNotLoaded is returned when a handle's slot has no asset yet,
	// either because the load is still in flight or because it failed.
	ErrNotLoaded = errors.New("asset not loaded")
	// ErrDeadHandle is returned when a handle's slot has been reclaimed.
	ErrDeadHandle = errors.New("handle no longer refers to a live slot")
	// ErrUnsupportedOperation is returned for caller-reachable combinations
	// a format or source does not implement.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
