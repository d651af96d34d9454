package assets

import "fmt"

// LoadError records a single failed load: which asset, which handle, and
// the underlying cause. Collected by ProgressCounter for diagnostics.
type LoadError struct {
	Name     string
	TypeName string
	HandleID uint32
	Err      error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("failed to load %s %q (handle %d): %v", e.TypeName, e.Name, e.HandleID, e.Err)
}

func (e LoadError) Unwrap() error {
	return e.Err
}
