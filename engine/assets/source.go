package assets

// Source abstracts where raw asset bytes come from. Implementations must
// be safe for concurrent calls from multiple worker goroutines; the
// loader only ever reads from them.
type Source interface {
	// Load returns the raw bytes of the named asset.
	Load(name string) ([]byte, error)
	// Modified returns a change stamp (nanoseconds since epoch) for the
	// named asset, when the source can provide one.
	Modified(name string) (int64, error)
}

// Watchable is implemented by sources whose assets live on disk and can
// therefore participate in hot reload.
type Watchable interface {
	// Path returns the on-disk path of the named asset.
	Path(name string) string
}
