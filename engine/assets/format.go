package assets

// Format turns raw source bytes into intermediate asset data of type D.
// Implementations must be pure functions of their inputs and fields;
// the same format value is shared across concurrent import jobs. Options
// (such as an image flip toggle) are fields on the concrete format.
type Format[D any] interface {
	// Extension is the file extension this format handles, including the
	// leading dot.
	Extension() string
	// Import decodes the raw bytes of the named asset.
	Import(name string, data []byte) (D, error)
}
