package formats

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// TOMLFormat decodes a TOML document into a value of type T. Material
// definitions, scene descriptions and similar hand-edited assets use it.
type TOMLFormat[T any] struct{}

func (TOMLFormat[T]) Extension() string {
	return ".toml"
}

func (TOMLFormat[T]) Import(name string, data []byte) (*T, error) {
	out := new(T)
	if err := toml.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", name, err)
	}
	return out, nil
}
