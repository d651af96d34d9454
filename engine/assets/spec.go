package assets

import "fmt"

// AssetSpec identifies a load request by name, format extension and
// source id. Specs are comparable and used as cache keys and in error
// reports.
type AssetSpec struct {
	Name      string
	Extension string
	SourceID  string
}

func (s AssetSpec) String() string {
	if s.SourceID == "" {
		return fmt.Sprintf("%s (%s)", s.Name, s.Extension)
	}
	return fmt.Sprintf("%s (%s, source %q)", s.Name, s.Extension, s.SourceID)
}
