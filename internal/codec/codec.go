// Package codec converts network snapshots to and from flat-file formats.
package codec

import (
	"fmt"
	"io"

	"pipenet/internal/domain"
)

// Importer interface for importing network data from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Snapshot, error)
	Format() string
}

// Exporter interface for exporting network data to various formats
type Exporter interface {
	Export(snap *domain.Snapshot, w io.Writer) error
	Format() string
}

// Codec both imports and exports one format.
type Codec interface {
	Importer
	Exporter
}

// Supported format identifiers.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ForFormat returns the codec registered for a format identifier.
func ForFormat(format string) (Codec, error) {
	switch format {
	case FormatCSV:
		return NewCSVCodec(), nil
	case FormatJSON:
		return NewJSONCodec(), nil
	case FormatYAML, "yml":
		return NewYAMLCodec(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}
