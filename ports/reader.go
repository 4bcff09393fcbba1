package ports

import (
	"io"

	"edakit/domain/table"
)

// TableReader parses a raw dataset stream into a table view
type TableReader interface {
	Read(r io.Reader) (*table.View, error)
}
