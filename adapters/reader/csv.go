// Package reader parses CSV and Excel inputs into table views through the
// shared cell coercer. Readers surface malformed input as errors; everything
// downstream works on a validated view.
package reader

import (
	"encoding/csv"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"edakit/adapters/coercer"
	"edakit/domain/table"
	"edakit/internal/errors"
)

// CSVReader reads separator- and encoding-parameterized CSV files
type CSVReader struct {
	separator rune
	encoding  string
	coercer   *coercer.Coercer
}

// NewCSVReader creates a CSV reader. Supported encodings are "utf-8" (default)
// and the latin/windows charmaps ("latin-1", "iso-8859-1", "windows-1251",
// "windows-1252").
func NewCSVReader(separator rune, encoding string) *CSVReader {
	if separator == 0 {
		separator = ','
	}
	return &CSVReader{
		separator: separator,
		encoding:  strings.ToLower(strings.TrimSpace(encoding)),
		coercer:   coercer.New(coercer.DefaultCoercionConfig()),
	}
}

// Read parses the stream into a table view. The first record is the header;
// ragged rows and undecodable bytes are malformed input.
func (r *CSVReader) Read(src io.Reader) (*table.View, error) {
	decoded, err := r.decode(src)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(decoded)
	cr.Comma = r.separator
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.MalformedInput("unparseable CSV"), err.Error())
	}
	if len(records) == 0 {
		return nil, errors.MalformedInput("CSV has no header row")
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
		if header[i] == "" {
			return nil, errors.MalformedInput("CSV header contains an empty column name")
		}
	}

	cells := make(map[string][]table.Value, len(header))
	for _, name := range header {
		cells[name] = make([]table.Value, 0, len(records)-1)
	}
	for _, record := range records[1:] {
		for i, name := range header {
			cells[name] = append(cells[name], r.coercer.Coerce(record[i]))
		}
	}

	view, err := table.NewView(header, cells)
	if err != nil {
		return nil, errors.Wrap(errors.MalformedInput("invalid table shape"), err.Error())
	}
	return view, nil
}

func (r *CSVReader) decode(src io.Reader) (io.Reader, error) {
	switch r.encoding {
	case "", "utf-8", "utf8":
		return src, nil
	case "latin-1", "latin1", "iso-8859-1":
		return transform.NewReader(src, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1251", "cp1251":
		return transform.NewReader(src, charmap.Windows1251.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(src, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, errors.MalformedInput("unsupported encoding: " + r.encoding)
	}
}
