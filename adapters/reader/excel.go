package reader

import (
	"io"

	"github.com/xuri/excelize/v2"

	"edakit/adapters/coercer"
	"edakit/domain/table"
	"edakit/internal/errors"
)

// ExcelReader reads the first sheet of an xlsx workbook into a table view
type ExcelReader struct {
	coercer *coercer.Coercer
}

// NewExcelReader creates an Excel reader
func NewExcelReader() *ExcelReader {
	return &ExcelReader{coercer: coercer.New(coercer.DefaultCoercionConfig())}
}

// Read parses the workbook stream. The first row of the first sheet is the
// header; short rows are padded with missing cells since excelize trims
// trailing empties.
func (r *ExcelReader) Read(src io.Reader) (*table.View, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.Wrap(errors.MalformedInput("unparseable Excel workbook"), err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.MalformedInput("Excel workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(errors.MalformedInput("failed to read sheet"), "sheet %s: %v", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, errors.MalformedInput("Excel sheet has no header row")
	}

	header := rows[0]
	for _, name := range header {
		if name == "" {
			return nil, errors.MalformedInput("Excel header contains an empty column name")
		}
	}

	cells := make(map[string][]table.Value, len(header))
	for _, name := range header {
		cells[name] = make([]table.Value, 0, len(rows)-1)
	}
	for _, row := range rows[1:] {
		for i, name := range header {
			raw := ""
			if i < len(row) {
				raw = row[i]
			}
			cells[name] = append(cells[name], r.coercer.Coerce(raw))
		}
	}

	view, err := table.NewView(header, cells)
	if err != nil {
		return nil, errors.Wrap(errors.MalformedInput("invalid table shape"), err.Error())
	}
	return view, nil
}
