package table

import "fmt"

// ValueKind tags a single cell after coercion
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindNumeric
	KindCategorical
)

func (k ValueKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	default:
		return "missing"
	}
}

// Value is a tagged cell value. Num is valid only for KindNumeric, Str holds
// the raw cell text for both numeric and categorical cells.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

// Missing returns the missing-cell marker
func Missing() Value {
	return Value{Kind: KindMissing}
}

// Numeric builds a numeric cell keeping the original text
func Numeric(num float64, raw string) Value {
	return Value{Kind: KindNumeric, Num: num, Str: raw}
}

// Categorical builds a categorical cell
func Categorical(raw string) Value {
	return Value{Kind: KindCategorical, Str: raw}
}

// IsMissing reports whether the cell is a missing marker
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// ColumnType is the per-column inferred statistical type
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
)

// View is an immutable in-memory table: ordered unique column names and
// equal-length cell sequences per column.
type View struct {
	columns []string
	cells   map[string][]Value
	rows    int
}

// NewView builds a View and enforces its invariants: unique column names and
// identical length for every column.
func NewView(columns []string, cells map[string][]Value) (*View, error) {
	seen := make(map[string]bool, len(columns))
	rows := -1
	for _, name := range columns {
		if seen[name] {
			return nil, fmt.Errorf("duplicate column name %q", name)
		}
		seen[name] = true

		col, ok := cells[name]
		if !ok {
			return nil, fmt.Errorf("no cells for column %q", name)
		}
		if rows == -1 {
			rows = len(col)
		} else if len(col) != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", name, len(col), rows)
		}
	}
	if rows == -1 {
		rows = 0
	}
	return &View{columns: append([]string(nil), columns...), cells: cells, rows: rows}, nil
}

// Empty returns a zero-row, zero-column view
func Empty() *View {
	return &View{cells: map[string][]Value{}}
}

// Columns returns the ordered column names
func (v *View) Columns() []string {
	return v.columns
}

// NumRows returns the row count
func (v *View) NumRows() int {
	return v.rows
}

// NumCols returns the column count
func (v *View) NumCols() int {
	return len(v.columns)
}

// Column returns the cells of the named column
func (v *View) Column(name string) ([]Value, bool) {
	col, ok := v.cells[name]
	return col, ok
}

// IsNumeric reports whether every non-missing cell of the column is numeric
// and at least one such cell exists. Columns made entirely of missing cells
// are not numeric.
func (v *View) IsNumeric(name string) bool {
	col, ok := v.cells[name]
	if !ok {
		return false
	}
	observed := 0
	for _, cell := range col {
		switch cell.Kind {
		case KindMissing:
			continue
		case KindNumeric:
			observed++
		default:
			return false
		}
	}
	return observed > 0
}

// ColumnTypeOf returns the inferred type of the named column
func (v *View) ColumnTypeOf(name string) ColumnType {
	if v.IsNumeric(name) {
		return TypeNumeric
	}
	return TypeCategorical
}

// NumericColumns returns the ordered names of numeric columns
func (v *View) NumericColumns() []string {
	var out []string
	for _, name := range v.columns {
		if v.IsNumeric(name) {
			out = append(out, name)
		}
	}
	return out
}

// CategoricalColumns returns the ordered names of non-numeric columns
func (v *View) CategoricalColumns() []string {
	var out []string
	for _, name := range v.columns {
		if !v.IsNumeric(name) {
			out = append(out, name)
		}
	}
	return out
}

// NumericValues returns the coerced numeric values of a column, skipping
// missing cells
func (v *View) NumericValues(name string) []float64 {
	col, ok := v.cells[name]
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(col))
	for _, cell := range col {
		if cell.Kind == KindNumeric {
			out = append(out, cell.Num)
		}
	}
	return out
}
