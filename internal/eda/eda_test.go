package eda

import (
	"testing"

	"edakit/adapters/coercer"
	"edakit/domain/table"
)

// mustView builds a table view from raw cell text through the default
// coercer. Empty strings become missing cells.
func mustView(t *testing.T, columns []string, raw map[string][]string) *table.View {
	t.Helper()

	c := coercer.New(coercer.DefaultCoercionConfig())
	cells := make(map[string][]table.Value, len(columns))
	for _, name := range columns {
		col := make([]table.Value, 0, len(raw[name]))
		for _, cell := range raw[name] {
			col = append(col, c.Coerce(cell))
		}
		cells[name] = col
	}

	view, err := table.NewView(columns, cells)
	if err != nil {
		t.Fatalf("failed to build view: %v", err)
	}
	return view
}

func sampleView(t *testing.T) *table.View {
	t.Helper()
	return mustView(t,
		[]string{"age", "height", "city"},
		map[string][]string{
			"age":    {"10", "20", "30", ""},
			"height": {"140", "150", "160", "170"},
			"city":   {"A", "B", "A", ""},
		})
}
