package table

import (
	"reflect"
	"testing"
)

func TestNewViewInvariants(t *testing.T) {
	_, err := NewView([]string{"a", "a"}, map[string][]Value{
		"a": {Numeric(1, "1")},
	})
	if err == nil {
		t.Error("duplicate column names should be rejected")
	}

	_, err = NewView([]string{"a", "b"}, map[string][]Value{
		"a": {Numeric(1, "1")},
		"b": {Numeric(1, "1"), Numeric(2, "2")},
	})
	if err == nil {
		t.Error("unequal column lengths should be rejected")
	}

	_, err = NewView([]string{"a"}, map[string][]Value{})
	if err == nil {
		t.Error("missing cells for a declared column should be rejected")
	}
}

func TestViewShape(t *testing.T) {
	view, err := NewView([]string{"x", "y"}, map[string][]Value{
		"x": {Numeric(1, "1"), Numeric(2, "2")},
		"y": {Categorical("a"), Missing()},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.NumRows() != 2 || view.NumCols() != 2 {
		t.Errorf("shape = (%d, %d), want (2, 2)", view.NumRows(), view.NumCols())
	}
	if !reflect.DeepEqual(view.Columns(), []string{"x", "y"}) {
		t.Errorf("columns = %v", view.Columns())
	}
}

func TestEmptyView(t *testing.T) {
	view := Empty()
	if view.NumRows() != 0 || view.NumCols() != 0 {
		t.Errorf("shape = (%d, %d), want (0, 0)", view.NumRows(), view.NumCols())
	}
}

func TestIsNumeric(t *testing.T) {
	view, err := NewView([]string{"clean", "mixed", "gaps", "blank", "text"}, map[string][]Value{
		"clean": {Numeric(1, "1"), Numeric(2, "2")},
		"mixed": {Numeric(1, "1"), Categorical("x")},
		"gaps":  {Numeric(1, "1"), Missing()},
		"blank": {Missing(), Missing()},
		"text":  {Categorical("a"), Categorical("b")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]bool{
		"clean": true,
		"mixed": false,
		"gaps":  true,
		"blank": false,
		"text":  false,
	}
	for name, want := range tests {
		if got := view.IsNumeric(name); got != want {
			t.Errorf("IsNumeric(%s) = %v, want %v", name, got, want)
		}
	}

	if got := view.NumericColumns(); !reflect.DeepEqual(got, []string{"clean", "gaps"}) {
		t.Errorf("numeric columns = %v", got)
	}
	if got := view.CategoricalColumns(); !reflect.DeepEqual(got, []string{"mixed", "blank", "text"}) {
		t.Errorf("categorical columns = %v", got)
	}
}

func TestNumericValuesSkipsMissing(t *testing.T) {
	view, err := NewView([]string{"x"}, map[string][]Value{
		"x": {Numeric(1, "1"), Missing(), Numeric(3, "3")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := view.NumericValues("x"); !reflect.DeepEqual(got, []float64{1, 3}) {
		t.Errorf("values = %v, want [1 3]", got)
	}
	if got := view.NumericValues("absent"); got != nil {
		t.Errorf("unknown column should yield nil, got %v", got)
	}
}
