package eda

import (
	"testing"
)

func TestCorrelatePerfectPair(t *testing.T) {
	view := mustView(t, []string{"x", "y"}, map[string][]string{
		"x": {"1", "2", "3", "4"},
		"y": {"2", "4", "6", "8"},
	})

	matrix, ok := Correlate(view)
	if !ok {
		t.Fatal("expected a correlation matrix for two numeric columns")
	}
	if !almostEqual(matrix.At("x", "y"), 1) {
		t.Errorf("r(x,y) = %f, want 1", matrix.At("x", "y"))
	}
}

func TestCorrelateSymmetryAndDiagonal(t *testing.T) {
	view := mustView(t, []string{"a", "b", "c"}, map[string][]string{
		"a": {"1", "2", "3", "4", "5"},
		"b": {"5", "3", "4", "1", "2"},
		"c": {"2", "2", "9", "1", "7"},
	})

	matrix, ok := Correlate(view)
	if !ok {
		t.Fatal("expected a correlation matrix")
	}
	for _, x := range matrix.Columns {
		if matrix.At(x, x) != 1 {
			t.Errorf("diagonal r(%s,%s) = %f, want exactly 1", x, x, matrix.At(x, x))
		}
		for _, y := range matrix.Columns {
			if !almostEqual(matrix.At(x, y), matrix.At(y, x)) {
				t.Errorf("asymmetric: r(%s,%s)=%f r(%s,%s)=%f",
					x, y, matrix.At(x, y), y, x, matrix.At(y, x))
			}
			if r := matrix.At(x, y); r < -1 || r > 1 {
				t.Errorf("r(%s,%s) = %f outside [-1,1]", x, y, r)
			}
		}
	}
}

func TestCorrelatePairwiseCompleteRows(t *testing.T) {
	// Rows where either side is missing are dropped for that pair only
	view := mustView(t, []string{"x", "y"}, map[string][]string{
		"x": {"1", "2", "", "4"},
		"y": {"1", "", "3", "4"},
	})

	matrix, ok := Correlate(view)
	if !ok {
		t.Fatal("expected a correlation matrix")
	}
	// Shared rows are (1,1) and (4,4)
	if !almostEqual(matrix.At("x", "y"), 1) {
		t.Errorf("r = %f, want 1 over the two shared rows", matrix.At("x", "y"))
	}
}

func TestCorrelateZeroVariance(t *testing.T) {
	view := mustView(t, []string{"x", "y"}, map[string][]string{
		"x": {"5", "5", "5"},
		"y": {"1", "2", "3"},
	})

	matrix, ok := Correlate(view)
	if !ok {
		t.Fatal("expected a correlation matrix")
	}
	if matrix.At("x", "y") != 0 {
		t.Errorf("constant column should correlate as 0, got %f", matrix.At("x", "y"))
	}
}

func TestCorrelateNotApplicable(t *testing.T) {
	single := mustView(t, []string{"x", "city"}, map[string][]string{
		"x":    {"1", "2"},
		"city": {"A", "B"},
	})
	if _, ok := Correlate(single); ok {
		t.Error("one numeric column should yield no matrix")
	}

	none := mustView(t, []string{"city"}, map[string][]string{
		"city": {"A", "B"},
	})
	if _, ok := Correlate(none); ok {
		t.Error("no numeric columns should yield no matrix")
	}
}

func TestCorrelateTooFewSharedObservations(t *testing.T) {
	view := mustView(t, []string{"x", "y"}, map[string][]string{
		"x": {"1", "", "3"},
		"y": {"", "2", "3"},
	})

	matrix, ok := Correlate(view)
	if !ok {
		t.Fatal("expected a correlation matrix")
	}
	// Only one shared row, not enough to correlate
	if matrix.At("x", "y") != 0 {
		t.Errorf("r = %f, want 0 with a single shared row", matrix.At("x", "y"))
	}
}
