// Package eda is the exploratory-data-analysis engine: pure functions from a
// table view to summary statistics, missingness shares, correlation, category
// frequencies and quality heuristics. Nothing in here does I/O.
package eda

import (
	"sort"

	"github.com/montanaflynn/stats"

	"edakit/domain/eda"
	"edakit/domain/table"
)

// Profile computes one ColumnSummary per column, in table column order.
//
// A column is numeric when every non-missing cell coerced to a number and at
// least one did. Std is the population standard deviation; quartiles use
// linear interpolation. Columns without observed numeric values report a nil
// NumericSummary instead of NaN stats.
func Profile(view *table.View) []eda.ColumnSummary {
	summaries := make([]eda.ColumnSummary, 0, view.NumCols())
	for _, name := range view.Columns() {
		summaries = append(summaries, profileColumn(view, name))
	}
	return summaries
}

func profileColumn(view *table.View, name string) eda.ColumnSummary {
	cells, _ := view.Column(name)
	rows := len(cells)

	summary := eda.ColumnSummary{
		Name: name,
		Type: view.ColumnTypeOf(name),
		Rows: rows,
	}

	distinct := make(map[string]bool)
	for _, cell := range cells {
		switch cell.Kind {
		case table.KindMissing:
			summary.MissingCount++
		default:
			distinct[cell.Str] = true
			if cell.Kind == table.KindNumeric && cell.Num == 0 {
				summary.ZeroCount++
			}
		}
	}
	summary.DistinctCount = len(distinct)
	if rows > 0 {
		summary.MissingShare = float64(summary.MissingCount) / float64(rows)
	}

	if summary.Type == table.TypeNumeric {
		summary.Numeric = numericSummary(view.NumericValues(name))
	}
	return summary
}

// numericSummary returns nil when there is nothing to describe
func numericSummary(values []float64) *eda.NumericSummary {
	if len(values) == 0 {
		return nil
	}

	mean, _ := stats.Mean(values)
	std, _ := stats.StandardDeviation(values) // population
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return &eda.NumericSummary{
		Mean:   mean,
		Std:    std,
		Min:    min,
		Max:    max,
		Q25:    quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q75:    quantile(sorted, 0.75),
	}
}

// quantile interpolates linearly between the two order statistics around
// p*(n-1), matching the usual dataframe quantile definition.
func quantile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := int(h)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
