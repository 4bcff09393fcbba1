package eda

import (
	"edakit/domain/eda"
	"edakit/domain/table"
)

// Missingness computes per-column missing shares and the dataset-level
// aggregate (mean across columns). A table with zero rows reports 0 for every
// share; a table with zero columns reports an overall share of 0.
func Missingness(view *table.View) eda.MissingnessReport {
	report := eda.MissingnessReport{
		Columns:   view.Columns(),
		PerColumn: make(map[string]float64, view.NumCols()),
	}

	rows := view.NumRows()
	total := 0.0
	for _, name := range view.Columns() {
		share := 0.0
		if rows > 0 {
			cells, _ := view.Column(name)
			missing := 0
			for _, cell := range cells {
				if cell.IsMissing() {
					missing++
				}
			}
			share = float64(missing) / float64(rows)
		}
		report.PerColumn[name] = share
		total += share
	}

	if view.NumCols() > 0 {
		report.Overall = total / float64(view.NumCols())
	}
	return report
}
