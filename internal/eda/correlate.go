package eda

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"edakit/domain/eda"
	"edakit/domain/table"
)

// Correlate computes the pairwise Pearson correlation matrix over the numeric
// columns of the table. Each pair uses only the rows where both cells are
// numeric (pairwise-complete observations).
//
// The matrix is symmetric with an exact unit diagonal. A pair with fewer than
// two shared observations or with zero variance on either side gets a
// coefficient of 0. With fewer than two numeric columns correlation is not
// applicable and ok is false.
func Correlate(view *table.View) (eda.CorrelationMatrix, bool) {
	numeric := view.NumericColumns()
	if len(numeric) < 2 {
		return eda.CorrelationMatrix{}, false
	}

	coeffs := make(map[string]map[string]float64, len(numeric))
	for _, name := range numeric {
		coeffs[name] = map[string]float64{name: 1}
	}

	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			r := pairwisePearson(view, numeric[i], numeric[j])
			coeffs[numeric[i]][numeric[j]] = r
			coeffs[numeric[j]][numeric[i]] = r
		}
	}

	return eda.CorrelationMatrix{Columns: numeric, Coeffs: coeffs}, true
}

func pairwisePearson(view *table.View, colX, colY string) float64 {
	cellsX, _ := view.Column(colX)
	cellsY, _ := view.Column(colY)

	xs := make([]float64, 0, len(cellsX))
	ys := make([]float64, 0, len(cellsY))
	for row := range cellsX {
		if cellsX[row].Kind == table.KindNumeric && cellsY[row].Kind == table.KindNumeric {
			xs = append(xs, cellsX[row].Num)
			ys = append(ys, cellsY[row].Num)
		}
	}
	if len(xs) < 2 {
		return 0
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		// Zero variance on either side
		return 0
	}
	// Guard against floating point drift outside [-1, 1]
	return math.Max(-1, math.Min(1, r))
}
