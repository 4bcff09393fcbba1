package eda

import (
	"sort"

	"edakit/domain/eda"
	"edakit/domain/table"
)

// MissingBucket is the frequency bucket missing cells are counted under
const MissingBucket = "missing"

// TopCategories computes the top-k value frequencies for every non-numeric
// column. Entries are ordered count-descending with ties broken by first
// appearance in the table; missing cells count as their own bucket. k <= 0
// yields empty lists.
func TopCategories(view *table.View, k int) map[string]eda.CategoryFrequency {
	out := make(map[string]eda.CategoryFrequency)
	for _, name := range view.CategoricalColumns() {
		out[name] = topCategoriesFor(view, name, k)
	}
	return out
}

func topCategoriesFor(view *table.View, name string, k int) eda.CategoryFrequency {
	cells, _ := view.Column(name)

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, cell := range cells {
		bucket := MissingBucket
		if !cell.IsMissing() {
			bucket = cell.Str
		}
		if _, seen := counts[bucket]; !seen {
			firstSeen[bucket] = order
			order++
		}
		counts[bucket]++
	}

	entries := make([]eda.CategoryCount, 0, len(counts))
	for value, count := range counts {
		entries = append(entries, eda.CategoryCount{Value: value, Count: count})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Value] < firstSeen[entries[j].Value]
	})

	if k < 0 {
		k = 0
	}
	if len(entries) > k {
		entries = entries[:k]
	}
	return eda.CategoryFrequency{Column: name, Top: entries}
}
