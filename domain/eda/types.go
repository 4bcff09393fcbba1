package eda

import (
	"edakit/domain/table"
)

// NumericSummary holds descriptive statistics for a numeric column. All
// values are computed over non-missing cells; Std is the population standard
// deviation and quartiles use linear interpolation.
type NumericSummary struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
}

// ColumnSummary describes a single profiled column. Numeric is nil for
// categorical columns and for numeric columns with no observed values; a nil
// pointer is the explicit "no value" marker, never NaN.
type ColumnSummary struct {
	Name          string           `json:"name"`
	Type          table.ColumnType `json:"type"`
	Rows          int              `json:"rows"`
	MissingCount  int              `json:"missing_count"`
	MissingShare  float64          `json:"missing_share"`
	DistinctCount int              `json:"distinct_count"`
	ZeroCount     int              `json:"zero_count"`
	Numeric       *NumericSummary  `json:"numeric,omitempty"`
}

// MissingnessReport maps columns to missing-value shares. Overall is the mean
// of per-column shares, 0 for a table without columns.
type MissingnessReport struct {
	Columns   []string           `json:"columns"`
	PerColumn map[string]float64 `json:"per_column"`
	Overall   float64            `json:"overall"`
}

// Share returns the missing share of a column, 0 when unknown
func (r MissingnessReport) Share(column string) float64 {
	return r.PerColumn[column]
}

// Max returns the largest per-column missing share
func (r MissingnessReport) Max() float64 {
	max := 0.0
	for _, share := range r.PerColumn {
		if share > max {
			max = share
		}
	}
	return max
}

// CorrelationMatrix is a symmetric Pearson correlation matrix over the
// numeric columns of a table. The diagonal is exactly 1.
type CorrelationMatrix struct {
	Columns []string                      `json:"columns"`
	Coeffs  map[string]map[string]float64 `json:"coeffs"`
}

// At returns the coefficient for a column pair
func (m CorrelationMatrix) At(x, y string) float64 {
	row, ok := m.Coeffs[x]
	if !ok {
		return 0
	}
	return row[y]
}

// CategoryCount is a single (value, count) frequency entry
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoryFrequency is the ordered top-k value frequency list of one
// categorical column: count-descending, ties by first appearance.
type CategoryFrequency struct {
	Column string          `json:"column"`
	Top    []CategoryCount `json:"top"`
}

// QualityFeatures are the aggregated scalar inputs of the quality rule
// engine. Zero values never trigger rules, so a partially populated payload
// degrades to fewer checks rather than an error.
type QualityFeatures struct {
	NRows            int     `json:"n_rows"`
	NCols            int     `json:"n_cols"`
	MaxMissingShare  float64 `json:"max_missing_share"`
	MeanMissingShare float64 `json:"mean_missing_share"`

	HasConstantColumns             bool `json:"has_constant_columns"`
	HasHighCardinalityCategoricals bool `json:"has_high_cardinality_categoricals"`
	HasSuspiciousIDDuplicates      bool `json:"has_suspicious_id_duplicates"`
	HasManyZeroValues              bool `json:"has_many_zero_values"`

	// Detail lists, populated when features are derived from a full table
	ConstantColumns        []string `json:"constant_columns,omitempty"`
	HighCardinalityColumns []string `json:"high_cardinality_columns,omitempty"`
	DuplicateIDColumns     []string `json:"duplicate_id_columns,omitempty"`
	ZeroHeavyColumns       []string `json:"zero_heavy_columns,omitempty"`
}

// QualityResult is the outcome of the rule engine: a score in [0,1] and one
// boolean per heuristic flag.
type QualityResult struct {
	Score float64 `json:"quality_score"`

	TooFewRows                     bool `json:"too_few_rows"`
	TooManyColumns                 bool `json:"too_many_columns"`
	TooManyMissing                 bool `json:"too_many_missing"`
	HasConstantColumns             bool `json:"has_constant_columns"`
	HasHighCardinalityCategoricals bool `json:"has_high_cardinality_categoricals"`
	HasSuspiciousIDDuplicates      bool `json:"has_suspicious_id_duplicates"`
	HasManyZeroValues              bool `json:"has_many_zero_values"`
	InsufficientFeatures           bool `json:"insufficient_features,omitempty"`

	Triggered []string `json:"triggered_flags"`
}
