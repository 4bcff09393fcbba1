package eda

import (
	"strings"

	"edakit/domain/eda"
	"edakit/domain/table"
)

// Default rule thresholds. Every threshold can be overridden through
// RuleConfig (and the rules.yml file at the service/CLI boundary).
const (
	DefaultMinRows            = 100
	DefaultMaxCols            = 100
	DefaultMaxMissingShare    = 0.5
	DefaultMinMissingShare    = 0.3
	DefaultHighCardinalityPct = 0.3
	DefaultZeroShareThreshold = 0.4
)

// Flag penalties subtracted from the perfect score, plus the weight of the
// worst per-column missing share.
const (
	penaltyTooFewRows      = 0.10
	penaltyTooManyColumns  = 0.05
	penaltyTooManyMissing  = 0.20
	penaltyConstantColumns = 0.10
	penaltyHighCardinality = 0.10
	penaltyIDDuplicates    = 0.15
	penaltyManyZeroValues  = 0.10
	missingShareWeight     = 0.20
)

// RuleConfig holds the tunable thresholds of the quality rule engine
type RuleConfig struct {
	// MinRows is the row count below which a dataset is flagged as too small
	MinRows int `yaml:"min_rows"`
	// MaxCols is the column count above which a dataset is flagged as too wide
	MaxCols int `yaml:"max_cols"`
	// MaxMissingShare flags the dataset when any column exceeds it
	MaxMissingShare float64 `yaml:"max_missing_share"`
	// MinMissingShare marks individual columns as problematic in reports;
	// it never gates any engine computation
	MinMissingShare float64 `yaml:"min_missing_share"`
	// HighCardinalityPct is the distinct/rows fraction above which a
	// categorical column counts as high cardinality
	HighCardinalityPct float64 `yaml:"high_cardinality_pct"`
	// ZeroShareThreshold flags numeric columns dominated by zeros
	ZeroShareThreshold float64 `yaml:"zero_share_threshold"`
	// FailClosed rejects feature payloads that carry no dataset shape at
	// all (zero rows and zero columns) instead of passing them silently
	FailClosed bool `yaml:"fail_closed"`
}

// DefaultRuleConfig returns the built-in thresholds
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		MinRows:            DefaultMinRows,
		MaxCols:            DefaultMaxCols,
		MaxMissingShare:    DefaultMaxMissingShare,
		MinMissingShare:    DefaultMinMissingShare,
		HighCardinalityPct: DefaultHighCardinalityPct,
		ZeroShareThreshold: DefaultZeroShareThreshold,
	}
}

// FeaturesFromTable aggregates profiling output into the scalar inputs of the
// rule engine, including the per-column detail lists the report renders.
func FeaturesFromTable(view *table.View, summaries []eda.ColumnSummary, missing eda.MissingnessReport, config RuleConfig) eda.QualityFeatures {
	features := eda.QualityFeatures{
		NRows:            view.NumRows(),
		NCols:            view.NumCols(),
		MaxMissingShare:  missing.Max(),
		MeanMissingShare: missing.Overall,
	}

	rows := view.NumRows()
	for _, summary := range summaries {
		observed := summary.Rows - summary.MissingCount

		if rows > 0 && summary.DistinctCount == 1 {
			features.ConstantColumns = append(features.ConstantColumns, summary.Name)
		}

		if rows > 0 && summary.Type == table.TypeCategorical &&
			float64(summary.DistinctCount) > config.HighCardinalityPct*float64(rows) {
			features.HighCardinalityColumns = append(features.HighCardinalityColumns, summary.Name)
		}

		if looksLikeID(summary.Name) && observed > 0 && summary.DistinctCount < observed {
			features.DuplicateIDColumns = append(features.DuplicateIDColumns, summary.Name)
		}

		if rows > 0 && summary.Type == table.TypeNumeric &&
			float64(summary.ZeroCount)/float64(rows) > config.ZeroShareThreshold {
			features.ZeroHeavyColumns = append(features.ZeroHeavyColumns, summary.Name)
		}
	}

	features.HasConstantColumns = len(features.ConstantColumns) > 0
	features.HasHighCardinalityCategoricals = len(features.HighCardinalityColumns) > 0
	features.HasSuspiciousIDDuplicates = len(features.DuplicateIDColumns) > 0
	features.HasManyZeroValues = len(features.ZeroHeavyColumns) > 0
	return features
}

// looksLikeID reports whether a column name suggests an identifier
func looksLikeID(name string) bool {
	lower := strings.ToLower(name)
	return lower == "id" || strings.HasSuffix(lower, "_id") ||
		strings.HasSuffix(lower, "id") && len(lower) > 2 && !strings.Contains(lower, "valid")
}

// AssessQuality maps aggregated features to a score in [0,1] and one boolean
// per heuristic rule. Rules fail open: zero-valued or absent features simply
// do not trigger, and malformed inputs never panic. With FailClosed set, a
// payload carrying no dataset shape at all scores 0 and raises
// insufficient_features instead.
func AssessQuality(features eda.QualityFeatures, config RuleConfig) eda.QualityResult {
	result := eda.QualityResult{Triggered: []string{}}

	if config.FailClosed && features.NRows == 0 && features.NCols == 0 {
		result.InsufficientFeatures = true
		result.Triggered = append(result.Triggered, "insufficient_features")
		return result
	}

	score := 1.0
	trigger := func(name string, penalty float64) {
		result.Triggered = append(result.Triggered, name)
		score -= penalty
	}

	if features.NRows > 0 && features.NRows < config.MinRows {
		result.TooFewRows = true
		trigger("too_few_rows", penaltyTooFewRows)
	}
	if features.NCols > config.MaxCols {
		result.TooManyColumns = true
		trigger("too_many_columns", penaltyTooManyColumns)
	}
	if features.MaxMissingShare > config.MaxMissingShare {
		result.TooManyMissing = true
		trigger("too_many_missing", penaltyTooManyMissing)
	}
	if features.HasConstantColumns {
		result.HasConstantColumns = true
		trigger("has_constant_columns", penaltyConstantColumns)
	}
	if features.HasHighCardinalityCategoricals {
		result.HasHighCardinalityCategoricals = true
		trigger("has_high_cardinality_categoricals", penaltyHighCardinality)
	}
	if features.HasSuspiciousIDDuplicates {
		result.HasSuspiciousIDDuplicates = true
		trigger("has_suspicious_id_duplicates", penaltyIDDuplicates)
	}
	if features.HasManyZeroValues {
		result.HasManyZeroValues = true
		trigger("has_many_zero_values", penaltyManyZeroValues)
	}

	score -= missingShareWeight * clamp01(features.MaxMissingShare)
	result.Score = clamp01(score)
	return result
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
