// Package coercer turns raw cell text into tagged table values with
// deterministic rules: missing markers first, then numeric coercion,
// otherwise categorical. Column-level type inference stays in the table
// view; this package only decides what a single cell is.
package coercer

import (
	"math"
	"strconv"
	"strings"

	"edakit/domain/table"
)

// CoercionConfig defines the cell coercion rules
type CoercionConfig struct {
	// MissingMarkers are cell texts treated as missing after trimming,
	// compared case-insensitively. The empty string is always missing.
	MissingMarkers []string
	// AllowCurrency strips leading currency symbols before numeric parsing
	AllowCurrency bool
	// AllowThousandsSeparators strips commas used as thousands separators
	AllowThousandsSeparators bool
}

// DefaultCoercionConfig returns the rules used by the readers
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		MissingMarkers:           []string{"na", "n/a", "null", "none", "nan"},
		AllowCurrency:            true,
		AllowThousandsSeparators: true,
	}
}

// Coercer converts raw strings to table values
type Coercer struct {
	config  CoercionConfig
	missing map[string]bool
}

// New creates a coercer with the given config
func New(config CoercionConfig) *Coercer {
	missing := make(map[string]bool, len(config.MissingMarkers))
	for _, marker := range config.MissingMarkers {
		missing[strings.ToLower(marker)] = true
	}
	return &Coercer{config: config, missing: missing}
}

// Coerce converts one raw cell to a tagged value
func (c *Coercer) Coerce(raw string) table.Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || c.missing[strings.ToLower(trimmed)] {
		return table.Missing()
	}
	if num, ok := c.TryNumeric(trimmed); ok {
		return table.Numeric(num, trimmed)
	}
	return table.Categorical(trimmed)
}

// TryNumeric attempts numeric coercion of a trimmed cell. Parentheses mark
// negatives, currency symbols and thousands separators are tolerated when
// configured.
func (c *Coercer) TryNumeric(trimmed string) (float64, bool) {
	cleanVal := trimmed

	// Handle parentheses for negative numbers: (123) -> -123
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	if c.config.AllowCurrency {
		for _, symbol := range []string{"$", "€", "£", "¥"} {
			cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
		}
		cleanVal = strings.TrimSpace(cleanVal)
	}

	if c.config.AllowThousandsSeparators && strings.Contains(cleanVal, ".") {
		// A period decimal point is present, so commas are separators
		cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	} else if c.config.AllowThousandsSeparators {
		// Without a decimal point, commas must group exactly three digits
		// to count as separators; "1,5" stays categorical.
		if parts := strings.Split(cleanVal, ","); len(parts) > 1 {
			grouped := true
			for i, part := range parts {
				if i > 0 && len(part) != 3 {
					grouped = false
					break
				}
			}
			if grouped {
				cleanVal = strings.ReplaceAll(cleanVal, ",", "")
			}
		}
	}

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}
