package coercer

import (
	"testing"

	"edakit/domain/table"
)

func TestCoerceMissingMarkers(t *testing.T) {
	c := New(DefaultCoercionConfig())

	for _, raw := range []string{"", "  ", "NA", "na", "N/A", "null", "None", "NaN", " nan "} {
		if got := c.Coerce(raw); !got.IsMissing() {
			t.Errorf("Coerce(%q) = %+v, want missing", raw, got)
		}
	}
}

func TestCoerceNumeric(t *testing.T) {
	c := New(DefaultCoercionConfig())

	tests := []struct {
		raw  string
		want float64
	}{
		{"42", 42},
		{"-3.5", -3.5},
		{"  7 ", 7},
		{"1e3", 1000},
		{"$1,234.56", 1234.56},
		{"€500", 500},
		{"(123)", -123},
		{"($45)", -45},
		{"1,000", 1000},
		{"12,345,678", 12345678},
	}
	for _, tc := range tests {
		got := c.Coerce(tc.raw)
		if got.Kind != table.KindNumeric {
			t.Errorf("Coerce(%q) kind = %v, want numeric", tc.raw, got.Kind)
			continue
		}
		if got.Num != tc.want {
			t.Errorf("Coerce(%q) = %f, want %f", tc.raw, got.Num, tc.want)
		}
	}
}

func TestCoerceCategorical(t *testing.T) {
	c := New(DefaultCoercionConfig())

	for _, raw := range []string{"hello", "12ab", "1,5", "1,23", "--", "Inf", "+Inf"} {
		got := c.Coerce(raw)
		if got.Kind != table.KindCategorical {
			t.Errorf("Coerce(%q) kind = %v, want categorical", raw, got.Kind)
		}
	}
}

func TestCoerceKeepsRawText(t *testing.T) {
	c := New(DefaultCoercionConfig())

	got := c.Coerce(" $1,234.56 ")
	if got.Str != "$1,234.56" {
		t.Errorf("raw text = %q, want trimmed original", got.Str)
	}
}

func TestCoerceStrictConfig(t *testing.T) {
	c := New(CoercionConfig{})

	if got := c.Coerce("$500"); got.Kind != table.KindCategorical {
		t.Errorf("currency without AllowCurrency should stay categorical, got %+v", got)
	}
	if got := c.Coerce("1,000"); got.Kind != table.KindCategorical {
		t.Errorf("grouped number without AllowThousandsSeparators should stay categorical, got %+v", got)
	}
	if got := c.Coerce("NA"); got.Kind != table.KindCategorical {
		t.Errorf("without markers only the empty string is missing, got %+v", got)
	}
	if got := c.Coerce(""); !got.IsMissing() {
		t.Error("empty string must always be missing")
	}
}
