package validation

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeInt(field string, val int, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func PositiveDecimal(field string, val decimal.Decimal, v Violations) {
	if val.Sign() <= 0 {
		v[field] = "must_be_positive"
	}
}

// Percent checks a percentage lies in [0, 100].
func Percent(field string, val decimal.Decimal, v Violations) {
	if val.Sign() < 0 || val.GreaterThan(decimal.NewFromInt(100)) {
		v[field] = "out_of_range"
	}
}

// MinLen rejects values shorter than n runes (whitespace trimmed).
func MinLen(field, value string, n int, v Violations) {
	if len([]rune(strings.TrimSpace(value))) < n {
		v[field] = "too_short"
	}
}
