// Package validation collects field violations at the API edge. The invoice
// core itself stays permissive; only explicit save/create requests are
// validated here.
package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// Percent validates tax/discount style rates: 0..100 inclusive.
func Percent(field string, rate float64, v Violations) {
	RangeFloat(field, rate, 0, 100, v)
}

func MinLen(field, value string, limit int, v Violations) {
	if len(value) > 0 && len(value) < limit {
		v[field] = "too_short"
	}
}

func MaxLen(field, value string, limit int, v Violations) {
	if len(value) > limit {
		v[field] = "too_long"
	}
}
