// Package money normalizes heterogeneous numeric representations coming out
// of third-party parser payloads (localized strings, thousands separators,
// currency symbols) into canonical float64 values.
package money

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Parse converts an arbitrary value into a finite number, or nil when the
// value carries no usable number. It never fails: booleans, nil, empty and
// garbage strings all map to nil so callers can distinguish "no data" from
// a zero price.
func Parse(v interface{}) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case bool:
		return nil
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return finite(float64(x))
	case int64:
		return finite(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil
		}
		return finite(f)
	case string:
		return parseString(x)
	default:
		return nil
	}
}

// parseString strips everything but digits, '.', '+', '-' and treats a comma
// as a decimal separator (parser sources format amounts like "450 000,50 ₽").
func parseString(s string) *float64 {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '+', r == '-':
			b.WriteRune(r)
		case r == ',':
			b.WriteRune('.')
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Round2 rounds a currency amount to two decimals.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
