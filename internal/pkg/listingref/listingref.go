// Package listingref models the listing identifier accepted by the order
// endpoints: either the internal numeric id or the opaque external source id.
// The ambiguity is resolved once here, at the API boundary.
package listingref

import "strings"

// MaxExternalIDLen bounds opaque external ids; longer values are truncated.
const MaxExternalIDLen = 64

// Ref is a tagged listing identifier.
type Ref struct {
	// Numeric holds the canonical digit string of an internal id (leading
	// zeros stripped). Kept as a string so ids beyond int64 survive intact.
	Numeric string
	// External holds an opaque source id when the input is not purely numeric.
	External string
}

// IsNumeric reports whether the ref points at the internal numeric id.
func (r Ref) IsNumeric() bool {
	return r.Numeric != ""
}

// IsZero reports whether the ref carries no identifier at all.
func (r Ref) IsZero() bool {
	return r.Numeric == "" && r.External == ""
}

// Parse normalizes a raw id from a request. Digit-only strings have leading
// zeros stripped and are treated as internal ids; anything else passes
// through as an external id, truncated to MaxExternalIDLen.
func Parse(raw string) Ref {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Ref{}
	}
	if isDigits(raw) {
		trimmed := strings.TrimLeft(raw, "0")
		if trimmed == "" {
			trimmed = "0"
		}
		return Ref{Numeric: trimmed}
	}
	if len(raw) > MaxExternalIDLen {
		raw = raw[:MaxExternalIDLen]
	}
	return Ref{External: raw}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
