package store

import (
	"math"
	"strconv"
	"strings"
)

// CanonicalInt renders n as the canonical decimal text spec.md §3 requires
// for integer counters: no leading zeros, no sign for non-negatives.
func CanonicalInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// CanonicalFloat renders f as a decimal with at most 17 significant
// fractional digits, trailing zeros stripped, and a trailing bare "."
// stripped, matching spec.md §3's float-counter canonicalization and the
// `floaty()` helper in the original source this spec was distilled from.
func CanonicalFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 17, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" || s == "-" {
		s = "0"
	}
	return s
}

// IsNaN reports whether f is NaN, the condition every score/increment
// path in spec.md §4.4 must reject.
func IsNaN(f float64) bool { return math.IsNaN(f) }

// IsInf reports whether f is positive or negative infinity.
func IsInf(f float64) bool { return math.IsInf(f, 0) }
