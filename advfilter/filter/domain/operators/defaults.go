package operators

import (
	"strings"
	"time"
)

func registerOrdering(reg *ComparisonRegistry) {
	RegisterBinary[float64, float64](reg, OperatorEquals, func(a, b float64) bool { return a == b })
	RegisterBinary[float64, float64](reg, OperatorNotEquals, func(a, b float64) bool { return a != b })
	RegisterBinary[float64, float64](reg, OperatorGt, func(a, b float64) bool { return a > b })
	RegisterBinary[float64, float64](reg, OperatorGte, func(a, b float64) bool { return a >= b })
	RegisterBinary[float64, float64](reg, OperatorLt, func(a, b float64) bool { return a < b })
	RegisterBinary[float64, float64](reg, OperatorLte, func(a, b float64) bool { return a <= b })
}

func registerText(reg *ComparisonRegistry) {
	RegisterBinary[string, string](reg, OperatorEquals, func(a, b string) bool { return a == b })
	RegisterBinary[string, string](reg, OperatorNotEquals, func(a, b string) bool { return a != b })
	RegisterBinary[string, string](reg, OperatorContains, strings.Contains)
	RegisterBinary[string, string](reg, OperatorNotContains, func(a, b string) bool { return !strings.Contains(a, b) })
	RegisterBinary[string, string](reg, OperatorStartsWith, strings.HasPrefix)
	RegisterBinary[string, string](reg, OperatorEndsWith, strings.HasSuffix)
}

// Dates compare by calendar day for equality and by epoch milliseconds
// for ordering.
func registerDates(reg *ComparisonRegistry) {
	RegisterBinary[time.Time, time.Time](reg, OperatorEquals, SameDay)
	RegisterBinary[time.Time, time.Time](reg, OperatorNotEquals, func(a, b time.Time) bool { return !SameDay(a, b) })
	RegisterBinary[time.Time, time.Time](reg, OperatorGt, func(a, b time.Time) bool { return a.UnixMilli() > b.UnixMilli() })
	RegisterBinary[time.Time, time.Time](reg, OperatorGte, func(a, b time.Time) bool { return a.UnixMilli() >= b.UnixMilli() })
	RegisterBinary[time.Time, time.Time](reg, OperatorLt, func(a, b time.Time) bool { return a.UnixMilli() < b.UnixMilli() })
	RegisterBinary[time.Time, time.Time](reg, OperatorLte, func(a, b time.Time) bool { return a.UnixMilli() <= b.UnixMilli() })
}

// NewDefaultRegistry creates a registry covering the normalized operand
// types produced by the in-memory evaluator: float64, string, bool and
// time.Time. String ordering is deliberately absent.
func NewDefaultRegistry() *ComparisonRegistry {
	reg := NewComparisonRegistry()

	// bool
	RegisterBinary[bool, bool](reg, OperatorEquals, func(a, b bool) bool { return a == b })
	RegisterBinary[bool, bool](reg, OperatorNotEquals, func(a, b bool) bool { return a != b })

	registerOrdering(reg)
	registerText(reg)
	registerDates(reg)

	return reg
}

// SameDay reports whether both instants fall on the same calendar day in
// the location of a. Callers move a into the zone the day is meant in.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
