package operators

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnsupported is returned when no comparison is registered for the
// operator and operand types. Callers treat it as a non-match.
var ErrUnsupported = errors.New("operator is not supported for operand types")

type Comparison func(left, right any) bool

type comparisonKey struct {
	left  reflect.Type
	op    Operator
	right reflect.Type
}

// ComparisonRegistry dispatches a rule operator on the dynamic types of its
// already-normalized operands.
type ComparisonRegistry struct {
	comparisons map[comparisonKey]Comparison
}

func NewComparisonRegistry() *ComparisonRegistry {
	return &ComparisonRegistry{
		comparisons: make(map[comparisonKey]Comparison),
	}
}

func RegisterBinary[L, R any](reg *ComparisonRegistry, op Operator, fn func(L, R) bool) {
	var zeroL L
	var zeroR R
	key := comparisonKey{
		left:  reflect.TypeOf(zeroL),
		op:    op,
		right: reflect.TypeOf(zeroR),
	}
	reg.comparisons[key] = func(left, right any) bool {
		return fn(left.(L), right.(R))
	}
}

// Supports reports whether a comparison is registered for the operand types.
func (r *ComparisonRegistry) Supports(left any, op Operator, right any) bool {
	_, ok := r.comparisons[r.key(left, op, right)]
	return ok
}

// Exec runs the comparison registered for the operand types.
func (r *ComparisonRegistry) Exec(left any, op Operator, right any) (bool, error) {
	fn, ok := r.comparisons[r.key(left, op, right)]
	if !ok {
		return false, fmt.Errorf("%w: \"%s\" for %T and %T", ErrUnsupported, op, left, right)
	}
	return fn(left, right), nil
}

func (r *ComparisonRegistry) key(left any, op Operator, right any) comparisonKey {
	return comparisonKey{
		left:  reflect.TypeOf(left),
		op:    op,
		right: reflect.TypeOf(right),
	}
}
