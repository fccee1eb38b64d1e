package operators

type Operator string

const (
	// Comparison

	OperatorEquals    Operator = "equals"
	OperatorNotEquals Operator = "notEquals"
	OperatorGt        Operator = "gt"
	OperatorGte       Operator = "gte"
	OperatorLt        Operator = "lt"
	OperatorLte       Operator = "lte"

	// Text

	OperatorContains    Operator = "contains"
	OperatorNotContains Operator = "notContains"
	OperatorStartsWith  Operator = "startsWith"
	OperatorEndsWith    Operator = "endsWith"

	// Postfix

	OperatorIsNull    Operator = "isNull"
	OperatorIsNotNull Operator = "isNotNull"

	// Logical, used by junction nodes only

	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

var known = map[Operator]struct{}{
	OperatorEquals: {}, OperatorNotEquals: {},
	OperatorGt: {}, OperatorGte: {}, OperatorLt: {}, OperatorLte: {},
	OperatorContains: {}, OperatorNotContains: {}, OperatorStartsWith: {}, OperatorEndsWith: {},
	OperatorIsNull: {}, OperatorIsNotNull: {},
}

// IsKnown reports whether op is one of the rule operators.
// Logical operators are not rule operators.
func IsKnown(op Operator) bool {
	_, ok := known[op]
	return ok
}

func (op Operator) IsPostfix() bool {
	return op == OperatorIsNull || op == OperatorIsNotNull
}

func (op Operator) IsRelational() bool {
	switch op {
	case OperatorGt, OperatorGte, OperatorLt, OperatorLte:
		return true
	}
	return false
}
