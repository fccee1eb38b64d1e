package filter

import (
	"fmt"
	"math"
	"strconv"
	"time"

	f "github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/datepreset"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/operators"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/valuetype"
)

// Where is a structured predicate for a relational query layer's where
// argument. Junction keys hold []Where; everything else nests by path
// segment down to a scalar condition.
type Where map[string]any

const (
	keyAnd   = "AND"
	keyOr    = "OR"
	keyNot   = "not"
	keyIsNot = "isNot"
	keyGte   = "gte"
	keyLte   = "lte"
	keyMode  = "mode"

	modeInsensitive = "insensitive"
)

func NewWhereVisitor(now time.Time) *WhereVisitor {
	return &WhereVisitor{now: now}
}

// WhereVisitor lowers a planned tree into a Where. A leaf it cannot lower
// produces nil and is left out of its junction.
type WhereVisitor struct {
	now   time.Time
	path  []string
	value any
	where Where
}

func (v *WhereVisitor) VisitGlobalScope(_ f.GlobalScopeNode) error {
	return nil
}

func (v *WhereVisitor) VisitObject(_ f.ObjectNode) error {
	return nil
}

func (v *WhereVisitor) VisitField(n f.FieldNode) error {
	v.path = f.ExtractFieldPath(n)
	return nil
}

func (v *WhereVisitor) VisitValue(n f.ValueNode) error {
	v.value = n.Value()
	return nil
}

func (v *WhereVisitor) VisitInfix(n f.InfixNode) error {
	err := n.Left().Accept(v)
	if err != nil {
		return err
	}
	err = n.Right().Accept(v)
	if err != nil {
		return err
	}
	condition, ok := v.scalarCondition(n.Operator(), v.value)
	if !ok {
		v.where = nil
		return nil
	}
	v.where = nest(v.path, condition)
	return nil
}

// VisitPostfix handles null checks. On a relation path the relation itself
// may be absent, so isNull also matches a missing parent and isNotNull
// requires the parent to exist.
func (v *WhereVisitor) VisitPostfix(n f.PostfixNode) error {
	err := n.Operand().Accept(v)
	if err != nil {
		return err
	}
	path := v.path
	switch n.Operator() {
	case operators.OperatorIsNull:
		if len(path) == 1 {
			v.where = Where{path[0]: nil}
			return nil
		}
		v.where = Where{keyOr: []Where{
			{path[0]: nil},
			{path[0]: nest(path[1:], nil)},
		}}
	case operators.OperatorIsNotNull:
		if len(path) == 1 {
			v.where = Where{path[0]: Where{keyNot: nil}}
			return nil
		}
		relation := Where{keyIsNot: nil}
		for k, val := range nest(path[1:], Where{keyNot: nil}) {
			relation[k] = val
		}
		v.where = Where{path[0]: relation}
	default:
		return fmt.Errorf("unsupported postfix operator \"%s\"", n.Operator())
	}
	return nil
}

func (v *WhereVisitor) VisitJunction(n f.JunctionNode) error {
	conditions := make([]Where, 0, len(n.Operands()))
	for _, operand := range n.Operands() {
		v.where = nil
		err := operand.Accept(v)
		if err != nil {
			return err
		}
		if v.where != nil {
			conditions = append(conditions, v.where)
		}
	}
	v.where = Where{string(n.Operator()): conditions}
	return nil
}

func (v WhereVisitor) Result() Where {
	return v.where
}

// scalarCondition builds the leaf condition. The value's kind comes from
// the literal alone since no stored value is visible here.
func (v *WhereVisitor) scalarCondition(op operators.Operator, value any) (any, bool) {
	kind := valuetype.InferFromLiteral(value, v.now.Location())
	var date time.Time
	if kind == valuetype.KindDate {
		date = datepreset.Resolve(value, v.now).Time().In(v.now.Location())
	}

	switch op {
	case operators.OperatorEquals:
		if kind == valuetype.KindDate {
			return dayRange(date), true
		}
		return literal(kind, value), true
	case operators.OperatorNotEquals:
		if kind == valuetype.KindDate {
			return Where{keyNot: dayRange(date)}, true
		}
		return Where{keyNot: literal(kind, value)}, true
	case operators.OperatorContains, operators.OperatorStartsWith, operators.OperatorEndsWith:
		return Where{string(op): text(value), keyMode: modeInsensitive}, true
	case operators.OperatorNotContains:
		return Where{keyNot: Where{string(operators.OperatorContains): text(value), keyMode: modeInsensitive}}, true
	case operators.OperatorGt, operators.OperatorGte, operators.OperatorLt, operators.OperatorLte:
		if kind == valuetype.KindDate {
			return Where{string(op): date}, true
		}
		// Not a number yields a NaN bound; the query layer rejects it.
		return Where{string(op): valuetype.ToNumber(value)}, true
	}
	return nil, false
}

func dayRange(date time.Time) Where {
	return Where{
		keyGte: datepreset.StartOfDay(date),
		keyLte: datepreset.EndOfDay(date),
	}
}

func literal(kind valuetype.Kind, value any) any {
	if kind == valuetype.KindNumber {
		return valuetype.ToNumber(value)
	}
	return value
}

func text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}

// nest wraps leaf under each path segment, outermost first.
func nest(path []string, leaf any) Where {
	result := Where{path[len(path)-1]: leaf}
	for i := len(path) - 2; i >= 0; i-- {
		result = Where{path[i]: result}
	}
	return result
}

// HasNaN reports whether any bound in the predicate is not a number, which
// happens when a relational rule carries a non-numeric value.
func (w Where) HasNaN() bool {
	for _, value := range w {
		if hasNaN(value) {
			return true
		}
	}
	return false
}

func hasNaN(value any) bool {
	switch v := value.(type) {
	case float64:
		return math.IsNaN(v)
	case Where:
		return v.HasNaN()
	case []Where:
		for _, w := range v {
			if w.HasNaN() {
				return true
			}
		}
	}
	return false
}
