package filter

import (
	"errors"
	"strings"
	"time"

	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/datepreset"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/operators"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/valuetype"
)

func NewEvaluateVisitor(record any, now time.Time, registry *operators.ComparisonRegistry) *EvaluateVisitor {
	return &EvaluateVisitor{
		record:   record,
		now:      now,
		registry: registry,
	}
}

// EvaluateVisitor evaluates a planned tree against one record.
type EvaluateVisitor struct {
	currentValue any
	record       any
	now          time.Time
	registry     *operators.ComparisonRegistry
}

func (v EvaluateVisitor) CurrentValue() any {
	return v.currentValue
}

func (v *EvaluateVisitor) SetCurrentValue(val any) {
	v.currentValue = val
}

func (v *EvaluateVisitor) VisitGlobalScope(_ GlobalScopeNode) error {
	return nil
}

func (v *EvaluateVisitor) VisitObject(_ ObjectNode) error {
	return nil
}

func (v *EvaluateVisitor) VisitField(n FieldNode) error {
	v.SetCurrentValue(Resolve(v.record, strings.Join(ExtractFieldPath(n), ".")))
	return nil
}

func (v *EvaluateVisitor) VisitValue(n ValueNode) error {
	v.SetCurrentValue(n.Value())
	return nil
}

func (v *EvaluateVisitor) VisitPostfix(n PostfixNode) error {
	err := n.Operand().Accept(v)
	if err != nil {
		return err
	}
	empty := isEmpty(v.CurrentValue())
	switch n.Operator() {
	case operators.OperatorIsNull:
		v.SetCurrentValue(empty)
	case operators.OperatorIsNotNull:
		v.SetCurrentValue(!empty)
	default:
		v.SetCurrentValue(false)
	}
	return nil
}

func (v *EvaluateVisitor) VisitInfix(n InfixNode) error {
	err := n.Left().Accept(v)
	if err != nil {
		return err
	}
	left := v.CurrentValue()
	err = n.Right().Accept(v)
	if err != nil {
		return err
	}
	right := v.CurrentValue()
	result, err := v.compare(left, n.Operator(), right)
	if err != nil {
		return err
	}
	v.SetCurrentValue(result)
	return nil
}

func (v *EvaluateVisitor) VisitJunction(n JunctionNode) error {
	isAnd := n.Operator() == operators.OperatorAnd
	result := isAnd
	for _, operand := range n.Operands() {
		err := operand.Accept(v)
		if err != nil {
			return err
		}
		value, err := v.Result()
		if err != nil {
			return err
		}
		if isAnd {
			result = result && value
		} else {
			result = result || value
		}
	}
	v.SetCurrentValue(result)
	return nil
}

func (v EvaluateVisitor) Result() (bool, error) {
	result := v.CurrentValue()
	resultTyped, ok := result.(bool)
	if !ok {
		return false, errors.New("the result is not a bool")
	}
	return resultTyped, nil
}

// compare dispatches on the kind inferred from the live field value.
// Anything the registry cannot compare is a non-match.
func (v *EvaluateVisitor) compare(fieldValue any, op operators.Operator, filterValue any) (bool, error) {
	if !operators.IsKnown(op) || op.IsPostfix() {
		return false, nil
	}
	loc := v.now.Location()
	var left, right any
	switch valuetype.InferFromField(fieldValue, filterValue, loc) {
	case valuetype.KindDate:
		fieldDate, _ := valuetype.FieldDate(fieldValue, loc)
		filterDate := datepreset.Resolve(filterValue, v.now)
		if !filterDate.IsValid() {
			return false, nil
		}
		// Calendar days are taken in the evaluation zone on both sides.
		left, right = fieldDate.In(loc), filterDate.Time().In(loc)
	case valuetype.KindBoolean:
		left, right = fieldValue, filterValue == "true" || filterValue == true
	case valuetype.KindNumber:
		if isNumericOperator(op) {
			left, _ = valuetype.ParseNumber(valuetype.Normalize(fieldValue))
			right, _ = valuetype.ParseNumber(filterValue)
			break
		}
		left, right = valuetype.Text(fieldValue), valuetype.Text(filterValue)
	default:
		left, right = valuetype.Text(fieldValue), valuetype.Text(filterValue)
	}
	result, err := v.registry.Exec(left, op, right)
	if errors.Is(err, operators.ErrUnsupported) {
		return false, nil
	}
	return result, err
}

func isNumericOperator(op operators.Operator) bool {
	return op == operators.OperatorEquals || op == operators.OperatorNotEquals || op.IsRelational()
}

// isEmpty treats the empty string as null, unlike the compiled predicate.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}
