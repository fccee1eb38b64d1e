package filter

import (
	"strings"

	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/operators"
)

type Visitable interface {
	Accept(Visitor) error
}

type Visitor interface {
	VisitGlobalScope(GlobalScopeNode) error
	VisitObject(ObjectNode) error
	VisitField(FieldNode) error
	VisitValue(ValueNode) error
	VisitInfix(InfixNode) error
	VisitPostfix(PostfixNode) error
	VisitJunction(JunctionNode) error
}

func Value(value any) ValueNode {
	return ValueNode{
		value: value,
	}
}

type ValueNode struct {
	value any
}

func (n ValueNode) Value() any {
	return n.value
}

func (n ValueNode) Accept(v Visitor) error {
	return v.VisitValue(n)
}

// Infix is a single "field operator value" comparison.
func Infix(left Visitable, operator operators.Operator, right Visitable) InfixNode {
	return InfixNode{
		left:     left,
		operator: operator,
		right:    right,
	}
}

type InfixNode struct {
	left     Visitable
	operator operators.Operator
	right    Visitable
}

func (n InfixNode) Left() Visitable {
	return n.left
}

func (n InfixNode) Operator() operators.Operator {
	return n.operator
}

func (n InfixNode) Right() Visitable {
	return n.right
}

func (n InfixNode) Accept(v Visitor) error {
	return v.VisitInfix(n)
}

func IsNull(operand Visitable) PostfixNode {
	return Postfix(operand, operators.OperatorIsNull)
}

func IsNotNull(operand Visitable) PostfixNode {
	return Postfix(operand, operators.OperatorIsNotNull)
}

func Postfix(operand Visitable, operator operators.Operator) PostfixNode {
	return PostfixNode{
		operand:  operand,
		operator: operator,
	}
}

type PostfixNode struct {
	operand  Visitable
	operator operators.Operator
}

func (n PostfixNode) Operand() Visitable {
	return n.operand
}

func (n PostfixNode) Operator() operators.Operator {
	return n.operator
}

func (n PostfixNode) Accept(v Visitor) error {
	return v.VisitPostfix(n)
}

func And(operands ...Visitable) JunctionNode {
	return Junction(operators.OperatorAnd, operands...)
}

func Or(operands ...Visitable) JunctionNode {
	return Junction(operators.OperatorOr, operands...)
}

// Junction combines operands with AND or OR. Binary junctions come from the
// sequential fold, n-ary ones from the grouped fold.
func Junction(operator operators.Operator, operands ...Visitable) JunctionNode {
	return JunctionNode{
		operator: operator,
		operands: operands,
	}
}

type JunctionNode struct {
	operator operators.Operator
	operands []Visitable
}

func (n JunctionNode) Operator() operators.Operator {
	return n.operator
}

func (n JunctionNode) Operands() []Visitable {
	return n.operands
}

func (n JunctionNode) Accept(v Visitor) error {
	return v.VisitJunction(n)
}

type EmptiableObject interface {
	Visitable
	Parent() EmptiableObject
	Name() string
	IsRoot() bool
}

func GlobalScope() GlobalScopeNode {
	return GlobalScopeNode{}
}

type GlobalScopeNode struct{}

func (n GlobalScopeNode) Parent() EmptiableObject {
	return n
}

func (n GlobalScopeNode) Name() string {
	return "Empty"
}

func (n GlobalScopeNode) IsRoot() bool {
	return true
}

func (n GlobalScopeNode) Accept(v Visitor) error {
	return v.VisitGlobalScope(n)
}

func Object(parent EmptiableObject, name string) ObjectNode {
	return ObjectNode{
		parent: parent,
		name:   name,
	}
}

type ObjectNode struct {
	parent EmptiableObject
	name   string
}

func (n ObjectNode) Parent() EmptiableObject {
	return n.parent
}

func (n ObjectNode) Name() string {
	return n.name
}

func (n ObjectNode) IsRoot() bool {
	return false
}

func (n ObjectNode) Accept(v Visitor) error {
	return v.VisitObject(n)
}

func Field(object EmptiableObject, name string) FieldNode {
	return FieldNode{
		object: object,
		name:   name,
	}
}

type FieldNode struct {
	object EmptiableObject
	name   string
}

func (n FieldNode) Name() string {
	return n.name
}

func (n FieldNode) Object() EmptiableObject {
	return n.object
}

func (n FieldNode) Accept(v Visitor) error {
	return v.VisitField(n)
}

// Path builds a field node from a dotted path: "owner.name" becomes
// Field(Object(GlobalScope(), "owner"), "name").
func Path(dotted string) FieldNode {
	segments := strings.Split(dotted, ".")
	var obj EmptiableObject = GlobalScope()
	for _, name := range segments[:len(segments)-1] {
		obj = Object(obj, name)
	}
	return Field(obj, segments[len(segments)-1])
}

func ExtractFieldPath(n FieldNode) []string {
	path := []string{n.Name()}
	var obj EmptiableObject = n.Object()
	for !obj.IsRoot() {
		path = append([]string{obj.Name()}, path...)
		obj = obj.Parent()
	}
	return path
}
