package filter

import (
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/operators"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/rule"
)

// Step pairs a rule with the leaf node it was planned into.
type Step struct {
	Rule rule.Rule
	Node Visitable
}

// Plan is an ordered rule list turned into leaf nodes. It is built once and
// folded by whichever backend consumes it.
type Plan struct {
	steps []Step
}

func NewPlan(rules []rule.Rule) Plan {
	steps := make([]Step, 0, len(rules))
	for _, r := range rules {
		steps = append(steps, Step{Rule: r, Node: Leaf(r)})
	}
	return Plan{steps: steps}
}

// Leaf plans one rule: a postfix node for the null checks, an infix
// comparison otherwise.
func Leaf(r rule.Rule) Visitable {
	field := Path(r.Field)
	if r.Operator.IsPostfix() {
		return Postfix(field, r.Operator)
	}
	return Infix(field, r.Operator, Value(r.Value))
}

func (p Plan) Steps() []Step {
	return p.steps
}

func (p Plan) Len() int {
	return len(p.steps)
}

func (p Plan) IsEmpty() bool {
	return len(p.steps) == 0
}

// Filter keeps the steps accepted by keep. A removed step takes its
// conjunction with it.
func (p Plan) Filter(keep func(Step) bool) Plan {
	steps := make([]Step, 0, len(p.steps))
	for _, s := range p.steps {
		if keep(s) {
			steps = append(steps, s)
		}
	}
	return Plan{steps: steps}
}

// Sequential folds the steps strictly left to right, with no precedence:
// A, B(AND), C(OR), D(AND) becomes ((A AND B) OR C) AND D.
// It returns nil for an empty plan.
func (p Plan) Sequential() Visitable {
	if p.IsEmpty() {
		return nil
	}
	result := p.steps[0].Node
	for _, s := range p.steps[1:] {
		result = Junction(conjunctionOperator(s.Rule.Conjunction), result, s.Node)
	}
	return result
}

// Grouped folds the steps with an accumulator: an AND step appends to it,
// an OR step collapses everything accumulated so far into one OR group.
// A, B(AND), C(OR), D(AND) becomes (A OR B OR C) AND D.
// It returns nil for an empty plan.
func (p Plan) Grouped() Visitable {
	switch len(p.steps) {
	case 0:
		return nil
	case 1:
		return p.steps[0].Node
	}

	nodes := make([]Visitable, 0, len(p.steps))
	allAnd := true
	for i, s := range p.steps {
		nodes = append(nodes, s.Node)
		if i > 0 && !s.Rule.Conjunction.IsAnd() {
			allAnd = false
		}
	}
	if allAnd {
		return And(nodes...)
	}

	acc := []Visitable{nodes[0]}
	for i := 1; i < len(nodes); i++ {
		if p.steps[i].Rule.Conjunction.IsAnd() {
			acc = append(acc, nodes[i])
			continue
		}
		group := make([]Visitable, 0, len(acc)+1)
		group = append(group, acc...)
		group = append(group, nodes[i])
		acc = []Visitable{Or(group...)}
	}
	if len(acc) == 1 {
		return acc[0]
	}
	return And(acc...)
}

func conjunctionOperator(c rule.Conjunction) operators.Operator {
	if c.IsAnd() {
		return operators.OperatorAnd
	}
	return operators.OperatorOr
}
