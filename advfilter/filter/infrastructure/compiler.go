package filter

import (
	"time"

	"github.com/pkg/errors"

	f "github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/operators"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/rule"
)

const (
	DropEmptyField          = "empty field"
	DropUnsupportedOperator = "unsupported operator"
)

// DroppedRule describes a rule left out of a compiled predicate. Index is
// the rule's position in the input list.
type DroppedRule struct {
	Index  int
	Rule   rule.Rule
	Reason string
}

type CompilerOption func(*Compiler)

// WithNow sets the clock used to resolve date presets.
func WithNow(now func() time.Time) CompilerOption {
	return func(c *Compiler) {
		c.now = now
	}
}

// WithDropObserver is notified of every rule BuildWhere leaves out.
func WithDropObserver(observer func(DroppedRule)) CompilerOption {
	return func(c *Compiler) {
		c.onDrop = observer
	}
}

type Compiler struct {
	now    func() time.Time
	onDrop func(DroppedRule)
}

func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		now:    time.Now,
		onDrop: func(DroppedRule) {},
	}
	for i := range opts {
		opts[i](c)
	}
	return c
}

// RuleToCondition lowers one rule. It returns nil for an operator it
// cannot lower.
func (c *Compiler) RuleToCondition(r rule.Rule) Where {
	v := NewWhereVisitor(c.now())
	if err := f.Leaf(r).Accept(v); err != nil {
		return nil
	}
	return v.Result()
}

// BuildWhere compiles a rule list. Rules with an empty field or an
// unsupported operator are dropped together with their conjunction. The
// remaining rules are grouped the accumulator way: AND appends to the
// current group, OR wraps everything so far in one OR. An empty result
// matches everything.
func (c *Compiler) BuildWhere(rules []rule.Rule) Where {
	index := 0
	plan := f.NewPlan(rules).Filter(func(s f.Step) bool {
		i := index
		index++
		switch {
		case s.Rule.Field == "":
			c.onDrop(DroppedRule{Index: i, Rule: s.Rule, Reason: DropEmptyField})
			return false
		case !operators.IsKnown(s.Rule.Operator):
			c.onDrop(DroppedRule{Index: i, Rule: s.Rule, Reason: DropUnsupportedOperator})
			return false
		}
		return true
	})

	tree := plan.Grouped()
	if tree == nil {
		return Where{}
	}
	where, err := c.Compile(tree)
	if err != nil || where == nil {
		return Where{}
	}
	return where
}

// Compile lowers any planned tree, for instance Plan.Sequential() when the
// predicate has to group exactly like the in-memory evaluator.
func (c *Compiler) Compile(tree f.Visitable) (Where, error) {
	if tree == nil {
		return Where{}, nil
	}
	v := NewWhereVisitor(c.now())
	if err := tree.Accept(v); err != nil {
		return nil, errors.Wrap(err, "compile filter tree")
	}
	return v.Result(), nil
}

var defaultCompiler = NewCompiler()

func BuildWhere(rules []rule.Rule) Where {
	return defaultCompiler.BuildWhere(rules)
}

func RuleToCondition(r rule.Rule) Where {
	return defaultCompiler.RuleToCondition(r)
}
