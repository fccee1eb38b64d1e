package filter

import (
	"time"

	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/operators"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/rule"
)

type EvaluatorOption func(*Evaluator)

// WithNow sets the clock used to resolve date presets.
func WithNow(now func() time.Time) EvaluatorOption {
	return func(e *Evaluator) {
		e.now = now
	}
}

func WithRegistry(registry *operators.ComparisonRegistry) EvaluatorOption {
	return func(e *Evaluator) {
		e.registry = registry
	}
}

// Evaluator is the in-memory backend. It is safe for concurrent use as
// long as the registry is not modified.
type Evaluator struct {
	now      func() time.Time
	registry *operators.ComparisonRegistry
}

func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		now:      time.Now,
		registry: operators.NewDefaultRegistry(),
	}
	for i := range opts {
		opts[i](e)
	}
	return e
}

// MatchesRule evaluates a single rule against record.
func (e *Evaluator) MatchesRule(record any, r rule.Rule) bool {
	return e.evaluate(record, Leaf(r), e.now())
}

// Matches folds the rules left to right in their given order. An empty
// rule list matches every record.
func (e *Evaluator) Matches(record any, rules []rule.Rule) bool {
	tree := NewPlan(rules).Sequential()
	if tree == nil {
		return true
	}
	return e.evaluate(record, tree, e.now())
}

// MatchesTree evaluates an arbitrary planned tree, for instance
// Plan.Grouped(), against record.
func (e *Evaluator) MatchesTree(record any, tree Visitable) bool {
	if tree == nil {
		return true
	}
	return e.evaluate(record, tree, e.now())
}

func (e *Evaluator) evaluate(record any, tree Visitable, now time.Time) bool {
	v := NewEvaluateVisitor(record, now, e.registry)
	if err := tree.Accept(v); err != nil {
		return false
	}
	result, err := v.Result()
	if err != nil {
		return false
	}
	return result
}

// Apply keeps the records matching rules, in their original order. With no
// rules the input slice itself is returned.
func Apply[T any](e *Evaluator, records []T, rules []rule.Rule) []T {
	if len(rules) == 0 {
		return records
	}
	tree := NewPlan(rules).Sequential()
	now := e.now()
	result := make([]T, 0, len(records))
	for _, r := range records {
		if e.evaluate(r, tree, now) {
			result = append(result, r)
		}
	}
	return result
}

var defaultEvaluator = NewEvaluator()

// ApplyFilters runs Apply with the default evaluator and the system clock.
func ApplyFilters[T any](records []T, rules []rule.Rule) []T {
	return Apply(defaultEvaluator, records, rules)
}

// MatchesFilters runs Matches with the default evaluator.
func MatchesFilters(record any, rules []rule.Rule) bool {
	return defaultEvaluator.Matches(record, rules)
}
