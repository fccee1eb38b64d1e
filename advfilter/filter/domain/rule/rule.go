package rule

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/operators"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Conjunction string

const (
	And Conjunction = "AND"
	Or  Conjunction = "OR"
)

// IsAnd is true only for the exact AND value; anything else combines as OR.
func (c Conjunction) IsAnd() bool {
	return c == And
}

// Rule is one "field operator value" clause. Conjunction says how the
// rule combines with everything before it and is ignored on the first rule.
type Rule struct {
	Field       string             `json:"field"`
	Operator    operators.Operator `json:"operator"`
	Value       any                `json:"value"`
	Conjunction Conjunction        `json:"conjunction"`
}

func (r Rule) String() string {
	return fmt.Sprintf("%s %s %s %v", r.Conjunction, r.Field, r.Operator, r.Value)
}

// Parse decodes a JSON array of rules. A malformed payload is not an
// error: it means "no rules".
func Parse(raw string) []Rule {
	if raw == "" {
		return []Rule{}
	}
	var items []any
	if err := json.UnmarshalFromString(raw, &items); err != nil {
		return []Rule{}
	}
	return Decode(items)
}

// Decode converts an already-decoded JSON array. Entries that are not
// objects are skipped.
func Decode(items []any) []Rule {
	rules := make([]Rule, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rules = append(rules, Rule{
			Field:       str(obj["field"]),
			Operator:    operators.Operator(str(obj["operator"])),
			Value:       obj["value"],
			Conjunction: Conjunction(str(obj["conjunction"])),
		})
	}
	return rules
}

// DecodeAny accepts either a JSON string or a decoded array, as request
// bodies carry rules in both shapes.
func DecodeAny(payload any) []Rule {
	switch p := payload.(type) {
	case string:
		return Parse(p)
	case []any:
		return Decode(p)
	case []Rule:
		return p
	}
	return []Rule{}
}

func Encode(rules []Rule) (string, error) {
	return json.MarshalToString(rules)
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
