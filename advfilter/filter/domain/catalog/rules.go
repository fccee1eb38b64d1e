package catalog

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/rule"
)

func FieldTypes() []FieldType {
	result := make([]FieldType, len(allTypes))
	copy(result, allTypes)
	return result
}

func (t FieldType) IsValid() bool {
	return contains(allTypes, t)
}

// CheckRules reports rules that name a field the entity does not have or
// apply an operator its type does not accept. The engine evaluates such
// rules anyway; this is for rule builders that want to refuse them.
func (c Catalog) CheckRules(entity string, rules []rule.Rule) error {
	if _, ok := c[entity]; !ok {
		return fmt.Errorf("unknown entity %q", entity)
	}
	var result *multierror.Error
	for i, r := range rules {
		field, ok := c.Field(entity, r.Field)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("rule #%d: %s has no field %q", i, entity, r.Field))
			continue
		}
		if !field.Allows(r.Operator) {
			result = multierror.Append(result, fmt.Errorf("rule #%d: operator %q does not apply to %s field %q", i, r.Operator, field.Type, r.Field))
		}
	}
	return result.ErrorOrNil()
}
