package catalog

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/operators"
)

type FieldType string

const (
	FieldText    FieldType = "text"
	FieldNumber  FieldType = "number"
	FieldDate    FieldType = "date"
	FieldSelect  FieldType = "select"
	FieldBoolean FieldType = "boolean"
)

type Option struct {
	Value string `yaml:"value" json:"value" validate:"required"`
	Label string `yaml:"label" json:"label" validate:"required"`
}

// FieldDefinition describes one filterable field of an entity. Key is a
// dotted path such as "owner.name".
type FieldDefinition struct {
	Key     string    `yaml:"key" json:"key" validate:"required"`
	Label   string    `yaml:"label" json:"label" validate:"required"`
	Type    FieldType `yaml:"type" json:"type" validate:"required,oneof=text number date select boolean"`
	Options []Option  `yaml:"options,omitempty" json:"options,omitempty" validate:"required_if=Type select,dive"`
}

// Catalog maps an entity type to its field list.
type Catalog map[string][]FieldDefinition

var validate = validator.New()

// Validate reports every malformed definition at once. An invalid catalog
// is a programming error, not user input.
func (c Catalog) Validate() error {
	var result *multierror.Error
	for _, entity := range c.Entities() {
		seen := make(map[string]struct{}, len(c[entity]))
		for i, field := range c[entity] {
			if err := validate.Struct(field); err != nil {
				result = multierror.Append(result, errors.Wrapf(err, "entity %q field #%d", entity, i))
				continue
			}
			if _, dup := seen[field.Key]; dup {
				result = multierror.Append(result, fmt.Errorf("entity %q: duplicate field key %q", entity, field.Key))
			}
			seen[field.Key] = struct{}{}
		}
	}
	return result.ErrorOrNil()
}

func (c Catalog) Entities() []string {
	entities := make([]string, 0, len(c))
	for entity := range c {
		entities = append(entities, entity)
	}
	sort.Strings(entities)
	return entities
}

// Fields returns the field list of an entity, or nil for an unknown entity.
func (c Catalog) Fields(entity string) []FieldDefinition {
	return c[entity]
}

func (c Catalog) Field(entity, key string) (FieldDefinition, bool) {
	for _, field := range c[entity] {
		if field.Key == key {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// Merge returns a copy of c with the entities of other replacing or
// extending its own.
func (c Catalog) Merge(other Catalog) Catalog {
	merged := make(Catalog, len(c)+len(other))
	for entity, fields := range c {
		merged[entity] = fields
	}
	for entity, fields := range other {
		merged[entity] = fields
	}
	return merged
}

// Operators lists the operators compatible with the field's type.
func (f FieldDefinition) Operators() []OperatorInfo {
	return OperatorsFor(f.Type)
}

// Allows reports whether op may be applied to the field. The engine itself
// never checks this; it is offered to rule builders.
func (f FieldDefinition) Allows(op operators.Operator) bool {
	return Compatible(op, f.Type)
}
