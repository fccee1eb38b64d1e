package filter

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/rule"
)

var ErrKeyNotFound = errors.New("key not found")

// Record is anything that can answer a field lookup by key.
type Record interface {
	Get(string) (any, error)
}

// Resolve walks a dotted path into record. A Record is asked for the whole
// path first, so accessors may register "owner.name" directly. A missing
// segment anywhere along the way resolves to nil.
func Resolve(record any, path string) any {
	if r, ok := record.(Record); ok {
		if v, err := r.Get(path); err == nil {
			return unwrap(v)
		}
	}
	current := record
	for _, key := range strings.Split(path, ".") {
		next, ok := getFieldValue(current, key)
		if !ok {
			return nil
		}
		current = next
	}
	return unwrap(current)
}

func getFieldValue(state any, field string) (any, bool) {
	switch s := state.(type) {
	case nil:
		return nil, false
	case Record:
		v, err := s.Get(field)
		return v, err == nil
	case map[string]any:
		v, found := s[field]
		return v, found
	}
	v := reflect.ValueOf(state)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		item := v.MapIndex(reflect.ValueOf(field).Convert(v.Type().Key()))
		if !item.IsValid() {
			return nil, false
		}
		return item.Interface(), true
	case reflect.Struct:
		return structField(v, field)
	}
	return nil, false
}

// structField matches the json tag first, then the Go field name.
func structField(v reflect.Value, field string) (any, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("json")
		if tag != "" {
			name, _, _ := strings.Cut(tag, ",")
			if name == field {
				return v.Field(i).Interface(), true
			}
		}
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Name == field {
			return v.Field(i).Interface(), true
		}
	}
	return nil, false
}

// unwrap turns typed nil pointers into nil and dereferences the rest, so
// optional struct fields behave like absent values.
func unwrap(value any) any {
	v := reflect.ValueOf(value)
	for v.IsValid() && v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}

// Accessors is an explicit per-entity field registry: field key to getter.
// It avoids reflection for typed records.
type Accessors[T any] map[string]func(T) any

func (a Accessors[T]) Bind(value T) Record {
	return boundRecord[T]{accessors: a, value: value}
}

// Apply filters typed records through the accessors. With no rules the
// input slice is returned as is.
func (a Accessors[T]) Apply(e *Evaluator, records []T, rules []rule.Rule) []T {
	if len(rules) == 0 {
		return records
	}
	result := make([]T, 0, len(records))
	for _, r := range records {
		if e.Matches(a.Bind(r), rules) {
			result = append(result, r)
		}
	}
	return result
}

type boundRecord[T any] struct {
	accessors Accessors[T]
	value     T
}

func (r boundRecord[T]) Get(key string) (any, error) {
	getter, ok := r.accessors[key]
	if !ok {
		return nil, fmt.Errorf("%w: \"%s\"", ErrKeyNotFound, key)
	}
	return getter(r.value), nil
}
