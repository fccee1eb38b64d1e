package valuetype

import (
	"fmt"
	"strings"
	"time"

	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/datepreset"
)

const (
	minLiteralYear   = 1900
	maxLiteralYear   = 2100
	minLiteralLength = 8
)

// InferFromField picks the comparison kind from the live field value of a
// record. This is the in-memory evaluator's variant: a date-like field value
// makes the comparison a date comparison, whatever the filter value is.
func InferFromField(fieldValue, filterValue any, loc *time.Location) Kind {
	if _, ok := FieldDate(fieldValue, loc); ok {
		return KindDate
	}
	if _, ok := fieldValue.(bool); ok {
		return KindBoolean
	}
	if _, ok := ParseNumber(Normalize(fieldValue)); ok {
		if _, ok := ParseNumber(filterValue); ok {
			return KindNumber
		}
	}
	return KindString
}

// FieldDate returns the instant carried by a record value: a time.Time, or
// a string a date parser accepts. Numeric strings are never dates.
func FieldDate(fieldValue any, loc *time.Location) (time.Time, bool) {
	switch v := fieldValue.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case string:
		if _, numeric := ParseNumber(v); numeric {
			return time.Time{}, false
		}
		d := datepreset.ParseLiteral(v, loc)
		return d.Time(), d.IsValid()
	}
	return time.Time{}, false
}

// InferFromLiteral picks the comparison kind from the filter value alone.
// This is the compiler's variant; it cannot see stored values, so a string
// counts as a date only when it is a preset token or unmistakably a date.
func InferFromLiteral(value any, loc *time.Location) Kind {
	switch v := value.(type) {
	case bool:
		return KindBoolean
	case time.Time, *time.Time:
		return KindDate
	case string:
		if LiteralIsDate(v, loc) {
			return KindDate
		}
	}
	if _, ok := ParseNumber(value); ok {
		return KindNumber
	}
	return KindString
}

// LiteralIsDate guards against short numeric strings such as "1" being
// read as dates.
func LiteralIsDate(value string, loc *time.Location) bool {
	if datepreset.IsPreset(value) {
		return true
	}
	if !strings.ContainsAny(value, "-/T") || len(value) < minLiteralLength {
		return false
	}
	d := datepreset.ParseLiteral(value, loc)
	if !d.IsValid() {
		return false
	}
	year := d.Time().Year()
	return year >= minLiteralYear && year <= maxLiteralYear
}

// Normalize lower-cases and trims strings and widens numbers to float64.
// Dates and other values pass through.
func Normalize(v any) any {
	switch n := v.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(n))
	case bool, time.Time, nil:
		return v
	}
	if f, ok := numeric(v); ok {
		return f
	}
	return v
}

// Text renders a value for string comparison.
func Text(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return strings.ToLower(strings.TrimSpace(n))
	case float64:
		return formatNumber(n)
	}
	if f, ok := numeric(v); ok {
		return formatNumber(f)
	}
	return strings.ToLower(strings.TrimSpace(fmt.Sprint(v)))
}

func formatNumber(f float64) string {
	return strings.ToLower(fmt.Sprint(f))
}
