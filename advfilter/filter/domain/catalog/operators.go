package catalog

import (
	op "github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/operators"
)

type OperatorInfo struct {
	Operator op.Operator `json:"operator"`
	Label    string      `json:"label"`
}

type compatibility struct {
	OperatorInfo
	types []FieldType
}

var (
	allTypes   = []FieldType{FieldText, FieldNumber, FieldDate, FieldSelect, FieldBoolean}
	textOnly   = []FieldType{FieldText}
	ordered    = []FieldType{FieldNumber, FieldDate}
	nonBoolean = []FieldType{FieldText, FieldNumber, FieldDate, FieldSelect}
)

// Table order is the order operators are offered in.
var compatibilityTable = []compatibility{
	{OperatorInfo{op.OperatorEquals, "Equals"}, allTypes},
	{OperatorInfo{op.OperatorNotEquals, "Does not equal"}, allTypes},
	{OperatorInfo{op.OperatorContains, "Contains"}, textOnly},
	{OperatorInfo{op.OperatorNotContains, "Does not contain"}, textOnly},
	{OperatorInfo{op.OperatorStartsWith, "Starts with"}, textOnly},
	{OperatorInfo{op.OperatorEndsWith, "Ends with"}, textOnly},
	{OperatorInfo{op.OperatorGt, "Greater than"}, ordered},
	{OperatorInfo{op.OperatorGte, "Greater than or equal"}, ordered},
	{OperatorInfo{op.OperatorLt, "Less than"}, ordered},
	{OperatorInfo{op.OperatorLte, "Less than or equal"}, ordered},
	{OperatorInfo{op.OperatorIsNull, "Is empty"}, nonBoolean},
	{OperatorInfo{op.OperatorIsNotNull, "Is not empty"}, nonBoolean},
}

// OperatorsFor returns the operators applicable to a field type. An unknown
// type yields an empty list.
func OperatorsFor(fieldType FieldType) []OperatorInfo {
	result := []OperatorInfo{}
	for _, row := range compatibilityTable {
		if contains(row.types, fieldType) {
			result = append(result, row.OperatorInfo)
		}
	}
	return result
}

func Compatible(operator op.Operator, fieldType FieldType) bool {
	for _, row := range compatibilityTable {
		if row.Operator == operator {
			return contains(row.types, fieldType)
		}
	}
	return false
}

func contains(types []FieldType, t FieldType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
