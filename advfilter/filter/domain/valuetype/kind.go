package valuetype

// Kind is the comparison strategy chosen for a rule.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	}
	return "string"
}
