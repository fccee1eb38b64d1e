package datepreset

import "time"

// Date is the outcome of resolving a filter value: either an instant or
// the invalid-date sentinel. Comparisons against an invalid Date never match.
type Date struct {
	t     time.Time
	valid bool
}

func Valid(t time.Time) Date {
	return Date{t: t, valid: true}
}

func Invalid() Date {
	return Date{}
}

func (d Date) IsValid() bool {
	return d.valid
}

// Time returns the resolved instant, or the zero time for an invalid Date.
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) String() string {
	if !d.valid {
		return "Invalid Date"
	}
	return d.t.Format(time.RFC3339)
}
