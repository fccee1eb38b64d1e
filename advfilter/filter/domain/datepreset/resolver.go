package datepreset

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

type Token string

const (
	Today     Token = "today"
	Tomorrow  Token = "tomorrow"
	Yesterday Token = "yesterday"
	ThisWeek  Token = "this_week"
	LastWeek  Token = "last_week"
	NextWeek  Token = "next_week"
	ThisMonth Token = "this_month"
	LastMonth Token = "last_month"
	NextMonth Token = "next_month"
)

type Preset struct {
	Token Token  `json:"token"`
	Label string `json:"label"`
}

var presets = []Preset{
	{Today, "Today"},
	{Yesterday, "Yesterday"},
	{Tomorrow, "Tomorrow"},
	{ThisWeek, "This week"},
	{LastWeek, "Last week"},
	{NextWeek, "Next week"},
	{ThisMonth, "This month"},
	{LastMonth, "Last month"},
	{NextMonth, "Next month"},
}

// Presets lists the recognised tokens in display order.
func Presets() []Preset {
	result := make([]Preset, len(presets))
	copy(result, presets)
	return result
}

func IsPreset(value string) bool {
	_, ok := resolveToken(Token(value), time.Now())
	return ok
}

// Resolve interprets a filter value as a date relative to now. Preset
// tokens resolve to local midnight in now's location; anything else is
// parsed as a literal date. Unparseable input yields Invalid().
func Resolve(value any, now time.Time) Date {
	switch v := value.(type) {
	case time.Time:
		return Valid(v)
	case *time.Time:
		if v == nil {
			return Invalid()
		}
		return Valid(*v)
	case Token:
		return Resolve(string(v), now)
	case string:
		if t, ok := resolveToken(Token(v), now); ok {
			return Valid(t)
		}
		return ParseLiteral(v, now.Location())
	}
	return Invalid()
}

// ParseLiteral parses a literal date string in loc. Date-only strings
// resolve to midnight in loc.
func ParseLiteral(value string, loc *time.Location) Date {
	value = strings.TrimSpace(value)
	if value == "" {
		return Invalid()
	}
	t, err := dateparse.ParseIn(value, loc)
	if err != nil {
		return Invalid()
	}
	return Valid(t)
}

func resolveToken(token Token, now time.Time) (time.Time, bool) {
	today := StartOfDay(now)
	switch token {
	case Today:
		return today, true
	case Tomorrow:
		return today.AddDate(0, 0, 1), true
	case Yesterday:
		return today.AddDate(0, 0, -1), true
	case ThisWeek:
		return startOfWeek(today), true
	case LastWeek:
		return startOfWeek(today).AddDate(0, 0, -7), true
	case NextWeek:
		return startOfWeek(today).AddDate(0, 0, 7), true
	case ThisMonth:
		return startOfMonth(today, 0), true
	case LastMonth:
		return startOfMonth(today, -1), true
	case NextMonth:
		return startOfMonth(today, 1), true
	}
	return time.Time{}, false
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay is the last millisecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Weeks start on Sunday.
func startOfWeek(today time.Time) time.Time {
	y, m, d := today.Date()
	return time.Date(y, m, d-int(today.Weekday()), 0, 0, 0, 0, today.Location())
}

func startOfMonth(today time.Time, offset int) time.Time {
	y, m, _ := today.Date()
	return time.Date(y, m+time.Month(offset), 1, 0, 0, 0, 0, today.Location())
}
