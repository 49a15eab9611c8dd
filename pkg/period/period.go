// Package period resolves named reporting periods to concrete date bounds.
package period

import (
	"fmt"
	"time"
)

// Token names a reporting period.
type Token string

const (
	Today      Token = "today"
	Yesterday  Token = "yesterday"
	ThisWeek   Token = "thisWeek"
	LastWeek   Token = "lastWeek"
	ThisMonth  Token = "thisMonth"
	LastMonth  Token = "lastMonth"
	ThisYear   Token = "thisYear"
	LastYear   Token = "lastYear"
	Last30Days Token = "last30days"
	Custom     Token = "custom"
)

// Tokens lists every token understood by Resolve, in menu order.
var Tokens = []Token{Today, Yesterday, ThisWeek, LastWeek, ThisMonth, LastMonth, ThisYear, LastYear, Last30Days, Custom}

// DateLayout is the wire format of dates in query strings and backend paths.
const DateLayout = "2006-01-02"

// Bounds is an inclusive [Start, End] pair.
type Bounds struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Resolve maps token to concrete bounds relative to now. It reports false for Custom,
// whose bounds are supplied by the caller. Unknown tokens resolve to Start = End = now.
func Resolve(token Token, now time.Time) (Bounds, bool) {
	switch token {
	case Today:
		return day(now), true
	case Yesterday:
		return day(now.AddDate(0, 0, -1)), true
	case ThisWeek:
		return week(now), true
	case LastWeek:
		return week(now.AddDate(0, 0, -7)), true
	case ThisMonth:
		return month(now.Year(), now.Month(), now.Location()), true
	case LastMonth:
		return month(now.Year(), now.Month()-1, now.Location()), true
	case ThisYear:
		return year(now.Year(), now.Location()), true
	case LastYear:
		return year(now.Year()-1, now.Location()), true
	case Last30Days:
		return Bounds{Start: now.AddDate(0, 0, -30), End: now}, true
	case Custom:
		return Bounds{}, false
	default:
		return Bounds{Start: now, End: now}, true
	}
}

// ParseToken validates s against the known tokens.
func ParseToken(s string) (Token, error) {
	for _, t := range Tokens {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("period: unknown token %q", s)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// endOfDay is the last nanosecond of t's calendar day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond)
}

func day(t time.Time) Bounds {
	return Bounds{Start: startOfDay(t), End: endOfDay(t)}
}

// week spans Monday through Sunday of the week containing t.
func week(t time.Time) Bounds {
	offset := (int(t.Weekday()) + 6) % 7
	monday := startOfDay(t).AddDate(0, 0, -offset)
	return Bounds{Start: monday, End: endOfDay(monday.AddDate(0, 0, 6))}
}

// month relies on time.Date normalisation, so m may be 0 for December of the previous year.
func month(y int, m time.Month, loc *time.Location) Bounds {
	first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	last := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, loc)
	return Bounds{Start: first, End: endOfDay(last)}
}

func year(y int, loc *time.Location) Bounds {
	return Bounds{
		Start: time.Date(y, time.January, 1, 0, 0, 0, 0, loc),
		End:   endOfDay(time.Date(y, time.December, 31, 0, 0, 0, 0, loc)),
	}
}
