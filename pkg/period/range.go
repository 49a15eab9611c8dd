package period

import (
	"fmt"
	"time"
)

// Range is the date filter held by a list page. Selecting a non-custom token overwrites
// the bounds; selecting Custom keeps them editable.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Token Token     `json:"period"`
}

// NewRange resolves token against now.
func NewRange(token Token, now time.Time) Range {
	return Range{Token: Custom, Start: now, End: now}.WithToken(token, now)
}

// WithToken selects token. Custom leaves the current bounds untouched.
func (r Range) WithToken(token Token, now time.Time) Range {
	b, ok := Resolve(token, now)
	r.Token = token
	if ok {
		r.Start, r.End = b.Start, b.End
	}
	return r
}

// WithBounds sets caller-supplied bounds and switches the range to Custom.
func (r Range) WithBounds(start, end time.Time) Range {
	if end.Before(start) {
		start, end = end, start
	}
	r.Start, r.End, r.Token = start, end, Custom
	return r
}

// Bounds returns the inclusive bounds.
func (r Range) Bounds() Bounds {
	return Bounds{Start: r.Start, End: r.End}
}

// IsZero reports whether no bounds have been set.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// StartDate and EndDate format the bounds for query strings.
func (r Range) StartDate() string { return r.Start.Format(DateLayout) }
func (r Range) EndDate() string   { return r.End.Format(DateLayout) }

// Equal compares bounds and token.
func (r Range) Equal(o Range) bool {
	return r.Token == o.Token && r.Start.Equal(o.Start) && r.End.Equal(o.End)
}

func (r Range) String() string {
	return fmt.Sprintf("%s [%s .. %s]", r.Token, r.StartDate(), r.EndDate())
}

// ParseRange builds a range from query values: a token, or custom start/end dates.
// An empty token with no dates falls back to def.
func ParseRange(token, start, end string, def Token, now time.Time) (Range, error) {
	if token == "" && start == "" && end == "" {
		return NewRange(def, now), nil
	}
	if token == "" || Token(token) == Custom {
		s, err := parseDate(start, now)
		if err != nil {
			return Range{}, fmt.Errorf("period: start: %w", err)
		}
		e, err := parseDate(end, now)
		if err != nil {
			return Range{}, fmt.Errorf("period: end: %w", err)
		}
		return Range{}.WithBounds(startOfDay(s), endOfDay(e)), nil
	}
	t, err := ParseToken(token)
	if err != nil {
		return Range{}, err
	}
	return NewRange(t, now), nil
}

func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	return time.ParseInLocation(DateLayout, s, now.Location())
}
