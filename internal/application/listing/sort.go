package listing

import "slices"

// Direction is a sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is the client-side sort state of a table.
type Sort struct {
	Column string    `json:"column"`
	Dir    Direction `json:"dir"`
}

// Toggle returns the state after clicking column: the same column flips the
// direction, a different column starts ascending.
func (s Sort) Toggle(column string) Sort {
	if s.Column == column {
		if s.Dir == Asc {
			return Sort{Column: column, Dir: Desc}
		}
		return Sort{Column: column, Dir: Asc}
	}
	return Sort{Column: column, Dir: Asc}
}

// ParseSort reads "column" or "-column" (descending).
func ParseSort(s string) Sort {
	if s == "" {
		return Sort{}
	}
	if s[0] == '-' {
		return Sort{Column: s[1:], Dir: Desc}
	}
	return Sort{Column: s, Dir: Asc}
}

// Columns maps a column name to its comparison function.
type Columns[T any] map[string]func(a, b T) int

// SortRows returns a sorted copy of rows. It only orders what was loaded; it
// never fetches. Unknown columns leave the order unchanged.
func SortRows[T any](rows []T, s Sort, cols Columns[T]) []T {
	out := slices.Clone(rows)
	cmp, ok := cols[s.Column]
	if !ok {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if s.Dir == Desc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}
