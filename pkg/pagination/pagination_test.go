package pagination

import "testing"

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name             string
		page, limit      int
		total            int64
		pages            int
		hasPrev, hasNext bool
	}{
		{"middle page", 2, 20, 45, 3, true, true},
		{"last page", 3, 20, 45, 3, true, false},
		{"first page", 1, 20, 45, 3, false, true},
		{"exact fit", 1, 50, 50, 1, false, false},
		{"empty", 1, 20, 0, 0, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			if p.TotalPages != tc.pages {
				t.Fatalf("expected %d pages, got %d", tc.pages, p.TotalPages)
			}
			if p.HasPrev != tc.hasPrev || p.HasNext != tc.hasNext {
				t.Fatalf("expected prev=%v next=%v, got prev=%v next=%v", tc.hasPrev, tc.hasNext, p.HasPrev, p.HasNext)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	q := ListQuery{Page: 0, Limit: 35, Search: "rice"}.Normalize()
	if q.Page != 1 || q.Limit != DefaultLimit || q.Search != "rice" {
		t.Fatalf("unexpected normalized query %+v", q)
	}

	q = ListQuery{Page: 4, Limit: 200}.Normalize()
	if q.Page != 4 || q.Limit != 200 {
		t.Fatalf("valid query must be kept, got %+v", q)
	}
	if q.Offset() != 600 {
		t.Fatalf("expected offset 600, got %d", q.Offset())
	}
}

func TestTruncate(t *testing.T) {
	items := []int{1, 2, 3, 4}
	if got := Truncate(items, 3); len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	if got := Truncate(items, 0); len(got) != 4 {
		t.Fatalf("zero limit must not truncate")
	}
}
