package listing

import (
	"cmp"
	"testing"
)

type row struct {
	name  string
	stock int
}

var rowColumns = Columns[row]{
	"name":  func(a, b row) int { return cmp.Compare(a.name, b.name) },
	"stock": func(a, b row) int { return cmp.Compare(a.stock, b.stock) },
}

func TestSortToggle(t *testing.T) {
	tests := []struct {
		from   Sort
		column string
		want   Sort
	}{
		{Sort{}, "name", Sort{"name", Asc}},
		{Sort{"name", Asc}, "name", Sort{"name", Desc}},
		{Sort{"name", Desc}, "name", Sort{"name", Asc}},
		{Sort{"name", Desc}, "stock", Sort{"stock", Asc}},
	}
	for _, tt := range tests {
		if got := tt.from.Toggle(tt.column); got != tt.want {
			t.Fatalf("%+v toggle %s: expected %+v, got %+v", tt.from, tt.column, tt.want, got)
		}
	}
}

func TestSortRowsOnlyReordersLoadedPage(t *testing.T) {
	rows := []row{{"salt", 3}, {"rice", 9}, {"tea", 1}}

	got := SortRows(rows, Sort{"stock", Desc}, rowColumns)
	if got[0].name != "rice" || got[2].name != "tea" {
		t.Fatalf("unexpected order %+v", got)
	}
	if rows[0].name != "salt" {
		t.Fatalf("input slice was modified")
	}

	unchanged := SortRows(rows, Sort{"missing", Asc}, rowColumns)
	if unchanged[0].name != "salt" || len(unchanged) != 3 {
		t.Fatalf("unknown column must keep order, got %+v", unchanged)
	}
}

func TestParseSort(t *testing.T) {
	if got := ParseSort("-stock"); got != (Sort{"stock", Desc}) {
		t.Fatalf("unexpected %+v", got)
	}
	if got := ParseSort("name"); got != (Sort{"name", Asc}) {
		t.Fatalf("unexpected %+v", got)
	}
}
