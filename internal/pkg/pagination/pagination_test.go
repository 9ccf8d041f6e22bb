package pagination

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{-3, -1, 1, 10},
		{2, 25, 2, 25},
		{1, 1000, 1, 100},
	}
	for _, c := range cases {
		got := Normalize(c.page, c.limit)
		if got.Page != c.wantPage || got.Limit != c.wantLimit {
			t.Fatalf("Normalize(%d,%d) = %+v", c.page, c.limit, got)
		}
	}
}

func TestOffset(t *testing.T) {
	if off := Normalize(3, 10).Offset(); off != 20 {
		t.Fatalf("expected offset 20, got %d", off)
	}
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(Normalize(2, 10), 25)
	if m.CurrentPage != 2 || m.PerPage != 10 || m.Total != 25 || m.TotalPages != 3 {
		t.Fatalf("unexpected meta %+v", m)
	}

	empty := NewMeta(Normalize(1, 10), 0)
	if empty.TotalPages != 0 {
		t.Fatalf("expected 0 pages for empty set, got %d", empty.TotalPages)
	}
}
