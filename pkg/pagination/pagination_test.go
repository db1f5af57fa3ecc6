package pagination

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Params
		page     int
		pageSize int
	}{
		{name: "zero values", in: Params{}, page: 1, pageSize: DefaultPageSize},
		{name: "negative page", in: Params{Page: -3, PageSize: 10}, page: 1, pageSize: 10},
		{name: "oversized", in: Params{Page: 2, PageSize: 5000}, page: 2, pageSize: MaxPageSize},
		{name: "in range", in: Params{Page: 4, PageSize: 12}, page: 4, pageSize: 12},
	}

	for _, tt := range tests {
		got := tt.in.Normalize()
		if got.Page != tt.page || got.PageSize != tt.pageSize {
			t.Fatalf("%s: got %+v", tt.name, got)
		}
	}
}

func TestOffset(t *testing.T) {
	if off := (Params{Page: 1, PageSize: 12}).Offset(); off != 0 {
		t.Fatalf("first page offset should be 0, got %d", off)
	}
	if off := (Params{Page: 3, PageSize: 12}).Offset(); off != 24 {
		t.Fatalf("expected offset 24, got %d", off)
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, Params{Page: 1, PageSize: 3}, 7)
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", page.TotalPages)
	}
	if page.TotalItems != 7 {
		t.Fatalf("expected 7 total items, got %d", page.TotalItems)
	}

	empty := NewPage[int](nil, Params{Page: 9, PageSize: 3}, 7)
	if empty.Items == nil || len(empty.Items) != 0 {
		t.Fatalf("out-of-range page should serialize an empty slice, got %#v", empty.Items)
	}
}
