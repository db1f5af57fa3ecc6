package validators

import (
	"net/http/httptest"
	"testing"

	"github.com/greenpharma/greenpharma-backend/pkg/pagination"
)

func TestParsePaginationDefaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/products", nil)
	params, err := ParsePagination(req, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Page != 1 || params.PageSize != 12 {
		t.Fatalf("unexpected params %+v", params)
	}
}

func TestParsePaginationReadsQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "/products?page=3&page_size=25", nil)
	params, err := ParsePagination(req, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Page != 3 || params.PageSize != 25 {
		t.Fatalf("unexpected params %+v", params)
	}
}

func TestParsePaginationRejectsOversizedPage(t *testing.T) {
	req := httptest.NewRequest("GET", "/products?page_size=101", nil)
	if _, err := ParsePagination(req, pagination.DefaultPageSize); err == nil {
		t.Fatal("expected error for page_size above the cap")
	}
}

func TestParseQueryIntRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest("GET", "/products?page=abc", nil)
	if _, err := ParseQueryInt(req, "page", 1, 1, 100); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}
