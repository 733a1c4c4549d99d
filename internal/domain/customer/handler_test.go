package customer

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tourhub/tourhub-api/internal/pkg/filters"
)

func TestPageRequestFromQueryDefaultsPageSize(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/customers/paginated", nil)
	page := pageRequestFromQuery(r)
	if page.PageSize != filters.DefaultPageSize {
		t.Fatalf("page size = %d, want default %d", page.PageSize, filters.DefaultPageSize)
	}

	r = httptest.NewRequest(http.MethodGet, "/customers/paginated?page_size=0", nil)
	if got := pageRequestFromQuery(r).PageSize; got != 0 {
		t.Fatalf("explicit zero page size = %d, want 0", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/customers/paginated?page=2&page_size=25", nil)
	page = pageRequestFromQuery(r)
	if page.Page != 2 || page.PageSize != 25 {
		t.Fatalf("page request = %+v, want page 2 size 25", page)
	}
}

func TestDecodeFilterDefaultsPageSize(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/customers/search/paginated", nil)
	w := httptest.NewRecorder()
	f, ok := decodeFilter(w, r)
	if !ok {
		t.Fatal("decode of empty body failed")
	}
	if f.PageSize != filters.DefaultPageSize {
		t.Fatalf("page size = %d, want default %d", f.PageSize, filters.DefaultPageSize)
	}

	r = httptest.NewRequest(http.MethodPost, "/customers/search/paginated", strings.NewReader(`{"page_size": 0}`))
	w = httptest.NewRecorder()
	f, ok = decodeFilter(w, r)
	if !ok {
		t.Fatal("decode failed")
	}
	if f.PageSize != 0 {
		t.Fatalf("explicit zero page size = %d, want 0", f.PageSize)
	}
}
