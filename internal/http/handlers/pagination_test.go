package handlers

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"spacecrew/internal/domain"
)

var sortable = []string{"id", "name", "salary"}

func TestParsePageRequest(t *testing.T) {
	q := url.Values{}
	q.Set("page", "2")
	q.Set("size", "500")
	q.Add("sort", "name")
	q.Add("sort", "salary,DESC")

	req, err := parsePageRequest(q, sortable)
	if err != nil {
		t.Fatalf("parsePageRequest returned error: %v", err)
	}
	if req.Page != 2 || req.Size != domain.MaxPageSize {
		t.Fatalf("unexpected paging: %+v", req)
	}
	want := []domain.Sort{{Field: "name", Direction: domain.Asc}, {Field: "salary", Direction: domain.Desc}}
	if len(req.Sort) != 2 || req.Sort[0] != want[0] || req.Sort[1] != want[1] {
		t.Fatalf("sort = %+v, want %+v", req.Sort, want)
	}
}

func TestParsePageRequestDefaults(t *testing.T) {
	req, err := parsePageRequest(url.Values{}, sortable)
	if err != nil {
		t.Fatalf("parsePageRequest returned error: %v", err)
	}
	if req.Page != 0 || req.Size != domain.DefaultPageSize || len(req.Sort) != 0 {
		t.Fatalf("unexpected defaults: %+v", req)
	}
}

func TestParsePageRequestRejectsUnknownSortField(t *testing.T) {
	q := url.Values{"sort": {"password,asc"}}
	if _, err := parsePageRequest(q, sortable); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParsePageRequestRejectsOverflowingPage(t *testing.T) {
	q := url.Values{"page": {"922337203685477581"}, "size": {"10"}}
	if _, err := parsePageRequest(q, sortable); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	q = url.Values{"page": {"922337203685477579"}, "size": {"10"}}
	req, err := parsePageRequest(q, sortable)
	if err != nil {
		t.Fatalf("largest addressable page rejected: %v", err)
	}
	if req.Offset() < 0 {
		t.Fatalf("offset overflowed: %d", req.Offset())
	}
}

func TestNewPageResponseLinks(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/space-crew-members?name=Alex&page=1&size=10", nil)
	p := domain.Page[int]{Content: []int{1}, Number: 1, Size: 10, TotalElements: 35}

	resp := newPageResponse(r, "", p)
	if resp.Page.TotalPages != 4 {
		t.Fatalf("totalPages = %d", resp.Page.TotalPages)
	}
	cases := map[string]string{
		"self":  resp.Links.Self,
		"first": resp.Links.First,
		"last":  resp.Links.Last,
		"next":  resp.Links.Next,
		"prev":  resp.Links.Prev,
	}
	wants := map[string]string{
		"self":  "http://example.com/api/space-crew-members?name=Alex&page=1&size=10",
		"first": "http://example.com/api/space-crew-members?name=Alex&page=0&size=10",
		"last":  "http://example.com/api/space-crew-members?name=Alex&page=3&size=10",
		"next":  "http://example.com/api/space-crew-members?name=Alex&page=2&size=10",
		"prev":  "http://example.com/api/space-crew-members?name=Alex&page=0&size=10",
	}
	for k, want := range wants {
		if cases[k] != want {
			t.Fatalf("%s link = %q, want %q", k, cases[k], want)
		}
	}
}
