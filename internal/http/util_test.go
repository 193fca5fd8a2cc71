package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseFilterBody_SplitsKnownKeysFromFilters(t *testing.T) {
	body := `{"page":2,"limit":10,"title":"Petro","sort_by":"total_debt","sort_direction":"desc","identification":"1234","mpz":50}`
	req := httptest.NewRequest(http.MethodPost, "/debtor/api/v1/filter", strings.NewReader(body))

	parsed, err := parseFilterBody(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsed.Page != 2 || parsed.Limit != 10 {
		t.Fatalf("expected page=2 limit=10, got %d/%d", parsed.Page, parsed.Limit)
	}
	if parsed.Title != "Petro" || parsed.SortBy != "total_debt" || parsed.SortDirection != "desc" {
		t.Fatalf("unexpected paging keys: %+v", parsed)
	}
	if _, ok := parsed.Filters["identification"]; !ok {
		t.Fatal("expected identification to remain a filter field")
	}
	if _, ok := parsed.Filters["page"]; ok {
		t.Fatal("page must not leak into filter fields")
	}
}

func TestParseFilterBody_EmptyBodyUsesDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/debtor/api/v1/filter", strings.NewReader(""))

	parsed, err := parseFilterBody(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Page != 1 || parsed.Limit != 16 {
		t.Fatalf("expected defaults page=1 limit=16, got %d/%d", parsed.Page, parsed.Limit)
	}
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/debtor/api/v1/info/42", nil)
	id, err := pathID(req, "/debtor/api/v1/info/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}

	req = httptest.NewRequest(http.MethodGet, "/debtor/api/v1/info/-1", nil)
	if _, err := pathID(req, "/debtor/api/v1/info/"); err == nil {
		t.Fatal("expected error for non-positive id")
	}
}

func TestActorFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/debtor/api/v1/filter", nil)
	req.Header.Set("X-User-Id", "12")
	req.RemoteAddr = "10.0.0.5:39112"

	actor := actorFromRequest(req)
	if actor.UID == nil || *actor.UID != 12 {
		t.Fatalf("expected uid 12, got %+v", actor.UID)
	}
	if actor.ClientAddr != "10.0.0.5" {
		t.Fatalf("expected bare host, got %q", actor.ClientAddr)
	}

	// no header means anonymous, not an error
	req = httptest.NewRequest(http.MethodPost, "/debtor/api/v1/filter", nil)
	actor = actorFromRequest(req)
	if actor.UID != nil {
		t.Fatal("expected nil uid without X-User-Id")
	}
}
