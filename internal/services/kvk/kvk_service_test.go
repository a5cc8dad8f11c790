package kvk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmailDomainMatches(t *testing.T) {
	cases := []struct {
		email  string
		domain string
		want   bool
	}{
		{"anna@groenbedrijf.nl", "groenbedrijf.nl", true},
		{"Anna@Groenbedrijf.NL", "groenbedrijf.nl", true},
		{"anna@www.groenbedrijf.nl", "groenbedrijf.nl", true},
		{"anna@groenbedrijf.nl", "www.groenbedrijf.nl", true},
		{"anna@other.nl", "groenbedrijf.nl", false},
		{"anna@sub.groenbedrijf.nl", "groenbedrijf.nl", false},
		{"", "groenbedrijf.nl", false},
		{"anna@groenbedrijf.nl", "", false},
		{"no-at-sign", "groenbedrijf.nl", false},
		{"trailing@", "groenbedrijf.nl", false},
	}
	for _, c := range cases {
		if got := EmailDomainMatches(c.email, c.domain); got != c.want {
			t.Errorf("EmailDomainMatches(%q, %q) = %v, want %v", c.email, c.domain, got, c.want)
		}
	}
}

func TestIsKVKNumber(t *testing.T) {
	if !isKVKNumber("12345678") {
		t.Error("12345678 is a KVK number")
	}
	for _, s := range []string{"1234567", "123456789", "1234567a", "groen"} {
		if isKVKNumber(s) {
			t.Errorf("isKVKNumber(%q) should be false", s)
		}
	}
}

func TestSearch_DecodesRegistryResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "test-key" {
			t.Errorf("missing apikey header")
		}
		if r.URL.Query().Get("kvkNummer") != "12345678" {
			t.Errorf("expected kvkNummer query, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"resultaten":[{"kvkNummer":"12345678","naam":"Groenbedrijf BV","plaats":"Utrecht"}],"totaal":1}`))
	}))
	defer srv.Close()

	s := NewService("test-key", srv.URL, nil)
	got, err := s.Search(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Groenbedrijf BV" || got[0].KVKNumber != "12345678" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestSearch_NonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewService("test-key", srv.URL, nil)
	if _, err := s.Search(context.Background(), "groen"); err == nil {
		t.Error("expected error for non-200 registry response")
	}
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	s := NewService("test-key", "http://unused", nil)
	if _, err := s.Search(context.Background(), "  "); err == nil {
		t.Error("expected error for empty query")
	}
}
