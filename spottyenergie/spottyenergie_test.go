package spottyenergie

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/angas/stromradar/types"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.RequestURI()
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &path
}

func vienna(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("Europe/Vienna")
	if err != nil {
		t.Fatalf("loading location: %v", err)
	}
	return loc
}

func TestGetPriceQuotes(t *testing.T) {
	body := `[
		{"from": "2025-01-01T00:00:00+01:00", "price": 10.5},
		{"from": "2025-01-01T00:15:00+01:00", "price": -0.25, "to": "ignored"}
	]`
	srv, path := newServer(t, http.StatusOK, body)

	s := New(srv.URL, "MARKET", "secret", vienna(t), time.Second)
	quotes, err := s.GetPriceQuotes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *path != "/api/prices/MARKET/secret?timezone=at" {
		t.Errorf("got request %q", *path)
	}
	if len(quotes) != 2 {
		t.Fatalf("got %d quotes, wanted 2", len(quotes))
	}
	expected := time.Date(2024, time.December, 31, 23, 15, 0, 0, time.UTC)
	if !quotes[1].From.Equal(expected) || quotes[1].Price != -0.25 {
		t.Errorf("got %+v, wanted %v / -0.25", quotes[1], expected)
	}
}

func TestGetPriceQuotesErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   error
	}{
		{"server error", http.StatusInternalServerError, "oops", types.ErrRemoteUnavailable},
		{"not found", http.StatusNotFound, "", types.ErrRemoteUnavailable},
		{"invalid json", http.StatusOK, "[{", types.ErrMalformedData},
		{"not an array", http.StatusOK, `{"from": "x"}`, types.ErrMalformedData},
		{"missing from", http.StatusOK, `[{"price": 1}]`, types.ErrMalformedData},
		{"missing price", http.StatusOK, `[{"from": "2025-01-01T00:00:00Z"}]`, types.ErrMalformedData},
		{"price as string", http.StatusOK, `[{"from": "2025-01-01T00:00:00Z", "price": "1"}]`, types.ErrMalformedData},
		{"bad timestamp", http.StatusOK, `[{"from": "yesterday", "price": 1}]`, types.ErrMalformedData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, tt.status, tt.body)
			s := New(srv.URL, "MARKET", "secret", vienna(t), time.Second)
			quotes, err := s.GetPriceQuotes(context.Background())
			if !errors.Is(err, tt.kind) {
				t.Errorf("got error %v, wanted %v", err, tt.kind)
			}
			if quotes != nil {
				t.Errorf("got partial quotes %v", quotes)
			}
		})
	}
}

func TestGetPriceQuotesUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	s := New(srv.URL, "MARKET", "top-secret-key", vienna(t), time.Second)
	_, err := s.GetPriceQuotes(context.Background())
	if !errors.Is(err, types.ErrRemoteUnavailable) {
		t.Fatalf("got error %v, wanted %v", err, types.ErrRemoteUnavailable)
	}
	if strings.Contains(err.Error(), "top-secret-key") {
		t.Errorf("error leaks the api key: %v", err)
	}
}

func TestGetPriceQuotesTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	s := New(srv.URL, "MARKET", "secret", vienna(t), 50*time.Millisecond)
	_, err := s.GetPriceQuotes(context.Background())
	if !errors.Is(err, types.ErrRemoteUnavailable) {
		t.Errorf("got error %v, wanted %v", err, types.ErrRemoteUnavailable)
	}
}
