package maps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"googlemaps.github.io/maps"
)

func TestPlacesServiceSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("query"); q != "杭州 西湖" {
			t.Errorf("query = %q, want city folded in", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":[{"name":"西湖风景名胜区","formatted_address":"中国浙江省杭州市西湖区龙井路1号","types":["tourist_attraction","park"],"geometry":{"location":{"lat":30.2431,"lng":120.1503}}}]}`))
	}))
	defer srv.Close()

	s, err := NewPlacesService("k", 100, maps.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewPlacesService: %v", err)
	}
	got, err := s.Search(context.Background(), "西湖", "杭州")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d places", len(got))
	}
	if got[0].Location != "120.150300,30.243100" || got[0].Type != "tourist_attraction;park" {
		t.Fatalf("unexpected place %+v", got[0])
	}
}

func TestPlacesServiceRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OVER_QUERY_LIMIT","error_message":"You have exceeded your rate-limit","results":[]}`))
	}))
	defer srv.Close()

	s, _ := NewPlacesService("k", 100, maps.WithBaseURL(srv.URL))
	_, err := s.Search(context.Background(), "西湖", "杭州")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}
