package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestPickDestinationPhoto(t *testing.T) {
	photos := []unsplashPhoto{
		{Description: "Portrait of a woman in Paris"},
		{AltDescription: "croissant on a plate"},
		{AltDescription: "Eiffel Tower at dusk", Tags: []unsplashTag{{Title: "landmark"}}},
	}
	photos[0].URLs.Regular = "https://img/portrait"
	photos[1].URLs.Regular = "https://img/food"
	photos[2].URLs.Regular = "https://img/tower"

	if got := pickDestinationPhoto(photos); got != "https://img/tower" {
		t.Errorf("expected travel photo, got %q", got)
	}
	if got := pickDestinationPhoto(photos[:2]); got != "https://img/food" {
		t.Errorf("expected first usable photo when none mention travel terms, got %q", got)
	}
	if got := pickDestinationPhoto(photos[:1]); got != "" {
		t.Errorf("people shots must be skipped, got %q", got)
	}
}

func TestPickDestinationPhoto_MatchesWholeWords(t *testing.T) {
	photos := []unsplashPhoto{
		{AltDescription: "Calm surface of the Seine, modeled on old town postcards"},
		{AltDescription: "Close-up face of a street performer"},
	}
	photos[0].URLs.Regular = "https://img/seine"
	photos[1].URLs.Regular = "https://img/performer"

	if got := pickDestinationPhoto(photos); got != "https://img/seine" {
		t.Errorf("surface/modeled must not count as people terms, got %q", got)
	}
	if !mentionsAny("walking through the old town", travelTerms) {
		t.Error("multi-word travel terms should match")
	}
	if mentionsAny("a user interface mockup", excludedTerms) {
		t.Error("interface must not match face")
	}
}

func TestUnsplashImageService_FallsThroughQueries(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Client-ID key" {
			t.Errorf("missing client id header")
		}
		q := r.URL.Query().Get("query")
		queries = append(queries, q)
		if q == "Paris landmark" {
			w.Write([]byte(`{"results":[{"id":"1","alt_description":"aerial view of the city","urls":{"regular":"https://img/paris"}}]}`))
			return
		}
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	svc := NewUnsplashImageService("key", srv.URL, time.Second, zap.NewNop())
	got := svc.DestinationImage(context.Background(), "Paris", "FR")
	if got == nil || *got != "https://img/paris" {
		t.Fatalf("expected image from second query, got %v", got)
	}
	if len(queries) != 2 || queries[0] != "Paris FR skyline" {
		t.Errorf("unexpected queries %v", queries)
	}
}

func TestUnsplashImageService_NoImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	if got := NewUnsplashImageService("key", srv.URL, time.Second, zap.NewNop()).DestinationImage(context.Background(), "Paris", "FR"); got != nil {
		t.Errorf("expected nil, got %q", *got)
	}
	if got := NewUnsplashImageService("key", srv.URL, time.Second, zap.NewNop()).DestinationImage(context.Background(), "", "FR"); got != nil {
		t.Error("empty city must not search")
	}
}
