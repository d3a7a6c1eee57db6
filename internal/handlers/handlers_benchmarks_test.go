package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"shortlinks/internal/domain/models"

	"github.com/go-chi/chi/v5"
)

func BenchmarkShortenURL(b *testing.B) {
	controller, _ := exampleController()
	r := chi.NewRouter()
	r.Post("/shorturls", controller.ShortenURL())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		body := bytes.NewBufferString(`{"url":"https://example.com/` + strconv.Itoa(i) + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/shorturls", body)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}

func BenchmarkRedirect(b *testing.B) {
	controller, s := exampleController()
	if _, err := s.Create(models.CreateRequest{URL: "https://example.com", Shortcode: "bench"}); err != nil {
		b.Fatal(err)
	}
	r := chi.NewRouter()
	r.Get("/{shortcode}", controller.Redirect())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/bench", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusFound {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}

func BenchmarkGetLinkStats(b *testing.B) {
	controller, s := exampleController()
	if _, err := s.Create(models.CreateRequest{URL: "https://example.com", Shortcode: "bench"}); err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		_ = s.RecordClick("bench", "direct", models.LocationLocal)
	}
	r := chi.NewRouter()
	r.Get("/shorturls/{shortcode}", controller.GetLinkStats())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/shorturls/bench", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}
