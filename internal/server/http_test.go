package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"binger-server/internal/model"
	"binger-server/internal/server"
	"binger-server/pkg/cache"
	"binger-server/pkg/signer"
)

// stubCatalog returns fixed data so routing can be exercised without
// network access or a database.
type stubCatalog struct {
	show     *model.Show
	trending []model.Show
}

func (s *stubCatalog) FetchShow(ctx context.Context, id int64) (*model.Show, error) {
	if s.show == nil {
		return nil, errors.New("not found")
	}
	return s.show, nil
}

func (s *stubCatalog) FetchSeason(ctx context.Context, showID int64, number int) (*model.Season, error) {
	return nil, errors.New("not found")
}

func (s *stubCatalog) SearchShows(ctx context.Context, query string) ([]model.Show, error) {
	return nil, nil
}

func (s *stubCatalog) FetchSimilar(ctx context.Context, showID int64) ([]model.Show, error) {
	return nil, nil
}

func (s *stubCatalog) DiscoverByGenre(ctx context.Context, genreID int64, page int) ([]model.Show, error) {
	return nil, nil
}

func (s *stubCatalog) Trending(ctx context.Context) ([]model.Show, error) {
	return s.trending, nil
}

func newTestRouter(cat *stubCatalog) http.Handler {
	sg := signer.NewHMAC([]byte("test-secret"))
	s := server.New(nil, cache.NewInMemory(), sg, cat, nil)
	return s.Router()
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubCatalog{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %s", ct)
	}
}

func TestUserScopedRoutesRequireFingerprint(t *testing.T) {
	r := newTestRouter(&stubCatalog{})
	for _, path := range []string{"/watches", "/progress", "/watchlist", "/favorites", "/ratings", "/calendar"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s without X-Fingerprint: expected 401, got %d", path, w.Code)
		}
	}
}

func TestRecommendationsIsPublicAndNeverFails(t *testing.T) {
	r := newTestRouter(&stubCatalog{trending: []model.Show{{ID: 1, Name: "Hot"}}})
	req := httptest.NewRequest(http.MethodGet, "/recommendations?text=hello", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Items []json.RawMessage `json:"items"`
		Count int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Count != 1 || len(body.Items) != 1 {
		t.Fatalf("expected one trending suggestion, got %+v", body)
	}
}

func TestShowDetailUsesCatalog(t *testing.T) {
	overview := "A chemistry teacher."
	r := newTestRouter(&stubCatalog{show: &model.Show{ID: 1396, Name: "Breaking Bad", Overview: &overview, EpisodeTotal: 62}})
	req := httptest.NewRequest(http.MethodGet, "/shows/1396", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestShowDetailUpstreamFailure(t *testing.T) {
	r := newTestRouter(&stubCatalog{})
	req := httptest.NewRequest(http.MethodGet, "/shows/1396", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 when the catalog is unreachable, got %d", w.Code)
	}
}

func TestPaginatedRoutesRejectBadCursor(t *testing.T) {
	r := newTestRouter(&stubCatalog{})
	for _, path := range []string{
		"/watches?cursor=not-a-cursor",
		"/watchlist?cursor=not-a-cursor",
		"/favorites?cursor=not-a-cursor",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("X-Fingerprint", "device-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 for a forged cursor, got %d", path, w.Code)
		}
	}
}

func TestCorrelationIDHeader(t *testing.T) {
	r := newTestRouter(&stubCatalog{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Correlation-Id") == "" {
		t.Fatal("expected a correlation id on the response")
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Correlation-Id", "caller-supplied")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Correlation-Id"); got != "caller-supplied" {
		t.Fatalf("expected caller correlation id echoed, got %q", got)
	}
}

func TestPreflight(t *testing.T) {
	r := newTestRouter(&stubCatalog{})
	req := httptest.NewRequest(http.MethodOptions, "/watches", nil)
	req.Header.Set("Origin", "https://binger.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin with no configured list, got %q", got)
	}
}
