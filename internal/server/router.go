package server

import (
	"net/http"
	"time"

	"binger-server/internal/catalog"
	"binger-server/internal/recommend"
	"binger-server/internal/repos"
	"binger-server/internal/routes"
	"binger-server/pkg/cache"
	"binger-server/pkg/deps"
	"binger-server/pkg/signer"
)

type Server struct {
	deps.ServerDeps
	allowedOrigins []string
}

func New(r *repos.Repository, c cache.Cache, sg signer.Codec, cat catalog.Provider, allowedOrigins []string) *Server {
	return &Server{
		ServerDeps: deps.ServerDeps{
			Repo:      r,
			Cache:     c,
			Signer:    sg,
			Catalog:   cat,
			Loader:    catalog.NewLoader(cat),
			Ranker:    recommend.NewRanker(cat),
			Name:      "binger-server",
			StartedAt: time.Now().UTC(),
		},
		allowedOrigins: allowedOrigins,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	sd := s.ServerDeps

	// Endpoints declared here for easy scanning
	mux.HandleFunc("GET /health", routes.Health(sd))

	mux.HandleFunc("GET /shows/{id}", routes.ShowDetail(sd))
	mux.HandleFunc("GET /shows/{id}/progress", routes.ShowProgress(sd))
	mux.HandleFunc("GET /shows/{id}/seasons/{number}", routes.SeasonDetail(sd))

	mux.HandleFunc("POST /watches", routes.WatchCreate(sd))
	mux.HandleFunc("DELETE /watches/{episodeID}", routes.WatchDelete(sd))
	mux.HandleFunc("GET /watches", routes.WatchHistory(sd))
	mux.HandleFunc("GET /progress", routes.BulkProgress(sd))

	mux.HandleFunc("POST /watchlist", routes.ListAdd(sd, "watchlist"))
	mux.HandleFunc("DELETE /watchlist/{showID}", routes.ListRemove(sd, "watchlist"))
	mux.HandleFunc("GET /watchlist", routes.ListGet(sd, "watchlist"))
	mux.HandleFunc("POST /favorites", routes.ListAdd(sd, "favorites"))
	mux.HandleFunc("DELETE /favorites/{showID}", routes.ListRemove(sd, "favorites"))
	mux.HandleFunc("GET /favorites", routes.ListGet(sd, "favorites"))

	mux.HandleFunc("PUT /ratings/{showID}", routes.RatingPut(sd))
	mux.HandleFunc("GET /ratings", routes.RatingsGet(sd))

	mux.HandleFunc("GET /recommendations", routes.Recommendations(sd))
	mux.HandleFunc("GET /calendar", routes.Calendar(sd))

	h := withFingerprint(mux)
	h = withCORS(s.allowedOrigins)(h)
	h = withSecurityHeaders(h)
	return withCorrelationID(withLogging(h))
}
