package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"binger-server/internal/repos"
	pkgdeps "binger-server/pkg/deps"
	pkghttpx "binger-server/pkg/httpx"
)

// RatingPut handles PUT /ratings/{showID}: sets the user's score for a show.
func RatingPut(d pkgdeps.ServerDeps) http.HandlerFunc {
	type rateReq struct {
		Score int16 `json:"score"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		fp, ok := fingerprint(w, r)
		if !ok {
			return
		}
		showID, err := pathID(r, "showID")
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid show id", err))
			return
		}
		var req rateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if err := d.Repo.Ratings.Upsert(ctx, fp, showID, req.Score, time.Now().UTC()); err != nil {
			if errors.Is(err, repos.ErrInvalidScore) {
				pkghttpx.WriteError(w, r, pkghttpx.UnprocessableEntity("score must be between 1 and 10", err))
				return
			}
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to save rating", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"show_id": showID, "score": req.Score})
	}
}

// RatingsGet handles GET /ratings.
func RatingsGet(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		fp, ok := fingerprint(w, r)
		if !ok {
			return
		}
		items, err := d.Repo.Ratings.List(ctx, fp)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to list ratings", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"items": items,
			"count": len(items),
		})
	}
}
