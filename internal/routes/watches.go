package routes

import (
	"encoding/json"
	"net/http"
	"time"

	pkgdeps "binger-server/pkg/deps"
	pkghttpx "binger-server/pkg/httpx"
)

// WatchCreate handles POST /watches: records a watch event. Duplicates are
// ignored, never double-counted.
func WatchCreate(d pkgdeps.ServerDeps) http.HandlerFunc {
	type watchReq struct {
		ShowID    int64 `json:"show_id"`
		EpisodeID int64 `json:"episode_id"`
	}
	type watchResp struct {
		Inserted bool   `json:"inserted"`
		Message  string `json:"message"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		fp, ok := fingerprint(w, r)
		if !ok {
			return
		}
		var req watchReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if req.ShowID == 0 || req.EpisodeID == 0 {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("missing fields", nil))
			return
		}
		inserted, err := d.Repo.Watches.Upsert(ctx, fp, req.ShowID, req.EpisodeID, time.Now().UTC())
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to record watch", err))
			return
		}
		invalidateUserCaches(ctx, d, fp)
		msg := "watch recorded"
		if !inserted {
			msg = "duplicate ignored"
		}
		pkghttpx.WriteJSON(w, http.StatusOK, watchResp{Inserted: inserted, Message: msg})
	}
}

// WatchDelete handles DELETE /watches/{episodeID}.
func WatchDelete(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		fp, ok := fingerprint(w, r)
		if !ok {
			return
		}
		episodeID, err := pathID(r, "episodeID")
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid episode id", err))
			return
		}
		if err := d.Repo.Watches.Delete(ctx, fp, episodeID); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to delete watch", err))
			return
		}
		invalidateUserCaches(ctx, d, fp)
		w.WriteHeader(http.StatusNoContent)
	}
}

// WatchHistory handles GET /watches: keyset-paginated history, newest first.
func WatchHistory(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		fp, ok := fingerprint(w, r)
		if !ok {
			return
		}
		limit, err := parseLimit(r)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid limit", err))
			return
		}
		var curAt *time.Time
		var curEp *int64
		if cursor := r.URL.Query().Get("cursor"); cursor != "" {
			at, ep, decErr := d.Signer.DecodeWatchesCursor(cursor)
			if decErr != nil {
				pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid cursor", decErr))
				return
			}
			t := time.UnixMicro(at).UTC()
			curAt = &t
			curEp = &ep
		}
		items, err := d.Repo.Watches.ListPage(ctx, fp, curAt, curEp, limit)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to list watches", err))
			return
		}
		total, err := d.Repo.Watches.Count(ctx, fp)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to count watches", err))
			return
		}
		resp := map[string]any{
			"items": items,
			"count": len(items),
			"total": total,
		}
		if len(items) == int(limit) {
			last := items[len(items)-1]
			resp["next_cursor"] = d.Signer.EncodeWatchesCursor(last.WatchedAt.UnixMicro(), last.EpisodeID)
		}
		pkghttpx.WriteJSON(w, http.StatusOK, resp)
	}
}
