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

// ListAdd handles POST /watchlist and POST /favorites.
func ListAdd(d pkgdeps.ServerDeps, kind string) http.HandlerFunc {
	type addReq struct {
		ShowID int64 `json:"show_id"`
	}
	type addResp struct {
		Inserted bool   `json:"inserted"`
		Message  string `json:"message"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		fp, ok := fingerprint(w, r)
		if !ok {
			return
		}
		var req addReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if req.ShowID == 0 {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("missing show_id", nil))
			return
		}
		inserted, err := d.Repo.Lists.Add(ctx, fp, kind, req.ShowID, time.Now().UTC())
		if err != nil {
			if errors.Is(err, repos.ErrUnknownListKind) {
				pkghttpx.WriteError(w, r, pkghttpx.BadRequest("unknown list kind", err))
				return
			}
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to add to list", err))
			return
		}
		invalidateUserCaches(ctx, d, fp)
		msg := "added"
		if !inserted {
			msg = "already on list"
		}
		pkghttpx.WriteJSON(w, http.StatusOK, addResp{Inserted: inserted, Message: msg})
	}
}

// ListRemove handles DELETE /watchlist/{showID} and DELETE /favorites/{showID}.
func ListRemove(d pkgdeps.ServerDeps, kind string) http.HandlerFunc {
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
		if err := d.Repo.Lists.Remove(ctx, fp, kind, showID); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to remove from list", err))
			return
		}
		invalidateUserCaches(ctx, d, fp)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListGet handles GET /watchlist and GET /favorites: keyset-paginated
// membership, newest first.
func ListGet(d pkgdeps.ServerDeps, kind string) http.HandlerFunc {
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
		var curShow *int64
		if cursor := r.URL.Query().Get("cursor"); cursor != "" {
			at, showID, decErr := d.Signer.DecodeListCursor(cursor)
			if decErr != nil {
				pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid cursor", decErr))
				return
			}
			t := time.UnixMicro(at).UTC()
			curAt = &t
			curShow = &showID
		}
		items, err := d.Repo.Lists.ItemsPage(ctx, fp, kind, curAt, curShow, limit)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to list items", err))
			return
		}
		total, err := d.Repo.Lists.Count(ctx, fp, kind)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to count items", err))
			return
		}
		resp := map[string]any{
			"items": items,
			"count": len(items),
			"total": total,
		}
		if len(items) == int(limit) {
			last := items[len(items)-1]
			resp["next_cursor"] = d.Signer.EncodeListCursor(last.AddedAt.UnixMicro(), last.ShowID)
		}
		pkghttpx.WriteJSON(w, http.StatusOK, resp)
	}
}
