package routes

import (
	"net/http"
	"strconv"
	"time"

	"binger-server/internal/catalog"
	"binger-server/internal/model"
	"binger-server/internal/progress"
	pkgcache "binger-server/pkg/cache"
	pkgdeps "binger-server/pkg/deps"
	pkghttpx "binger-server/pkg/httpx"
)

// ShowDetail handles GET /shows/{id}: the normalized show record plus its
// released-episode count as of now.
func ShowDetail(d pkgdeps.ServerDeps) http.HandlerFunc {
	type showResp struct {
		Show          any `json:"show"`
		ReleasedTotal int `json:"released_total"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := pathID(r, "id")
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		cacheKey := "show:" + strconv.FormatInt(id, 10)
		var cached showResp
		if pkgcache.GetJSON(ctx, d.Cache, cacheKey, &cached) {
			pkghttpx.WriteJSON(w, http.StatusOK, cached)
			return
		}
		show, err := d.Catalog.FetchShow(ctx, id)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadGateway("catalog fetch failed", err))
			return
		}
		resp := showResp{Show: show, ReleasedTotal: catalog.ReleasedEpisodeCount(*show, time.Now().UTC())}
		_ = pkgcache.SetJSON(ctx, d.Cache, cacheKey, resp, 10*time.Minute)
		pkghttpx.WriteJSON(w, http.StatusOK, resp)
	}
}

// ShowProgress handles GET /shows/{id}/progress: the exact-mode snapshot for
// the requesting user. Episode lists for all seasons are gathered
// concurrently; a request superseded by a newer one from the same user is
// discarded and answered with a conflict.
func ShowProgress(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		fp, ok := fingerprint(w, r)
		if !ok {
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		show, err := d.Catalog.FetchShow(ctx, id)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadGateway("catalog fetch failed", err))
			return
		}
		now := time.Now().UTC()

		gen := d.Loader.Begin(fp)
		seasons, current := d.Loader.FetchSeasons(ctx, fp, gen, show)
		if !current {
			pkghttpx.WriteError(w, r, pkghttpx.Conflict("superseded by a newer request", nil))
			return
		}
		watchedIDs, err := d.Repo.Watches.EpisodeIDs(ctx, fp, id)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to load watch events", err))
			return
		}
		snap := showSnapshot(id, *show, seasons, watchedIDs, now)
		pkghttpx.WriteJSON(w, http.StatusOK, snap)
	}
}

// showSnapshot picks the snapshot input mode. With every season's episode
// list loaded, the exact watched/released intersection is used. When a
// season failed to load, its episodes would be missing from the numerator
// while the show-level denominator still counts them, so the handler falls
// back to the approximate store-count mode instead.
func showSnapshot(showID int64, show model.Show, loaded []model.Season, watchedIDs []int64, now time.Time) model.ProgressSnapshot {
	total := catalog.ReleasedEpisodeCount(show, now)
	want := 0
	for _, s := range show.Seasons {
		if s.Number != 0 {
			want++
		}
	}
	if len(loaded) < want {
		return progress.Compute(showID, len(watchedIDs), total)
	}
	return progress.ComputeExact(showID, watchedIDs, catalog.ReleasedEpisodeIDs(loaded, now), total)
}

// SeasonDetail handles GET /shows/{id}/seasons/{number}: episode list with
// per-episode released and watched flags, plus the season completion flag.
func SeasonDetail(d pkgdeps.ServerDeps) http.HandlerFunc {
	type episodeRow struct {
		Episode  any  `json:"episode"`
		Released bool `json:"released"`
		Watched  bool `json:"watched"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		fp, ok := fingerprint(w, r)
		if !ok {
			return
		}
		showID, err := pathID(r, "id")
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		number64, err := pathID(r, "number")
		if err != nil || number64 < 0 {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid season number", err))
			return
		}
		season, err := d.Catalog.FetchSeason(ctx, showID, int(number64))
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadGateway("catalog fetch failed", err))
			return
		}
		watchedIDs, err := d.Repo.Watches.EpisodeIDs(ctx, fp, showID)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to load watch events", err))
			return
		}
		watched := make(map[int64]struct{}, len(watchedIDs))
		for _, id := range watchedIDs {
			watched[id] = struct{}{}
		}
		now := time.Now().UTC()
		rows := make([]episodeRow, 0, len(season.Episodes))
		for _, ep := range season.Episodes {
			_, isWatched := watched[ep.ID]
			rows = append(rows, episodeRow{
				Episode:  ep,
				Released: catalog.Released(ep, now),
				Watched:  isWatched,
			})
		}
		fully := progress.SeasonFullyWatched(*season, watched, now)
		meta := *season
		meta.Episodes = nil // episode rows carry the annotated list
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"season":        meta,
			"episodes":      rows,
			"fully_watched": fully,
		})
	}
}
