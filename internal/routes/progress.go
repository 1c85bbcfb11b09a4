package routes

import (
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"binger-server/internal/catalog"
	"binger-server/internal/model"
	"binger-server/internal/progress"
	pkgcache "binger-server/pkg/cache"
	pkgdeps "binger-server/pkg/deps"
	pkghttpx "binger-server/pkg/httpx"
)

// BulkProgress handles GET /progress: approximate-mode snapshots for every
// show the user has watch events or list membership for. Show metadata is
// gathered concurrently; shows whose catalog fetch failed are filtered out
// of the response rather than rendered with a misleading floor total.
func BulkProgress(d pkgdeps.ServerDeps) http.HandlerFunc {
	type resp struct {
		Items []model.ProgressSnapshot `json:"items"`
		Count int                      `json:"count"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		fp, ok := fingerprint(w, r)
		if !ok {
			return
		}
		var cached resp
		if pkgcache.GetJSON(ctx, d.Cache, bulkProgressKey(fp), &cached) {
			pkghttpx.WriteJSON(w, http.StatusOK, cached)
			return
		}

		counts, err := d.Repo.Watches.CountsByShow(ctx, fp)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to load watch counts", err))
			return
		}
		listIDs, err := d.Repo.Lists.ShowIDs(ctx, fp)
		if err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to load lists", err))
			return
		}

		ids := make(map[int64]struct{}, len(counts)+len(listIDs))
		for id := range counts {
			ids[id] = struct{}{}
		}
		for _, id := range listIDs {
			ids[id] = struct{}{}
		}

		now := time.Now().UTC()
		type totalRow struct {
			showID int64
			total  int
		}
		p := pool.NewWithResults[*totalRow]()
		for id := range ids {
			showID := id
			p.Go(func() *totalRow {
				show, err := d.Catalog.FetchShow(ctx, showID)
				if err != nil {
					log.Warn().Err(err).Int64("show_id", showID).Msg("show fetch failed, dropping from bulk progress")
					return nil
				}
				return &totalRow{showID: showID, total: catalog.ReleasedEpisodeCount(*show, now)}
			})
		}
		released := make(map[int64]int, len(ids))
		for _, row := range p.Wait() {
			if row != nil {
				released[row.showID] = row.total
			}
		}
		// Drop watched counts for shows with no resolvable metadata so they
		// aren't computed against the floor of 1.
		watched := make(map[int64]int, len(counts))
		for id, n := range counts {
			if _, ok := released[id]; ok {
				watched[id] = n
			}
		}

		snaps := progress.ComputeBulk(watched, released)
		items := make([]model.ProgressSnapshot, 0, len(snaps))
		for _, s := range snaps {
			items = append(items, s)
		}
		sort.Slice(items, func(i, j int) bool { return items[i].ShowID < items[j].ShowID })

		out := resp{Items: items, Count: len(items)}
		_ = pkgcache.SetJSON(ctx, d.Cache, bulkProgressKey(fp), out, 2*time.Minute)
		pkghttpx.WriteJSON(w, http.StatusOK, out)
	}
}
