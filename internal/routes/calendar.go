package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"binger-server/internal/jobs"
	"binger-server/internal/model"
	"binger-server/internal/recommend"
	pkgcache "binger-server/pkg/cache"
	pkgdeps "binger-server/pkg/deps"
	pkghttpx "binger-server/pkg/httpx"
)

const calendarMaxDays = 90

// Calendar handles GET /calendar?days=N: the merged upcoming-release feed.
// Owned shows (watchlisted or watched) always appear; trending shows are
// added from the background-refreshed cache only when not already owned.
// The full 90-day feed is cached per user and narrowed to the requested
// window on read.
func Calendar(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		fp, ok := fingerprint(w, r)
		if !ok {
			return
		}
		days := calendarMaxDays
		if s := r.URL.Query().Get("days"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > calendarMaxDays {
				pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid days", err))
				return
			}
			days = n
		}

		now := time.Now().UTC()
		var feed []model.CalendarEntry
		if !pkgcache.GetJSON(ctx, d.Cache, calendarKey(fp), &feed) {
			var err error
			feed, err = buildFeed(r, d, fp, now)
			if err != nil {
				pkghttpx.WriteError(w, r, pkghttpx.Internal("failed to build calendar", err))
				return
			}
			_ = pkgcache.SetJSON(ctx, d.Cache, calendarKey(fp), feed, 10*time.Minute)
		}

		cutoff := now.AddDate(0, 0, days)
		items := make([]model.CalendarEntry, 0, len(feed))
		for _, e := range feed {
			if e.NextAirDate.After(cutoff) {
				continue
			}
			items = append(items, e)
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"items": items,
			"count": len(items),
		})
	}
}

// buildFeed assembles the user's owned upcoming entries and merges them with
// the cached trending entries.
func buildFeed(r *http.Request, d pkgdeps.ServerDeps, fp string, now time.Time) ([]model.CalendarEntry, error) {
	ctx := r.Context()
	counts, err := d.Repo.Watches.CountsByShow(ctx, fp)
	if err != nil {
		return nil, err
	}
	listIDs, err := d.Repo.Lists.ShowIDs(ctx, fp)
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]struct{}, len(counts)+len(listIDs))
	for id := range counts {
		ids[id] = struct{}{}
	}
	for _, id := range listIDs {
		ids[id] = struct{}{}
	}

	cutoff := now.AddDate(0, 0, calendarMaxDays)
	p := pool.NewWithResults[*model.CalendarEntry]()
	for id := range ids {
		showID := id
		p.Go(func() *model.CalendarEntry {
			show, err := d.Catalog.FetchShow(ctx, showID)
			if err != nil {
				log.Warn().Err(err).Int64("show_id", showID).Msg("show fetch failed, dropping from calendar")
				return nil
			}
			if show.NextAirDate == nil || show.NextAirDate.Before(now) || show.NextAirDate.After(cutoff) {
				return nil
			}
			return &model.CalendarEntry{
				ShowID:      show.ID,
				Name:        show.Name,
				PosterPath:  show.PosterPath,
				NextAirDate: *show.NextAirDate,
			}
		})
	}
	owned := make([]model.CalendarEntry, 0, len(ids))
	for _, e := range p.Wait() {
		if e != nil {
			owned = append(owned, *e)
		}
	}

	// Trending entries come from the background worker's cache; a missing
	// key degrades the feed to owned-only.
	var trending []model.CalendarEntry
	pkgcache.GetJSON(ctx, d.Cache, jobs.TrendingUpcomingKey, &trending)

	return recommend.MergeUpcoming(owned, trending), nil
}
