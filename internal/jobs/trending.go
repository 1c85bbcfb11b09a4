package jobs

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"binger-server/internal/catalog"
	"binger-server/internal/model"
	"binger-server/pkg/cache"
)

// TrendingUpcomingKey is the cache key holding the globally trending shows'
// upcoming-episode entries. The calendar route merges these with the user's
// owned shows; when the key is absent the calendar degrades to owned-only.
const TrendingUpcomingKey = "trending_upcoming"

// Trending list entries don't carry next-episode dates, so each candidate
// needs a detail fetch. Cap how many we enrich per refresh.
const maxTrendingDetails = 20

// StartTrendingRefresh populates the trending-upcoming cache at startup and
// refreshes it on a ticker. A failed refresh keeps the previous cache entry.
func StartTrendingRefresh(ctx context.Context, p catalog.Provider, c cache.Cache, interval time.Duration) {
	go func() {
		refreshTrending(ctx, p, c, interval)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refreshTrending(ctx, p, c, interval)
			}
		}
	}()
}

func refreshTrending(ctx context.Context, p catalog.Provider, c cache.Cache, ttlBase time.Duration) {
	shows, err := p.Trending(ctx)
	if err != nil {
		log.Error().Err(err).Msg("trending fetch failed, keeping previous cache")
		return
	}
	if len(shows) > maxTrendingDetails {
		shows = shows[:maxTrendingDetails]
	}

	wp := pool.NewWithResults[*model.CalendarEntry]()
	for _, s := range shows {
		showID := s.ID
		wp.Go(func() *model.CalendarEntry {
			detail, err := p.FetchShow(ctx, showID)
			if err != nil {
				log.Warn().Err(err).Int64("show_id", showID).Msg("trending detail fetch failed")
				return nil
			}
			// Ended shows have no upcoming episodes worth tracking.
			if detail.NextAirDate == nil || strings.EqualFold(detail.Status, "Ended") {
				return nil
			}
			return &model.CalendarEntry{
				ShowID:      detail.ID,
				Name:        detail.Name,
				PosterPath:  detail.PosterPath,
				NextAirDate: *detail.NextAirDate,
				Provenance:  model.ProvenanceTrending,
			}
		})
	}

	entries := make([]model.CalendarEntry, 0, len(shows))
	for _, e := range wp.Wait() {
		if e != nil {
			entries = append(entries, *e)
		}
	}

	// Keep the entry alive across one missed refresh.
	if err := cache.SetJSON(ctx, c, TrendingUpcomingKey, entries, 2*ttlBase); err != nil {
		log.Error().Err(err).Msg("trending cache write failed")
		return
	}
	log.Info().Int("count", len(entries)).Msg("trending upcoming cache refreshed")
}
