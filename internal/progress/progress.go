package progress

import (
	"math"
	"time"

	"binger-server/internal/catalog"
	"binger-server/internal/model"
)

// Compute builds a snapshot from a bare watched-episode count. This is the
// approximate input mode, used when per-episode release status is not loaded
// (e.g. bulk list rendering where only row counts are available).
//
// Rounding is half-away-from-zero and the result is clamped to [0,100].
// A releasedTotal of 0 is floored to 1 so the division is always defined;
// the floored case represents "unknown, assume at least one episode".
func Compute(showID int64, watchedCount, releasedTotal int) model.ProgressSnapshot {
	if releasedTotal <= 0 {
		releasedTotal = 1
	}
	if watchedCount < 0 {
		watchedCount = 0
	}
	pct := int(math.Round(100 * float64(watchedCount) / float64(releasedTotal)))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return model.ProgressSnapshot{
		ShowID:        showID,
		WatchedCount:  watchedCount,
		ReleasedTotal: releasedTotal,
		Percentage:    pct,
		IsComplete:    pct >= 100,
	}
}

// ComputeExact intersects the watched-episode-id set with the released
// episode ids before counting. Duplicate watched ids count once.
func ComputeExact(showID int64, watchedIDs []int64, releasedIDs []int64, releasedTotal int) model.ProgressSnapshot {
	released := make(map[int64]struct{}, len(releasedIDs))
	for _, id := range releasedIDs {
		released[id] = struct{}{}
	}
	seen := make(map[int64]struct{}, len(watchedIDs))
	count := 0
	for _, id := range watchedIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := released[id]; ok {
			count++
		}
	}
	return Compute(showID, count, releasedTotal)
}

// ComputeBulk fans Compute out over shows. Shows present in only one of the
// two maps still get a snapshot: a missing watched count means 0 and a
// missing released total falls to the floor of 1. The result is identical to
// calling Compute per show.
func ComputeBulk(watched map[int64]int, released map[int64]int) map[int64]model.ProgressSnapshot {
	out := make(map[int64]model.ProgressSnapshot, len(released))
	for showID, total := range released {
		out[showID] = Compute(showID, watched[showID], total)
	}
	for showID, count := range watched {
		if _, ok := out[showID]; !ok {
			out[showID] = Compute(showID, count, 0)
		}
	}
	return out
}

// SeasonFullyWatched reports whether every released episode of the season has
// been watched. A season with no released episodes loaded is vacuously not
// complete: an un-aired or unloaded season must not count as done.
func SeasonFullyWatched(season model.Season, watchedIDs map[int64]struct{}, ref time.Time) bool {
	releasedAny := false
	for _, ep := range season.Episodes {
		if !catalog.Released(ep, ref) {
			continue
		}
		releasedAny = true
		if _, ok := watchedIDs[ep.ID]; !ok {
			return false
		}
	}
	return releasedAny
}
