package catalog

import (
	"time"

	"binger-server/internal/model"
)

// ReleasedEpisodeCount returns the canonical number of released episodes for
// a show as of ref. Season 0 is excluded: it holds specials by catalog
// convention. Seasons without an air date, or airing after ref, contribute
// nothing. When the season list yields 0 the show's reported episode total is
// used instead, and when that is also unset the count floors at 1 so callers
// never divide by zero.
func ReleasedEpisodeCount(show model.Show, ref time.Time) int {
	total := 0
	for _, s := range show.Seasons {
		if s.Number == 0 {
			continue
		}
		if s.AirDate == nil || s.AirDate.After(ref) {
			continue
		}
		total += s.EpisodeCount
	}
	if total > 0 {
		return total
	}
	if show.EpisodeTotal > 0 {
		return show.EpisodeTotal
	}
	return 1
}

// Released reports whether an episode's air date has passed relative to ref.
// Episodes without an air date are not released.
func Released(ep model.Episode, ref time.Time) bool {
	return ep.AirDate != nil && !ep.AirDate.After(ref)
}

// ReleasedEpisodes filters a season's episode list down to released ones.
func ReleasedEpisodes(season model.Season, ref time.Time) []model.Episode {
	out := make([]model.Episode, 0, len(season.Episodes))
	for _, ep := range season.Episodes {
		if Released(ep, ref) {
			out = append(out, ep)
		}
	}
	return out
}

// ReleasedEpisodeIDs collects released episode ids across the given seasons.
// Specials are skipped the same way ReleasedEpisodeCount skips them.
func ReleasedEpisodeIDs(seasons []model.Season, ref time.Time) []int64 {
	var ids []int64
	for _, s := range seasons {
		if s.Number == 0 {
			continue
		}
		for _, ep := range s.Episodes {
			if Released(ep, ref) {
				ids = append(ids, ep.ID)
			}
		}
	}
	return ids
}
