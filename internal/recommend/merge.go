package recommend

import (
	"sort"

	"binger-server/internal/model"
)

// MergeUpcoming combines owned shows (watchlisted or watched) with globally
// trending shows into one calendar feed. Owned shows always appear; trending
// shows are added only when the user does not already own them. The combined
// list is sorted ascending by next air date with ties kept in input order,
// so identical inputs always produce the identical feed.
func MergeUpcoming(owned, trending []model.CalendarEntry) []model.CalendarEntry {
	out := make([]model.CalendarEntry, 0, len(owned)+len(trending))
	seen := make(map[int64]struct{}, len(owned))
	for _, e := range owned {
		if _, dup := seen[e.ShowID]; dup {
			continue
		}
		seen[e.ShowID] = struct{}{}
		e.Provenance = model.ProvenanceOwned
		out = append(out, e)
	}
	for _, e := range trending {
		if _, dup := seen[e.ShowID]; dup {
			continue
		}
		seen[e.ShowID] = struct{}{}
		e.Provenance = model.ProvenanceTrending
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextAirDate.Before(out[j].NextAirDate)
	})
	return out
}
