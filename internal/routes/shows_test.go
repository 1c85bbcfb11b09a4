package routes

import (
	"testing"
	"time"

	"binger-server/internal/model"
)

func airedSeason(number int, firstEpisodeID int64, episodes int, aired time.Time) model.Season {
	s := model.Season{Number: number, AirDate: &aired, EpisodeCount: episodes}
	for i := 0; i < episodes; i++ {
		s.Episodes = append(s.Episodes, model.Episode{
			ID:      firstEpisodeID + int64(i),
			Season:  number,
			Number:  i + 1,
			AirDate: &aired,
		})
	}
	return s
}

func TestShowSnapshotExactWhenAllSeasonsLoaded(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	aired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	show := model.Show{ID: 1, Seasons: []model.Season{
		{Number: 1, AirDate: &aired, EpisodeCount: 10},
	}}
	loaded := []model.Season{airedSeason(1, 101, 10, aired)}
	watched := []int64{101, 102, 103, 104, 105, 106, 107, 999} // 999 never released

	snap := showSnapshot(1, show, loaded, watched, now)
	if snap.WatchedCount != 7 || snap.Percentage != 70 {
		t.Fatalf("expected exact 70%%, got %+v", snap)
	}
}

func TestShowSnapshotDegradesWhenSeasonFetchFailed(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	aired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Two aired seasons (10 + 5 episodes) but only season 1 loaded.
	show := model.Show{ID: 1, Seasons: []model.Season{
		{Number: 1, AirDate: &aired, EpisodeCount: 10},
		{Number: 2, AirDate: &aired, EpisodeCount: 5},
	}}
	loaded := []model.Season{airedSeason(1, 101, 10, aired)}

	// Every episode of both seasons is watched. Exact mode would report
	// 10/15; the store count keeps numerator and denominator consistent.
	watched := make([]int64, 0, 15)
	for id := int64(101); id <= 110; id++ {
		watched = append(watched, id)
	}
	for id := int64(201); id <= 205; id++ {
		watched = append(watched, id)
	}

	snap := showSnapshot(1, show, loaded, watched, now)
	if snap.Percentage != 100 || !snap.IsComplete {
		t.Fatalf("expected 100%% via approximate mode, got %+v", snap)
	}
}

func TestShowSnapshotSpecialsDoNotForceDegrade(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	aired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Season 0 is never loaded; its absence must not trip the fallback.
	show := model.Show{ID: 1, Seasons: []model.Season{
		{Number: 0, AirDate: &aired, EpisodeCount: 3},
		{Number: 1, AirDate: &aired, EpisodeCount: 4},
	}}
	loaded := []model.Season{airedSeason(1, 101, 4, aired)}
	watched := []int64{101, 102, 999} // 999 would count in approximate mode

	snap := showSnapshot(1, show, loaded, watched, now)
	if snap.WatchedCount != 2 || snap.Percentage != 50 {
		t.Fatalf("expected exact mode with specials unloaded, got %+v", snap)
	}
}
