package recommend

import (
	"testing"
	"time"

	"binger-server/internal/model"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestMergeUpcoming(t *testing.T) {
	owned := []model.CalendarEntry{
		{ShowID: 1, Name: "Owned Show", NextAirDate: day(10)},
	}
	trending := []model.CalendarEntry{
		{ShowID: 1, Name: "Owned Show", NextAirDate: day(10)},
		{ShowID: 2, Name: "Hot Show", NextAirDate: day(5)},
	}

	out := MergeUpcoming(owned, trending)
	if len(out) != 2 {
		t.Fatalf("expected 2 entries after dedup, got %d", len(out))
	}
	if out[0].ShowID != 2 || out[0].Provenance != model.ProvenanceTrending {
		t.Fatalf("expected earliest entry first (trending show 2), got %+v", out[0])
	}
	if out[1].ShowID != 1 || out[1].Provenance != model.ProvenanceOwned {
		t.Fatalf("expected owned show 1 tagged owned, got %+v", out[1])
	}
}

func TestMergeUpcomingOwnedWinsOnOverlap(t *testing.T) {
	owned := []model.CalendarEntry{{ShowID: 7, NextAirDate: day(3)}}
	trending := []model.CalendarEntry{{ShowID: 7, NextAirDate: day(3)}}
	out := MergeUpcoming(owned, trending)
	if len(out) != 1 || out[0].Provenance != model.ProvenanceOwned {
		t.Fatalf("overlapping show must keep owned provenance, got %+v", out)
	}
}

func TestMergeUpcomingStableOnTies(t *testing.T) {
	owned := []model.CalendarEntry{
		{ShowID: 1, NextAirDate: day(4)},
		{ShowID: 2, NextAirDate: day(4)},
	}
	trending := []model.CalendarEntry{{ShowID: 3, NextAirDate: day(4)}}
	out := MergeUpcoming(owned, trending)
	want := []int64{1, 2, 3}
	for i, id := range want {
		if out[i].ShowID != id {
			t.Fatalf("tie order not stable: expected %v, got %+v", want, out)
		}
	}
}

func TestMergeUpcomingEmptyInputs(t *testing.T) {
	out := MergeUpcoming(nil, nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", out)
	}
}
