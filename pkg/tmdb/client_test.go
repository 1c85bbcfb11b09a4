package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("test-key", "fa-IR", "en-US")
	c.BaseURL = srv.URL
	return c
}

func TestFetchShowParsesSeasons(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/1396" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("api key not sent")
		}
		w.Write([]byte(`{
			"id": 1396,
			"name": "Breaking Bad",
			"original_name": "Breaking Bad",
			"overview": "A chemistry teacher.",
			"status": "Ended",
			"number_of_episodes": 62,
			"first_air_date": "2008-01-20",
			"genres": [{"id": 18}, {"id": 80}],
			"seasons": [
				{"season_number": 0, "name": "Specials", "air_date": "2009-02-17", "episode_count": 9},
				{"season_number": 1, "name": "Season 1", "air_date": "2008-01-20", "episode_count": 7}
			]
		}`))
	})

	show, err := c.FetchShow(context.Background(), 1396)
	if err != nil {
		t.Fatalf("FetchShow failed: %v", err)
	}
	if show.ID != 1396 || show.Name != "Breaking Bad" {
		t.Fatalf("show identity wrong: %+v", show)
	}
	if show.EpisodeTotal != 62 || show.Status != "Ended" {
		t.Fatalf("show totals wrong: %+v", show)
	}
	if len(show.Seasons) != 2 || show.Seasons[0].Number != 0 || show.Seasons[1].EpisodeCount != 7 {
		t.Fatalf("seasons parsed wrong: %+v", show.Seasons)
	}
	if len(show.GenreIDs) != 2 || show.GenreIDs[0] != 18 {
		t.Fatalf("genres parsed wrong: %v", show.GenreIDs)
	}
	if show.FirstAirDate == nil || show.FirstAirDate.Year() != 2008 {
		t.Fatalf("first air date parsed wrong: %v", show.FirstAirDate)
	}
}

func TestFetchShowLocaleFallback(t *testing.T) {
	var langs []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Query().Get("language")
		langs = append(langs, lang)
		if lang == "fa-IR" {
			w.Write([]byte(`{"id": 1, "name": "شو", "overview": ""}`))
			return
		}
		w.Write([]byte(`{"id": 1, "name": "Show", "overview": "An english overview."}`))
	})

	show, err := c.FetchShow(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchShow failed: %v", err)
	}
	if len(langs) != 2 || langs[0] != "fa-IR" || langs[1] != "en-US" {
		t.Fatalf("expected fa-IR then en-US requests, got %v", langs)
	}
	if show.Name != "شو" {
		t.Fatalf("localized name must win when present, got %q", show.Name)
	}
	if show.Overview == nil || *show.Overview != "An english overview." {
		t.Fatalf("expected fallback overview, got %v", show.Overview)
	}
}

func TestFetchShowNoFallbackWhenComplete(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"id": 1, "name": "شو", "overview": "خلاصه"}`))
	})
	if _, err := c.FetchShow(context.Background(), 1); err != nil {
		t.Fatalf("FetchShow failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("complete localized record must not trigger a second request, got %d calls", calls)
	}
}

func TestFetchSeasonParsesEpisodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/1396/season/1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"season_number": 1,
			"name": "Season 1",
			"air_date": "2008-01-20",
			"episodes": [
				{"id": 62085, "season_number": 1, "episode_number": 1, "name": "Pilot", "overview": "First.", "air_date": "2008-01-20", "runtime": 58},
				{"id": 62086, "season_number": 1, "episode_number": 2, "name": "Cat's in the Bag...", "overview": "Second.", "air_date": "2008-01-27", "runtime": 48}
			]
		}`))
	})

	season, err := c.FetchSeason(context.Background(), 1396, 1)
	if err != nil {
		t.Fatalf("FetchSeason failed: %v", err)
	}
	if season.Number != 1 || season.EpisodeCount != 2 {
		t.Fatalf("season header wrong: %+v", season)
	}
	ep := season.Episodes[0]
	if ep.ID != 62085 || ep.Number != 1 || ep.Runtime != 58 {
		t.Fatalf("episode parsed wrong: %+v", ep)
	}
	if ep.AirDate == nil || ep.AirDate.Format("2006-01-02") != "2008-01-20" {
		t.Fatalf("episode air date wrong: %v", ep.AirDate)
	}
}

func TestSearchShowsSendsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/tv" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "بریکینگ بد" {
			t.Errorf("query param wrong: %q", got)
		}
		w.Write([]byte(`{"page": 1, "results": [{"id": 1396, "name": "Breaking Bad"}]}`))
	})

	shows, err := c.SearchShows(context.Background(), "بریکینگ بد")
	if err != nil {
		t.Fatalf("SearchShows failed: %v", err)
	}
	if len(shows) != 1 || shows[0].ID != 1396 {
		t.Fatalf("unexpected results: %+v", shows)
	}
}

func TestDiscoverByGenreParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("with_genres") != "35" || q.Get("sort_by") != "popularity.desc" {
			t.Errorf("discover params wrong: %v", q)
		}
		w.Write([]byte(`{"page": 1, "results": []}`))
	})
	if _, err := c.DiscoverByGenre(context.Background(), 35, 1); err != nil {
		t.Fatalf("DiscoverByGenre failed: %v", err)
	}
}

func TestGetRetriesOnServerError(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"page": 1, "results": []}`))
	})
	if _, err := c.Trending(context.Background()); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestGetDoesNotRetryClientError(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	})
	if _, err := c.FetchShow(context.Background(), 404); err == nil {
		t.Fatal("expected error for 404")
	}
	if calls != 1 {
		t.Fatalf("4xx must not be retried, got %d calls", calls)
	}
}

func TestMissingAPIKey(t *testing.T) {
	c := New("", "fa-IR", "en-US")
	if _, err := c.Trending(context.Background()); err == nil {
		t.Fatal("expected error without an API key")
	}
}
