package model

import "time"

// Provenance tags on recommendation and calendar entries.
const (
	ProvenanceOwned      = "owned"
	ProvenanceTrending   = "trending"
	ProvenanceSimilar    = "similar"
	ProvenanceGenreMatch = "genre-match"
)

// Membership list kinds.
const (
	ListWatchlist = "watchlist"
	ListFavorites = "favorites"
)

var AllowedListKinds = map[string]struct{}{
	ListWatchlist: {},
	ListFavorites: {},
}

type Show struct {
	ID            int64      `json:"id"` // TMDb id
	Name          string     `json:"name"`
	OriginalName  string     `json:"original_name,omitempty"`
	Overview      *string    `json:"overview,omitempty"`
	PosterPath    *string    `json:"poster_path,omitempty"`
	BackdropPath  *string    `json:"backdrop_path,omitempty"`
	FirstAirDate  *time.Time `json:"first_air_date,omitempty"`
	NextAirDate   *time.Time `json:"next_air_date,omitempty"`
	VoteAverage   float64    `json:"vote_average"`
	Status        string     `json:"status,omitempty"`
	GenreIDs      []int64    `json:"genre_ids,omitempty"`
	OriginCountry []string   `json:"origin_country,omitempty"`
	EpisodeTotal  int        `json:"episode_total,omitempty"` // as reported by the catalog
	Seasons       []Season   `json:"seasons,omitempty"`
}

type Season struct {
	Number       int        `json:"number"` // 0 holds specials
	Name         string     `json:"name,omitempty"`
	AirDate      *time.Time `json:"air_date,omitempty"`
	EpisodeCount int        `json:"episode_count"`
	Episodes     []Episode  `json:"episodes,omitempty"`
}

type Episode struct {
	ID        int64      `json:"id"` // globally unique per catalog
	Season    int        `json:"season"`
	Number    int        `json:"number"`
	Name      string     `json:"name,omitempty"`
	Overview  *string    `json:"overview,omitempty"`
	AirDate   *time.Time `json:"air_date,omitempty"`
	StillPath *string    `json:"still_path,omitempty"`
	Runtime   int        `json:"runtime,omitempty"`
}

// WatchEvent records that a user viewed a specific episode.
// At most one event exists per (fingerprint, episode).
type WatchEvent struct {
	Fingerprint string    `json:"-"`
	ShowID      int64     `json:"show_id"`
	EpisodeID   int64     `json:"episode_id"`
	WatchedAt   time.Time `json:"watched_at"`
}

// ProgressSnapshot is derived per request and never persisted.
type ProgressSnapshot struct {
	ShowID        int64 `json:"show_id"`
	WatchedCount  int   `json:"watched_count"`
	ReleasedTotal int   `json:"released_total"`
	Percentage    int   `json:"percentage"` // clamped [0,100]
	IsComplete    bool  `json:"is_complete"`
}

type RecommendationEntry struct {
	Show       Show   `json:"show"`
	Provenance string `json:"provenance"`
	SeedName   string `json:"seed_name,omitempty"` // set on similar entries
}

// CalendarEntry is one upcoming-release row in the merged calendar feed.
type CalendarEntry struct {
	ShowID      int64     `json:"show_id"`
	Name        string    `json:"name"`
	PosterPath  *string   `json:"poster_path,omitempty"`
	NextAirDate time.Time `json:"next_air_date"`
	Provenance  string    `json:"provenance"`
}

type ListItem struct {
	ShowID  int64     `json:"show_id"`
	Kind    string    `json:"kind"`
	AddedAt time.Time `json:"added_at"`
}

type Rating struct {
	ShowID  int64     `json:"show_id"`
	Score   int16     `json:"score"` // 1..10
	RatedAt time.Time `json:"rated_at"`
}
