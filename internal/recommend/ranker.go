package recommend

import (
	"context"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"binger-server/internal/model"
)

const maxSuggestions = 10

// CatalogSource is the slice of the catalog the ranker needs.
type CatalogSource interface {
	SearchShows(ctx context.Context, query string) ([]model.Show, error)
	FetchSimilar(ctx context.Context, showID int64) ([]model.Show, error)
	DiscoverByGenre(ctx context.Context, genreID int64, page int) ([]model.Show, error)
	Trending(ctx context.Context) ([]model.Show, error)
}

// Ranker turns free text into a ranked suggestion list. Every upstream
// failure degrades to fewer suggestions, never to an error: the similarity
// branch falls through to the mood branch, the mood branch to trending, and
// a failed trending fetch yields an empty list.
type Ranker struct {
	catalog   CatalogSource
	moodTable []GenreKeyword
	triggers  []string
	stopWords []string

	// shuffle is swappable so tests can pin the order.
	shuffle func(n int, swap func(i, j int))
}

func NewRanker(catalog CatalogSource) *Ranker {
	return &Ranker{
		catalog:   catalog,
		moodTable: DefaultMoodTable,
		triggers:  DefaultSimilarityTriggers,
		stopWords: DefaultStopWords,
		shuffle:   rand.Shuffle,
	}
}

// Suggest resolves text in priority order: similarity query, mood genre,
// trending fallback. Returns up to 10 provenance-tagged entries.
func (r *Ranker) Suggest(ctx context.Context, text string) []model.RecommendationEntry {
	if query, ok := ResolveSimilarityQuery(text, r.triggers, r.stopWords); ok {
		if entries := r.similar(ctx, query); len(entries) > 0 {
			return entries
		}
	}
	if genreID, ok := ResolveGenre(text, r.moodTable); ok {
		shows, err := r.catalog.DiscoverByGenre(ctx, genreID, 1)
		if err != nil {
			log.Warn().Err(err).Int64("genre_id", genreID).Msg("genre discover failed, falling back to trending")
		} else if len(shows) > 0 {
			return r.pick(shows, model.ProvenanceGenreMatch, "")
		}
	}
	return r.trending(ctx)
}

func (r *Ranker) similar(ctx context.Context, query string) []model.RecommendationEntry {
	hits, err := r.catalog.SearchShows(ctx, query)
	if err != nil || len(hits) == 0 {
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("seed search failed")
		}
		return nil
	}
	seed := hits[0]
	similar, err := r.catalog.FetchSimilar(ctx, seed.ID)
	if err != nil {
		log.Warn().Err(err).Int64("seed_id", seed.ID).Msg("similar fetch failed")
		return nil
	}
	return r.pick(similar, model.ProvenanceSimilar, seed.Name)
}

func (r *Ranker) trending(ctx context.Context) []model.RecommendationEntry {
	shows, err := r.catalog.Trending(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("trending fetch failed, returning empty suggestions")
		return []model.RecommendationEntry{}
	}
	return r.pick(shows, model.ProvenanceTrending, "")
}

// pick shuffles candidates for variety and caps the list.
func (r *Ranker) pick(shows []model.Show, provenance, seedName string) []model.RecommendationEntry {
	candidates := make([]model.Show, len(shows))
	copy(candidates, shows)
	r.shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	out := make([]model.RecommendationEntry, 0, len(candidates))
	for _, s := range candidates {
		out = append(out, model.RecommendationEntry{Show: s, Provenance: provenance, SeedName: seedName})
	}
	return out
}
