package catalog

import (
	"context"

	"binger-server/internal/model"
)

// Provider is the read-only catalog the aggregation layer consumes.
// Implementations apply locale fallback internally; callers always see one
// normalized record. pkg/tmdb satisfies this interface.
type Provider interface {
	FetchShow(ctx context.Context, id int64) (*model.Show, error)
	FetchSeason(ctx context.Context, showID int64, number int) (*model.Season, error)
	SearchShows(ctx context.Context, query string) ([]model.Show, error)
	FetchSimilar(ctx context.Context, showID int64) ([]model.Show, error)
	DiscoverByGenre(ctx context.Context, genreID int64, page int) ([]model.Show, error)
	Trending(ctx context.Context) ([]model.Show, error)
}
