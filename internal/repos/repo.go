package repos

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository aggregates the per-table repos backed by one pgx pool.
type Repository struct {
	db *pgxpool.Pool

	Watches *WatchesRepo
	Lists   *ListsRepo
	Ratings *RatingsRepo
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:      db,
		Watches: &WatchesRepo{db: db},
		Lists:   &ListsRepo{db: db},
		Ratings: &RatingsRepo{db: db},
	}
}
