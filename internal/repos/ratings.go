package repos

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"binger-server/internal/model"
)

type RatingsRepo struct {
	db *pgxpool.Pool
}

var ErrInvalidScore = errors.New("score out of range")

// Upsert sets a user's score for a show, replacing any previous score.
func (r *RatingsRepo) Upsert(ctx context.Context, fingerprint string, showID int64, score int16, now time.Time) error {
	if score < 1 || score > 10 {
		return ErrInvalidScore
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO ratings (fingerprint, show_id, score, rated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (fingerprint, show_id) DO UPDATE SET score = EXCLUDED.score, rated_at = EXCLUDED.rated_at`,
		fingerprint, showID, score, now)
	return err
}

func (r *RatingsRepo) List(ctx context.Context, fingerprint string) ([]model.Rating, error) {
	rows, err := r.db.Query(ctx, `
		SELECT show_id, score, rated_at FROM ratings
		WHERE fingerprint = $1
		ORDER BY rated_at DESC`,
		fingerprint)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Rating
	for rows.Next() {
		var rt model.Rating
		if err := rows.Scan(&rt.ShowID, &rt.Score, &rt.RatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
