package repos

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"binger-server/internal/model"
)

type WatchesRepo struct {
	db *pgxpool.Pool
}

// Upsert records a watch event. Duplicate (fingerprint, episode) pairs are
// ignored so repeated marks never double-count. Returns inserted=true if a
// new row was written.
func (r *WatchesRepo) Upsert(ctx context.Context, fingerprint string, showID, episodeID int64, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO watch_events (fingerprint, show_id, episode_id, watched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (fingerprint, episode_id) DO NOTHING`,
		fingerprint, showID, episodeID, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete unmarks an episode. Missing rows are not an error.
func (r *WatchesRepo) Delete(ctx context.Context, fingerprint string, episodeID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM watch_events WHERE fingerprint = $1 AND episode_id = $2`,
		fingerprint, episodeID)
	return err
}

// EpisodeIDs returns the watched episode ids for one show.
func (r *WatchesRepo) EpisodeIDs(ctx context.Context, fingerprint string, showID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT episode_id FROM watch_events WHERE fingerprint = $1 AND show_id = $2`,
		fingerprint, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountsByShow returns per-show watched-row counts for a user. This is the
// approximate input for bulk progress rendering.
func (r *WatchesRepo) CountsByShow(ctx context.Context, fingerprint string) (map[int64]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT show_id, COUNT(*) FROM watch_events WHERE fingerprint = $1 GROUP BY show_id`,
		fingerprint)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[int64]int)
	for rows.Next() {
		var showID int64
		var n int
		if err := rows.Scan(&showID, &n); err != nil {
			return nil, err
		}
		out[showID] = n
	}
	return out, rows.Err()
}

// ListPage returns one keyset page of watch history, newest first.
// Cursor position is (watched_at, episode_id) of the last row seen.
func (r *WatchesRepo) ListPage(ctx context.Context, fingerprint string, cursorAt *time.Time, cursorEpisode *int64, limit int32) ([]model.WatchEvent, error) {
	at := time.Now().UTC().Add(time.Hour)
	ep := int64(0)
	if cursorAt != nil {
		at = *cursorAt
	}
	if cursorEpisode != nil {
		ep = *cursorEpisode
	}
	rows, err := r.db.Query(ctx, `
		SELECT show_id, episode_id, watched_at
		FROM watch_events
		WHERE fingerprint = $1 AND (watched_at, episode_id) < ($2, $3)
		ORDER BY watched_at DESC, episode_id DESC
		LIMIT $4`,
		fingerprint, at, ep, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.WatchEvent
	for rows.Next() {
		ev := model.WatchEvent{Fingerprint: fingerprint}
		if err := rows.Scan(&ev.ShowID, &ev.EpisodeID, &ev.WatchedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Count returns the total number of watch events for a user.
func (r *WatchesRepo) Count(ctx context.Context, fingerprint string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM watch_events WHERE fingerprint = $1`, fingerprint).Scan(&n)
	return n, err
}
