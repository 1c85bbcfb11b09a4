package repos

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"binger-server/internal/model"
)

type ListsRepo struct {
	db *pgxpool.Pool
}

var ErrUnknownListKind = errors.New("unknown list kind")

// Add puts a show on a membership list. Re-adding is a no-op.
func (r *ListsRepo) Add(ctx context.Context, fingerprint, kind string, showID int64, now time.Time) (bool, error) {
	if _, ok := model.AllowedListKinds[kind]; !ok {
		return false, ErrUnknownListKind
	}
	tag, err := r.db.Exec(ctx, `
		INSERT INTO list_items (fingerprint, show_id, kind, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (fingerprint, show_id, kind) DO NOTHING`,
		fingerprint, showID, kind, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ListsRepo) Remove(ctx context.Context, fingerprint, kind string, showID int64) error {
	if _, ok := model.AllowedListKinds[kind]; !ok {
		return ErrUnknownListKind
	}
	_, err := r.db.Exec(ctx,
		`DELETE FROM list_items WHERE fingerprint = $1 AND show_id = $2 AND kind = $3`,
		fingerprint, showID, kind)
	return err
}

// ItemsPage returns one keyset page of membership rows, newest first.
// Cursor position is (added_at, show_id) of the last row seen.
func (r *ListsRepo) ItemsPage(ctx context.Context, fingerprint, kind string, cursorAt *time.Time, cursorShow *int64, limit int32) ([]model.ListItem, error) {
	if _, ok := model.AllowedListKinds[kind]; !ok {
		return nil, ErrUnknownListKind
	}
	at := time.Now().UTC().Add(time.Hour)
	show := int64(0)
	if cursorAt != nil {
		at = *cursorAt
	}
	if cursorShow != nil {
		show = *cursorShow
	}
	rows, err := r.db.Query(ctx, `
		SELECT show_id, kind, added_at FROM list_items
		WHERE fingerprint = $1 AND kind = $2 AND (added_at, show_id) < ($3, $4)
		ORDER BY added_at DESC, show_id DESC
		LIMIT $5`,
		fingerprint, kind, at, show, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ListItem
	for rows.Next() {
		var it model.ListItem
		if err := rows.Scan(&it.ShowID, &it.Kind, &it.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Count returns the total number of rows on one of the user's lists.
func (r *ListsRepo) Count(ctx context.Context, fingerprint, kind string) (int64, error) {
	if _, ok := model.AllowedListKinds[kind]; !ok {
		return 0, ErrUnknownListKind
	}
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM list_items WHERE fingerprint = $1 AND kind = $2`,
		fingerprint, kind).Scan(&n)
	return n, err
}

// ShowIDs returns the distinct show ids on any of the user's lists.
// The calendar treats these as "owned" shows.
func (r *ListsRepo) ShowIDs(ctx context.Context, fingerprint string) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT show_id FROM list_items WHERE fingerprint = $1`, fingerprint)
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
