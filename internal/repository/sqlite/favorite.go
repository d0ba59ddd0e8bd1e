package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/repository"
)

var _ repository.FavoriteRepository = (*DB)(nil)

// AddFavorite marks the entry as a favorite. Adding twice is a no-op.
func (db *DB) AddFavorite(ctx context.Context, userID, entryID string) error {
	var owned int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE id = ? AND user_id = ?`, entryID, userID,
	).Scan(&owned)
	if err != nil {
		return fmt.Errorf("sqlite: checking entry %s: %w", entryID, err)
	}
	if owned == 0 {
		return apperror.NotFound("entry", entryID)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorites (user_id, entry_id, created_at) VALUES (?, ?, ?)`,
		userID, entryID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: adding favorite %s: %w", entryID, err)
	}
	return nil
}

// RemoveFavorite unmarks the entry. Removing a non-favorite is a no-op.
func (db *DB) RemoveFavorite(ctx context.Context, userID, entryID string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND entry_id = ?`, userID, entryID)
	if err != nil {
		return fmt.Errorf("sqlite: removing favorite %s: %w", entryID, err)
	}
	return nil
}

// ListFavorites returns favorite entry ids, most recently favorited first.
func (db *DB) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT entry_id FROM favorites WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing favorites: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scanning favorite row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating favorite rows: %w", err)
	}
	return ids, nil
}
