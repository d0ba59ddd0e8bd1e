package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/repository"
)

var _ repository.TagRepository = (*DB)(nil)

// CreateTag inserts a tag. Names are unique per user; a second tag with the
// same name is ErrConflict.
func (db *DB) CreateTag(ctx context.Context, tag *model.Tag) error {
	tag.ID = xid.New().String()
	tag.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO tags (id, user_id, name, color, created_at) VALUES (?, ?, ?, ?, ?)`,
		tag.ID, tag.UserID, tag.Name, tag.Color, tag.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("tag", tag.Name)
		}
		return fmt.Errorf("sqlite: creating tag %q: %w", tag.Name, err)
	}
	return nil
}

// ListTags returns tags in creation order.
func (db *DB) ListTags(ctx context.Context, userID string) ([]model.Tag, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, name, color, created_at FROM tags
		 WHERE user_id = ? ORDER BY created_at, rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tag rows: %w", err)
	}
	return tags, nil
}

// DeleteTag removes the tag only. Entries keep the name in their tag list.
func (db *DB) DeleteTag(ctx context.Context, userID, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM tags WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("sqlite: deleting tag %s: %w", id, err)
	}
	return expectOneRow(result, "tag", id)
}
