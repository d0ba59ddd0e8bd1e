package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/repository"
)

var _ repository.EntryRepository = (*DB)(nil)

// entrySelect loads an entry together with its derived favorite flag.
const entrySelect = `
	SELECT e.id, e.user_id, e.title, e.content, e.mood, e.tags, e.date,
	       e.location, e.weather, e.attachments, e.template_id, e.smart_forms,
	       e.created_at, e.updated_at,
	       EXISTS (SELECT 1 FROM favorites f WHERE f.entry_id = e.id AND f.user_id = e.user_id)
	FROM entries e`

// entryRow is an entry with its JSON columns already encoded.
type entryRow struct {
	content, tags, location, weather, attachments, smartForms string
}

func encodeEntry(e *model.Entry) (entryRow, error) {
	var (
		r   entryRow
		err error
	)
	fields := []struct {
		name string
		dst  *string
		v    any
	}{
		{"content", &r.content, e.Content},
		{"tags", &r.tags, e.Tags},
		{"location", &r.location, e.Location},
		{"weather", &r.weather, e.Weather},
		{"attachments", &r.attachments, e.Attachments},
		{"smart_forms", &r.smartForms, e.SmartForms},
	}
	for _, f := range fields {
		if *f.dst, err = encodeJSON(f.v); err != nil {
			return entryRow{}, fmt.Errorf("encoding %s: %w", f.name, err)
		}
	}
	return r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*model.Entry, error) {
	var (
		e model.Entry
		r entryRow
	)
	err := s.Scan(
		&e.ID,
		&e.UserID,
		&e.Title,
		&r.content,
		&e.Mood,
		&r.tags,
		&e.Date,
		&r.location,
		&r.weather,
		&r.attachments,
		&e.TemplateID,
		&r.smartForms,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.IsFavorite,
	)
	if err != nil {
		return nil, err
	}

	decode := []struct {
		name string
		raw  string
		dst  any
	}{
		{"content", r.content, &e.Content},
		{"tags", r.tags, &e.Tags},
		{"location", r.location, &e.Location},
		{"weather", r.weather, &e.Weather},
		{"attachments", r.attachments, &e.Attachments},
		{"smart_forms", r.smartForms, &e.SmartForms},
	}
	for _, d := range decode {
		if err := decodeJSON(d.name, d.raw, d.dst); err != nil {
			return nil, err
		}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return &e, nil
}

// CreateEntry assigns the id and timestamps and inserts the entry. The
// favorite flag is not stored on the row; see AddFavorite.
func (db *DB) CreateEntry(ctx context.Context, entry *model.Entry) error {
	entry.ID = xid.New().String()
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := insertEntry(ctx, db.conn, entry); err != nil {
		return fmt.Errorf("sqlite: creating entry: %w", err)
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertEntry(ctx context.Context, ex execer, e *model.Entry) error {
	r, err := encodeEntry(e)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx,
		`INSERT INTO entries (id, user_id, title, content, mood, tags, date, location,
		                      weather, attachments, template_id, smart_forms, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Title, r.content, e.Mood, r.tags, e.Date, r.location,
		r.weather, r.attachments, e.TemplateID, r.smartForms, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (db *DB) GetEntry(ctx context.Context, userID, id string) (*model.Entry, error) {
	row := db.conn.QueryRowContext(ctx,
		entrySelect+` WHERE e.id = ? AND e.user_id = ?`, id, userID)
	e, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("entry", id)
		}
		return nil, fmt.Errorf("sqlite: getting entry %s: %w", id, err)
	}
	return e, nil
}

// ListEntries returns the user's entries, newest day first and, within a
// day, most recently created first.
func (db *DB) ListEntries(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := db.conn.QueryContext(ctx,
		entrySelect+` WHERE e.user_id = ?
		 ORDER BY e.date DESC, e.created_at DESC
		 LIMIT ? OFFSET ?`,
		userID, limit, opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing entries: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning entry row: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating entry rows: %w", err)
	}
	return entries, nil
}

// UpdateEntry overwrites every stored field and refreshes UpdatedAt.
func (db *DB) UpdateEntry(ctx context.Context, entry *model.Entry) error {
	r, err := encodeEntry(entry)
	if err != nil {
		return fmt.Errorf("sqlite: updating entry %s: %w", entry.ID, err)
	}
	entry.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE entries
		 SET title = ?, content = ?, mood = ?, tags = ?, date = ?, location = ?, weather = ?,
		     attachments = ?, template_id = ?, smart_forms = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		entry.Title, r.content, entry.Mood, r.tags, entry.Date, r.location, r.weather,
		r.attachments, entry.TemplateID, r.smartForms, entry.UpdatedAt,
		entry.ID, entry.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating entry %s: %w", entry.ID, err)
	}
	return expectOneRow(result, "entry", entry.ID)
}

// DeleteEntry removes the entry; its favorite row goes with it through the
// foreign key cascade.
func (db *DB) DeleteEntry(ctx context.Context, userID, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("sqlite: deleting entry %s: %w", id, err)
	}
	return expectOneRow(result, "entry", id)
}

func (db *DB) DeleteEntries(ctx context.Context, userID string, ids []string) (int, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: beginning delete: %w", err)
	}
	defer tx.Rollback()

	deleted := 0
	for _, id := range ids {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM entries WHERE id = ? AND user_id = ?`, id, userID)
		if err != nil {
			return 0, fmt.Errorf("sqlite: deleting entry %s: %w", id, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("sqlite: checking rows affected: %w", err)
		}
		deleted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: committing delete: %w", err)
	}
	return deleted, nil
}

// ImportEntries upserts entries in one transaction. An id already owned by a
// different user is replaced with a fresh one. The favorite set follows each
// entry's IsFavorite flag.
func (db *DB) ImportEntries(ctx context.Context, userID string, entries []model.Entry) (int, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: beginning import: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for i := range entries {
		e := entries[i]
		e.UserID = userID
		if e.ID == "" {
			e.ID = xid.New().String()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		if e.UpdatedAt.IsZero() {
			e.UpdatedAt = e.CreatedAt
		}

		written, err := upsertEntry(ctx, tx, &e)
		if err != nil {
			return 0, fmt.Errorf("sqlite: importing entry %s: %w", e.ID, err)
		}
		if !written {
			e.ID = xid.New().String()
			if err := insertEntry(ctx, tx, &e); err != nil {
				return 0, fmt.Errorf("sqlite: importing entry %s: %w", e.ID, err)
			}
		}

		if e.IsFavorite {
			_, err = tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO favorites (user_id, entry_id, created_at) VALUES (?, ?, ?)`,
				userID, e.ID, now)
		} else {
			_, err = tx.ExecContext(ctx,
				`DELETE FROM favorites WHERE user_id = ? AND entry_id = ?`, userID, e.ID)
		}
		if err != nil {
			return 0, fmt.Errorf("sqlite: importing favorite %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: committing import: %w", err)
	}
	return len(entries), nil
}

// upsertEntry inserts e or overwrites the row with the same id when the same
// user owns it. It reports false when the id belongs to someone else.
func upsertEntry(ctx context.Context, tx *sql.Tx, e *model.Entry) (bool, error) {
	r, err := encodeEntry(e)
	if err != nil {
		return false, err
	}
	result, err := tx.ExecContext(ctx,
		`INSERT INTO entries (id, user_id, title, content, mood, tags, date, location,
		                      weather, attachments, template_id, smart_forms, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     title = excluded.title, content = excluded.content, mood = excluded.mood,
		     tags = excluded.tags, date = excluded.date, location = excluded.location,
		     weather = excluded.weather, attachments = excluded.attachments,
		     template_id = excluded.template_id, smart_forms = excluded.smart_forms,
		     created_at = excluded.created_at, updated_at = excluded.updated_at
		 WHERE entries.user_id = excluded.user_id`,
		e.ID, e.UserID, e.Title, r.content, e.Mood, r.tags, e.Date, r.location,
		r.weather, r.attachments, e.TemplateID, r.smartForms, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// expectOneRow turns an UPDATE or DELETE that matched nothing into NotFound.
func expectOneRow(result sql.Result, resource, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
