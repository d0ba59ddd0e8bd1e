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

var _ repository.TemplateRepository = (*DB)(nil)

const templateColumns = `id, user_id, name, description, icon, category, fields, created_at, updated_at`

// CreateTemplate stores a user-defined template. Built-in templates are
// never stored; they are generated on every read by the service layer.
func (db *DB) CreateTemplate(ctx context.Context, tpl *model.Template) error {
	fields, err := encodeJSON(tpl.Fields)
	if err != nil {
		return fmt.Errorf("sqlite: encoding template fields: %w", err)
	}

	tpl.ID = xid.New().String()
	now := time.Now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO templates (`+templateColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tpl.ID, tpl.UserID, tpl.Name, tpl.Description, tpl.Icon, tpl.Category, fields,
		tpl.CreatedAt, tpl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating template: %w", err)
	}
	return nil
}

func (db *DB) GetTemplate(ctx context.Context, userID, id string) (*model.Template, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE id = ? AND user_id = ?`, id, userID)
	tpl, err := scanTemplate(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("template", id)
		}
		return nil, fmt.Errorf("sqlite: getting template %s: %w", id, err)
	}
	return tpl, nil
}

func (db *DB) ListTemplates(ctx context.Context, userID string) ([]model.Template, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE user_id = ? ORDER BY created_at, rowid`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing templates: %w", err)
	}
	defer rows.Close()

	var templates []model.Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning template row: %w", err)
		}
		templates = append(templates, *tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating template rows: %w", err)
	}
	return templates, nil
}

func (db *DB) UpdateTemplate(ctx context.Context, tpl *model.Template) error {
	fields, err := encodeJSON(tpl.Fields)
	if err != nil {
		return fmt.Errorf("sqlite: encoding template fields: %w", err)
	}
	tpl.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE templates SET name = ?, description = ?, icon = ?, category = ?, fields = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		tpl.Name, tpl.Description, tpl.Icon, tpl.Category, fields, tpl.UpdatedAt,
		tpl.ID, tpl.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating template %s: %w", tpl.ID, err)
	}
	return expectOneRow(result, "template", tpl.ID)
}

func (db *DB) DeleteTemplate(ctx context.Context, userID, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM templates WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("sqlite: deleting template %s: %w", id, err)
	}
	return expectOneRow(result, "template", id)
}

func scanTemplate(s scanner) (*model.Template, error) {
	var (
		tpl    model.Template
		fields string
	)
	err := s.Scan(&tpl.ID, &tpl.UserID, &tpl.Name, &tpl.Description, &tpl.Icon,
		&tpl.Category, &fields, &tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON("fields", fields, &tpl.Fields); err != nil {
		return nil, err
	}
	return &tpl, nil
}
