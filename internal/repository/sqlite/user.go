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

var _ repository.UserRepository = (*DB)(nil)

const userColumns = `id, email, name, password_hash, github_id, login, avatar_url, settings, created_at, updated_at`

// Upsert inserts or updates a user based on their GitHub ID.
//
// An existing row keeps its internal id and settings; only the profile
// fields GitHub owns are refreshed. A new row starts with default settings.
// The boolean result is true when the row was inserted.
func (db *DB) Upsert(ctx context.Context, user *model.User) (bool, error) {
	var existingID string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM users WHERE github_id = ?`, user.GitHubID,
	).Scan(&existingID)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("sqlite: looking up user by github_id %d: %w", user.GitHubID, err)
	}

	if existingID != "" {
		user.ID = existingID
		user.UpdatedAt = time.Now()
		_, err = db.conn.ExecContext(ctx,
			`UPDATE users SET login = ?, name = ?, avatar_url = ?, updated_at = ?
			 WHERE id = ?`,
			user.Login, user.Name, user.AvatarURL, user.UpdatedAt, user.ID,
		)
		if err != nil {
			return false, fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
		}

		stored, err := db.GetUserByID(ctx, user.ID)
		if err != nil {
			return false, err
		}
		*user = *stored
		return false, nil
	}

	user.Settings = model.DefaultSettings()
	if err := db.insertUser(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return false, apperror.Conflict("user", user.Email)
		}
		return false, fmt.Errorf("sqlite: inserting user (githubID=%d): %w", user.GitHubID, err)
	}
	return true, nil
}

// CreateUser inserts a password account. Settings default when unset.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	if user.Settings == (model.Settings{}) {
		user.Settings = model.DefaultSettings()
	}
	if err := db.insertUser(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", user.Email)
		}
		return fmt.Errorf("sqlite: creating user %s: %w", user.Email, err)
	}
	return nil
}

func (db *DB) insertUser(ctx context.Context, user *model.User) error {
	settings, err := encodeJSON(user.Settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		nullString(user.Email),
		user.Name,
		nullString(user.PasswordHash),
		nullInt64(user.GitHubID),
		user.Login,
		user.AvatarURL,
		settings,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// GetUserByID returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}
	return u, nil
}

// GetUserByEmail matches the stored email exactly; callers normalize case.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}
	return u, nil
}

func (db *DB) UpdateSettings(ctx context.Context, userID string, settings model.Settings) error {
	raw, err := encodeJSON(settings)
	if err != nil {
		return fmt.Errorf("sqlite: encoding settings: %w", err)
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET settings = ?, updated_at = ? WHERE id = ?`,
		raw, time.Now(), userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating settings of %s: %w", userID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("user", userID)
	}
	return nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var (
		u            model.User
		email, hash  sql.NullString
		githubID     sql.NullInt64
		settingsJSON string
	)
	err := row.Scan(
		&u.ID,
		&email,
		&u.Name,
		&hash,
		&githubID,
		&u.Login,
		&u.AvatarURL,
		&settingsJSON,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	u.PasswordHash = hash.String
	u.GitHubID = githubID.Int64

	u.Settings = model.DefaultSettings()
	if err := decodeJSON("settings", settingsJSON, &u.Settings); err != nil {
		return nil, err
	}
	return &u, nil
}
