// Package repository declares the storage interfaces the services depend on.
//
// Every method is scoped by the owning user's id; asking for another user's
// row behaves exactly like asking for a missing one and yields
// apperror.ErrNotFound.
package repository

import (
	"context"

	"github.com/sakif/yawmiyat/internal/model"
)

// ListOptions pages a list query. A zero Limit means no limit.
type ListOptions struct {
	Limit  int
	Offset int
}

type EntryRepository interface {
	CreateEntry(ctx context.Context, entry *model.Entry) error
	GetEntry(ctx context.Context, userID, id string) (*model.Entry, error)
	// ListEntries returns entries newest day first.
	ListEntries(ctx context.Context, userID string, opts ListOptions) ([]model.Entry, error)
	UpdateEntry(ctx context.Context, entry *model.Entry) error
	DeleteEntry(ctx context.Context, userID, id string) error
	// DeleteEntries removes every listed entry that exists and reports how
	// many were removed.
	DeleteEntries(ctx context.Context, userID string, ids []string) (int, error)
	// ImportEntries writes entries keeping their ids where possible and
	// returns the number written.
	ImportEntries(ctx context.Context, userID string, entries []model.Entry) (int, error)
}

type TagRepository interface {
	CreateTag(ctx context.Context, tag *model.Tag) error
	ListTags(ctx context.Context, userID string) ([]model.Tag, error)
	DeleteTag(ctx context.Context, userID, id string) error
}

type TemplateRepository interface {
	CreateTemplate(ctx context.Context, tpl *model.Template) error
	GetTemplate(ctx context.Context, userID, id string) (*model.Template, error)
	ListTemplates(ctx context.Context, userID string) ([]model.Template, error)
	UpdateTemplate(ctx context.Context, tpl *model.Template) error
	DeleteTemplate(ctx context.Context, userID, id string) error
}

// FavoriteRepository stores the per-user favorite set. Favorites disappear
// with the entry they point at.
type FavoriteRepository interface {
	AddFavorite(ctx context.Context, userID, entryID string) error
	RemoveFavorite(ctx context.Context, userID, entryID string) error
	ListFavorites(ctx context.Context, userID string) ([]string, error)
}

type UserRepository interface {
	// Upsert inserts or refreshes a GitHub account, keyed by GitHubID, and
	// reports whether a new row was created.
	Upsert(ctx context.Context, user *model.User) (bool, error)
	// CreateUser inserts a password account. A taken email is ErrConflict.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateSettings(ctx context.Context, userID string, settings model.Settings) error
}
