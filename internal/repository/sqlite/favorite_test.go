package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/yawmiyat/internal/apperror"
)

func TestFavorites_AddRemove(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "f@example.com")
	e := createTestEntry(t, db, user.ID, "2024-01-01", "x")

	require.NoError(t, db.AddFavorite(ctx, user.ID, e.ID))
	require.NoError(t, db.AddFavorite(ctx, user.ID, e.ID), "adding twice is a no-op")

	ids, err := db.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{e.ID}, ids)

	got, err := db.GetEntry(ctx, user.ID, e.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFavorite)

	require.NoError(t, db.RemoveFavorite(ctx, user.ID, e.ID))
	ids, err = db.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFavorites_MissingEntry(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "f@example.com")

	err := db.AddFavorite(context.Background(), user.ID, "missing")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestFavorites_CascadeOnEntryDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "c@example.com")
	e := createTestEntry(t, db, user.ID, "2024-01-01", "x")
	keep := createTestEntry(t, db, user.ID, "2024-01-02", "y")
	require.NoError(t, db.AddFavorite(ctx, user.ID, e.ID))
	require.NoError(t, db.AddFavorite(ctx, user.ID, keep.ID))

	require.NoError(t, db.DeleteEntry(ctx, user.ID, e.ID))

	ids, err := db.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, ids)
}
