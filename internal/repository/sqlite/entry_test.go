package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/block"
	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/repository"
)

func createTestEntry(t *testing.T, db *DB, userID, date, title string) *model.Entry {
	t.Helper()
	e := &model.Entry{UserID: userID, Date: date, Title: title, Tags: []string{}}
	if err := db.CreateEntry(context.Background(), e); err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return e
}

// =========================================================================
// CREATE / GET TESTS
// =========================================================================

func TestCreateEntry_PersistsEveryField(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "e@example.com")

	text, err := block.Create(block.VariantText, block.Input{Text: "صباح الخير"})
	require.NoError(t, err)
	tracker, err := block.Create(block.VariantTracker, block.Input{Name: "ماء", Current: 3})
	require.NoError(t, err)

	entry := &model.Entry{
		UserID:   user.ID,
		Title:    "يوم",
		Content:  []block.Block{text, tracker},
		Mood:     model.MoodHappy,
		Tags:     []string{"عمل"},
		Date:     "2024-03-11",
		Location: &model.Location{Name: "الرياض", Lat: 24.7, Lng: 46.7},
		Weather:  &model.WeatherData{Temp: 30, Description: "مشمس", Icon: "01d"},
		SmartForms: []model.FormSubmission{
			{TemplateID: "daily-reflection", Values: map[string]any{"mood-rating": 4.0}},
		},
		TemplateID: "daily-reflection",
	}
	require.NoError(t, db.CreateEntry(ctx, entry))
	require.NotEmpty(t, entry.ID)

	got, err := db.GetEntry(ctx, user.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Content, got.Content)
	assert.Equal(t, entry.Tags, got.Tags)
	assert.Equal(t, entry.Location, got.Location)
	assert.Equal(t, entry.Weather, got.Weather)
	assert.Equal(t, entry.SmartForms, got.SmartForms)
	assert.Equal(t, model.MoodHappy, got.Mood)
	assert.Equal(t, "daily-reflection", got.TemplateID)
	assert.False(t, got.IsFavorite)
	assert.Nil(t, got.Attachments)
}

func TestGetEntry_OtherUserIsNotFound(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	e := createTestEntry(t, db, owner.ID, "2024-01-01", "خاص")

	_, err := db.GetEntry(context.Background(), other.ID, e.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestGetEntry_NilTagsComeBackEmpty(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "t@example.com")
	e := &model.Entry{UserID: user.ID, Date: "2024-01-01"}
	require.NoError(t, db.CreateEntry(context.Background(), e))

	got, err := db.GetEntry(context.Background(), user.ID, e.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestListEntries_NewestDayFirst(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "l@example.com")
	createTestEntry(t, db, user.ID, "2024-01-02", "b")
	createTestEntry(t, db, user.ID, "2024-01-05", "c")
	createTestEntry(t, db, user.ID, "2024-01-01", "a")

	entries, err := db.ListEntries(context.Background(), user.ID, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "c", entries[0].Title)
	assert.Equal(t, "b", entries[1].Title)
	assert.Equal(t, "a", entries[2].Title)
}

func TestListEntries_Pagination(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "p@example.com")
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		createTestEntry(t, db, user.ID, d, d)
	}

	page, err := db.ListEntries(context.Background(), user.ID, repository.ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "2024-01-02", page[0].Date)
	assert.Equal(t, "2024-01-01", page[1].Date)
}

func TestListEntries_ScopedToUser(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "a@example.com")
	b := createTestUser(t, db, "b@example.com")
	createTestEntry(t, db, a.ID, "2024-01-01", "a")

	entries, err := db.ListEntries(context.Background(), b.ID, repository.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// =========================================================================
// UPDATE / DELETE TESTS
// =========================================================================

func TestUpdateEntry(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "u@example.com")
	e := createTestEntry(t, db, user.ID, "2024-01-01", "قديم")
	before := e.UpdatedAt

	e.Title = "جديد"
	e.Mood = model.MoodTired
	require.NoError(t, db.UpdateEntry(ctx, e))
	assert.True(t, e.UpdatedAt.After(before) || e.UpdatedAt.Equal(before))

	got, err := db.GetEntry(ctx, user.ID, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "جديد", got.Title)
	assert.Equal(t, model.MoodTired, got.Mood)
}

func TestUpdateEntry_NotFound(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "u@example.com")

	err := db.UpdateEntry(context.Background(), &model.Entry{ID: "missing", UserID: user.ID, Date: "2024-01-01"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDeleteEntry(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "d@example.com")
	e := createTestEntry(t, db, user.ID, "2024-01-01", "x")

	require.NoError(t, db.DeleteEntry(ctx, user.ID, e.ID))
	_, err := db.GetEntry(ctx, user.ID, e.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	assert.True(t, errors.Is(db.DeleteEntry(ctx, user.ID, e.ID), apperror.ErrNotFound),
		"deleting twice must report not found")
}

func TestDeleteEntries_CountsOnlyExisting(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "m@example.com")
	a := createTestEntry(t, db, user.ID, "2024-01-01", "a")
	b := createTestEntry(t, db, user.ID, "2024-01-02", "b")
	createTestEntry(t, db, user.ID, "2024-01-03", "c")

	n, err := db.DeleteEntries(ctx, user.ID, []string{a.ID, b.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	left, err := db.ListEntries(ctx, user.ID, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "c", left[0].Title)
}

// =========================================================================
// IMPORT TESTS
// =========================================================================

func TestImportEntries_KeepsIDsAndFavorites(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "i@example.com")

	n, err := db.ImportEntries(ctx, user.ID, []model.Entry{
		{ID: "imported-1", Date: "2024-02-01", Title: "أ", IsFavorite: true},
		{ID: "imported-2", Date: "2024-02-02", Title: "ب"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := db.GetEntry(ctx, user.ID, "imported-1")
	require.NoError(t, err)
	assert.True(t, got.IsFavorite)
	assert.False(t, got.CreatedAt.IsZero())

	// a second import overwrites in place
	_, err = db.ImportEntries(ctx, user.ID, []model.Entry{{ID: "imported-1", Date: "2024-02-01", Title: "محدث"}})
	require.NoError(t, err)
	got, err = db.GetEntry(ctx, user.ID, "imported-1")
	require.NoError(t, err)
	assert.Equal(t, "محدث", got.Title)
	assert.False(t, got.IsFavorite)
}

func TestImportEntries_ForeignIDGetsFreshID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := createTestUser(t, db, "a@example.com")
	b := createTestUser(t, db, "b@example.com")
	owned := createTestEntry(t, db, a.ID, "2024-01-01", "ملك أ")

	_, err := db.ImportEntries(ctx, b.ID, []model.Entry{{ID: owned.ID, Date: "2024-01-01", Title: "ملك ب"}})
	require.NoError(t, err)

	orig, err := db.GetEntry(ctx, a.ID, owned.ID)
	require.NoError(t, err)
	assert.Equal(t, "ملك أ", orig.Title, "another user's entry is untouched")

	bs, err := db.ListEntries(ctx, b.ID, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, bs, 1)
	assert.NotEqual(t, owned.ID, bs[0].ID)
	assert.Equal(t, "ملك ب", bs[0].Title)
}
