package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/export"
	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/repository"
)

var repositoryAll = repository.ListOptions{}

func TestExportService_JSON(t *testing.T) {
	store := newFakeStore()
	journal := newTestJournal(store)
	svc := NewExportService(store, store, testLogger(), fixedClock)
	ctx := context.Background()

	_, err := journal.Create(ctx, testUser, EntryInput{Title: "يوم", Tags: []string{"عمل"}})
	require.NoError(t, err)

	data, err := svc.Export(ctx, testUser, "")
	require.NoError(t, err)

	var backup export.Backup
	require.NoError(t, json.Unmarshal(data, &backup))
	assert.Equal(t, export.Version, backup.Version)
	assert.True(t, backup.ExportedAt.Equal(fixedNow))
	require.Len(t, backup.Entries, 1)
	require.Len(t, backup.Tags, 1)
	assert.Equal(t, "عمل", backup.Tags[0].Name)
}

func TestExportService_Text(t *testing.T) {
	store := newFakeStore()
	journal := newTestJournal(store)
	svc := NewExportService(store, store, testLogger(), fixedClock)
	ctx := context.Background()

	_, err := journal.Create(ctx, testUser, EntryInput{Title: "رحلة"})
	require.NoError(t, err)

	data, err := svc.Export(ctx, testUser, FormatText)
	require.NoError(t, err)
	assert.Contains(t, string(data), "رحلة")
}

func TestExportService_Errors(t *testing.T) {
	store := newFakeStore()
	svc := NewExportService(store, store, testLogger(), fixedClock)
	ctx := context.Background()

	_, err := svc.Export(ctx, testUser, "pdf")
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	store.listEntriesErr = errors.New("db down")
	_, err = svc.Export(ctx, testUser, FormatJSON)
	assert.Error(t, err)
}

func TestExportService_ImportRoundTrip(t *testing.T) {
	src := newFakeStore()
	journal := newTestJournal(src)
	exporter := NewExportService(src, src, testLogger(), fixedClock)
	ctx := context.Background()

	e, err := journal.Create(ctx, testUser, EntryInput{Title: "أول", Tags: []string{"سفر"}, Mood: model.MoodHappy})
	require.NoError(t, err)
	_, err = journal.ToggleFavorite(ctx, testUser, e.ID)
	require.NoError(t, err)

	data, err := exporter.Export(ctx, testUser, FormatJSON)
	require.NoError(t, err)

	dst := newFakeStore()
	require.NoError(t, dst.CreateTag(ctx, &model.Tag{UserID: "other", Name: "سفر", Color: "#000000"}))
	importer := NewExportService(dst, dst, testLogger(), fixedClock)

	res, err := importer.Import(ctx, "other", data)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Entries)
	assert.Equal(t, 0, res.Tags, "existing tag names are skipped")

	entries, err := dst.ListEntries(ctx, "other", repositoryAll)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "أول", entries[0].Title)
	assert.Equal(t, model.MoodHappy, entries[0].Mood)
	assert.True(t, entries[0].IsFavorite)
}

func TestExportService_ImportRejectsBadData(t *testing.T) {
	store := newFakeStore()
	svc := NewExportService(store, store, testLogger(), fixedClock)

	_, err := svc.Import(context.Background(), testUser, []byte(`{"version":"1.0"}`))
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestExportService_ImportValidatesEntries(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "malformed date",
			data: `{"entries":[{"id":"e1","title":"x","date":"11/03/2024","content":[],"tags":[]}]}`,
		},
		{
			name: "unknown mood",
			data: `{"entries":[{"id":"e1","date":"2024-03-11","mood":"ecstatic","content":[],"tags":[]}]}`,
		},
		{
			name: "duplicate block ids",
			data: `{"entries":[{"id":"e1","date":"2024-03-11","tags":[],"content":[` +
				`{"id":"b1","type":"text","content":"a"},{"id":"b1","type":"text","content":"b"}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			svc := NewExportService(store, store, testLogger(), fixedClock)

			_, err := svc.Import(context.Background(), testUser, []byte(tt.data))
			assert.True(t, errors.Is(err, apperror.ErrValidation), "got %v", err)

			entries, err := store.ListEntries(context.Background(), testUser, repositoryAll)
			require.NoError(t, err)
			assert.Empty(t, entries, "nothing is written")
		})
	}
}
