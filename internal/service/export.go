package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/calendar"
	"github.com/sakif/yawmiyat/internal/document"
	"github.com/sakif/yawmiyat/internal/export"
	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/repository"
)

// Format is a backup format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ImportResult counts what an import wrote.
type ImportResult struct {
	Entries int `json:"entries"`
	Tags    int `json:"tags"`
}

// ExportService writes and restores backups.
type ExportService struct {
	entries repository.EntryRepository
	tags    repository.TagRepository
	logger  *slog.Logger
	now     Clock
}

func NewExportService(
	entries repository.EntryRepository,
	tags repository.TagRepository,
	logger *slog.Logger,
	now Clock,
) *ExportService {
	return &ExportService{entries: entries, tags: tags, logger: logger, now: now.orDefault()}
}

// Export renders all of the user's entries in format. Entries and tags are
// loaded concurrently.
func (s *ExportService) Export(ctx context.Context, userID string, format Format) ([]byte, error) {
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatText {
		return nil, apperror.ValidationFailed("format", fmt.Sprintf("unknown export format %q", format))
	}

	var (
		entries []model.Entry
		tags    []model.Tag
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.entries.ListEntries(gctx, userID, repository.ListOptions{})
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = s.tags.ListTags(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading backup data: %w", err)
	}

	s.logger.Info("export",
		slog.String("userID", userID),
		slog.String("format", string(format)),
		slog.Int("entries", len(entries)),
	)

	if format == FormatText {
		return []byte(export.Text(entries)), nil
	}
	return export.JSON(entries, tags, s.now())
}

// Import restores a JSON backup into the user's journal. Entries with an id
// the user already has are overwritten; tags whose name is taken are skipped.
func (s *ExportService) Import(ctx context.Context, userID string, data []byte) (ImportResult, error) {
	backup, err := export.Import(data)
	if err != nil {
		return ImportResult{}, err
	}

	if err := validateImported(backup.Entries); err != nil {
		return ImportResult{}, err
	}

	n, err := s.entries.ImportEntries(ctx, userID, backup.Entries)
	if err != nil {
		return ImportResult{}, fmt.Errorf("importing entries: %w", err)
	}
	result := ImportResult{Entries: n}

	for _, t := range backup.Tags {
		if t.Name == "" {
			continue
		}
		color := t.Color
		if color == "" {
			color = model.DefaultTagColor
		}
		err := s.tags.CreateTag(ctx, &model.Tag{UserID: userID, Name: t.Name, Color: color})
		if errors.Is(err, apperror.ErrConflict) {
			continue
		}
		if err != nil {
			return result, fmt.Errorf("importing tag %q: %w", t.Name, err)
		}
		result.Tags++
	}

	s.logger.Info("import",
		slog.String("userID", userID),
		slog.Int("entries", result.Entries),
		slog.Int("tags", result.Tags),
	)
	return result, nil
}

// validateImported holds backup entries to the same date, mood and block id
// rules as entries written through the journal. Nothing is written when any
// entry fails.
func validateImported(entries []model.Entry) error {
	for i, e := range entries {
		if _, err := calendar.ParseDay(e.Date, nil); err != nil {
			return apperror.ValidationFailed("date",
				fmt.Sprintf("entry %d: date %q must be YYYY-MM-DD", i+1, e.Date))
		}
		if e.Mood != "" && !e.Mood.Valid() {
			return apperror.ValidationFailed("mood",
				fmt.Sprintf("entry %d: unknown mood %q", i+1, e.Mood))
		}
		if err := document.New(nil).Replace(e.Content); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return nil
}
