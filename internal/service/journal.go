package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/block"
	"github.com/sakif/yawmiyat/internal/calendar"
	"github.com/sakif/yawmiyat/internal/document"
	"github.com/sakif/yawmiyat/internal/journal"
	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/repository"
)

const MaxTitleLength = 200

// EntryInput carries the writable fields of an entry. Empty Title and Date
// are filled in: the date defaults to today and the title to the Arabic
// rendering of the date.
type EntryInput struct {
	Title       string                 `json:"title"`
	Content     []block.Block          `json:"content"`
	Mood        model.Mood             `json:"mood"`
	Tags        []string               `json:"tags"`
	Date        string                 `json:"date"`
	Location    *model.Location        `json:"location,omitempty"`
	Weather     *model.WeatherData     `json:"weather,omitempty"`
	Attachments []model.Attachment     `json:"attachments,omitempty"`
	TemplateID  string                 `json:"templateId,omitempty"`
	SmartForms  []model.FormSubmission `json:"smartForms,omitempty"`
}

// EntryPatch is a partial update of an entry. A nil field keeps the stored
// value. A non-nil empty slice or string clears it, except Title and Date,
// which fall back to the same defaults as on create.
type EntryPatch struct {
	Title       *string                 `json:"title"`
	Content     *[]block.Block          `json:"content"`
	Mood        *model.Mood             `json:"mood"`
	Tags        *[]string               `json:"tags"`
	Date        *string                 `json:"date"`
	Location    *model.Location         `json:"location,omitempty"`
	Weather     *model.WeatherData      `json:"weather,omitempty"`
	Attachments *[]model.Attachment     `json:"attachments,omitempty"`
	TemplateID  *string                 `json:"templateId,omitempty"`
	SmartForms  *[]model.FormSubmission `json:"smartForms,omitempty"`
}

// over returns the input that results from laying p over the stored entry.
func (p EntryPatch) over(e *model.Entry) EntryInput {
	in := EntryInput{
		Title:       e.Title,
		Content:     e.Content,
		Mood:        e.Mood,
		Tags:        e.Tags,
		Date:        e.Date,
		Location:    e.Location,
		Weather:     e.Weather,
		Attachments: e.Attachments,
		TemplateID:  e.TemplateID,
		SmartForms:  e.SmartForms,
	}
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Content != nil {
		in.Content = *p.Content
	}
	if p.Mood != nil {
		in.Mood = *p.Mood
	}
	if p.Tags != nil {
		in.Tags = *p.Tags
	}
	if p.Date != nil {
		in.Date = *p.Date
	}
	if p.Location != nil {
		in.Location = p.Location
	}
	if p.Weather != nil {
		in.Weather = p.Weather
	}
	if p.Attachments != nil {
		in.Attachments = *p.Attachments
	}
	if p.TemplateID != nil {
		in.TemplateID = *p.TemplateID
	}
	if p.SmartForms != nil {
		in.SmartForms = *p.SmartForms
	}
	return in
}

// ListQuery combines search, filtering, ordering and paging.
type ListQuery struct {
	Filter journal.Filter
	Order  journal.Order
	Limit  int
	Offset int
}

// EntryPage is one page of a filtered, ordered list.
type EntryPage struct {
	Entries []model.Entry `json:"entries"`
	Total   int           `json:"total"`
}

type JournalService struct {
	entries   repository.EntryRepository
	favorites repository.FavoriteRepository
	tags      repository.TagRepository
	logger    *slog.Logger
	now       Clock
}

func NewJournalService(
	entries repository.EntryRepository,
	favorites repository.FavoriteRepository,
	tags repository.TagRepository,
	logger *slog.Logger,
	now Clock,
) *JournalService {
	return &JournalService{
		entries:   entries,
		favorites: favorites,
		tags:      tags,
		logger:    logger,
		now:       now.orDefault(),
	}
}

// Create stores a new entry. Tags that are not yet saved are created with
// the default color.
func (s *JournalService) Create(ctx context.Context, userID string, in EntryInput) (*model.Entry, error) {
	entry := &model.Entry{UserID: userID}
	if err := s.apply(entry, in); err != nil {
		return nil, err
	}
	if err := s.ensureTags(ctx, userID, entry.Tags); err != nil {
		return nil, err
	}

	if err := s.entries.CreateEntry(ctx, entry); err != nil {
		s.logger.Error("failed to create entry",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	s.logger.Info("entry created",
		slog.String("id", entry.ID),
		slog.String("date", entry.Date),
	)
	return entry, nil
}

func (s *JournalService) Get(ctx context.Context, userID, id string) (*model.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "entry ID is required")
	}
	return s.entries.GetEntry(ctx, userID, id)
}

// All returns every entry of the user, newest day first.
func (s *JournalService) All(ctx context.Context, userID string) ([]model.Entry, error) {
	entries, err := s.entries.ListEntries(ctx, userID, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}

// List searches, filters and orders the user's entries and returns one page.
func (s *JournalService) List(ctx context.Context, userID string, q ListQuery) (*EntryPage, error) {
	if q.Filter.Mood != "" && !q.Filter.Mood.Valid() {
		return nil, apperror.ValidationFailed("mood", fmt.Sprintf("unknown mood %q", q.Filter.Mood))
	}

	all, err := s.All(ctx, userID)
	if err != nil {
		return nil, err
	}

	matched := journal.Apply(all, q.Filter)
	journal.Sort(matched, q.Order)

	limit, offset := clampPage(q.Limit, q.Offset)
	page := &EntryPage{Entries: []model.Entry{}, Total: len(matched)}
	if offset < len(matched) {
		end := min(offset+limit, len(matched))
		page.Entries = matched[offset:end]
	}
	return page, nil
}

// Update merges p into an existing entry. Fields p leaves out keep their
// stored values.
func (s *JournalService) Update(ctx context.Context, userID, id string, p EntryPatch) (*model.Entry, error) {
	entry, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(entry, p.over(entry)); err != nil {
		return nil, err
	}
	if err := s.ensureTags(ctx, userID, entry.Tags); err != nil {
		return nil, err
	}

	if err := s.entries.UpdateEntry(ctx, entry); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update entry",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating entry: %w", err)
	}

	s.logger.Info("entry updated", slog.String("id", entry.ID))
	return entry, nil
}

func (s *JournalService) Delete(ctx context.Context, userID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "entry ID is required")
	}
	if err := s.entries.DeleteEntry(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info("entry deleted", slog.String("id", id))
	return nil
}

// DeleteMany removes every listed entry that exists and returns the count.
func (s *JournalService) DeleteMany(ctx context.Context, userID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, apperror.ValidationFailed("ids", "at least one entry ID is required")
	}
	n, err := s.entries.DeleteEntries(ctx, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("deleting entries: %w", err)
	}
	s.logger.Info("entries deleted", slog.Int("count", n))
	return n, nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *JournalService) ToggleFavorite(ctx context.Context, userID, id string) (bool, error) {
	entry, err := s.Get(ctx, userID, id)
	if err != nil {
		return false, err
	}

	if entry.IsFavorite {
		if err := s.favorites.RemoveFavorite(ctx, userID, id); err != nil {
			return false, fmt.Errorf("removing favorite: %w", err)
		}
		return false, nil
	}
	if err := s.favorites.AddFavorite(ctx, userID, id); err != nil {
		return false, fmt.Errorf("adding favorite: %w", err)
	}
	return true, nil
}

// Stats computes the dashboard numbers as of today.
func (s *JournalService) Stats(ctx context.Context, userID string) (journal.Stats, error) {
	all, err := s.All(ctx, userID)
	if err != nil {
		return journal.Stats{}, err
	}
	return journal.Compute(all, s.now()), nil
}

// Calendar lays out month ("YYYY-MM"); an empty month means the current one.
func (s *JournalService) Calendar(ctx context.Context, userID, month string) ([]journal.DaySummary, error) {
	if month == "" {
		month = s.now().Format("2006-01")
	}
	all, err := s.All(ctx, userID)
	if err != nil {
		return nil, err
	}
	days, err := journal.Month(all, month)
	if err != nil {
		return nil, apperror.ValidationFailed("month", "month must be YYYY-MM")
	}
	return days, nil
}

// =========================================================================
// BLOCK EDITING
// =========================================================================

// AddBlock creates a block of variant v and appends it to the entry. A tag
// block whose label is not a saved tag also saves the tag.
func (s *JournalService) AddBlock(ctx context.Context, userID, entryID string, v block.Variant, in block.Input) (block.Block, error) {
	if !v.Valid() {
		return block.Block{}, apperror.ValidationFailed("type", fmt.Sprintf("unknown block type %q", v))
	}
	if in.Now.IsZero() {
		in.Now = s.now()
	}
	b, err := block.Create(v, in)
	if err != nil {
		return block.Block{}, err
	}

	err = s.editBlocks(ctx, userID, entryID, func(d *document.Document) error {
		d.Append(b)
		return nil
	})
	if err != nil {
		return block.Block{}, err
	}

	if err := s.saveTagBlock(ctx, userID, b); err != nil {
		return block.Block{}, err
	}
	return b, nil
}

// UpdateBlock applies p to one block of the entry.
func (s *JournalService) UpdateBlock(ctx context.Context, userID, entryID, blockID string, p block.Patch) (block.Block, error) {
	var updated block.Block
	err := s.editBlocks(ctx, userID, entryID, func(d *document.Document) error {
		var err error
		updated, err = d.UpdateByID(blockID, p)
		return err
	})
	return updated, err
}

func (s *JournalService) DeleteBlock(ctx context.Context, userID, entryID, blockID string) error {
	return s.editBlocks(ctx, userID, entryID, func(d *document.Document) error {
		return d.DeleteByID(blockID)
	})
}

// StyleBlock merges patch into one block's style. Fields patch leaves unset
// keep their current value.
func (s *JournalService) StyleBlock(ctx context.Context, userID, entryID, blockID string, patch block.Style) (block.Block, error) {
	var updated block.Block
	err := s.editBlocks(ctx, userID, entryID, func(d *document.Document) error {
		sess := document.NewSession(d)
		if err := sess.Select(blockID); err != nil {
			return err
		}
		var err error
		updated, _, err = sess.ApplyStyle(patch)
		return err
	})
	return updated, err
}

// DuplicateBlock inserts a copy right after the original.
func (s *JournalService) DuplicateBlock(ctx context.Context, userID, entryID, blockID string) (block.Block, error) {
	var dup block.Block
	err := s.editBlocks(ctx, userID, entryID, func(d *document.Document) error {
		var err error
		dup, err = d.DuplicateByID(blockID)
		return err
	})
	return dup, err
}

// editBlocks loads the entry, runs fn on its blocks and saves the result.
func (s *JournalService) editBlocks(ctx context.Context, userID, entryID string, fn func(*document.Document) error) error {
	entry, err := s.Get(ctx, userID, entryID)
	if err != nil {
		return err
	}

	doc := document.New(entry.Content)
	if err := fn(doc); err != nil {
		return err
	}
	entry.Content = doc.Blocks()

	if err := s.entries.UpdateEntry(ctx, entry); err != nil {
		return fmt.Errorf("saving blocks of entry %s: %w", entryID, err)
	}
	return nil
}

func (s *JournalService) saveTagBlock(ctx context.Context, userID string, b block.Block) error {
	saved, err := s.tags.ListTags(ctx, userID)
	if err != nil {
		return fmt.Errorf("listing tags: %w", err)
	}
	names := make([]string, len(saved))
	for i, t := range saved {
		names[i] = t.Name
	}
	if !block.NeedsSavedTag(b, names) {
		return nil
	}

	color := model.DefaultTagColor
	if data, ok := b.Data.(block.TagData); ok && data.Color != "" {
		color = data.Color
	}
	err = s.tags.CreateTag(ctx, &model.Tag{UserID: userID, Name: b.Content, Color: color})
	if err != nil && !errors.Is(err, apperror.ErrConflict) {
		return fmt.Errorf("saving tag %q: %w", b.Content, err)
	}
	return nil
}

// =========================================================================
// HELPERS
// =========================================================================

// apply validates in and copies it onto entry.
func (s *JournalService) apply(entry *model.Entry, in EntryInput) error {
	if in.Mood != "" && !in.Mood.Valid() {
		return apperror.ValidationFailed("mood", fmt.Sprintf("unknown mood %q", in.Mood))
	}

	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = s.now().Format(calendar.DayLayout)
	}
	if _, err := calendar.ParseDay(date, nil); err != nil {
		return apperror.ValidationFailed("date", "date must be YYYY-MM-DD")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = calendar.FormatDayArabic(date)
	}
	if len([]rune(title)) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}

	// Replace rejects blocks without ids and duplicate ids.
	doc := document.New(nil)
	if err := doc.Replace(in.Content); err != nil {
		return err
	}

	entry.Title = title
	entry.Content = doc.Blocks()
	entry.Mood = in.Mood
	entry.Tags = cleanTags(in.Tags)
	entry.Date = date
	entry.Location = in.Location
	entry.Weather = in.Weather
	entry.Attachments = in.Attachments
	entry.TemplateID = in.TemplateID
	entry.SmartForms = in.SmartForms
	return nil
}

// ensureTags creates any of names the user has not saved yet.
func (s *JournalService) ensureTags(ctx context.Context, userID string, names []string) error {
	if len(names) == 0 {
		return nil
	}
	saved, err := s.tags.ListTags(ctx, userID)
	if err != nil {
		return fmt.Errorf("listing tags: %w", err)
	}
	have := make(map[string]bool, len(saved))
	for _, t := range saved {
		have[t.Name] = true
	}

	for _, name := range names {
		if have[name] {
			continue
		}
		err := s.tags.CreateTag(ctx, &model.Tag{UserID: userID, Name: name, Color: model.DefaultTagColor})
		if err != nil && !errors.Is(err, apperror.ErrConflict) {
			return fmt.Errorf("creating tag %q: %w", name, err)
		}
		s.logger.Info("tag created from entry", slog.String("name", name))
	}
	return nil
}
