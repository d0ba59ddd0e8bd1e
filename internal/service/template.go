package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/repository"
	"github.com/sakif/yawmiyat/internal/smartform"
)

// TemplateService serves the built-in smart form templates alongside the
// user's own. Built-in templates are read-only.
type TemplateService struct {
	templates repository.TemplateRepository
	journal   *JournalService
	logger    *slog.Logger
	now       Clock
}

func NewTemplateService(
	templates repository.TemplateRepository,
	journal *JournalService,
	logger *slog.Logger,
	now Clock,
) *TemplateService {
	return &TemplateService{
		templates: templates,
		journal:   journal,
		logger:    logger,
		now:       now.orDefault(),
	}
}

// List returns the built-in templates followed by the user's.
func (s *TemplateService) List(ctx context.Context, userID string) ([]model.Template, error) {
	own, err := s.templates.ListTemplates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return append(model.DefaultTemplates(s.now()), own...), nil
}

func (s *TemplateService) Get(ctx context.Context, userID, id string) (*model.Template, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "template ID is required")
	}
	if t, ok := model.DefaultTemplate(id, s.now()); ok {
		return &t, nil
	}
	return s.templates.GetTemplate(ctx, userID, id)
}

// Save creates tpl when it has no id and updates it otherwise.
func (s *TemplateService) Save(ctx context.Context, userID string, tpl model.Template) (*model.Template, error) {
	if _, builtIn := model.DefaultTemplate(tpl.ID, s.now()); builtIn {
		return nil, apperror.Forbidden("built-in templates cannot be modified")
	}

	b := smartform.FromTemplate(tpl)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	built, err := b.Build(s.now())
	if err != nil {
		return nil, err
	}
	built.ID = tpl.ID
	built.UserID = userID

	if built.ID == "" {
		if err := s.templates.CreateTemplate(ctx, &built); err != nil {
			return nil, fmt.Errorf("creating template: %w", err)
		}
		s.logger.Info("template created", slog.String("id", built.ID))
		return &built, nil
	}

	if err := s.templates.UpdateTemplate(ctx, &built); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("updating template: %w", err)
	}
	s.logger.Info("template updated", slog.String("id", built.ID))
	return &built, nil
}

func (s *TemplateService) Delete(ctx context.Context, userID, id string) error {
	if _, builtIn := model.DefaultTemplate(id, s.now()); builtIn {
		return apperror.Forbidden("built-in templates cannot be deleted")
	}
	if err := s.templates.DeleteTemplate(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info("template deleted", slog.String("id", id))
	return nil
}

// Completion reports how much of the form values fill, as a percentage.
func (s *TemplateService) Completion(ctx context.Context, userID, id string, values map[string]any) (int, error) {
	tpl, err := s.Get(ctx, userID, id)
	if err != nil {
		return 0, err
	}
	return smartform.Completion(*tpl, values), nil
}

// Submit validates a filled form and turns it into a new journal entry.
func (s *TemplateService) Submit(ctx context.Context, userID, id string, values map[string]any) (*model.Entry, error) {
	tpl, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	sub, err := smartform.Submit(*tpl, values, s.now())
	if err != nil {
		return nil, err
	}
	draft := smartform.ToEntry(*tpl, sub)

	entry, err := s.journal.Create(ctx, userID, EntryInput{
		Title:      draft.Title,
		Content:    draft.Content,
		Tags:       draft.Tags,
		Date:       draft.Date,
		TemplateID: draft.TemplateID,
		SmartForms: draft.SmartForms,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("smart form submitted",
		slog.String("template", tpl.ID),
		slog.String("entry", entry.ID),
	)
	return entry, nil
}
