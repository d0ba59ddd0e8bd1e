package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/repository"
)

const MaxTagNameLength = 50

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type TagService struct {
	tags   repository.TagRepository
	logger *slog.Logger
}

func NewTagService(tags repository.TagRepository, logger *slog.Logger) *TagService {
	return &TagService{tags: tags, logger: logger}
}

func (s *TagService) List(ctx context.Context, userID string) ([]model.Tag, error) {
	tags, err := s.tags.ListTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, nil
}

// Create saves a tag. An empty color becomes the default purple.
func (s *TagService) Create(ctx context.Context, userID, name, color string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "tag name is required")
	}
	if len([]rune(name)) > MaxTagNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("tag name must be %d characters or less", MaxTagNameLength))
	}
	if color == "" {
		color = model.DefaultTagColor
	}
	if !hexColor.MatchString(color) {
		return nil, apperror.ValidationFailed("color", "color must look like #rrggbb")
	}

	tag := &model.Tag{UserID: userID, Name: name, Color: color}
	if err := s.tags.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("creating tag: %w", err)
	}

	s.logger.Info("tag created", slog.String("id", tag.ID), slog.String("name", tag.Name))
	return tag, nil
}

// Delete removes a saved tag. Entries that use the name keep it.
func (s *TagService) Delete(ctx context.Context, userID, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperror.ValidationFailed("id", "tag ID is required")
	}
	if err := s.tags.DeleteTag(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info("tag deleted", slog.String("id", id))
	return nil
}

// SeedDefaults saves the starter tag set. It runs once, when an account is
// created; names the user already has are skipped.
func (s *TagService) SeedDefaults(ctx context.Context, userID string) error {
	for _, d := range model.DefaultTags {
		tag := &model.Tag{UserID: userID, Name: d.Name, Color: d.Color}
		if err := s.tags.CreateTag(ctx, tag); err != nil && !errors.Is(err, apperror.ErrConflict) {
			return fmt.Errorf("seeding tag %q: %w", d.Name, err)
		}
	}
	return nil
}
