package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/repository"
)

// UserService reads and updates the per-user settings.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) Settings(ctx context.Context, userID string) (model.Settings, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return model.Settings{}, err
	}
	return user.Settings, nil
}

// UpdateSettings stores settings after checking every enumerated field.
func (s *UserService) UpdateSettings(ctx context.Context, userID string, settings model.Settings) (model.Settings, error) {
	if field := settings.Problem(); field != "" {
		return model.Settings{}, apperror.ValidationFailed(field, fmt.Sprintf("invalid value for %s", field))
	}
	if err := s.users.UpdateSettings(ctx, userID, settings); err != nil {
		return model.Settings{}, err
	}
	s.logger.Info("settings updated", slog.String("userID", userID))
	return settings, nil
}

// ResetSettings restores the defaults.
func (s *UserService) ResetSettings(ctx context.Context, userID string) (model.Settings, error) {
	return s.UpdateSettings(ctx, userID, model.DefaultSettings())
}

// ByEmail looks an account up by its (case-insensitive) email.
func (s *UserService) ByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	return s.users.GetUserByEmail(ctx, email)
}
