package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/auth"
	"github.com/sakif/yawmiyat/internal/model"
)

func newTestAuth(t *testing.T, store *fakeStore) (*AuthService, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars")
	require.NoError(t, err)
	tags := NewTagService(store, testLogger())
	svc := NewAuthService(store, tags, tokens, auth.NewPasswordServiceForTest(bcrypt.MinCost), testLogger())
	return svc, tokens
}

// =========================================================================
// REGISTER TESTS
// =========================================================================

func TestRegister(t *testing.T) {
	store := newFakeStore()
	svc, tokens := newTestAuth(t, store)

	res, err := svc.Register(context.Background(), "  Sara@Example.COM ", "secret-pass", "")
	require.NoError(t, err)

	assert.Equal(t, "sara@example.com", res.User.Email)
	assert.Equal(t, "sara", res.User.Name, "name defaults to the email prefix")
	assert.NotEqual(t, "secret-pass", res.User.PasswordHash)

	userID, err := tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)

	assert.Len(t, store.tagNames(res.User.ID), len(model.DefaultTags), "default tags are seeded")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuth(t, newFakeStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "sara@example.com", "pw", "Sara")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "SARA@example.com", "other", "")
	require.True(t, errors.Is(err, apperror.ErrConflict))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, msgEmailTaken, appErr.Message)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestAuth(t, newFakeStore())

	tests := []struct {
		name, email, password string
	}{
		{"missing email", "", "pw"},
		{"missing password", "a@b.c", ""},
		{"malformed email", "not-an-email", "pw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.email, tt.password, "")
			assert.True(t, errors.Is(err, apperror.ErrValidation), "err = %v", err)
		})
	}
}

// =========================================================================
// LOGIN TESTS
// =========================================================================

func TestLogin(t *testing.T) {
	svc, _ := newTestAuth(t, newFakeStore())
	ctx := context.Background()

	reg, err := svc.Register(ctx, "omar@example.com", "correct horse", "عمر")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "OMAR@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	assert.NotEmpty(t, res.Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestAuth(t, store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "omar@example.com", "correct horse", "")
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(ctx, &model.User{Email: "gh@example.com"}))

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "omar@example.com", "battery staple"},
		{"unknown email", "nobody@example.com", "correct horse"},
		{"account without password", "gh@example.com", "anything"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password)
			require.True(t, errors.Is(err, apperror.ErrUnauthorized), "err = %v", err)

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, msgBadCredentials, appErr.Message, "every failure looks the same")
		})
	}
}

// =========================================================================
// GITHUB TESTS
// =========================================================================

func TestLoginOrRegisterGitHub(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestAuth(t, store)
	ctx := context.Background()

	gh := &auth.GitHubUser{ID: 42, Login: "octo", Email: "Octo@GitHub.com"}

	first, err := svc.LoginOrRegisterGitHub(ctx, gh)
	require.NoError(t, err)
	assert.Equal(t, "octo@github.com", first.User.Email)
	assert.Equal(t, "octo", first.User.Name, "login stands in for a missing name")
	require.Len(t, store.tagNames(first.User.ID), len(model.DefaultTags))

	// Deleting a seeded tag must survive the next login.
	tags, err := store.ListTags(ctx, first.User.ID)
	require.NoError(t, err)
	require.NoError(t, store.DeleteTag(ctx, first.User.ID, tags[0].ID))

	second, err := svc.LoginOrRegisterGitHub(ctx, gh)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, store.tagNames(first.User.ID), len(model.DefaultTags)-1, "tags are seeded only for new accounts")
}

func TestLoginOrRegisterGitHub_NilUser(t *testing.T) {
	svc, _ := newTestAuth(t, newFakeStore())
	_, err := svc.LoginOrRegisterGitHub(context.Background(), nil)
	assert.Error(t, err)
}

func TestGetUserByID(t *testing.T) {
	svc, _ := newTestAuth(t, newFakeStore())
	ctx := context.Background()

	_, err := svc.GetUserByID(ctx, "")
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = svc.GetUserByID(ctx, "missing")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
