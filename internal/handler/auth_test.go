package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/yawmiyat/internal/auth"
	"github.com/sakif/yawmiyat/internal/handler"
)

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	e := newEnv(t)
	h := handler.NewAuthHandler(e.auth, auth.NewGitHubProvider("", "", ""), true, e.logger)
	creds := map[string]string{"email": "Nour@Example.com", "password": "pa55word!"}

	rr := serve(h.HandleRegister, httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(creds)))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	c := sessionCookie(rr)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)

	rr = serve(h.HandleRegister, httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(creds)))
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = serve(h.HandleLogin, httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(creds)))
	require.Equal(t, http.StatusOK, rr.Code)
	res := decodeBody[struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}](t, rr)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "nour@example.com", res.User.Email)

	bad := map[string]string{"email": "nour@example.com", "password": "wrong"}
	rr = serve(h.HandleLogin, httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(bad)))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Nil(t, sessionCookie(rr))
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEnv(t)
	h := handler.NewAuthHandler(e.auth, auth.NewGitHubProvider("", "", ""), false, e.logger)

	rr := serve(h.HandleLogout, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	c := sessionCookie(rr)
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
}

func TestAuthHandler_Me(t *testing.T) {
	e := newEnv(t)
	h := handler.NewAuthHandler(e.auth, auth.NewGitHubProvider("", "", ""), false, e.logger)

	rr := serve(h.HandleMe, e.request(http.MethodGet, "/api/me", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "هدى", decodeBody[map[string]any](t, rr)["name"])
}

func TestAuthHandler_GitHub(t *testing.T) {
	e := newEnv(t)

	t.Run("not configured", func(t *testing.T) {
		h := handler.NewAuthHandler(e.auth, auth.NewGitHubProvider("", "", ""), false, e.logger)
		rr := serve(h.HandleGitHubLogin, httptest.NewRequest(http.MethodGet, "/auth/github/login", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("redirect carries state", func(t *testing.T) {
		h := handler.NewAuthHandler(e.auth, auth.NewGitHubProvider("id", "secret", "http://localhost/cb"), false, e.logger)
		rr := serve(h.HandleGitHubLogin, httptest.NewRequest(http.MethodGet, "/auth/github/login", nil))
		require.Equal(t, http.StatusTemporaryRedirect, rr.Code)

		var state string
		for _, c := range rr.Result().Cookies() {
			if c.Name == "oauth_state" {
				state = c.Value
			}
		}
		require.NotEmpty(t, state)
		assert.Contains(t, rr.Header().Get("Location"), "state="+state)
	})

	t.Run("callback rejects state mismatch", func(t *testing.T) {
		h := handler.NewAuthHandler(e.auth, auth.NewGitHubProvider("id", "secret", "http://localhost/cb"), false, e.logger)
		req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=c&state=forged", nil)
		req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "real"})
		rr := serve(h.HandleGitHubCallback, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
