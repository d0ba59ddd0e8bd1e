package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthURL_CarriesStateAndScopes(t *testing.T) {
	p := NewGitHubProvider("client-id", "secret", "http://localhost:8080/auth/github/callback")

	u := p.AuthURL("state-123")
	assert.True(t, strings.HasPrefix(u, "https://github.com/login/oauth/authorize"))
	assert.Contains(t, u, "state=state-123")
	assert.Contains(t, u, "client_id=client-id")
	assert.Contains(t, u, "read%3Auser")
}

func TestConfigured(t *testing.T) {
	assert.True(t, NewGitHubProvider("id", "secret", "cb").Configured())
	assert.False(t, NewGitHubProvider("", "", "cb").Configured())

	var nilProvider *GitHubProvider
	assert.False(t, nilProvider.Configured())
}

func TestFetchUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"id": 99, "login": "octo", "name": "", "avatar_url": "https://a/b.png"}`))
	}))
	defer srv.Close()

	p := NewGitHubProvider("id", "secret", "cb")
	p.apiURL = srv.URL

	u, err := p.fetchUser(context.Background(), srv.Client())
	require.NoError(t, err)
	assert.Equal(t, int64(99), u.ID)
	assert.Equal(t, "octo", u.DisplayName(), "falls back to the login")
}

func TestFetchUser_Errors(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"bad status": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		},
		"zero id": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id": 0}`))
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{`))
		},
	}
	for name, h := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			p := NewGitHubProvider("id", "secret", "cb")
			p.apiURL = srv.URL
			_, err := p.fetchUser(context.Background(), srv.Client())
			assert.Error(t, err)
		})
	}
}
