package handler

import (
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/sakif/yawmiyat/internal/auth"
	"github.com/sakif/yawmiyat/internal/service"
)

const stateCookie = "oauth_state"

// AuthHandler serves password and GitHub login and the session cookie.
//
// ROUTES:
//   - HandleRegister / HandleLogin → email + password, JSON in and out
//   - HandleGitHubLogin            → redirect to GitHub's authorization page
//   - HandleGitHubCallback         → exchange the code, upsert the user, set cookie
//   - HandleLogout                 → clear the cookie
//   - HandleMe                     → profile of the logged-in user
//
// DEPENDENCY CHAIN:
//   AuthHandler → AuthService → UserRepository + TagService (default tags)
//                             → TokenService (session JWT)
type AuthHandler struct {
	auth   *service.AuthService
	github *auth.GitHubProvider
	secure bool
	logger *slog.Logger
}

// NewAuthHandler wires the handler. secureCookies should be true whenever
// the server is reached over HTTPS.
func NewAuthHandler(svc *service.AuthService, github *auth.GitHubProvider, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: svc, github: github, secure: secureCookies, logger: logger}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// HandleRegister creates a password account and logs it in.
//
// HTTP: POST /api/auth/register
// BODY: {"email": "...", "password": "...", "name": "..."}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeJSON(w, r, maxBodyBytes, &in); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.auth.Register(r.Context(), in.Email, in.Password, in.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	h.setSession(w, res.Token)
	writeJSON(w, http.StatusCreated, res)
}

// HandleLogin checks the credentials and sets the session cookie.
//
// HTTP: POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeJSON(w, r, maxBodyBytes, &in); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	h.setSession(w, res.Token)
	writeJSON(w, http.StatusOK, res)
}

// HandleGitHubLogin redirects to GitHub. A random state goes into a
// short-lived cookie and is checked on the callback (CSRF).
//
// STATE ROUND TRIP:
// 1. login:    state = xid, stored in the oauth_state cookie for 10 minutes
// 2. GitHub:   redirects back with ?code=...&state=...
// 3. callback: the query state must equal the cookie, then the cookie is cleared
//
// HTTP: GET /auth/github/login
func (h *AuthHandler) HandleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	if !h.github.Configured() {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "GitHub login is not configured"})
		return
	}

	state := xid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGitHubCallback completes the OAuth flow.
//
// HTTP: GET /auth/github/callback?code=xxx&state=yyy
func (h *AuthHandler) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || r.URL.Query().Get("state") != cookie.Value {
		h.logger.Warn("auth callback: state mismatch")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// single use
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("auth callback: user denied authorization", slog.String("error", errParam))
		http.Redirect(w, r, "/?auth=denied", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	ghUser, err := h.github.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("auth callback: GitHub exchange failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	res, err := h.auth.LoginOrRegisterGitHub(r.Context(), ghUser)
	if err != nil {
		h.logger.Error("auth callback: login failed",
			slog.Int64("githubID", ghUser.ID),
			slog.String("error", err.Error()),
		)
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	h.setSession(w, res.Token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout deletes the session cookie. The token itself stays valid
// until it expires; without the cookie the browser no longer sends it.
//
// HTTP: POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the logged-in user.
//
// HTTP: GET /api/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
