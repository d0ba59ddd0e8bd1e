package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sakif/yawmiyat/internal/auth"
	"github.com/sakif/yawmiyat/internal/model"
	sqliteRepo "github.com/sakif/yawmiyat/internal/repository/sqlite"
	"github.com/sakif/yawmiyat/internal/service"
)

var fixedNow = time.Date(2024, 3, 11, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// env is a set of real services over an in-memory database, with one
// account already created.
type env struct {
	db        *sqliteRepo.DB
	logger    *slog.Logger
	journal   *service.JournalService
	tags      *service.TagService
	templates *service.TemplateService
	users     *service.UserService
	exports   *service.ExportService
	auth      *service.AuthService
	userID    string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := sqliteRepo.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := auth.NewTokenService("handler-test-secret-0123")
	require.NoError(t, err)

	e := &env{db: db, logger: logger}
	e.tags = service.NewTagService(db, logger)
	e.journal = service.NewJournalService(db, db, db, logger, clock)
	e.templates = service.NewTemplateService(db, e.journal, logger, clock)
	e.users = service.NewUserService(db, logger)
	e.exports = service.NewExportService(db, db, logger, clock)
	e.auth = service.NewAuthService(db, e.tags, tokens, auth.NewPasswordServiceForTest(4), logger)

	user := &model.User{Email: "huda@example.com", Name: "هدى"}
	require.NoError(t, db.CreateUser(context.Background(), user))
	e.userID = user.ID
	return e
}

// request builds a request as the env's user. pathValues are name, value
// pairs, set the way the router would.
func (e *env) request(method, target string, body any, pathValues ...string) *http.Request {
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req = req.WithContext(auth.WithUserID(req.Context(), e.userID))
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	return req
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func (e *env) createEntry(t *testing.T, in service.EntryInput) *model.Entry {
	t.Helper()
	entry, err := e.journal.Create(context.Background(), e.userID, in)
	require.NoError(t, err)
	return entry
}

func jsonBody(v any) io.Reader {
	raw, _ := json.Marshal(v)
	return bytes.NewReader(raw)
}
