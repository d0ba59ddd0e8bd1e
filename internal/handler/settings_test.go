package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/yawmiyat/internal/handler"
	"github.com/sakif/yawmiyat/internal/model"
)

func TestSettingsHandler(t *testing.T) {
	e := newEnv(t)
	h := handler.NewSettingsHandler(e.users, e.logger)

	rr := serve(h.HandleGet, e.request(http.MethodGet, "/api/settings", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, model.DefaultSettings(), decodeBody[model.Settings](t, rr))

	rr = serve(h.HandleUpdate, e.request(http.MethodPut, "/api/settings", map[string]any{"theme": "dark", "fontSize": 18}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	saved := decodeBody[model.Settings](t, rr)
	assert.Equal(t, "dark", saved.Theme)
	assert.Equal(t, 18, saved.FontSize)
	assert.Equal(t, "Cairo", saved.FontFamily, "omitted fields fall back to defaults")

	rr = serve(h.HandleUpdate, e.request(http.MethodPut, "/api/settings", map[string]any{"theme": "neon"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "theme", decodeBody[handler.ErrorResponse](t, rr).Field)

	rr = serve(h.HandleReset, e.request(http.MethodDelete, "/api/settings", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, model.DefaultSettings(), decodeBody[model.Settings](t, rr))
}
