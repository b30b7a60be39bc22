package settings

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/naacportal/api/database"
	"github.com/naacportal/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store, err := database.StartLocal(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Init())

	h := NewSettingsHandler(store)
	app := fiber.New()
	app.Get("/api/settings", h.GetSettings)
	app.Put("/api/settings", h.UpdateSettings)
	return app
}

func getSettings(t *testing.T, app *fiber.App) model.Setting {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/settings", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var setting model.Setting
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&setting))
	return setting
}

func putSettings(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestGetSettingsEmptyStore(t *testing.T) {
	app := newTestApp(t)

	setting := getSettings(t, app)
	assert.Equal(t, "", setting.DefaultInstitution)
	assert.Equal(t, "", setting.DefaultNaacID)
}

func TestUpdateSettingsShallowMerge(t *testing.T) {
	app := newTestApp(t)

	resp := putSettings(t, app, `{"defaultInstitution":"X"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated model.Setting
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "X", updated.DefaultInstitution)
	assert.Equal(t, "", updated.DefaultNaacID)

	// Patching the other field alone preserves the first.
	resp = putSettings(t, app, `{"defaultNaacId":"NAAC-1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	setting := getSettings(t, app)
	assert.Equal(t, "X", setting.DefaultInstitution)
	assert.Equal(t, "NAAC-1", setting.DefaultNaacID)
}

func TestUpdateSettingsCanBlankFields(t *testing.T) {
	app := newTestApp(t)

	putSettings(t, app, `{"defaultInstitution":"X","defaultNaacId":"Y"}`)

	// An explicit empty string is a value, not an omission.
	resp := putSettings(t, app, `{"defaultInstitution":""}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	setting := getSettings(t, app)
	assert.Equal(t, "", setting.DefaultInstitution)
	assert.Equal(t, "Y", setting.DefaultNaacID)
}

func TestUpdateSettingsMalformedBody(t *testing.T) {
	app := newTestApp(t)

	resp := putSettings(t, app, `{"defaultInstitution":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
