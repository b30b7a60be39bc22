package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/naacportal/api/database"
	"github.com/naacportal/api/model"
	"github.com/naacportal/api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *database.LocalStore) {
	t.Helper()

	store, err := database.StartLocal(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Init())

	h := NewStatsHandler(store, nil)
	app := fiber.New()
	app.Get("/api/stats", h.GetDashboardStats)
	return app, store
}

func getStats(t *testing.T, app *fiber.App) services.DashboardStats {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/stats", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats services.DashboardStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	return stats
}

func TestGetDashboardStatsEmptyStore(t *testing.T) {
	app, _ := newTestApp(t)

	stats := getStats(t, app)
	assert.Equal(t, 0, stats.TotalEntries)
	assert.Equal(t, 0, stats.CompletedCriteria)
	assert.Equal(t, 0, stats.OverallProgress)
	assert.Equal(t, "Never", stats.LastUpdated)
}

func TestGetDashboardStatsAggregatesStore(t *testing.T) {
	app, store := newTestApp(t)

	counts := map[string]int{"2": 1, "3": 4}
	for code, n := range counts {
		for i := 0; i < n; i++ {
			require.NoError(t, store.CreateEntry(&model.Entry{
				InstitutionName: "Test College",
				Criteria:        code,
				AcademicYear:    "2023-24",
				Description:     "entry",
			}))
		}
	}

	stats := getStats(t, app)
	assert.Equal(t, 5, stats.TotalEntries)
	assert.Equal(t, 25, stats.CriteriaProgress["2"])
	assert.Equal(t, 100, stats.CriteriaProgress["3"])
	assert.Equal(t, 2, stats.CompletedCriteria)
	// round((25+100)/7)
	assert.Equal(t, 18, stats.OverallProgress)
	assert.NotEqual(t, "Never", stats.LastUpdated)
}
