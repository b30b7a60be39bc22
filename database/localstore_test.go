package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/naacportal/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, dir string) *LocalStore {
	t.Helper()
	store, err := StartLocal(dir)
	require.NoError(t, err)
	require.NoError(t, store.Init())
	return store
}

func validEntry(criteria string) *model.Entry {
	return &model.Entry{
		InstitutionName: "Test College",
		Criteria:        criteria,
		AcademicYear:    "2023-24",
		Description:     "sample entry",
	}
}

func TestCreateAssignsUniqueSequentialIDs(t *testing.T) {
	store := newTestStore(t, t.TempDir())

	seen := map[uint]bool{}
	for i := 0; i < 5; i++ {
		e := validEntry("1")
		require.NoError(t, store.CreateEntry(e))
		assert.False(t, seen[e.ID], "id %d assigned twice", e.ID)
		seen[e.ID] = true
		assert.NotEmpty(t, e.DateAdded)
	}
}

func TestListEntriesMostRecentFirst(t *testing.T) {
	store := newTestStore(t, t.TempDir())

	first := validEntry("1")
	second := validEntry("2")
	require.NoError(t, store.CreateEntry(first))
	require.NoError(t, store.CreateEntry(second))

	entries, err := store.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
}

func TestDeleteEntry(t *testing.T) {
	store := newTestStore(t, t.TempDir())

	keep := validEntry("1")
	drop := validEntry("2")
	require.NoError(t, store.CreateEntry(keep))
	require.NoError(t, store.CreateEntry(drop))

	// Unknown id leaves the store unchanged.
	err := store.DeleteEntry(9999)
	assert.ErrorIs(t, err, ErrEntryNotFound)
	entries, _ := store.ListEntries()
	assert.Len(t, entries, 2)

	require.NoError(t, store.DeleteEntry(drop.ID))
	entries, _ = store.ListEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, keep.ID, entries[0].ID)
}

func TestClearEntriesIdempotent(t *testing.T) {
	store := newTestStore(t, t.TempDir())

	require.NoError(t, store.CreateEntry(validEntry("1")))
	require.NoError(t, store.ClearEntries())
	require.NoError(t, store.ClearEntries())

	entries, err := store.ListEntries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntriesSurviveReload(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)

	e := validEntry("4")
	require.NoError(t, store.CreateEntry(e))
	require.NoError(t, store.Close())

	reloaded := newTestStore(t, dir)
	entries, err := reloaded.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.ID, entries[0].ID)

	// New ids keep ascending after a reload.
	next := validEntry("5")
	require.NoError(t, reloaded.CreateEntry(next))
	assert.Greater(t, next.ID, e.ID)
}

func TestCorruptDocumentsFallBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, entriesFile), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFile), []byte("]["), 0o644))

	store := newTestStore(t, dir)

	entries, err := store.ListEntries()
	require.NoError(t, err)
	assert.Empty(t, entries)

	setting, err := store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "", setting.DefaultInstitution)
	assert.Equal(t, "", setting.DefaultNaacID)
}

func TestSettingsMergeSemantics(t *testing.T) {
	store := newTestStore(t, t.TempDir())

	// Empty store reads as zero-valued defaults.
	setting, err := store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "", setting.DefaultInstitution)
	assert.Equal(t, "", setting.DefaultNaacID)

	institution := "X"
	setting, err = store.UpdateSettings(model.SettingPatch{DefaultInstitution: &institution})
	require.NoError(t, err)
	assert.Equal(t, "X", setting.DefaultInstitution)
	assert.Equal(t, "", setting.DefaultNaacID)

	// A later patch touching only the other field preserves the first.
	naacID := "NAAC-42"
	setting, err = store.UpdateSettings(model.SettingPatch{DefaultNaacID: &naacID})
	require.NoError(t, err)
	assert.Equal(t, "X", setting.DefaultInstitution)
	assert.Equal(t, "NAAC-42", setting.DefaultNaacID)

	setting, err = store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "X", setting.DefaultInstitution)
	assert.Equal(t, "NAAC-42", setting.DefaultNaacID)
}

func TestHealthCheckReportsStoreUnavailable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	store := newTestStore(t, dir)

	require.NoError(t, store.HealthCheck())

	// Losing the data directory makes the backend unreachable.
	require.NoError(t, os.RemoveAll(dir))
	assert.ErrorIs(t, store.HealthCheck(), ErrStoreUnavailable)
}

func TestSettingsSurviveReload(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)

	institution := "Reload College"
	_, err := store.UpdateSettings(model.SettingPatch{DefaultInstitution: &institution})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reloaded := newTestStore(t, dir)
	setting, err := reloaded.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "Reload College", setting.DefaultInstitution)
}
