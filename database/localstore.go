package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/naacportal/api/model"
)

const (
	entriesFile  = "naac_entries.json"
	settingsFile = "naac_settings.json"
)

// LocalStore is the local fallback backend: the entry list and settings
// object persist as two JSON documents under a data directory, mirroring the
// portal's browser-storage mode. Corrupted or missing documents read as an
// empty list / empty settings object.
type LocalStore struct {
	mu      sync.Mutex
	dir     string
	entries []model.Entry
	setting model.Setting
	hasSet  bool
	nextID  uint
}

// StartLocal creates a local store rooted at dir, creating it if needed.
func StartLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	log.Println("Using local JSON store at", dir)
	return &LocalStore{dir: dir, nextID: 1}, nil
}

// Init loads both documents from disk.
func (s *LocalStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if err := readJSON(filepath.Join(s.dir, entriesFile), &s.entries); err != nil {
		log.Println("Resetting unreadable entries document:", err)
		s.entries = nil
	}

	// Setting.ID is not part of the JSON document, so presence of the file is
	// what marks the singleton as written.
	settingsPath := filepath.Join(s.dir, settingsFile)
	var setting model.Setting
	_, statErr := os.Stat(settingsPath)
	s.hasSet = statErr == nil
	if err := readJSON(settingsPath, &setting); err != nil {
		log.Println("Resetting unreadable settings document:", err)
		setting = model.Setting{}
		s.hasSet = false
	}
	setting.ID = model.SettingsID
	s.setting = setting

	s.nextID = 1
	for _, e := range s.entries {
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
	}
	return nil
}

// Close flushes both documents a final time.
func (s *LocalStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flushEntries(); err != nil {
		return err
	}
	if s.hasSet {
		return s.flushSettings()
	}
	return nil
}

// HealthCheck verifies the data directory is still reachable.
func (s *LocalStore) HealthCheck() error {
	if _, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// ListEntries returns every entry, most recently created first.
func (s *LocalStore) ListEntries() ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Entry, len(s.entries))
	copy(out, s.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// CreateEntry assigns the next id, stamps timestamps, and persists.
func (s *LocalStore) CreateEntry(entry *model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry.ID = s.nextID
	s.nextID++
	if entry.DateAdded == "" {
		entry.DateAdded = now.Format(model.DateAddedLayout)
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now

	s.entries = append(s.entries, *entry)
	return s.flushEntries()
}

// DeleteEntry removes exactly the entry with the given id.
func (s *LocalStore) DeleteEntry(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return s.flushEntries()
		}
	}
	return ErrEntryNotFound
}

// ClearEntries drops the whole entry list. Idempotent.
func (s *LocalStore) ClearEntries() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return s.flushEntries()
}

// GetSettings returns the stored settings, or zero-valued defaults when the
// document has never been written.
func (s *LocalStore) GetSettings() (model.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasSet {
		return model.Setting{ID: model.SettingsID}, nil
	}
	return s.setting, nil
}

// UpdateSettings merges the patch into the settings document, creating it on
// first write.
func (s *LocalStore) UpdateSettings(patch model.SettingPatch) (model.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if !s.hasSet {
		s.setting = model.Setting{ID: model.SettingsID, CreatedAt: now}
		s.hasSet = true
	}
	patch.Apply(&s.setting)
	s.setting.UpdatedAt = now

	if err := s.flushSettings(); err != nil {
		return model.Setting{}, err
	}
	return s.setting, nil
}

func (s *LocalStore) flushEntries() error {
	return writeJSON(filepath.Join(s.dir, entriesFile), s.entries)
}

func (s *LocalStore) flushSettings() error {
	return writeJSON(filepath.Join(s.dir, settingsFile), s.setting)
}

func readJSON(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

func writeJSON(path string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	// Write-then-rename keeps a crash from leaving a torn document behind.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
