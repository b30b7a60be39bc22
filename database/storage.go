package database

import (
	"errors"

	"github.com/naacportal/api/model"
)

var (
	// ErrEntryNotFound is returned when a delete targets an id that is not in the store.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrStoreUnavailable is returned when the underlying store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Storage defines the interface that all store implementations must satisfy.
// Two backends exist: the GORM/PostgreSQL store (remote mode) and the JSON
// file store (local fallback mode). Handlers and services only ever see this
// interface.
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// Entry methods. ListEntries returns the full set ordered most recently
	// created first. CreateEntry assigns ID and DateAdded on the way in.
	ListEntries() ([]model.Entry, error)
	CreateEntry(entry *model.Entry) error
	DeleteEntry(id uint) error
	ClearEntries() error

	// Settings methods. GetSettings never fails with a not-found condition;
	// an absent record reads as zero-valued defaults. UpdateSettings merges
	// the patch into the singleton, creating it if absent.
	GetSettings() (model.Setting, error)
	UpdateSettings(patch model.SettingPatch) (model.Setting, error)
}
