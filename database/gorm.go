package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/naacportal/api/config"
	"github.com/naacportal/api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	// Build DSN (Data Source Name)
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if getEnv.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	// Open GORM connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		log.Println("Unable to connect to PostgreSQL with GORM:", err)
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL Database with GORM.")

	return &GORMStore{db: db}, nil
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	err := s.db.AutoMigrate(
		&model.Entry{},
		&model.Setting{},
	)

	if err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing GORM PostgreSQL connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// ListEntries retrieves all entries, most recently created first. Ids are a
// database-assigned sequence, so descending id is descending creation order.
func (s *GORMStore) ListEntries() ([]model.Entry, error) {
	var entries []model.Entry
	result := s.db.Order("id DESC").Find(&entries)
	return entries, result.Error
}

// CreateEntry persists a new entry. The sequence assigns ID; DateAdded is
// stamped with the display date if the caller left it empty.
func (s *GORMStore) CreateEntry(entry *model.Entry) error {
	if entry.DateAdded == "" {
		entry.DateAdded = time.Now().Format(model.DateAddedLayout)
	}
	result := s.db.Create(entry)
	return result.Error
}

// DeleteEntry removes the entry with the given id.
func (s *GORMStore) DeleteEntry(id uint) error {
	result := s.db.Delete(&model.Entry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ClearEntries removes every entry unconditionally.
func (s *GORMStore) ClearEntries() error {
	result := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Entry{})
	return result.Error
}

// GetSettings reads the keyed singleton row, falling back to zero-valued
// defaults when it has never been written.
func (s *GORMStore) GetSettings() (model.Setting, error) {
	var setting model.Setting
	err := s.db.First(&setting, model.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Setting{ID: model.SettingsID}, nil
	}
	return setting, err
}

// UpdateSettings merges the patch into the singleton row, creating it if
// absent. Fields absent from the patch are preserved.
func (s *GORMStore) UpdateSettings(patch model.SettingPatch) (model.Setting, error) {
	var setting model.Setting

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&setting, model.SettingsID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			setting = model.Setting{ID: model.SettingsID}
			patch.Apply(&setting)
			return tx.Create(&setting).Error
		case err != nil:
			return err
		default:
			patch.Apply(&setting)
			return tx.Save(&setting).Error
		}
	})

	return setting, err
}
