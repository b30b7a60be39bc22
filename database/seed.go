package database

import (
	"fmt"
	"log"

	"github.com/naacportal/api/model"
	"gorm.io/datatypes"
)

// Seeder handles development-data seeding for either store backend.
type Seeder struct {
	store Storage
}

// NewSeeder creates a new seeder instance
func NewSeeder(store Storage) *Seeder {
	return &Seeder{store: store}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedSettings(); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	if err := s.SeedEntries(); err != nil {
		return fmt.Errorf("failed to seed entries: %w", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// SeedSettings writes default form values unless some already exist.
func (s *Seeder) SeedSettings() error {
	current, err := s.store.GetSettings()
	if err != nil {
		return err
	}
	if current.DefaultInstitution != "" {
		log.Println("Settings already present, skipping")
		return nil
	}

	institution := "Model Autonomous College"
	naacID := "NAAC/A/2024/0042"
	_, err = s.store.UpdateSettings(model.SettingPatch{
		DefaultInstitution: &institution,
		DefaultNaacID:      &naacID,
	})
	return err
}

// SeedEntries inserts a small sample spread across criteria so the dashboard
// has something to aggregate. Skipped when entries already exist.
func (s *Seeder) SeedEntries() error {
	existing, err := s.store.ListEntries()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Found %d existing entries, skipping entry seed", len(existing))
		return nil
	}

	students := 2400
	faculty := 140
	programs := 18
	budget := 75.50

	samples := []model.Entry{
		{
			InstitutionName: "Model Autonomous College",
			NaacID:          "NAAC/A/2024/0042",
			Criteria:        "1",
			AcademicYear:    "2023-24",
			StudentStrength: &students,
			FacultyCount:    &faculty,
			Description:     "Revised curriculum for 12 undergraduate programs with industry feedback.",
		},
		{
			InstitutionName: "Model Autonomous College",
			NaacID:          "NAAC/A/2024/0042",
			Criteria:        "3",
			AcademicYear:    "2023-24",
			ProgramsOffered: &programs,
			Description:     "42 peer-reviewed publications and 6 funded research projects.",
			BestPractices:   "Seed-grant scheme for early-career faculty.",
		},
		{
			InstitutionName:  "Model Autonomous College",
			NaacID:           "NAAC/A/2024/0042",
			Criteria:         "4",
			AcademicYear:     "2022-23",
			BudgetAllocation: &budget,
			Description:      "Library automation and smart classroom rollout across three blocks.",
			Files:            datatypes.JSONSlice[string]{"infrastructure_audit.pdf"},
		},
	}

	for i := range samples {
		if err := s.store.CreateEntry(&samples[i]); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d entries", len(samples))
	return nil
}
