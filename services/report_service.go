package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/naacportal/api/database"
	"github.com/naacportal/api/model"
)

// ErrNoExportData is returned when an export targets an empty filtered set.
var ErrNoExportData = errors.New("no data to export with current filters")

// csvHeaders is the fixed column order of every export.
var csvHeaders = []string{
	"ID", "Institution Name", "NAAC ID", "Criteria", "Academic Year",
	"Student Strength", "Faculty Count", "Programs Offered", "Budget Allocation",
	"Description", "Best Practices", "Date Added",
}

// ReportService filters the entry set and serializes it for download.
type ReportService struct {
	store database.Storage
}

// NewReportService creates a new report service
func NewReportService(store database.Storage) *ReportService {
	return &ReportService{store: store}
}

// EntryFilter narrows the entry set by criteria and/or academic year. An
// empty value means no constraint for that dimension.
type EntryFilter struct {
	Criteria string
	Year     string
}

// Export loads the entry set, applies the filter, and returns the CSV
// document. Returns ErrNoExportData when the filtered set is empty.
func (s *ReportService) Export(filter EntryFilter) ([]byte, error) {
	entries, err := s.store.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	filtered := Filter(entries, filter)
	if len(filtered) == 0 {
		return nil, ErrNoExportData
	}

	return EntriesToCSV(filtered), nil
}

// Filter keeps entries matching every provided dimension exactly. Pure and
// total: no entry is ever excluded for any other reason.
func Filter(entries []model.Entry, filter EntryFilter) []model.Entry {
	filtered := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if filter.Criteria != "" && e.Criteria != filter.Criteria {
			continue
		}
		if filter.Year != "" && e.AcademicYear != filter.Year {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// EntriesToCSV serializes entries in the fixed column order. Text fields are
// always quote-wrapped with internal quotes doubled; absent optional numbers
// render blank.
func EntriesToCSV(entries []model.Entry) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeaders, ","))
	b.WriteByte('\n')

	for i, e := range entries {
		row := []string{
			strconv.FormatUint(uint64(e.ID), 10),
			quote(e.InstitutionName),
			quote(e.NaacID),
			e.Criteria,
			e.AcademicYear,
			intField(e.StudentStrength),
			intField(e.FacultyCount),
			intField(e.ProgramsOffered),
			floatField(e.BudgetAllocation),
			quote(e.Description),
			quote(e.BestPractices),
			e.DateAdded,
		}
		b.WriteString(strings.Join(row, ","))
		if i < len(entries)-1 {
			b.WriteByte('\n')
		}
	}

	return []byte(b.String())
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func intField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
