package model

import (
	"time"

	"gorm.io/datatypes"
)

// DateAddedLayout is the display format written into Entry.DateAdded at creation
// time. The field is a display string, not a canonical timestamp; any code that
// needs to compare DateAdded values re-parses with this same layout.
const DateAddedLayout = "02/01/2006"

// CriteriaCodes are the seven fixed NAAC criteria an entry can be filed under.
var CriteriaCodes = []string{"1", "2", "3", "4", "5", "6", "7"}

// Entry represents one submitted accreditation record. Entries are immutable
// after creation; the portal only ever creates and deletes them.
type Entry struct {
	ID               uint                        `gorm:"primaryKey" json:"id"`
	InstitutionName  string                      `gorm:"not null" json:"institutionName"`
	NaacID           string                      `json:"naacId"`
	Criteria         string                      `gorm:"type:varchar(1);not null;index" json:"criteria"`
	AcademicYear     string                      `gorm:"not null;index" json:"academicYear"`
	StudentStrength  *int                        `json:"studentStrength,omitempty"`
	FacultyCount     *int                        `json:"facultyCount,omitempty"`
	ProgramsOffered  *int                        `json:"programsOffered,omitempty"`
	BudgetAllocation *float64                    `json:"budgetAllocation,omitempty"`
	Description      string                      `gorm:"type:text;not null" json:"description"`
	BestPractices    string                      `gorm:"type:text" json:"bestPractices"`
	Files            datatypes.JSONSlice[string] `json:"files"`
	DateAdded        string                      `json:"dateAdded"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
}

// TableName specifies the table name for Entry
func (Entry) TableName() string {
	return "entries"
}
