package model

import "time"

// SettingsID is the well-known primary key of the one settings row. Modeling
// the singleton as an explicitly keyed record keeps concurrent upserts from
// ever producing a second document.
const SettingsID uint = 1

// Setting is the single persisted record of default form values.
type Setting struct {
	ID                 uint      `gorm:"primaryKey" json:"-"`
	DefaultInstitution string    `gorm:"default:''" json:"defaultInstitution"`
	DefaultNaacID      string    `gorm:"default:''" json:"defaultNaacId"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Setting
func (Setting) TableName() string {
	return "settings"
}

// SettingPatch carries a partial settings update. Nil fields were absent from
// the payload and must be preserved on merge.
type SettingPatch struct {
	DefaultInstitution *string `json:"defaultInstitution"`
	DefaultNaacID      *string `json:"defaultNaacId"`
}

// Apply merges the patch into s, leaving absent fields untouched.
func (p SettingPatch) Apply(s *Setting) {
	if p.DefaultInstitution != nil {
		s.DefaultInstitution = *p.DefaultInstitution
	}
	if p.DefaultNaacID != nil {
		s.DefaultNaacID = *p.DefaultNaacID
	}
}
