package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Module is a sector template (e.g. construction, infrastructure). Modules
// and their catalog rows are seeded by migration and read-only at runtime:
// they drive the intake form and the bulk risk seeding of the setup wizard.
type Module struct {
	gorm.Model
	Key         string  `gorm:"uniqueIndex;type:varchar(32);not null"`
	Name        string  `gorm:"type:varchar(64);not null"`
	Description *string `gorm:"type:varchar(256)"`

	IntakeFields  []IntakeFieldDefinition
	RiskTemplates []RiskTemplate
}

// IntakeFieldDefinition describes one field of the module-specific intake
// form (wizard step 1).
type IntakeFieldDefinition struct {
	gorm.Model
	ModuleID  uint           `gorm:"uniqueIndex:idx_module_field;not null"`
	FieldKey  string         `gorm:"uniqueIndex:idx_module_field;type:varchar(64);not null"`
	Label     string         `gorm:"type:varchar(128);not null"`
	FieldType FieldType      `gorm:"type:varchar(16);not null"`
	Required  bool           `gorm:"not null;default:false"`
	Options   datatypes.JSON `gorm:"comment:choices for select fields"`
	SortOrder int            `gorm:"not null;default:0"`
}

// RiskTemplate is a catalog risk inserted verbatim when the user bulk-seeds
// the risk register in wizard step 6.
type RiskTemplate struct {
	gorm.Model
	ModuleID    uint    `gorm:"index;not null"`
	CategoryKey string  `gorm:"type:varchar(64);not null"`
	Title       string  `gorm:"type:varchar(256);not null"`
	Description *string `gorm:"type:text"`
	Probability int     `gorm:"not null;comment:1..5"`
	Impact      int     `gorm:"not null;comment:1..5"`
}
