package model

import (
	"gorm.io/gorm"
)

// Fixed intake value keys written by wizard steps 2 and 5. Module-specific
// step 1 keys come from the IntakeFieldDefinition catalog instead.
const (
	KeyPlanningStartDate    = "planning_start_date"
	KeyPlanningEndDate      = "planning_end_date"
	KeyPlanningMilestones   = "planning_milestones"
	KeyPlanningCriticalPath = "planning_critical_path"
	KeyConstraints          = "constraints"
	KeyAssumptions          = "assumptions"
	KeyDependencies         = "dependencies"
)

// IntakeValue is one serialized form value of a project, keyed by
// (project, field key). Values are upserted in place and never historized.
type IntakeValue struct {
	gorm.Model
	ProjectID uint   `gorm:"uniqueIndex:idx_project_field;not null"`
	FieldKey  string `gorm:"uniqueIndex:idx_project_field;type:varchar(64);not null"`
	Value     string `gorm:"type:text;comment:serialized string, number, boolean or date"`
}
