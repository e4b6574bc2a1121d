package model

import (
	"time"

	"gorm.io/gorm"
)

// Project is the aggregate root of one risk-management engagement. It is
// created as (draft, in_progress) with a chosen ingest type and becomes
// (active, completed) exactly once, through the setup path matching that
// ingest type.
type Project struct {
	gorm.Model
	WorkspaceID uint          `gorm:"index;not null"`
	ModuleID    uint          `gorm:"not null;comment:sector template"`
	Name        string        `gorm:"type:varchar(100);not null"`
	Status      ProjectStatus `gorm:"type:varchar(16);not null"`
	SetupStatus SetupStatus   `gorm:"type:varchar(16);not null"`
	IngestType  IngestType    `gorm:"type:varchar(8);not null"`
	StartDate   *time.Time
	EndDate     *time.Time

	IntakeValues []IntakeValue
	Stakeholders []Stakeholder
	Permits      []Permit
	Risks        []Risk
	Actions      []Action
	Integrations []ProjectIntegration
}
