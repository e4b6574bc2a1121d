package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectIntegration records the intent to connect an external system
// (e.g. ERP, BIM) to a project. No synchronization is implemented: the row
// is a placeholder and its status never leaves not_connected.
type ProjectIntegration struct {
	gorm.Model
	ProjectID       uint              `gorm:"uniqueIndex:idx_project_integration;not null"`
	IntegrationType string            `gorm:"uniqueIndex:idx_project_integration;type:varchar(32);not null"`
	Status          IntegrationStatus `gorm:"type:varchar(16);not null;default:'not_connected'"`
	Config          datatypes.JSON    `gorm:"comment:opaque connection settings"`
}
