package model

import (
	"time"

	"gorm.io/gorm"
)

// Action is a mitigation or follow-up task. The risk reference is weak:
// deleting the risk keeps the action and nulls the link.
type Action struct {
	gorm.Model
	ProjectID   uint           `gorm:"index;not null"`
	RiskID      *uint          `gorm:"index;constraint:OnDelete:SET NULL"`
	Title       string         `gorm:"type:varchar(256);not null"`
	Description *string        `gorm:"type:text"`
	Priority    ActionPriority `gorm:"type:varchar(8);not null;default:'medium'"`
	Status      ActionStatus   `gorm:"type:varchar(16);not null;default:'open'"`
	DueDate     *time.Time
}
