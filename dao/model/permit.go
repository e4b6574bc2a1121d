package model

import (
	"time"

	"gorm.io/gorm"
)

type Permit struct {
	gorm.Model
	ProjectID    uint         `gorm:"index;not null"`
	PermitType   string       `gorm:"type:varchar(64);not null"`
	Status       PermitStatus `gorm:"type:varchar(16);not null;default:'pending'"`
	ExpectedDate *time.Time
	ActualDate   *time.Time
	Notes        *string `gorm:"type:text"`
}
