package model

import (
	"gorm.io/gorm"
)

// Risk is one register entry of a project. The score (probability * impact)
// is derived on read and never stored.
type Risk struct {
	gorm.Model
	ProjectID          uint       `gorm:"index;not null"`
	CategoryKey        *string    `gorm:"type:varchar(64)"`
	Title              string     `gorm:"type:varchar(256);not null"`
	Description        *string    `gorm:"type:text"`
	Probability        int        `gorm:"not null;comment:1..5"`
	Impact             int        `gorm:"not null;comment:1..5"`
	Status             RiskStatus `gorm:"type:varchar(16);not null;default:'open'"`
	FinancialImpactEUR *float64
	ScheduleImpactDays *int

	Actions []Action
}
