package model

import (
	"gorm.io/gorm"
)

type Stakeholder struct {
	gorm.Model
	ProjectID       uint           `gorm:"index;not null"`
	Name            string         `gorm:"type:varchar(128);not null"`
	StakeholderType *string        `gorm:"type:varchar(64)"`
	Email           *string        `gorm:"type:varchar(128)"`
	Phone           *string        `gorm:"type:varchar(32)"`
	InfluenceLevel  InfluenceLevel `gorm:"type:varchar(8);not null;default:'medium'"`
	Sentiment       Sentiment      `gorm:"type:varchar(8);not null;default:'unknown'"`
	Notes           *string        `gorm:"type:text"`
}
