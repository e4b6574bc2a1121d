package model

import (
	"gorm.io/gorm"
)

// User is the basic entity of the system
type User struct {
	gorm.Model
	Name     string  `gorm:"uniqueIndex;type:varchar(64);not null;comment:login name"`
	Nickname *string `gorm:"type:varchar(64);comment:display name"`
	Email    *string `gorm:"type:varchar(128);comment:notification address"`
	Password *string `gorm:"type:varchar(128);comment:bcrypt hash"`
	Role     Role    `gorm:"not null;comment:platform role (guest, user, admin)"`
	Status   Status  `gorm:"not null;comment:account status"`

	WorkspaceMembers []WorkspaceMember
}
