package model

import (
	"gorm.io/gorm"
)

// Workspace is the tenant boundary. Every project and, transitively, every
// setup row belongs to exactly one workspace.
type Workspace struct {
	gorm.Model
	Name string `gorm:"type:varchar(64);not null;comment:workspace name"`
	Slug string `gorm:"uniqueIndex;type:varchar(80);not null;comment:url-safe identifier"`

	Members  []WorkspaceMember
	Projects []Project
}

// WorkspaceMember links a user to a workspace with a role inside it.
type WorkspaceMember struct {
	gorm.Model
	UserID      uint `gorm:"uniqueIndex:idx_member;not null"`
	WorkspaceID uint `gorm:"uniqueIndex:idx_member;not null"`
	Role        Role `gorm:"not null;comment:role inside the workspace (user, admin)"`
}
