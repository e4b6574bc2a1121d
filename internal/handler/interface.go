package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/pkg/alert"
)

type Manager interface {
	GetName() string
	RegisterPublic(group *gin.RouterGroup)
	RegisterProtected(group *gin.RouterGroup)
	RegisterAdmin(group *gin.RouterGroup)
}

// RegisterConfig carries the shared dependencies handed to every manager
// constructor at startup.
type RegisterConfig struct {
	DB    *gorm.DB
	Alert alert.AlertInterface
}

// Registers collects the manager constructors; each handler file appends
// its own constructor from an init function.
var Registers []func(*RegisterConfig) Manager
