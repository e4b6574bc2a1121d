package util

import (
	"github.com/gin-gonic/gin"

	"github.com/riskbases/riskbases/dao/model"
)

const (
	UserIDKey   = "x-user-id"
	UsernameKey = "x-user-name"

	WorkspaceIDKey   = "x-workspace-id"
	WorkspaceNameKey = "x-workspace-name"

	RoleWorkspaceKey = "x-role-workspace"
	RolePlatformKey  = "x-role-platform"
)

const (
	WorkspaceNameNull = ""
	WorkspaceIDNull   = 0
)

func SetJWTContext(c *gin.Context, msg JWTMessage) {
	c.Set(UserIDKey, msg.UserID)
	c.Set(UsernameKey, msg.Username)

	c.Set(WorkspaceIDKey, msg.WorkspaceID)
	c.Set(WorkspaceNameKey, msg.WorkspaceName)

	c.Set(RoleWorkspaceKey, msg.RoleWorkspace)
	c.Set(RolePlatformKey, msg.RolePlatform)
}

func GetToken(ctx *gin.Context) JWTMessage {
	var msg JWTMessage
	msg.UserID = ctx.GetUint(UserIDKey)
	msg.Username = ctx.GetString(UsernameKey)

	msg.WorkspaceID = ctx.GetUint(WorkspaceIDKey)
	msg.WorkspaceName = ctx.GetString(WorkspaceNameKey)

	roleWorkspace, _ := ctx.Get(RoleWorkspaceKey)
	msg.RoleWorkspace, _ = roleWorkspace.(model.Role)

	rolePlatform, _ := ctx.Get(RolePlatformKey)
	msg.RolePlatform, _ = rolePlatform.(model.Role)
	return msg
}
