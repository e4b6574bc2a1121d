package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/dao/query"
	"github.com/riskbases/riskbases/internal/resputil"
	"github.com/riskbases/riskbases/internal/util"
)

func AuthProtected() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		t := strings.Split(authHeader, " ")
		if len(t) < 2 || t[0] != "Bearer" {
			resputil.HTTPError(c, http.StatusUnauthorized, "Invalid token", resputil.TokenExpired)
			c.Abort()
			return
		}

		authToken := t[1]
		token, err := util.GetTokenMgr().CheckToken(authToken)
		if err != nil {
			resputil.HTTPError(c, http.StatusUnauthorized, err.Error(), resputil.TokenExpired)
			c.Abort()
			return
		}

		// Mutating requests re-validate the token claims against the
		// database; reads trust the token.
		if c.Request.Method != http.MethodGet {
			db := query.GetDB().WithContext(c)

			var user model.User
			if err := db.Where("id = ?", token.UserID).First(&user).Error; err != nil {
				resputil.HTTPError(c, http.StatusUnauthorized, "User not found", resputil.TokenExpired)
				c.Abort()
				return
			}
			if user.Role != token.RolePlatform {
				resputil.HTTPError(c, http.StatusUnauthorized, "Platform role not match", resputil.TokenExpired)
				c.Abort()
				return
			}

			if token.WorkspaceID != util.WorkspaceIDNull {
				var member model.WorkspaceMember
				err := db.Where("user_id = ? AND workspace_id = ?", token.UserID, token.WorkspaceID).First(&member).Error
				if err != nil {
					resputil.HTTPError(c, http.StatusUnauthorized, "Workspace membership not found", resputil.NotWorkspaceMember)
					c.Abort()
					return
				}
				if member.Role != token.RoleWorkspace {
					resputil.HTTPError(c, http.StatusUnauthorized, "Workspace role not match", resputil.NotWorkspaceMember)
					c.Abort()
					return
				}
			}
		}

		util.SetJWTContext(c, token)
		c.Next()
	}
}

func AuthAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.GetToken(c)
		if token.RolePlatform != model.RoleAdmin {
			resputil.HTTPError(c, http.StatusUnauthorized, "Not Admin", resputil.UserNotAllowed)
			c.Abort()
			return
		}
		c.Next()
	}
}
