package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/internal/resputil"
	"github.com/riskbases/riskbases/internal/util"
	"github.com/riskbases/riskbases/pkg/alert"
	"github.com/riskbases/riskbases/pkg/logutils"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewAuthMgr)
}

type AuthMgr struct {
	name  string
	db    *gorm.DB
	alert alert.AlertInterface
}

func NewAuthMgr(conf *RegisterConfig) Manager {
	return &AuthMgr{
		name:  "auth",
		db:    conf.DB,
		alert: conf.Alert,
	}
}

func (mgr *AuthMgr) GetName() string { return mgr.name }

func (mgr *AuthMgr) RegisterPublic(g *gin.RouterGroup) {
	g.POST("/signup", mgr.Signup)
	g.POST("/login", mgr.Login)
	g.POST("/refresh", mgr.Refresh)
}

func (mgr *AuthMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *AuthMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	SignupReq struct {
		Name     string `json:"name" binding:"required,min=2,max=64"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	LoginReq struct {
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	RefreshReq struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}

	TokenResp struct {
		AccessToken  string     `json:"accessToken"`
		RefreshToken string     `json:"refreshToken"`
		Role         model.Role `json:"role"`
	}
)

// Signup godoc
// @Summary Register a new user
// @Description Create a user account and return a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param data body SignupReq true "account data"
// @Success 200 {object} resputil.Response[TokenResp] "token pair"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Failure 409 {object} resputil.Response[any] "name already taken"
// @Router /v1/auth/signup [post]
func (mgr *AuthMgr) Signup(c *gin.Context) {
	var req SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var existing model.User
	if err := mgr.db.WithContext(c).Where("name = ?", req.Name).First(&existing).Error; err == nil {
		resputil.HTTPError(c, http.StatusConflict, "User already exists with the given name", resputil.NotSpecified)
		return
	}

	encrypted, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	password := string(encrypted)
	user := model.User{
		Name:     req.Name,
		Email:    &req.Email,
		Password: &password,
		Role:     model.RoleUser,
		Status:   model.StatusActive,
	}
	if err := mgr.db.WithContext(c).Create(&user).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	if err := mgr.alert.WelcomeUser(c, req.Email, req.Name); err != nil {
		logutils.Log.Warnf("welcome mail to %s failed: %v", req.Email, err)
	}

	mgr.respondWithTokens(c, &user, util.WorkspaceIDNull, util.WorkspaceNameNull, model.RoleGuest)
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and return a token pair without workspace scope
// @Tags Auth
// @Accept json
// @Produce json
// @Param data body LoginReq true "credentials"
// @Success 200 {object} resputil.Response[TokenResp] "token pair"
// @Failure 401 {object} resputil.Response[any] "invalid credentials"
// @Router /v1/auth/login [post]
func (mgr *AuthMgr) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var user model.User
	err := mgr.db.WithContext(c).Where("name = ?", req.Name).First(&user).Error
	if err != nil || user.Password == nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "Invalid credentials", resputil.InvalidCredentials)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)) != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "Invalid credentials", resputil.InvalidCredentials)
		return
	}
	if user.Status != model.StatusActive {
		resputil.HTTPError(c, http.StatusUnauthorized, "Account is not active", resputil.UserNotAllowed)
		return
	}

	mgr.respondWithTokens(c, &user, util.WorkspaceIDNull, util.WorkspaceNameNull, model.RoleGuest)
}

// Refresh godoc
// @Summary Refresh the token pair
// @Description Exchange a valid refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param data body RefreshReq true "refresh token"
// @Success 200 {object} resputil.Response[TokenResp] "token pair"
// @Failure 401 {object} resputil.Response[any] "invalid refresh token"
// @Router /v1/auth/refresh [post]
func (mgr *AuthMgr) Refresh(c *gin.Context) {
	var req RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	msg, err := util.GetTokenMgr().CheckRefreshToken(req.RefreshToken)
	if err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, err.Error(), resputil.TokenExpired)
		return
	}

	// Claims are re-derived from the database so that a role change or a
	// revoked membership takes effect on the next refresh.
	var user model.User
	if err := mgr.db.WithContext(c).Where("id = ?", msg.UserID).First(&user).Error; err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "User not found", resputil.TokenExpired)
		return
	}

	workspaceID := uint(util.WorkspaceIDNull)
	workspaceName := util.WorkspaceNameNull
	workspaceRole := model.RoleGuest
	if msg.WorkspaceID != util.WorkspaceIDNull {
		var member model.WorkspaceMember
		err := mgr.db.WithContext(c).
			Where("user_id = ? AND workspace_id = ?", msg.UserID, msg.WorkspaceID).
			First(&member).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			resputil.Error(c, err.Error(), resputil.NotSpecified)
			return
		}
		if err == nil {
			var workspace model.Workspace
			if err := mgr.db.WithContext(c).Where("id = ?", member.WorkspaceID).First(&workspace).Error; err != nil {
				resputil.Error(c, err.Error(), resputil.NotSpecified)
				return
			}
			workspaceID = workspace.ID
			workspaceName = workspace.Name
			workspaceRole = member.Role
		}
	}

	mgr.respondWithTokens(c, &user, workspaceID, workspaceName, workspaceRole)
}

func (mgr *AuthMgr) respondWithTokens(c *gin.Context, user *model.User,
	workspaceID uint, workspaceName string, workspaceRole model.Role) {
	msg := util.JWTMessage{
		UserID:        user.ID,
		WorkspaceID:   workspaceID,
		Username:      user.Name,
		WorkspaceName: workspaceName,
		RoleWorkspace: workspaceRole,
		RolePlatform:  user.Role,
	}
	access, refresh, err := util.GetTokenMgr().CreateTokens(&msg)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, TokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		Role:         user.Role,
	})
}
