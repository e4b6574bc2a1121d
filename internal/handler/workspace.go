package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/internal/payload"
	"github.com/riskbases/riskbases/internal/resputil"
	"github.com/riskbases/riskbases/internal/util"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewWorkspaceMgr)
}

type WorkspaceMgr struct {
	name string
	db   *gorm.DB
}

func NewWorkspaceMgr(conf *RegisterConfig) Manager {
	return &WorkspaceMgr{
		name: "workspaces",
		db:   conf.DB,
	}
}

func (mgr *WorkspaceMgr) GetName() string { return mgr.name }

func (mgr *WorkspaceMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *WorkspaceMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.ListForUser)
	g.POST("", mgr.Create)
	g.POST("/:id/switch", mgr.Switch)
	g.GET("/:id/members", mgr.ListMembers)
}

func (mgr *WorkspaceMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("", mgr.ListForAdmin)
}

type (
	WorkspaceCreateReq struct {
		Name string `json:"name" binding:"required,min=2,max=64"`
	}

	WorkspaceResp struct {
		ID   uint       `json:"id"`
		Name string     `json:"name"`
		Slug string     `json:"slug"`
		Role model.Role `json:"role"`
	}

	MemberResp struct {
		UserID   uint       `json:"userId"`
		Name     string     `json:"name"`
		Nickname *string    `json:"nickname"`
		Role     model.Role `json:"role"`
	}
)

// ListForUser godoc
// @Summary List the caller's workspaces
// @Description Join memberships and workspaces for the current user
// @Tags Workspace
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[[]WorkspaceResp] "memberships"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/workspaces [get]
func (mgr *WorkspaceMgr) ListForUser(c *gin.Context) {
	token := util.GetToken(c)

	var workspaces []WorkspaceResp
	err := mgr.db.WithContext(c).Model(&model.WorkspaceMember{}).
		Select("workspaces.id, workspaces.name, workspaces.slug, workspace_members.role").
		Joins("JOIN workspaces ON workspaces.id = workspace_members.workspace_id").
		Where("workspace_members.user_id = ?", token.UserID).
		Order("workspaces.id DESC").
		Scan(&workspaces).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, workspaces)
}

// Create godoc
// @Summary Create a workspace
// @Description Create a workspace and make the caller its admin; part of onboarding
// @Tags Workspace
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body WorkspaceCreateReq true "workspace data"
// @Success 200 {object} resputil.Response[WorkspaceResp] "created workspace"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/workspaces [post]
func (mgr *WorkspaceMgr) Create(c *gin.Context) {
	token := util.GetToken(c)

	var req WorkspaceCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	workspace := model.Workspace{
		Name: req.Name,
		Slug: makeSlug(req.Name),
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}
		member := model.WorkspaceMember{
			UserID:      token.UserID,
			WorkspaceID: workspace.ID,
			Role:        model.RoleAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	resputil.Success(c, WorkspaceResp{
		ID:   workspace.ID,
		Name: workspace.Name,
		Slug: workspace.Slug,
		Role: model.RoleAdmin,
	})
}

// Switch godoc
// @Summary Switch workspace
// @Description Issue a token pair scoped to the given workspace
// @Tags Workspace
// @Produce json
// @Security Bearer
// @Param id path int true "workspace id"
// @Success 200 {object} resputil.Response[TokenResp] "workspace-scoped token pair"
// @Failure 401 {object} resputil.Response[any] "not a member"
// @Router /v1/workspaces/{id}/switch [post]
func (mgr *WorkspaceMgr) Switch(c *gin.Context) {
	token := util.GetToken(c)

	var req ProjectIDReq // same {id} uri shape
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var member model.WorkspaceMember
	err := mgr.db.WithContext(c).
		Where("user_id = ? AND workspace_id = ?", token.UserID, req.ID).
		First(&member).Error
	if err != nil {
		resputil.HTTPError(c, 401, "Not a member of this workspace", resputil.NotWorkspaceMember)
		return
	}

	var workspace model.Workspace
	if err := mgr.db.WithContext(c).Where("id = ?", req.ID).First(&workspace).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	msg := util.JWTMessage{
		UserID:        token.UserID,
		WorkspaceID:   workspace.ID,
		Username:      token.Username,
		WorkspaceName: workspace.Name,
		RoleWorkspace: member.Role,
		RolePlatform:  token.RolePlatform,
	}
	access, refresh, err := util.GetTokenMgr().CreateTokens(&msg)
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, TokenResp{AccessToken: access, RefreshToken: refresh, Role: token.RolePlatform})
}

// ListMembers godoc
// @Summary List workspace members
// @Tags Workspace
// @Produce json
// @Security Bearer
// @Param id path int true "workspace id"
// @Success 200 {object} resputil.Response[[]MemberResp] "members"
// @Failure 401 {object} resputil.Response[any] "not a member"
// @Router /v1/workspaces/{id}/members [get]
func (mgr *WorkspaceMgr) ListMembers(c *gin.Context) {
	token := util.GetToken(c)

	var req ProjectIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var member model.WorkspaceMember
	err := mgr.db.WithContext(c).
		Where("user_id = ? AND workspace_id = ?", token.UserID, req.ID).
		First(&member).Error
	if err != nil {
		resputil.HTTPError(c, 401, "Not a member of this workspace", resputil.NotWorkspaceMember)
		return
	}

	var members []MemberResp
	err = mgr.db.WithContext(c).Model(&model.WorkspaceMember{}).
		Select("workspace_members.user_id, users.name, users.nickname, workspace_members.role").
		Joins("JOIN users ON users.id = workspace_members.user_id").
		Where("workspace_members.workspace_id = ?", req.ID).
		Order("workspace_members.user_id").
		Scan(&members).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, members)
}

type WorkspaceListAllReq struct {
	PageIndex *int           `form:"pageIndex" binding:"required"`
	PageSize  *int           `form:"pageSize" binding:"required"`
	NameLike  *string        `form:"nameLike"`
	Order     *payload.Order `form:"order"`
}

// ListForAdmin godoc
// @Summary List all workspaces
// @Description Paged and filtered workspace list for platform admins
// @Tags Workspace
// @Produce json
// @Security Bearer
// @Param page query WorkspaceListAllReq true "paging"
// @Success 200 {object} resputil.Response[payload.ListResp[model.Workspace]] "workspaces"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Router /v1/admin/workspaces [get]
func (mgr *WorkspaceMgr) ListForAdmin(c *gin.Context) {
	var req WorkspaceListAllReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	q := mgr.db.WithContext(c).Model(&model.Workspace{})
	if req.NameLike != nil {
		q = q.Where("name LIKE ?", "%"+*req.NameLike+"%")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	order := "id DESC"
	if req.Order != nil && *req.Order == payload.Asc {
		order = "id ASC"
	}

	var workspaces []model.Workspace
	err := q.Order(order).
		Offset((*req.PageIndex) * (*req.PageSize)).
		Limit(*req.PageSize).
		Find(&workspaces).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	resputil.Success(c, payload.ListResp[model.Workspace]{Rows: workspaces, Count: count})
}

// makeSlug derives a unique, url-safe identifier from the workspace name.
func makeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = "workspace"
	}
	return base + "-" + uuid.New().String()[:8]
}
