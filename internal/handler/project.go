package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/internal/resputil"
	"github.com/riskbases/riskbases/internal/util"
	"github.com/riskbases/riskbases/pkg/logutils"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewProjectMgr)
}

type ProjectMgr struct {
	name string
	db   *gorm.DB
}

func NewProjectMgr(conf *RegisterConfig) Manager {
	return &ProjectMgr{
		name: "projects",
		db:   conf.DB,
	}
}

func (mgr *ProjectMgr) GetName() string { return mgr.name }

func (mgr *ProjectMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ProjectMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.List)
	g.POST("", mgr.Create)
	g.GET("/:id", mgr.Get)
	g.PUT("/:id", mgr.Update)
	g.DELETE("/:id", mgr.Delete)
}

func (mgr *ProjectMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	ProjectCreateReq struct {
		Name       string           `json:"name" binding:"required,min=2,max=100"`
		ModuleID   uint             `json:"moduleId" binding:"required"`
		IngestType model.IngestType `json:"ingestType" binding:"required,oneof=manual csv api"`
		StartDate  *time.Time       `json:"startDate"`
		EndDate    *time.Time       `json:"endDate"`
	}

	ProjectUpdateReq struct {
		Name      *string              `json:"name" binding:"omitempty,min=2,max=100"`
		Status    *model.ProjectStatus `json:"status" binding:"omitempty,oneof=draft completed archived on_hold cancelled"`
		StartDate *time.Time           `json:"startDate"`
		EndDate   *time.Time           `json:"endDate"`
	}

	ProjectListReq struct {
		Status   *model.ProjectStatus `form:"status" binding:"omitempty,oneof=draft active completed archived on_hold cancelled"`
		NameLike *string              `form:"nameLike"`
	}

	ProjectResp struct {
		ID          uint                `json:"id"`
		Name        string              `json:"name"`
		ModuleID    uint                `json:"moduleId"`
		Status      model.ProjectStatus `json:"status"`
		SetupStatus model.SetupStatus   `json:"setupStatus"`
		IngestType  model.IngestType    `json:"ingestType"`
		StartDate   *time.Time          `json:"startDate"`
		EndDate     *time.Time          `json:"endDate"`
		CreatedAt   time.Time           `json:"createdAt"`
		// SetupRoute is the client route of the project's setup entry
		// point while setup is in progress, empty afterwards.
		SetupRoute string `json:"setupRoute"`
	}
)

func toProjectResp(p *model.Project) ProjectResp {
	resp := ProjectResp{
		ID:          p.ID,
		Name:        p.Name,
		ModuleID:    p.ModuleID,
		Status:      p.Status,
		SetupStatus: p.SetupStatus,
		IngestType:  p.IngestType,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
	}
	if p.SetupStatus != model.SetupCompleted {
		resp.SetupRoute = SetupRoute(p.ID, p.IngestType)
	}
	return resp
}

// Create godoc
// @Summary Create a project
// @Description Final step of the creation wizard: insert the project as draft with setup in progress and return the setup entry route for the chosen ingest type
// @Tags Project
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body ProjectCreateReq true "project data"
// @Success 200 {object} resputil.Response[ProjectResp] "created project"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects [post]
func (mgr *ProjectMgr) Create(c *gin.Context) {
	token := util.GetToken(c)
	if token.WorkspaceID == util.WorkspaceIDNull {
		resputil.Error(c, "No workspace selected", resputil.NotWorkspaceMember)
		return
	}

	var req ProjectCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var module model.Module
	if err := mgr.db.WithContext(c).Where("id = ?", req.ModuleID).First(&module).Error; err != nil {
		resputil.BadRequestError(c, "Unknown module")
		return
	}

	project := model.Project{
		WorkspaceID: token.WorkspaceID,
		ModuleID:    module.ID,
		Name:        req.Name,
		Status:      model.ProjectDraft,
		SetupStatus: model.SetupInProgress,
		IngestType:  req.IngestType,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := mgr.db.WithContext(c).Create(&project).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	logutils.Log.Infof("project created: id=%d workspace=%d ingest=%s", project.ID, project.WorkspaceID, project.IngestType)
	resputil.Success(c, toProjectResp(&project))
}

// List godoc
// @Summary List projects of the current workspace
// @Tags Project
// @Produce json
// @Security Bearer
// @Param filter query ProjectListReq false "filters"
// @Success 200 {object} resputil.Response[[]ProjectResp] "projects"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects [get]
func (mgr *ProjectMgr) List(c *gin.Context) {
	token := util.GetToken(c)
	if token.WorkspaceID == util.WorkspaceIDNull {
		resputil.Error(c, "No workspace selected", resputil.NotWorkspaceMember)
		return
	}

	var req ProjectListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	q := mgr.db.WithContext(c).Where("workspace_id = ?", token.WorkspaceID)
	if req.Status != nil {
		q = q.Where("status = ?", *req.Status)
	}
	if req.NameLike != nil {
		q = q.Where("name ILIKE ?", "%"+*req.NameLike+"%")
	}

	var projects []model.Project
	if err := q.Order("id DESC").Find(&projects).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	resputil.Success(c, lo.Map(projects, func(p model.Project, _ int) ProjectResp {
		return toProjectResp(&p)
	}))
}

// Get godoc
// @Summary Get a project
// @Tags Project
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[ProjectResp] "project"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id} [get]
func (mgr *ProjectMgr) Get(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}
	resputil.Success(c, toProjectResp(project))
}

// Update godoc
// @Summary Update a project
// @Description Rename, reschedule or change the lifecycle status. The active status is reserved for the setup completion transition and cannot be set here.
// @Tags Project
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param data body ProjectUpdateReq true "fields to update"
// @Success 200 {object} resputil.Response[ProjectResp] "updated project"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id} [put]
func (mgr *ProjectMgr) Update(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var req ProjectUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if len(updates) == 0 {
		resputil.Success(c, toProjectResp(project))
		return
	}

	if err := mgr.db.WithContext(c).Model(project).Updates(updates).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, toProjectResp(project))
}

// Delete godoc
// @Summary Delete a project
// @Tags Project
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[string] "deleted"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id} [delete]
func (mgr *ProjectMgr) Delete(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	if err := mgr.db.WithContext(c).Delete(project).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	logutils.Log.Infof("project deleted: id=%d workspace=%d", project.ID, project.WorkspaceID)
	resputil.Success(c, "")
}
