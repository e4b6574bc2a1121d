package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/internal/resputil"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewActionMgr)
}

type ActionMgr struct {
	name string
	db   *gorm.DB
}

func NewActionMgr(conf *RegisterConfig) Manager {
	return &ActionMgr{
		name: "projects",
		db:   conf.DB,
	}
}

func (mgr *ActionMgr) GetName() string { return mgr.name }

func (mgr *ActionMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ActionMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/:id/actions", mgr.List)
	g.POST("/:id/actions", mgr.Create)
	g.PUT("/:id/actions/:sid", mgr.Update)
	g.DELETE("/:id/actions/:sid", mgr.Delete)
}

func (mgr *ActionMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type ActionReq struct {
	Title       string               `json:"title" binding:"required,min=1,max=256"`
	Description *string              `json:"description"`
	RiskID      *uint                `json:"riskID"`
	Priority    model.ActionPriority `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	Status      model.ActionStatus   `json:"status" binding:"omitempty,oneof=open in_progress completed cancelled"`
	DueDate     *time.Time           `json:"dueDate"`
}

// resolveRiskID verifies that a referenced risk belongs to the same project.
func (mgr *ActionMgr) resolveRiskID(c *gin.Context, projectID uint, riskID *uint) (*uint, bool) {
	if riskID == nil {
		return nil, true
	}
	var count int64
	err := mgr.db.WithContext(c).Model(&model.Risk{}).
		Where("id = ? AND project_id = ?", *riskID, projectID).
		Count(&count).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return nil, false
	}
	if count == 0 {
		resputil.BadRequestError(c, "Referenced risk does not belong to this project")
		return nil, false
	}
	return riskID, true
}

// List godoc
// @Summary List actions of a project
// @Tags Action
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[[]model.Action] "actions"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/actions [get]
func (mgr *ActionMgr) List(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var actions []model.Action
	err := mgr.db.WithContext(c).
		Where("project_id = ?", project.ID).
		Order("id").
		Find(&actions).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, actions)
}

// Create godoc
// @Summary Add an action
// @Tags Action
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param data body ActionReq true "action data"
// @Success 200 {object} resputil.Response[model.Action] "created action"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Router /v1/projects/{id}/actions [post]
func (mgr *ActionMgr) Create(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var req ActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	riskID, ok := mgr.resolveRiskID(c, project.ID, req.RiskID)
	if !ok {
		return
	}
	if req.Priority == "" {
		req.Priority = model.PriorityMedium
	}
	if req.Status == "" {
		req.Status = model.ActionOpen
	}

	action := model.Action{
		ProjectID:   project.ID,
		RiskID:      riskID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}
	if err := mgr.db.WithContext(c).Create(&action).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, action)
}

// Update godoc
// @Summary Update an action
// @Tags Action
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param sid path int true "action id"
// @Param data body ActionReq true "action data"
// @Success 200 {object} resputil.Response[model.Action] "updated action"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/actions/{sid} [put]
func (mgr *ActionMgr) Update(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var uri SubResourceIDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req ActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var action model.Action
	err := mgr.db.WithContext(c).
		Where("id = ? AND project_id = ?", uri.SID, project.ID).
		First(&action).Error
	if err != nil {
		resputil.HTTPError(c, 404, "Action not found", resputil.NotFound)
		return
	}

	riskID, ok := mgr.resolveRiskID(c, project.ID, req.RiskID)
	if !ok {
		return
	}

	action.Title = req.Title
	action.Description = req.Description
	action.RiskID = riskID
	if req.Priority != "" {
		action.Priority = req.Priority
	}
	if req.Status != "" {
		action.Status = req.Status
	}
	action.DueDate = req.DueDate

	if err := mgr.db.WithContext(c).Save(&action).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, action)
}

// Delete godoc
// @Summary Delete an action
// @Tags Action
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param sid path int true "action id"
// @Success 200 {object} resputil.Response[string] "deleted"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/actions/{sid} [delete]
func (mgr *ActionMgr) Delete(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var uri SubResourceIDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	res := mgr.db.WithContext(c).
		Where("id = ? AND project_id = ?", uri.SID, project.ID).
		Delete(&model.Action{})
	if res.Error != nil {
		resputil.Error(c, res.Error.Error(), resputil.NotSpecified)
		return
	}
	if res.RowsAffected == 0 {
		resputil.HTTPError(c, 404, "Action not found", resputil.NotFound)
		return
	}
	resputil.Success(c, "")
}
