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
	Registers = append(Registers, NewPermitMgr)
}

type PermitMgr struct {
	name string
	db   *gorm.DB
}

func NewPermitMgr(conf *RegisterConfig) Manager {
	return &PermitMgr{
		name: "projects",
		db:   conf.DB,
	}
}

func (mgr *PermitMgr) GetName() string { return mgr.name }

func (mgr *PermitMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *PermitMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/:id/permits", mgr.List)
	g.POST("/:id/permits", mgr.Create)
	g.PUT("/:id/permits/:sid", mgr.Update)
	g.DELETE("/:id/permits/:sid", mgr.Delete)
}

func (mgr *PermitMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type PermitReq struct {
	PermitType   string             `json:"permitType" binding:"required,min=1,max=64"`
	Status       model.PermitStatus `json:"status" binding:"omitempty,oneof=pending submitted approved rejected expired"`
	ExpectedDate *time.Time         `json:"expectedDate"`
	ActualDate   *time.Time         `json:"actualDate"`
	Notes        *string            `json:"notes"`
}

// List godoc
// @Summary List permits of a project
// @Tags Permit
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[[]model.Permit] "permits"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/permits [get]
func (mgr *PermitMgr) List(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var permits []model.Permit
	err := mgr.db.WithContext(c).
		Where("project_id = ?", project.ID).
		Order("id").
		Find(&permits).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, permits)
}

// Create godoc
// @Summary Add a permit
// @Tags Permit
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param data body PermitReq true "permit data"
// @Success 200 {object} resputil.Response[model.Permit] "created permit"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Router /v1/projects/{id}/permits [post]
func (mgr *PermitMgr) Create(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var req PermitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	if req.Status == "" {
		req.Status = model.PermitPending
	}

	permit := model.Permit{
		ProjectID:    project.ID,
		PermitType:   req.PermitType,
		Status:       req.Status,
		ExpectedDate: req.ExpectedDate,
		ActualDate:   req.ActualDate,
		Notes:        req.Notes,
	}
	if err := mgr.db.WithContext(c).Create(&permit).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, permit)
}

// Update godoc
// @Summary Update a permit
// @Tags Permit
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param sid path int true "permit id"
// @Param data body PermitReq true "permit data"
// @Success 200 {object} resputil.Response[model.Permit] "updated permit"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/permits/{sid} [put]
func (mgr *PermitMgr) Update(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var uri SubResourceIDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req PermitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var permit model.Permit
	err := mgr.db.WithContext(c).
		Where("id = ? AND project_id = ?", uri.SID, project.ID).
		First(&permit).Error
	if err != nil {
		resputil.HTTPError(c, 404, "Permit not found", resputil.NotFound)
		return
	}

	permit.PermitType = req.PermitType
	if req.Status != "" {
		permit.Status = req.Status
	}
	permit.ExpectedDate = req.ExpectedDate
	permit.ActualDate = req.ActualDate
	permit.Notes = req.Notes

	if err := mgr.db.WithContext(c).Save(&permit).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, permit)
}

// Delete godoc
// @Summary Delete a permit
// @Tags Permit
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param sid path int true "permit id"
// @Success 200 {object} resputil.Response[string] "deleted"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/permits/{sid} [delete]
func (mgr *PermitMgr) Delete(c *gin.Context) {
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
		Delete(&model.Permit{})
	if res.Error != nil {
		resputil.Error(c, res.Error.Error(), resputil.NotSpecified)
		return
	}
	if res.RowsAffected == 0 {
		resputil.HTTPError(c, 404, "Permit not found", resputil.NotFound)
		return
	}
	resputil.Success(c, "")
}
