package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/internal/resputil"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewStakeholderMgr)
}

type StakeholderMgr struct {
	name string
	db   *gorm.DB
}

func NewStakeholderMgr(conf *RegisterConfig) Manager {
	return &StakeholderMgr{
		name: "projects",
		db:   conf.DB,
	}
}

func (mgr *StakeholderMgr) GetName() string { return mgr.name }

func (mgr *StakeholderMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *StakeholderMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/:id/stakeholders", mgr.List)
	g.POST("/:id/stakeholders", mgr.Create)
	g.PUT("/:id/stakeholders/:sid", mgr.Update)
	g.DELETE("/:id/stakeholders/:sid", mgr.Delete)
}

func (mgr *StakeholderMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	SubResourceIDReq struct {
		ID  uint `uri:"id" binding:"required"`
		SID uint `uri:"sid" binding:"required"`
	}

	StakeholderReq struct {
		Name            string               `json:"name" binding:"required,min=1,max=128"`
		StakeholderType *string              `json:"stakeholderType"`
		Email           *string              `json:"email" binding:"omitempty,email"`
		Phone           *string              `json:"phone"`
		InfluenceLevel  model.InfluenceLevel `json:"influenceLevel" binding:"omitempty,oneof=low medium high"`
		Sentiment       model.Sentiment      `json:"sentiment" binding:"omitempty,oneof=positive neutral negative unknown"`
		Notes           *string              `json:"notes"`
	}
)

// List godoc
// @Summary List stakeholders of a project
// @Tags Stakeholder
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[[]model.Stakeholder] "stakeholders"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/stakeholders [get]
func (mgr *StakeholderMgr) List(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var stakeholders []model.Stakeholder
	err := mgr.db.WithContext(c).
		Where("project_id = ?", project.ID).
		Order("id").
		Find(&stakeholders).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, stakeholders)
}

// Create godoc
// @Summary Add a stakeholder
// @Tags Stakeholder
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param data body StakeholderReq true "stakeholder data"
// @Success 200 {object} resputil.Response[model.Stakeholder] "created stakeholder"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Router /v1/projects/{id}/stakeholders [post]
func (mgr *StakeholderMgr) Create(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var req StakeholderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	stakeholder := model.Stakeholder{
		ProjectID:       project.ID,
		Name:            req.Name,
		StakeholderType: req.StakeholderType,
		Email:           req.Email,
		Phone:           req.Phone,
		InfluenceLevel:  defaultInfluence(req.InfluenceLevel),
		Sentiment:       defaultSentiment(req.Sentiment),
		Notes:           req.Notes,
	}
	if err := mgr.db.WithContext(c).Create(&stakeholder).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, stakeholder)
}

// Update godoc
// @Summary Update a stakeholder
// @Tags Stakeholder
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param sid path int true "stakeholder id"
// @Param data body StakeholderReq true "stakeholder data"
// @Success 200 {object} resputil.Response[model.Stakeholder] "updated stakeholder"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/stakeholders/{sid} [put]
func (mgr *StakeholderMgr) Update(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var uri SubResourceIDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req StakeholderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var stakeholder model.Stakeholder
	err := mgr.db.WithContext(c).
		Where("id = ? AND project_id = ?", uri.SID, project.ID).
		First(&stakeholder).Error
	if err != nil {
		resputil.HTTPError(c, 404, "Stakeholder not found", resputil.NotFound)
		return
	}

	stakeholder.Name = req.Name
	stakeholder.StakeholderType = req.StakeholderType
	stakeholder.Email = req.Email
	stakeholder.Phone = req.Phone
	stakeholder.InfluenceLevel = defaultInfluence(req.InfluenceLevel)
	stakeholder.Sentiment = defaultSentiment(req.Sentiment)
	stakeholder.Notes = req.Notes

	if err := mgr.db.WithContext(c).Save(&stakeholder).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, stakeholder)
}

// Delete godoc
// @Summary Delete a stakeholder
// @Tags Stakeholder
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param sid path int true "stakeholder id"
// @Success 200 {object} resputil.Response[string] "deleted"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/stakeholders/{sid} [delete]
func (mgr *StakeholderMgr) Delete(c *gin.Context) {
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
		Delete(&model.Stakeholder{})
	if res.Error != nil {
		resputil.Error(c, res.Error.Error(), resputil.NotSpecified)
		return
	}
	if res.RowsAffected == 0 {
		resputil.HTTPError(c, 404, "Stakeholder not found", resputil.NotFound)
		return
	}
	resputil.Success(c, "")
}

func defaultInfluence(level model.InfluenceLevel) model.InfluenceLevel {
	if level == "" {
		return model.InfluenceMedium
	}
	return level
}

func defaultSentiment(s model.Sentiment) model.Sentiment {
	if s == "" {
		return model.SentimentUnknown
	}
	return s
}
