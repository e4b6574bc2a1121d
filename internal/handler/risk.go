package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/internal/resputil"
	"github.com/riskbases/riskbases/pkg/riskscore"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewRiskMgr)
}

type RiskMgr struct {
	name string
	db   *gorm.DB
}

func NewRiskMgr(conf *RegisterConfig) Manager {
	return &RiskMgr{
		name: "projects",
		db:   conf.DB,
	}
}

func (mgr *RiskMgr) GetName() string { return mgr.name }

func (mgr *RiskMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *RiskMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/:id/risks", mgr.List)
	g.POST("/:id/risks", mgr.Create)
	g.POST("/:id/risks/from-templates", mgr.CreateFromTemplates)
	g.PUT("/:id/risks/:sid", mgr.Update)
	g.DELETE("/:id/risks/:sid", mgr.Delete)
}

func (mgr *RiskMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	RiskReq struct {
		Title              string           `json:"title" binding:"required,min=1,max=256"`
		CategoryKey        *string          `json:"categoryKey"`
		Description        *string          `json:"description"`
		Probability        int              `json:"probability" binding:"required"`
		Impact             int              `json:"impact" binding:"required"`
		Status             model.RiskStatus `json:"status" binding:"omitempty,oneof=open in_progress accepted closed"`
		FinancialImpactEUR *float64         `json:"financialImpactEUR"`
		ScheduleImpactDays *int             `json:"scheduleImpactDays"`
	}

	// RiskResp carries the derived score and severity band next to the
	// stored fields.
	RiskResp struct {
		model.Risk
		Score int            `json:"score"`
		Band  riskscore.Band `json:"band"`
	}

	FromTemplatesReq struct {
		TemplateIDs []uint `json:"templateIDs" binding:"required,min=1"`
	}
)

func toRiskResp(risk model.Risk) RiskResp {
	return RiskResp{
		Risk:  risk,
		Score: riskscore.Score(risk.Probability, risk.Impact),
		Band:  riskscore.Classify(riskscore.Score(risk.Probability, risk.Impact)),
	}
}

// List godoc
// @Summary List risks of a project with derived scores
// @Tags Risk
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[[]RiskResp] "risks"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/risks [get]
func (mgr *RiskMgr) List(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var risks []model.Risk
	err := mgr.db.WithContext(c).
		Where("project_id = ?", project.ID).
		Order("id").
		Find(&risks).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, lo.Map(risks, func(r model.Risk, _ int) RiskResp {
		return toRiskResp(r)
	}))
}

// Create godoc
// @Summary Add a risk
// @Tags Risk
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param data body RiskReq true "risk data"
// @Success 200 {object} resputil.Response[RiskResp] "created risk"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Router /v1/projects/{id}/risks [post]
func (mgr *RiskMgr) Create(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var req RiskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	if req.Status == "" {
		req.Status = model.RiskOpen
	}

	risk := model.Risk{
		ProjectID:          project.ID,
		CategoryKey:        req.CategoryKey,
		Title:              req.Title,
		Description:        req.Description,
		Probability:        riskscore.Clamp(req.Probability),
		Impact:             riskscore.Clamp(req.Impact),
		Status:             req.Status,
		FinancialImpactEUR: req.FinancialImpactEUR,
		ScheduleImpactDays: req.ScheduleImpactDays,
	}
	if err := mgr.db.WithContext(c).Create(&risk).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, toRiskResp(risk))
}

// CreateFromTemplates godoc
// @Summary Seed the register from catalog risk templates
// @Description Copies the selected templates of the project's module into
// @Description the register. Templates of other modules are ignored.
// @Tags Risk
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param data body FromTemplatesReq true "template ids"
// @Success 200 {object} resputil.Response[[]RiskResp] "created risks"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Router /v1/projects/{id}/risks/from-templates [post]
func (mgr *RiskMgr) CreateFromTemplates(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var req FromTemplatesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var templates []model.RiskTemplate
	err := mgr.db.WithContext(c).
		Where("id IN ? AND module_id = ?", req.TemplateIDs, project.ModuleID).
		Find(&templates).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	if len(templates) == 0 {
		resputil.BadRequestError(c, "No matching risk templates")
		return
	}

	risks := lo.Map(templates, func(t model.RiskTemplate, _ int) model.Risk {
		return model.Risk{
			ProjectID:   project.ID,
			CategoryKey: &t.CategoryKey,
			Title:       t.Title,
			Description: t.Description,
			Probability: t.Probability,
			Impact:      t.Impact,
			Status:      model.RiskOpen,
		}
	})
	if err := mgr.db.WithContext(c).Create(&risks).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, lo.Map(risks, func(r model.Risk, _ int) RiskResp {
		return toRiskResp(r)
	}))
}

// Update godoc
// @Summary Update a risk
// @Tags Risk
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param sid path int true "risk id"
// @Param data body RiskReq true "risk data"
// @Success 200 {object} resputil.Response[RiskResp] "updated risk"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/risks/{sid} [put]
func (mgr *RiskMgr) Update(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var uri SubResourceIDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req RiskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var risk model.Risk
	err := mgr.db.WithContext(c).
		Where("id = ? AND project_id = ?", uri.SID, project.ID).
		First(&risk).Error
	if err != nil {
		resputil.HTTPError(c, 404, "Risk not found", resputil.NotFound)
		return
	}

	risk.Title = req.Title
	risk.CategoryKey = req.CategoryKey
	risk.Description = req.Description
	risk.Probability = riskscore.Clamp(req.Probability)
	risk.Impact = riskscore.Clamp(req.Impact)
	if req.Status != "" {
		risk.Status = req.Status
	}
	risk.FinancialImpactEUR = req.FinancialImpactEUR
	risk.ScheduleImpactDays = req.ScheduleImpactDays

	if err := mgr.db.WithContext(c).Save(&risk).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, toRiskResp(risk))
}

// Delete godoc
// @Summary Delete a risk
// @Description Actions that referenced the risk survive with the link
// @Description nulled.
// @Tags Risk
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param sid path int true "risk id"
// @Success 200 {object} resputil.Response[string] "deleted"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/risks/{sid} [delete]
func (mgr *RiskMgr) Delete(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var uri SubResourceIDReq
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND project_id = ?", uri.SID, project.ID).
			Delete(&model.Risk{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.Action{}).
			Where("risk_id = ? AND project_id = ?", uri.SID, project.ID).
			Update("risk_id", nil).Error
	})
	if err == gorm.ErrRecordNotFound {
		resputil.HTTPError(c, 404, "Risk not found", resputil.NotFound)
		return
	}
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "")
}
