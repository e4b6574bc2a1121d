package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/internal/resputil"
	"github.com/riskbases/riskbases/pkg/alert"
	"github.com/riskbases/riskbases/pkg/metrics"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewIntegrationMgr)
}

type IntegrationMgr struct {
	name  string
	db    *gorm.DB
	alert alert.AlertInterface
}

func NewIntegrationMgr(conf *RegisterConfig) Manager {
	return &IntegrationMgr{
		name:  "projects",
		db:    conf.DB,
		alert: conf.Alert,
	}
}

func (mgr *IntegrationMgr) GetName() string { return mgr.name }

func (mgr *IntegrationMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *IntegrationMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/:id/integrations", mgr.List)
	g.PUT("/:id/integrations", mgr.Upsert)
	g.POST("/:id/setup/api/finish", mgr.FinishAPISetup)
}

func (mgr *IntegrationMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type IntegrationReq struct {
	IntegrationType string         `json:"integrationType" binding:"required,min=1,max=32"`
	Config          datatypes.JSON `json:"config"`
}

// List godoc
// @Summary List the integration placeholders of a project
// @Tags Integration
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[[]model.ProjectIntegration] "integrations"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/integrations [get]
func (mgr *IntegrationMgr) List(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var integrations []model.ProjectIntegration
	err := mgr.db.WithContext(c).
		Where("project_id = ?", project.ID).
		Order("id").
		Find(&integrations).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, integrations)
}

// Upsert godoc
// @Summary Record the intent to connect an external system
// @Description One row per (project, type). Re-submitting replaces the
// @Description stored settings; the status stays not_connected because no
// @Description synchronization exists yet.
// @Tags Integration
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param data body IntegrationReq true "integration data"
// @Success 200 {object} resputil.Response[model.ProjectIntegration] "integration"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Router /v1/projects/{id}/integrations [put]
func (mgr *IntegrationMgr) Upsert(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var req IntegrationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	integration := model.ProjectIntegration{
		ProjectID:       project.ID,
		IntegrationType: req.IntegrationType,
		Status:          model.IntegrationNotConnected,
		Config:          req.Config,
	}
	err := mgr.db.WithContext(c).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "integration_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"config", "updated_at"}),
	}).Create(&integration).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, integration)
}

// FinishAPISetup godoc
// @Summary Complete the setup of an API-sourced project
// @Description The project goes active with an empty register. Risks arrive
// @Description later, once a connector exists for the recorded integration.
// @Tags Integration
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[ProjectResp] "activated project"
// @Failure 409 {object} resputil.Response[any] "setup already completed"
// @Router /v1/projects/{id}/setup/api/finish [post]
func (mgr *IntegrationMgr) FinishAPISetup(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}
	if !requireSetupInProgress(c, project) {
		return
	}
	if project.IngestType != model.IngestAPI {
		resputil.RedirectError(c, "Project does not use API integration",
			SetupRoute(project.ID, project.IngestType), resputil.ProjectSetupIncomplete)
		return
	}

	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		return completeSetup(tx, project.ID)
	})
	if err == gorm.ErrRecordNotFound {
		resputil.RedirectError(c, "Project setup is already completed",
			DashboardRoute(project.ID), resputil.ProjectSetupCompleted)
		return
	}
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	notifySetupCompleted(c, mgr.db, mgr.alert, project)
	metrics.SetupCompletions.WithLabelValues(string(model.IngestAPI)).Inc()
	project.SetupStatus = model.SetupCompleted
	project.Status = model.ProjectActive
	resputil.Success(c, toProjectResp(project))
}
