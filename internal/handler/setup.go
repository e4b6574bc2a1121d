package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/internal/resputil"
	"github.com/riskbases/riskbases/pkg/alert"
	"github.com/riskbases/riskbases/pkg/logutils"
	"github.com/riskbases/riskbases/pkg/metrics"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewSetupMgr)
}

// SetupMgr implements the persisting steps of the manual setup wizard that
// write intake values (1 intake, 2 planning, 5 constraints), the review
// (step 8) and the terminal finish. The sub-resource steps (stakeholders,
// permits, risks, actions) have their own managers.
type SetupMgr struct {
	name  string
	db    *gorm.DB
	alert alert.AlertInterface
}

func NewSetupMgr(conf *RegisterConfig) Manager {
	return &SetupMgr{
		name:  "projects",
		db:    conf.DB,
		alert: conf.Alert,
	}
}

func (mgr *SetupMgr) GetName() string { return mgr.name }

func (mgr *SetupMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *SetupMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/:id/setup", mgr.GetState)
	g.PUT("/:id/setup/intake", mgr.PutIntake)
	g.PUT("/:id/setup/planning", mgr.PutPlanning)
	g.PUT("/:id/setup/constraints", mgr.PutConstraints)
	g.GET("/:id/setup/review", mgr.GetReview)
	g.POST("/:id/setup/finish", mgr.Finish)
}

func (mgr *SetupMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	IntakeValueReq struct {
		FieldKey string `json:"fieldKey" binding:"required"`
		Value    string `json:"value"`
	}

	IntakeReq struct {
		Values []IntakeValueReq `json:"values" binding:"required"`
	}

	PlanningReq struct {
		StartDate    string `json:"startDate"`
		EndDate      string `json:"endDate"`
		Milestones   string `json:"milestones"`
		CriticalPath string `json:"criticalPath"`
	}

	ConstraintsReq struct {
		Constraints  string `json:"constraints"`
		Assumptions  string `json:"assumptions"`
		Dependencies string `json:"dependencies"`
	}

	SetupStateResp struct {
		SetupStatus model.SetupStatus `json:"setupStatus"`
		IngestType  model.IngestType  `json:"ingestType"`
		SetupRoute  string            `json:"setupRoute"`
		Values      map[string]string `json:"values"`
	}

	ReviewResp struct {
		IntakeValues int64 `json:"intakeValues"`
		Stakeholders int64 `json:"stakeholders"`
		Permits      int64 `json:"permits"`
		Risks        int64 `json:"risks"`
		Actions      int64 `json:"actions"`
	}
)

// GetState godoc
// @Summary Get setup state
// @Description Setup status, entry route and all stored intake values; used to rehydrate any wizard step
// @Tags Setup
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[SetupStateResp] "setup state"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/setup [get]
func (mgr *SetupMgr) GetState(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var values []model.IntakeValue
	if err := mgr.db.WithContext(c).Where("project_id = ?", project.ID).Find(&values).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	resp := SetupStateResp{
		SetupStatus: project.SetupStatus,
		IngestType:  project.IngestType,
		Values: lo.SliceToMap(values, func(v model.IntakeValue) (string, string) {
			return v.FieldKey, v.Value
		}),
	}
	if project.SetupStatus != model.SetupCompleted {
		resp.SetupRoute = SetupRoute(project.ID, project.IngestType)
	}
	resputil.Success(c, resp)
}

// PutIntake godoc
// @Summary Save the intake step
// @Description Validate the submitted values against the module's field catalog (every required field non-empty, every value matching its field type) and upsert them
// @Tags Setup
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param data body IntakeReq true "intake values"
// @Success 200 {object} resputil.Response[string] "saved"
// @Failure 400 {object} resputil.Response[any] "validation error"
// @Failure 409 {object} resputil.Response[any] "setup already completed"
// @Router /v1/projects/{id}/setup/intake [put]
func (mgr *SetupMgr) PutIntake(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}
	if !requireSetupInProgress(c, project) {
		return
	}

	var req IntakeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	var fields []model.IntakeFieldDefinition
	err := mgr.db.WithContext(c).
		Where("module_id = ?", project.ModuleID).
		Order("sort_order").
		Find(&fields).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	submitted := lo.SliceToMap(req.Values, func(v IntakeValueReq) (string, string) {
		return v.FieldKey, v.Value
	})
	if msg := validateIntake(fields, submitted); msg != "" {
		resputil.BadRequestError(c, msg)
		return
	}

	if err := mgr.upsertValues(c, project.ID, submitted); err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "")
}

// validateIntake checks the submitted intake values against the module's
// field catalog. Unknown keys are rejected, required fields must be
// non-empty, and each value must match its field type.
func validateIntake(fields []model.IntakeFieldDefinition, submitted map[string]string) string {
	byKey := lo.SliceToMap(fields, func(f model.IntakeFieldDefinition) (string, model.IntakeFieldDefinition) {
		return f.FieldKey, f
	})
	for key := range submitted {
		if _, ok := byKey[key]; !ok {
			return fmt.Sprintf("unknown intake field %q", key)
		}
	}
	for _, f := range fields {
		value := submitted[f.FieldKey]
		if f.Required && value == "" {
			return fmt.Sprintf("field %q is required", f.FieldKey)
		}
		if err := f.FieldType.ValidateValue(value); err != nil {
			return fmt.Sprintf("field %q: %v", f.FieldKey, err)
		}
	}
	return ""
}

// PutPlanning godoc
// @Summary Save the planning step
// @Description Upsert the fixed planning keys (dates, milestones, critical path)
// @Tags Setup
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param data body PlanningReq true "planning values"
// @Success 200 {object} resputil.Response[string] "saved"
// @Failure 409 {object} resputil.Response[any] "setup already completed"
// @Router /v1/projects/{id}/setup/planning [put]
func (mgr *SetupMgr) PutPlanning(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}
	if !requireSetupInProgress(c, project) {
		return
	}

	var req PlanningReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	for _, date := range []string{req.StartDate, req.EndDate} {
		if err := model.FieldDate.ValidateValue(date); err != nil {
			resputil.BadRequestError(c, err.Error())
			return
		}
	}

	values := map[string]string{
		model.KeyPlanningStartDate:    req.StartDate,
		model.KeyPlanningEndDate:      req.EndDate,
		model.KeyPlanningMilestones:   req.Milestones,
		model.KeyPlanningCriticalPath: req.CriticalPath,
	}
	if err := mgr.upsertValues(c, project.ID, values); err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "")
}

// PutConstraints godoc
// @Summary Save the constraints step
// @Description Upsert the three free-text fields: constraints, assumptions, dependencies
// @Tags Setup
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param data body ConstraintsReq true "constraint values"
// @Success 200 {object} resputil.Response[string] "saved"
// @Failure 409 {object} resputil.Response[any] "setup already completed"
// @Router /v1/projects/{id}/setup/constraints [put]
func (mgr *SetupMgr) PutConstraints(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}
	if !requireSetupInProgress(c, project) {
		return
	}

	var req ConstraintsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	values := map[string]string{
		model.KeyConstraints:  req.Constraints,
		model.KeyAssumptions:  req.Assumptions,
		model.KeyDependencies: req.Dependencies,
	}
	if err := mgr.upsertValues(c, project.ID, values); err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, "")
}

// upsertValues writes intake values keyed by (project, field key), updating
// in place. Each step's writes are idempotent, so a failed submit can simply
// be retried.
func (mgr *SetupMgr) upsertValues(c *gin.Context, projectID uint, values map[string]string) error {
	rows := make([]model.IntakeValue, 0, len(values))
	for key, value := range values {
		rows = append(rows, model.IntakeValue{ProjectID: projectID, FieldKey: key, Value: value})
	}
	if len(rows) == 0 {
		return nil
	}
	return mgr.db.WithContext(c).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "field_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error
}

// GetReview godoc
// @Summary Review step counts
// @Description Read-only aggregation over everything the earlier steps persisted
// @Tags Setup
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[ReviewResp] "counts"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/projects/{id}/setup/review [get]
func (mgr *SetupMgr) GetReview(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}

	var resp ReviewResp
	db := mgr.db.WithContext(c)
	counts := []struct {
		model any
		dest  *int64
	}{
		{&model.IntakeValue{}, &resp.IntakeValues},
		{&model.Stakeholder{}, &resp.Stakeholders},
		{&model.Permit{}, &resp.Permits},
		{&model.Risk{}, &resp.Risks},
		{&model.Action{}, &resp.Actions},
	}
	for _, count := range counts {
		if err := db.Model(count.model).Where("project_id = ?", project.ID).Count(count.dest).Error; err != nil {
			resputil.Error(c, err.Error(), resputil.NotSpecified)
			return
		}
	}
	resputil.Success(c, resp)
}

// Finish godoc
// @Summary Finish the manual setup wizard
// @Description Terminal step 8 action: mark setup completed and the project active, exactly once
// @Tags Setup
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[ProjectResp] "activated project"
// @Failure 409 {object} resputil.Response[any] "setup already completed"
// @Router /v1/projects/{id}/setup/finish [post]
func (mgr *SetupMgr) Finish(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}
	if !requireSetupInProgress(c, project) {
		return
	}
	if project.IngestType != model.IngestManual {
		resputil.RedirectError(c, "Project does not use the manual wizard",
			SetupRoute(project.ID, project.IngestType), resputil.ProjectSetupIncomplete)
		return
	}

	err := completeSetup(mgr.db.WithContext(c), project.ID)
	if err == gorm.ErrRecordNotFound {
		resputil.RedirectError(c, "Project setup is already completed",
			DashboardRoute(project.ID), resputil.ProjectSetupCompleted)
		return
	}
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	project.SetupStatus = model.SetupCompleted
	project.Status = model.ProjectActive

	logutils.Log.Infof("project setup completed: id=%d via manual wizard", project.ID)
	notifySetupCompleted(c, mgr.db, mgr.alert, project)
	metrics.SetupCompletions.WithLabelValues(string(project.IngestType)).Inc()
	resputil.Success(c, toProjectResp(project))
}
