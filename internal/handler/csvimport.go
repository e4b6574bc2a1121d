package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/internal/resputil"
	"github.com/riskbases/riskbases/pkg/alert"
	"github.com/riskbases/riskbases/pkg/csvimport"
	"github.com/riskbases/riskbases/pkg/logutils"
	"github.com/riskbases/riskbases/pkg/metrics"
	"github.com/riskbases/riskbases/pkg/riskscore"
)

// uploads beyond this size are rejected before parsing
const maxCSVUploadBytes = 2 << 20

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewCSVImportMgr)
}

type CSVImportMgr struct {
	name  string
	db    *gorm.DB
	alert alert.AlertInterface
}

func NewCSVImportMgr(conf *RegisterConfig) Manager {
	return &CSVImportMgr{
		name:  "projects",
		db:    conf.DB,
		alert: conf.Alert,
	}
}

func (mgr *CSVImportMgr) GetName() string { return mgr.name }

func (mgr *CSVImportMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *CSVImportMgr) RegisterProtected(g *gin.RouterGroup) {
	g.POST("/:id/setup/csv/parse", mgr.Parse)
	g.POST("/:id/setup/csv/confirm", mgr.Confirm)
}

func (mgr *CSVImportMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	// ConfirmRiskReq is one reviewed row of the import preview. The client
	// may have edited it after parsing, so scales are clamped again on
	// confirm.
	ConfirmRiskReq struct {
		Title       string `json:"title" binding:"required,min=1,max=256"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Probability int    `json:"probability"`
		Impact      int    `json:"impact"`
		Action      string `json:"action"`
	}

	ConfirmReq struct {
		Risks []ConfirmRiskReq `json:"risks" binding:"required,min=1,dive"`
	}

	ConfirmResp struct {
		Imported int    `json:"imported"`
		Actions  int    `json:"actions"`
		Redirect string `json:"redirect"`
	}
)

// requireCSVSetup loads the project and checks that the CSV route is the
// project's setup entry point and that setup is still open.
func (mgr *CSVImportMgr) requireCSVSetup(c *gin.Context) (*model.Project, bool) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return nil, false
	}
	if !requireSetupInProgress(c, project) {
		return nil, false
	}
	if project.IngestType != model.IngestCSV {
		resputil.RedirectError(c, "Project does not use CSV import",
			SetupRoute(project.ID, project.IngestType), resputil.ProjectSetupIncomplete)
		return nil, false
	}
	return project, true
}

// Parse godoc
// @Summary Parse an uploaded risk CSV into an import preview
// @Description Nothing is persisted. The response carries the parsed rows
// @Description with derived scores plus the advisory warnings.
// @Tags CSVImport
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param file formData file true "CSV file"
// @Success 200 {object} resputil.Response[csvimport.Result] "import preview"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Router /v1/projects/{id}/setup/csv/parse [post]
func (mgr *CSVImportMgr) Parse(c *gin.Context) {
	project, ok := mgr.requireCSVSetup(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		resputil.BadRequestError(c, "Missing file upload")
		return
	}
	if fileHeader.Size > maxCSVUploadBytes {
		resputil.BadRequestError(c, "CSV file too large")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxCSVUploadBytes))
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	result := csvimport.Parse(string(data))
	logutils.Log.Infof("csv parse for project %d: %d risks, %d warnings",
		project.ID, len(result.Risks), len(result.Warnings))
	resputil.Success(c, result)
}

// Confirm godoc
// @Summary Persist the reviewed import and complete the setup
// @Description All rows are written in one transaction and the project goes
// @Description active. On any failure nothing is imported and setup stays
// @Description open.
// @Tags CSVImport
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Param data body ConfirmReq true "reviewed rows"
// @Success 200 {object} resputil.Response[ConfirmResp] "import summary"
// @Failure 400 {object} resputil.Response[any] "Request parameter error"
// @Failure 409 {object} resputil.Response[any] "setup already completed"
// @Router /v1/projects/{id}/setup/csv/confirm [post]
func (mgr *CSVImportMgr) Confirm(c *gin.Context) {
	project, ok := mgr.requireCSVSetup(c)
	if !ok {
		return
	}

	var req ConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	risks := lo.Map(req.Risks, func(r ConfirmRiskReq, _ int) model.Risk {
		risk := model.Risk{
			ProjectID:   project.ID,
			Title:       r.Title,
			Probability: riskscore.Clamp(r.Probability),
			Impact:      riskscore.Clamp(r.Impact),
			Status:      model.RiskOpen,
		}
		if r.Category != "" {
			risk.CategoryKey = &r.Category
		}
		if r.Description != "" {
			risk.Description = &r.Description
		}
		return risk
	})

	var actionCount int
	err := mgr.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&risks).Error; err != nil {
			return err
		}
		var actions []model.Action
		for i, r := range req.Risks {
			if r.Action == "" {
				continue
			}
			actions = append(actions, model.Action{
				ProjectID: project.ID,
				RiskID:    &risks[i].ID,
				Title:     r.Action,
				Priority:  model.PriorityMedium,
				Status:    model.ActionOpen,
			})
		}
		if len(actions) > 0 {
			if err := tx.Create(&actions).Error; err != nil {
				return err
			}
		}
		actionCount = len(actions)
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
	metrics.SetupCompletions.WithLabelValues(string(model.IngestCSV)).Inc()
	metrics.CSVRowsImported.Add(float64(len(risks)))
	logutils.Log.Infof("csv import confirmed for project %d: %d risks, %d actions",
		project.ID, len(risks), actionCount)
	resputil.Success(c, ConfirmResp{
		Imported: len(risks),
		Actions:  actionCount,
		Redirect: DashboardRoute(project.ID),
	})
}
