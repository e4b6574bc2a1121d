package handler

import (
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/internal/resputil"
	"github.com/riskbases/riskbases/pkg/riskscore"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewDashboardMgr)
}

type DashboardMgr struct {
	name string
	db   *gorm.DB
}

func NewDashboardMgr(conf *RegisterConfig) Manager {
	return &DashboardMgr{
		name: "projects",
		db:   conf.DB,
	}
}

func (mgr *DashboardMgr) GetName() string { return mgr.name }

func (mgr *DashboardMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *DashboardMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/:id/dashboard", mgr.Dashboard)
	g.GET("/:id/report", mgr.Report)
}

func (mgr *DashboardMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	DashboardResp struct {
		Project       ProjectResp            `json:"project"`
		RiskCount     int                    `json:"riskCount"`
		SeverityBands map[riskscore.Band]int `json:"severityBands"`
		AverageScore  float64                `json:"averageScore"`
		TopRisks      []RiskResp             `json:"topRisks"`
		OpenActions   int64                  `json:"openActions"`
		OverduePermit int64                  `json:"overduePermits"`
		Stakeholders  int64                  `json:"stakeholders"`
	}

	ReportResp struct {
		Project      ProjectResp                `json:"project"`
		IntakeValues []model.IntakeValue        `json:"intakeValues"`
		Stakeholders []model.Stakeholder        `json:"stakeholders"`
		Permits      []model.Permit             `json:"permits"`
		Risks        []RiskResp                 `json:"risks"`
		Actions      []model.Action             `json:"actions"`
		Integrations []model.ProjectIntegration `json:"integrations"`
	}
)

// Dashboard godoc
// @Summary Project dashboard with severity buckets and counters
// @Description Only reachable once setup is completed; before that the
// @Description client is redirected to the project's setup route.
// @Tags Dashboard
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[DashboardResp] "dashboard"
// @Failure 409 {object} resputil.Response[any] "setup not completed"
// @Router /v1/projects/{id}/dashboard [get]
func (mgr *DashboardMgr) Dashboard(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}
	if !requireSetupCompleted(c, project) {
		return
	}

	var risks []model.Risk
	if err := mgr.db.WithContext(c).Where("project_id = ?", project.ID).
		Find(&risks).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	bands := map[riskscore.Band]int{
		riskscore.BandLow:      0,
		riskscore.BandMedium:   0,
		riskscore.BandHigh:     0,
		riskscore.BandCritical: 0,
	}
	total := 0
	for _, r := range risks {
		score := riskscore.Score(r.Probability, r.Impact)
		bands[riskscore.Classify(score)]++
		total += score
	}
	avg := 0.0
	if len(risks) > 0 {
		avg = float64(total) / float64(len(risks))
	}

	scored := lo.Map(risks, func(r model.Risk, _ int) RiskResp {
		return toRiskResp(r)
	})
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > 5 {
		scored = scored[:5]
	}

	var openActions, overduePermits, stakeholders int64
	if err := mgr.db.WithContext(c).Model(&model.Action{}).
		Where("project_id = ? AND status IN ?", project.ID,
			[]model.ActionStatus{model.ActionOpen, model.ActionInProgress}).
		Count(&openActions).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	if err := mgr.db.WithContext(c).Model(&model.Permit{}).
		Where("project_id = ? AND status NOT IN ? AND expected_date < NOW()",
			project.ID,
			[]model.PermitStatus{model.PermitApproved, model.PermitRejected}).
		Count(&overduePermits).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	if err := mgr.db.WithContext(c).Model(&model.Stakeholder{}).
		Where("project_id = ?", project.ID).
		Count(&stakeholders).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}

	resputil.Success(c, DashboardResp{
		Project:       toProjectResp(project),
		RiskCount:     len(risks),
		SeverityBands: bands,
		AverageScore:  avg,
		TopRisks:      scored,
		OpenActions:   openActions,
		OverduePermit: overduePermits,
		Stakeholders:  stakeholders,
	})
}

// Report godoc
// @Summary Full project report
// @Description One document with every sub-resource of the project, for
// @Description export or print views.
// @Tags Dashboard
// @Produce json
// @Security Bearer
// @Param id path int true "project id"
// @Success 200 {object} resputil.Response[ReportResp] "report"
// @Failure 409 {object} resputil.Response[any] "setup not completed"
// @Router /v1/projects/{id}/report [get]
func (mgr *DashboardMgr) Report(c *gin.Context) {
	project, ok := getWorkspaceProject(c, mgr.db)
	if !ok {
		return
	}
	if !requireSetupCompleted(c, project) {
		return
	}

	resp := ReportResp{Project: toProjectResp(project)}
	find := func(dest any) error {
		return mgr.db.WithContext(c).
			Where("project_id = ?", project.ID).
			Order("id").
			Find(dest).Error
	}

	var risks []model.Risk
	for _, dest := range []any{
		&resp.IntakeValues, &resp.Stakeholders, &resp.Permits,
		&risks, &resp.Actions, &resp.Integrations,
	} {
		if err := find(dest); err != nil {
			resputil.Error(c, err.Error(), resputil.NotSpecified)
			return
		}
	}
	resp.Risks = lo.Map(risks, func(r model.Risk, _ int) RiskResp {
		return toRiskResp(r)
	})

	resputil.Success(c, resp)
}
