package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/bytedance/mockey"
	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/pkg/alert"
)

func TestSetupRoute(t *testing.T) {
	t.Run("routeByIngestType", func(t *testing.T) {
		PatchConvey("routeByIngestType", t, func() {
			So(SetupRoute(7, model.IngestManual), ShouldEqual, "/app/projects/7/setup/manual/step-1")
			So(SetupRoute(7, model.IngestCSV), ShouldEqual, "/app/projects/7/setup/csv")
			So(SetupRoute(7, model.IngestAPI), ShouldEqual, "/app/projects/7/setup/api")

			// unknown ingest types fall back to the manual wizard
			So(SetupRoute(7, model.IngestType("bogus")), ShouldEqual, "/app/projects/7/setup/manual/step-1")
		})
	})

	t.Run("dashboardRoute", func(t *testing.T) {
		PatchConvey("dashboardRoute", t, func() {
			So(DashboardRoute(42), ShouldEqual, "/app/projects/42/dashboard")
		})
	})
}

func TestValidateIntake(t *testing.T) {
	fields := []model.IntakeFieldDefinition{
		{FieldKey: "project_scope", Label: "Scope", FieldType: model.FieldTextarea, Required: true},
		{FieldKey: "budget_eur", Label: "Budget", FieldType: model.FieldNumber},
		{FieldKey: "start_permit", Label: "Permit", FieldType: model.FieldBoolean},
	}

	t.Run("acceptsValidSubmission", func(t *testing.T) {
		PatchConvey("acceptsValidSubmission", t, func() {
			msg := validateIntake(fields, map[string]string{
				"project_scope": "Renovate the west wing",
				"budget_eur":    "150000.50",
				"start_permit":  "true",
			})
			So(msg, ShouldBeEmpty)
		})
	})

	t.Run("optionalFieldsMayBeOmitted", func(t *testing.T) {
		PatchConvey("optionalFieldsMayBeOmitted", t, func() {
			msg := validateIntake(fields, map[string]string{
				"project_scope": "Renovate the west wing",
			})
			So(msg, ShouldBeEmpty)
		})
	})

	t.Run("rejectsUnknownKeys", func(t *testing.T) {
		PatchConvey("rejectsUnknownKeys", t, func() {
			msg := validateIntake(fields, map[string]string{
				"project_scope": "x",
				"nonsense":      "y",
			})
			So(msg, ShouldContainSubstring, "unknown intake field")
		})
	})

	t.Run("rejectsMissingRequired", func(t *testing.T) {
		PatchConvey("rejectsMissingRequired", t, func() {
			msg := validateIntake(fields, map[string]string{
				"budget_eur": "1000",
			})
			So(msg, ShouldContainSubstring, `"project_scope" is required`)
		})
	})

	t.Run("rejectsTypeMismatch", func(t *testing.T) {
		PatchConvey("rejectsTypeMismatch", t, func() {
			msg := validateIntake(fields, map[string]string{
				"project_scope": "x",
				"budget_eur":    "a lot",
			})
			So(msg, ShouldContainSubstring, `"budget_eur"`)
		})
	})
}

func TestFinishGatesOnIngestType(t *testing.T) {
	gin.SetMode(gin.TestMode)

	finishRequest := func() (*gin.Context, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/v1/projects/12/setup/finish", http.NoBody)
		return c, w
	}

	t.Run("rejectsCSVProject", func(t *testing.T) {
		PatchConvey("rejectsCSVProject", t, func() {
			project := &model.Project{
				SetupStatus: model.SetupInProgress,
				IngestType:  model.IngestCSV,
			}
			project.ID = 12
			Mock(getWorkspaceProject).Return(project, true).Build()
			completer := Mock(completeSetup).Return(nil).Build()

			c, w := finishRequest()
			mgr := &SetupMgr{name: "projects"}
			mgr.Finish(c)

			So(w.Code, ShouldEqual, http.StatusConflict)
			So(w.Body.String(), ShouldContainSubstring, "/app/projects/12/setup/csv")
			So(completer.Times(), ShouldEqual, 0)
		})
	})

	t.Run("rejectsAPIProject", func(t *testing.T) {
		PatchConvey("rejectsAPIProject", t, func() {
			project := &model.Project{
				SetupStatus: model.SetupInProgress,
				IngestType:  model.IngestAPI,
			}
			project.ID = 12
			Mock(getWorkspaceProject).Return(project, true).Build()
			completer := Mock(completeSetup).Return(nil).Build()

			c, w := finishRequest()
			mgr := &SetupMgr{name: "projects"}
			mgr.Finish(c)

			So(w.Code, ShouldEqual, http.StatusConflict)
			So(w.Body.String(), ShouldContainSubstring, "/app/projects/12/setup/api")
			So(completer.Times(), ShouldEqual, 0)
		})
	})

	t.Run("allowsManualProject", func(t *testing.T) {
		PatchConvey("allowsManualProject", t, func() {
			db := newHandlerTestDB(t)
			project := model.Project{
				WorkspaceID: 1,
				ModuleID:    1,
				Name:        "Sluiscomplex West",
				Status:      model.ProjectDraft,
				SetupStatus: model.SetupInProgress,
				IngestType:  model.IngestManual,
			}
			So(db.Create(&project).Error, ShouldBeNil)

			Mock(getWorkspaceProject).Return(&project, true).Build()
			Mock(notifySetupCompleted).To(
				func(*gin.Context, *gorm.DB, alert.AlertInterface, *model.Project) {},
			).Build()

			c, w := finishRequest()
			mgr := &SetupMgr{name: "projects", db: db}
			mgr.Finish(c)

			So(w.Code, ShouldEqual, http.StatusOK)

			var got model.Project
			So(db.First(&got, project.ID).Error, ShouldBeNil)
			So(got.SetupStatus, ShouldEqual, model.SetupCompleted)
			So(got.Status, ShouldEqual, model.ProjectActive)
		})
	})
}

func TestToRiskResp(t *testing.T) {
	t.Run("derivesScoreAndBand", func(t *testing.T) {
		PatchConvey("derivesScoreAndBand", t, func() {
			resp := toRiskResp(model.Risk{Title: "delay", Probability: 4, Impact: 4})
			So(resp.Score, ShouldEqual, 16)
			So(string(resp.Band), ShouldEqual, "critical")

			resp = toRiskResp(model.Risk{Title: "minor", Probability: 1, Impact: 3})
			So(resp.Score, ShouldEqual, 3)
			So(string(resp.Band), ShouldEqual, "low")
		})
	})
}
