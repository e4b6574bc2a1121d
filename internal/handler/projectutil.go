package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/internal/resputil"
	"github.com/riskbases/riskbases/internal/util"
	"github.com/riskbases/riskbases/pkg/alert"
	"github.com/riskbases/riskbases/pkg/config"
	"github.com/riskbases/riskbases/pkg/logutils"
)

type ProjectIDReq struct {
	ID uint `uri:"id" binding:"required"`
}

// SetupRoute resolves the client route of the setup entry point that matches
// the project's ingest type. This is the whole of the ingestion strategy
// selector: exactly one entry point per project.
func SetupRoute(projectID uint, ingestType model.IngestType) string {
	switch ingestType {
	case model.IngestCSV:
		return fmt.Sprintf("/app/projects/%d/setup/csv", projectID)
	case model.IngestAPI:
		return fmt.Sprintf("/app/projects/%d/setup/api", projectID)
	default:
		return fmt.Sprintf("/app/projects/%d/setup/manual/step-1", projectID)
	}
}

func DashboardRoute(projectID uint) string {
	return fmt.Sprintf("/app/projects/%d/dashboard", projectID)
}

// getWorkspaceProject binds the :id parameter and loads the project scoped
// to the caller's workspace. Projects of other workspaces are
// indistinguishable from missing ones.
func getWorkspaceProject(c *gin.Context, db *gorm.DB) (*model.Project, bool) {
	var req ProjectIDReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return nil, false
	}
	token := util.GetToken(c)
	if token.WorkspaceID == util.WorkspaceIDNull {
		resputil.Error(c, "No workspace selected", resputil.NotWorkspaceMember)
		return nil, false
	}

	var project model.Project
	err := db.WithContext(c).
		Where("id = ? AND workspace_id = ?", req.ID, token.WorkspaceID).
		First(&project).Error
	if err != nil {
		resputil.HTTPError(c, 404, "Project not found", resputil.NotFound)
		return nil, false
	}
	return &project, true
}

// requireSetupInProgress gates setup routes: once setup is completed the
// wizard is unreachable and the client is pointed at the dashboard.
func requireSetupInProgress(c *gin.Context, project *model.Project) bool {
	if project.SetupStatus == model.SetupCompleted {
		resputil.RedirectError(c, "Project setup is already completed",
			DashboardRoute(project.ID), resputil.ProjectSetupCompleted)
		return false
	}
	return true
}

// requireSetupCompleted gates the read views: while setup is in progress the
// only reachable routes are the project's own setup routes.
func requireSetupCompleted(c *gin.Context, project *model.Project) bool {
	if project.SetupStatus != model.SetupCompleted {
		resputil.RedirectError(c, "Project setup is not completed",
			SetupRoute(project.ID, project.IngestType), resputil.ProjectSetupIncomplete)
		return false
	}
	return true
}

// completeSetup flips the project to (completed, active) with a guarded
// update. The predicate on setup_status makes the transition happen at most
// once; callers run it inside the transaction of their final step.
func completeSetup(tx *gorm.DB, projectID uint) error {
	res := tx.Model(&model.Project{}).
		Where("id = ? AND setup_status = ?", projectID, model.SetupInProgress).
		Updates(map[string]any{
			"setup_status": model.SetupCompleted,
			"status":       model.ProjectActive,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// notifySetupCompleted mails the caller that the project went active.
// Best effort: a mail failure never fails the request that completed the
// setup.
func notifySetupCompleted(c *gin.Context, db *gorm.DB, alerter alert.AlertInterface, project *model.Project) {
	token := util.GetToken(c)
	var user model.User
	if err := db.WithContext(c).Where("id = ?", token.UserID).First(&user).Error; err != nil {
		logutils.Log.Warnf("setup-completed mail skipped, user %d not found: %v", token.UserID, err)
		return
	}
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	dashboardURL := config.GetConfig().Frontend.BaseURL + DashboardRoute(project.ID)
	if err := alerter.ProjectSetupCompleted(c, email, project.Name, dashboardURL); err != nil {
		logutils.Log.Warnf("setup-completed mail for project %d failed: %v", project.ID, err)
	}
}
