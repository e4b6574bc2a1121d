package alert

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskbases/riskbases/pkg/config"
	"github.com/riskbases/riskbases/pkg/logutils"
)

type alertMgr struct {
	handler alertHandlerInterface
}

var (
	once    sync.Once
	alerter *alertMgr
)

func GetAlertMgr() AlertInterface {
	once.Do(func() {
		alerter = initAlertMgr()
	})
	return alerter
}

func initAlertMgr() *alertMgr {
	smtpConfig := config.GetConfig().SMTP
	if smtpConfig.Host == "" {
		logutils.Log.Warn("smtp not configured, notifications disabled")
		return &alertMgr{handler: &noopAlerter{}}
	}
	return &alertMgr{handler: newSMTPAlerter()}
}

func (m *alertMgr) WelcomeUser(ctx context.Context, email, name string) error {
	if email == "" {
		logutils.Log.Warnf("user %s has no email address, skipping welcome mail", name)
		return nil
	}
	subject := "Welcome to RiskBases"
	body := fmt.Sprintf("Hi %s,\n\nYour RiskBases account is ready. Create a workspace to start your first project.\n", name)
	return m.handler.SendMessageTo(ctx, email, subject, body)
}

func (m *alertMgr) ProjectSetupCompleted(ctx context.Context, email, projectName, dashboardURL string) error {
	if email == "" {
		return nil
	}
	subject := fmt.Sprintf("Project %q is ready", projectName)
	body := fmt.Sprintf("The setup of project %q is complete and the project is now active.\n\nDashboard: %s\n", projectName, dashboardURL)
	return m.handler.SendMessageTo(ctx, email, subject, body)
}

// noopAlerter is used when no SMTP server is configured.
type noopAlerter struct{}

func (n *noopAlerter) SendMessageTo(_ context.Context, receiver, subject, _ string) error {
	logutils.Log.Debugf("notification suppressed (no smtp): to=%s subject=%s", receiver, subject)
	return nil
}
