package alert

import (
	"context"
)

// AlertInterface is the notification component. Current scenarios:
//  1. welcome mail after signup
//  2. notification when a project's setup completes
//
// Sending is best effort: callers log failures and never fail the request.
type AlertInterface interface {
	WelcomeUser(ctx context.Context, email, name string) error
	ProjectSetupCompleted(ctx context.Context, email, projectName, dashboardURL string) error
}

// alertHandlerInterface is what a concrete transport (SMTP today) has to
// implement.
type alertHandlerInterface interface {
	SendMessageTo(ctx context.Context, receiver, subject, body string) error
}
