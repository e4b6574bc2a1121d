// Constants mapped to database columns.
// Gin rejects zero values for fields tagged `required`, so numeric enums
// start at iota + 1 and keep the zero value invalid.
package model

// User role on the platform and inside a workspace.
type Role uint8

const (
	RoleGuest Role = iota + 1
	RoleUser
	RoleAdmin
)

// User account status.
type Status uint8

const (
	StatusPending  Status = iota + 1 // Pending status, not yet activated
	StatusActive                     // Active status
	StatusInactive                   // Inactive status
)

// Project lifecycle status. String-typed because the values are part of the
// API and CSV contracts.
type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCancelled ProjectStatus = "cancelled"
)

// Setup progress of a project. A project becomes active only when its setup
// completes, and that transition happens exactly once.
type SetupStatus string

const (
	SetupInProgress SetupStatus = "in_progress"
	SetupCompleted  SetupStatus = "completed"
)

// Onboarding path chosen at project creation.
type IngestType string

const (
	IngestManual IngestType = "manual"
	IngestCSV    IngestType = "csv"
	IngestAPI    IngestType = "api"
)

type InfluenceLevel string

const (
	InfluenceLow    InfluenceLevel = "low"
	InfluenceMedium InfluenceLevel = "medium"
	InfluenceHigh   InfluenceLevel = "high"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentUnknown  Sentiment = "unknown"
)

type PermitStatus string

const (
	PermitPending   PermitStatus = "pending"
	PermitSubmitted PermitStatus = "submitted"
	PermitApproved  PermitStatus = "approved"
	PermitRejected  PermitStatus = "rejected"
	PermitExpired   PermitStatus = "expired"
)

type RiskStatus string

const (
	RiskOpen       RiskStatus = "open"
	RiskInProgress RiskStatus = "in_progress"
	RiskAccepted   RiskStatus = "accepted"
	RiskClosed     RiskStatus = "closed"
)

type ActionPriority string

const (
	PriorityLow      ActionPriority = "low"
	PriorityMedium   ActionPriority = "medium"
	PriorityHigh     ActionPriority = "high"
	PriorityCritical ActionPriority = "critical"
)

type ActionStatus string

const (
	ActionOpen       ActionStatus = "open"
	ActionInProgress ActionStatus = "in_progress"
	ActionCompleted  ActionStatus = "completed"
	ActionCancelled  ActionStatus = "cancelled"
)

// Integration status. Real synchronization is not implemented; "connected"
// only records intent, so this is the single valid value.
type IntegrationStatus string

const (
	IntegrationNotConnected IntegrationStatus = "not_connected"
)
