package resputil

type ErrorCode int

const (
	OK ErrorCode = 0

	// General
	InvalidRequest ErrorCode = 40001

	// Token
	TokenExpired ErrorCode = 40101
	TokenInvalid ErrorCode = 40102

	// Login
	InvalidCredentials ErrorCode = 40106

	// User is not allowed to access the resource
	UserNotAllowed ErrorCode = 40301

	// Not a member of the requested workspace
	NotWorkspaceMember ErrorCode = 40303

	// Resource does not exist (or is outside the caller's workspace)
	NotFound ErrorCode = 40401

	// Setup gating. Both codes carry the route the client should
	// navigate to in the response data.
	ProjectSetupIncomplete ErrorCode = 40901
	ProjectSetupCompleted  ErrorCode = 40902

	// Indicates laziness of the developer
	// Frontend will directly print the message without any translation
	NotSpecified ErrorCode = 99999
)
