// Package gcloud runs the Google Cloud CLI as a subprocess and classifies
// its failures into a small, actionable error taxonomy.
package gcloud

// Error codes for hi-gcloud.
const (
	ErrNotInstalled     = "GCLOUD_NOT_INSTALLED"
	ErrNotAuthenticated = "NOT_AUTHENTICATED"
	ErrNoProject        = "NO_PROJECT"
	ErrPermissionDenied = "PERMISSION_DENIED"
	ErrUnknown          = "UNKNOWN"
	ErrMissingArgument  = "MISSING_ARGUMENT"
	ErrQueryRejected    = "QUERY_REJECTED"
)

// Error carries an error code, message, and remediation suggestion.
type Error struct {
	Code       string
	Message    string
	Suggestion string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError creates an Error with the given code, message, and suggestion.
func NewError(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}
