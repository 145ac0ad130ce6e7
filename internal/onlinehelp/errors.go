package onlinehelp

import "errors"

// ErrorType classifies help system errors.
type ErrorType string

const (
	ErrorConfiguration    ErrorType = "configuration"
	ErrorTopicNotFound    ErrorType = "topic_not_found"
	ErrorUnknownFactory   ErrorType = "unknown_factory"
	ErrorInvalidDirective ErrorType = "invalid_directive"
	ErrorRenderFailed     ErrorType = "render_failed"
)

// HelpError represents structured errors of the help system.
type HelpError struct {
	Type    ErrorType `json:"type"`
	Topic   string    `json:"topic,omitempty"`
	Path    string    `json:"path,omitempty"`
	Message string    `json:"message"`
	Cause   error     `json:"cause,omitempty"`
}

// Error implements the error interface
func (e *HelpError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *HelpError) Unwrap() error {
	return e.Cause
}

// IsErrorType reports whether err is, or wraps, a *HelpError of type t.
func IsErrorType(err error, t ErrorType) bool {
	var helpErr *HelpError
	if errors.As(err, &helpErr) {
		return helpErr.Type == t
	}
	return false
}
