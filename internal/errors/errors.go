// Package errors provides the structured failure kinds returned by the
// nginxtools core.
//
// The store and validator packages never print or log. Every failure they
// surface is a *SiteError carrying a Code, so the CLI can decide how to
// render it and which exit status to use.
//
// # Error Codes
//
//	NOT_FOUND       the name is not present in sites-available
//	ALREADY_EXISTS  create on a name that is already available
//	ALREADY_ACTIVE  activate on a name that already has a link
//	NOT_ACTIVE      deactivate on a name without a link
//	INVALID_NAME    the name is not a single safe path segment
//	INVALID_PORT    a proxy target port outside 1-65535
//	IO              any other filesystem failure
//	SPAWN           the nginx binary could not be launched
//	TIMEOUT         nginx -t did not finish in time and was killed
//	CANCELED        the caller canceled an in-flight validation
//	PRECONDITION    the host is not Linux or the process is not root
//	CONFIG          the nginxtools config file is unreadable or invalid
//
// # Error Checking
//
// Compare against the sentinels with errors.Is; matching is by code:
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // name was never available
//	}
//
// Use errors.As to get at the name involved:
//
//	var siteErr *errors.SiteError
//	if errors.As(err, &siteErr) {
//	    fmt.Println(siteErr.Code, siteErr.Name)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for the failure kinds of the store and validator.
const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCodeAlreadyActive ErrorCode = "ALREADY_ACTIVE"
	ErrCodeNotActive     ErrorCode = "NOT_ACTIVE"
	ErrCodeInvalidName   ErrorCode = "INVALID_NAME"
	ErrCodeInvalidPort   ErrorCode = "INVALID_PORT"
	ErrCodeIO            ErrorCode = "IO"
	ErrCodeSpawn         ErrorCode = "SPAWN"
	ErrCodeTimeout       ErrorCode = "TIMEOUT"
	ErrCodeCanceled      ErrorCode = "CANCELED"
	ErrCodePrecondition  ErrorCode = "PRECONDITION"
	ErrCodeConfig        ErrorCode = "CONFIG"
)

// SiteError is a failure with the site name it concerns, if any.
type SiteError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Name    string    // Site name (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	if e.Name != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Name, e.Message, e.Err)
	}
	if e.Name != "" {
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *SiteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *SiteError with the same code.
func (e *SiteError) Is(target error) bool {
	t, ok := target.(*SiteError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors, one per code. Use these with errors.Is().
var (
	ErrNotFound      = &SiteError{Code: ErrCodeNotFound, Message: "does not exist"}
	ErrAlreadyExists = &SiteError{Code: ErrCodeAlreadyExists, Message: "already exists"}
	ErrAlreadyActive = &SiteError{Code: ErrCodeAlreadyActive, Message: "is already enabled"}
	ErrNotActive     = &SiteError{Code: ErrCodeNotActive, Message: "is already disabled"}
	ErrInvalidName   = &SiteError{Code: ErrCodeInvalidName, Message: "invalid name"}
	ErrInvalidPort   = &SiteError{Code: ErrCodeInvalidPort, Message: "invalid port"}
	ErrIO            = &SiteError{Code: ErrCodeIO, Message: "filesystem error"}
	ErrSpawn         = &SiteError{Code: ErrCodeSpawn, Message: "could not launch nginx"}
	ErrTimeout       = &SiteError{Code: ErrCodeTimeout, Message: "nginx config test timed out"}
	ErrCanceled      = &SiteError{Code: ErrCodeCanceled, Message: "nginx config test canceled"}
	ErrPrecondition  = &SiteError{Code: ErrCodePrecondition, Message: "unsupported environment"}
	ErrConfig        = &SiteError{Code: ErrCodeConfig, Message: "invalid configuration"}
)

// NotFound reports that name is not in sites-available.
func NotFound(name string) error {
	return &SiteError{Code: ErrCodeNotFound, Message: "does not exist", Name: name}
}

// AlreadyExists reports that name is already in sites-available.
func AlreadyExists(name string) error {
	return &SiteError{Code: ErrCodeAlreadyExists, Message: "already exists", Name: name}
}

// AlreadyActive reports that name already has a link in sites-enabled.
func AlreadyActive(name string) error {
	return &SiteError{Code: ErrCodeAlreadyActive, Message: "is already enabled", Name: name}
}

// NotActive reports that name has no link in sites-enabled.
func NotActive(name string) error {
	return &SiteError{Code: ErrCodeNotActive, Message: "is already disabled", Name: name}
}

// InvalidName rejects raw as a site name.
func InvalidName(raw, reason string) error {
	return &SiteError{Code: ErrCodeInvalidName, Message: "invalid name: " + reason, Name: fmt.Sprintf("%q", raw)}
}

// InvalidPort rejects port as a proxy target.
func InvalidPort(port int) error {
	return &SiteError{Code: ErrCodeInvalidPort, Message: fmt.Sprintf("invalid port %d: must be between 1 and 65535", port)}
}

// IO wraps a filesystem failure during op on name.
func IO(name, op string, err error) error {
	return &SiteError{Code: ErrCodeIO, Message: op, Name: name, Err: err}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &SiteError{Code: code, Message: msg, Err: err}
}

// CodeOf returns the code of the first *SiteError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var siteErr *SiteError
	if errors.As(err, &siteErr) {
		return siteErr.Code
	}
	return ""
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
