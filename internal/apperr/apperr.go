// Package apperr defines the platform-wide error value carried from the point
// of detection to the response boundary. Every error kind pairs an HTTP status
// with a stable numeric code so clients can branch without parsing messages.
package apperr

import "errors"

// Code is a stable, client-facing error code. Zero means success.
type Code int

const (
	CodeOK                  Code = 0
	CodeRouteNotFound       Code = 1001
	CodePermissionDenied    Code = 1002
	CodeIllegalPayload      Code = 1003
	CodeIllegalQueryString  Code = 1004
	CodeIllegalPathParam    Code = 1005
	CodeInvalidID           Code = 1006
	CodeResourceNotFound    Code = 1007
	CodeUserNotFound        Code = 2001
	CodeUserAlreadyExists   Code = 2002
	CodeUserNotAuthorized   Code = 2003
	CodeUserNotVerified     Code = 2004
	CodeUserNotActive       Code = 2005
	CodePasswordNotMatch    Code = 2008
	CodeInternalServerError Code = 9999
)

// Error is the single tagged error value used across the service. It is
// immutable once constructed; WithData returns a shallow copy.
type Error struct {
	HTTPCode int
	Code     Code
	Message  string
	Data     any
}

func (e *Error) Error() string {
	return e.Message
}

// WithData returns a copy of e carrying a structured payload, such as the
// per-field report produced by the validation layer.
func (e *Error) WithData(data any) *Error {
	clone := *e
	clone.Data = data
	return &clone
}

// New builds an Error with an explicit status, code and message.
func New(httpCode int, code Code, message string) *Error {
	return &Error{HTTPCode: httpCode, Code: code, Message: message}
}

// From returns the typed error inside err, or wraps err as a generic internal
// failure. The original cause is not carried into the result; callers log it
// out of band.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return System("Internal Server Error")
}

// RouteNotFound reports a request for an unknown route.
func RouteNotFound() *Error {
	return New(404, CodeRouteNotFound, "Route Not Found")
}

// PermissionDenied reports a failed or missing authentication.
func PermissionDenied(message string) *Error {
	if message == "" {
		message = "Permission denied"
	}
	return New(401, CodeUserNotAuthorized, message)
}

// IllegalPayload reports a request body that failed validation or a domain
// precondition on the submitted data.
func IllegalPayload(message string) *Error {
	return New(400, CodeIllegalPayload, message)
}

// IllegalQueryString reports an unparseable query parameter.
func IllegalQueryString(message string) *Error {
	return New(404, CodeIllegalQueryString, message)
}

// IllegalPathParam reports a path parameter that is well-formed but not
// permitted, such as a user following themselves.
func IllegalPathParam(message string) *Error {
	return New(400, CodeIllegalPathParam, message)
}

// InvalidID reports a path parameter that is not a well-formed resource id.
func InvalidID(message string) *Error {
	if message == "" {
		message = "Invalid Id"
	}
	return New(400, CodeInvalidID, message)
}

// ResourceNotFound reports an absent domain resource.
func ResourceNotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return New(404, CodeResourceNotFound, message)
}

// UserNotFound reports an absent user.
func UserNotFound(message string) *Error {
	if message == "" {
		message = "User not found"
	}
	return New(404, CodeUserNotFound, message)
}

// UserAlreadyExists reports a registration conflict on a unique email.
func UserAlreadyExists() *Error {
	return New(400, CodeUserAlreadyExists, "User already exists")
}

// System reports an unclassified internal failure with a fixed,
// operation-specific message.
func System(message string) *Error {
	if message == "" {
		message = "Internal System Error"
	}
	return New(500, CodeInternalServerError, message)
}
