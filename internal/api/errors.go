package api

import (
	"errors"
	"fmt"
	"net/http"
)

// GenericErrorMessage is shown when an error carries no known code.
const GenericErrorMessage = "An unknown error occurred."

// errorMessages maps backend error codes to the human-facing message the
// gateway emits. Codes outside this table fall back to the generic message;
// nothing is silently swallowed.
var errorMessages = map[string]string{
	"COMPANY_NOT_FOUND": "This company no longer exists.",
	"USER_NOT_FOUND":    "This user no longer exists.",
	"VEHICLE_NOT_FOUND": "This vehicle no longer exists.",
	"DUPLICATE_EMAIL":   "That email address is already in use.",
	"VALIDATION_FAILED": "The server rejected some of the submitted fields.",
	"UNAUTHORIZED":      "Your session has expired. Sign in again.",
	"FORBIDDEN":         "You do not have permission to do that.",
	"RATE_LIMITED":      "Too many requests. Try again in a moment.",
	"INTERNAL":          "The server hit an internal error.",
}

// MessageFor looks up the human-facing message for a backend error code.
func MessageFor(code string) (string, bool) {
	message, ok := errorMessages[code]
	return message, ok
}

// APIError is the typed failure the gateway returns for HTTP error statuses.
// The user-facing notification has already been emitted by the time a caller
// sees one; the error exists so call sites can branch on status for flow
// control, e.g. treating 404 on delete as "already gone".
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// NotFound reports whether the failure means the target no longer exists.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err is an APIError for a missing target.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
