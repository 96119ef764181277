package apperrors

import "net/http"

// Factories and predefined variables for domain errors shared across services.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict builds a generic 409 for a named domain.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidTransition rejects a state change the lifecycle does not permit,
// e.g. completed -> pending on a video request.
func ErrInvalidTransition(domain, message string) *AppError {
	return New(CodeInvalidTransition, domain, message, http.StatusConflict)
}

// ErrInvalidOperation rejects an operation that is not valid for the record's
// current state, e.g. rating a request that is not completed.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrMissingParameter rejects a call with a required parameter absent.
func ErrMissingParameter(domain, parameter string) *AppError {
	return New(CodeMissingParameter, domain, "Missing required parameter: "+parameter, http.StatusBadRequest)
}

// ErrExternalService wraps a failure from storage or another provider, keeping
// the provider's diagnostic detail for the response body.
func ErrExternalService(err error, domain, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusInternalServerError).
		WithDetails(err.Error())
}

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)
