package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTaskNotFound is returned when a task is not found.
	ErrTaskNotFound = errors.New("task not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotTaskOwner is returned when a caller mutates a task it does not own.
	ErrNotTaskOwner = errors.New("you are not the owner of this task")
	// ErrInvalidStatus is returned when a status value is outside the known set.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidSortField is returned when sort_by is not in the allow-list.
	ErrInvalidSortField = errors.New("invalid sort field")
	// ErrInvalidSortDir is returned when sort_dir is not asc or desc.
	ErrInvalidSortDir = errors.New("invalid sort direction")
	// ErrInvalidPage is returned when page is below 1.
	ErrInvalidPage = errors.New("page must be >= 1")
	// ErrInvalidLimit is returned when limit is outside [1,100].
	ErrInvalidLimit = errors.New("limit must be between 1 and 100")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrTaskNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrNotTaskOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_TASK_OWNER")
	case ErrInvalidStatus:
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "INVALID_STATUS")
	case ErrInvalidSortField:
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "INVALID_SORT_FIELD")
	case ErrInvalidSortDir:
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "INVALID_SORT_DIR")
	case ErrInvalidPage:
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "INVALID_PAGE")
	case ErrInvalidLimit:
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "INVALID_LIMIT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
