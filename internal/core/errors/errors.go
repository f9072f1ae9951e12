package errors

import (
	"errors"
	"fmt"
)

// Domain errors. Row- and field-level parse failures are data, not errors:
// the pipeline counts dropped rows and nulls unparseable fields. Only
// structurally invalid input travels this path.
var (
	ErrMissingFile     = errors.New("csv file is required")
	ErrInvalidCSV      = errors.New("csv payload could not be parsed")
	ErrInvalidSettings = errors.New("settings payload is invalid")
	ErrNoUsableRows    = errors.New("no usable rows in dataset")
	ErrPayloadTooLarge = errors.New("payload exceeds upload limit")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrInternal        = errors.New("internal server error")
)

// AppError wraps errors with the context the HTTP adapter needs.
type AppError struct {
	Err        error
	Message    string
	Code       string
	StatusCode int
	Details    map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "BAD_REQUEST",
		StatusCode: 400,
	}
}

// NewNoUsableRowsError reports an import that produced zero tickets. It is a
// client-data condition, not a server fault; the dropped-row count travels in
// the details so the caller can explain what happened.
func NewNoUsableRowsError(droppedRows int) *AppError {
	return &AppError{
		Err:        ErrNoUsableRows,
		Message:    fmt.Sprintf("no rows with a parseable created date (%d dropped)", droppedRows),
		Code:       "NO_USABLE_ROWS",
		StatusCode: 422,
		Details:    map[string]interface{}{"droppedRows": droppedRows},
	}
}

func NewPayloadTooLargeError(limit int64) *AppError {
	return &AppError{
		Err:        ErrPayloadTooLarge,
		Message:    "upload exceeds the configured size limit",
		Code:       "PAYLOAD_TOO_LARGE",
		StatusCode: 413,
		Details:    map[string]interface{}{"limitBytes": limit},
	}
}

func NewRateLimitError() *AppError {
	return &AppError{
		Err:        ErrRateLimited,
		Message:    "Too many requests. Please try again later.",
		Code:       "RATE_LIMITED",
		StatusCode: 429,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "An unexpected error occurred",
		Code:       "INTERNAL_ERROR",
		StatusCode: 500,
	}
}
