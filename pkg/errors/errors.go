package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrorCode classifies an application error
type ErrorCode int

const (
	ErrValidation ErrorCode = iota + 1000
	ErrNotFound
	ErrConflict
	ErrUnauthorized
	ErrInternal
)

// AppError represents an application error with a structured payload.
// Message formatting for end users happens at the transport layer; the
// Fields map carries the raw values (ids, counts, date ranges).
type AppError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on code and message so callers can use errors.Is against a
// freshly constructed sentinel without caring about payload fields.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func newValidation(message string, fields map[string]interface{}) *AppError {
	return &AppError{Code: ErrValidation, Message: message, Fields: fields}
}

func newNotFound(message string, fields map[string]interface{}) *AppError {
	return &AppError{Code: ErrNotFound, Message: message, Fields: fields}
}

func newConflict(message string, fields map[string]interface{}) *AppError {
	return &AppError{Code: ErrConflict, Message: message, Fields: fields}
}

// Validation wraps an arbitrary request-level failure, typically a binding
// or parameter parse error.
func Validation(message string) *AppError {
	return newValidation(message, nil)
}

func InvalidInterval() *AppError {
	return newValidation("start time must be before end time", nil)
}

func EndBeforeStart() *AppError {
	return newValidation("end date cannot be before start date", nil)
}

func PeriodTooLong() *AppError {
	return newValidation("report period cannot exceed one year", nil)
}

func ClientNotFound() *AppError {
	return newNotFound("client not found", nil)
}

func ServiceNotFound(id uuid.UUID) *AppError {
	return newNotFound("service not found", map[string]interface{}{"service_id": id.String()})
}

func AppointmentNotFound() *AppError {
	return newNotFound("appointment not found", nil)
}

func SchedulingConflict(date, start, end fmt.Stringer) *AppError {
	return newConflict("appointment conflicts with an existing booking", map[string]interface{}{
		"date":  date.String(),
		"start": start.String(),
		"end":   end.String(),
	})
}

func DuplicateName(name string) *AppError {
	return newConflict("a record with this name already exists", map[string]interface{}{"name": name})
}

func LinkedAppointments(count int) *AppError {
	return newConflict("record has linked appointments", map[string]interface{}{"count": count})
}

func Unauthorized(err error) *AppError {
	return &AppError{Code: ErrUnauthorized, Message: "unauthorized", Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Code: ErrInternal, Message: "internal server error", Err: err}
}

// IsCode reports whether err has an *AppError with the given code anywhere
// in its chain.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == code
}
