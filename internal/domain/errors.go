package domain

import (
	"errors"
)

type ErrorKind string

const (
	KindBadRequest  ErrorKind = "bad_request"
	KindNotFound    ErrorKind = "not_found"
	KindConflict    ErrorKind = "conflict"
	KindUnavailable ErrorKind = "unavailable"
)

// Error is a classified failure returned to callers of the services. Kind
// decides how the failure is presented; Err keeps the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Unavailable(err error) *Error {
	return &Error{Kind: KindUnavailable, Message: "storage unavailable", Err: err}
}

var (
	ErrServiceNotFound     = NotFound("service not found")
	ErrInvalidDate         = BadRequest("invalid date format, use YYYY-MM-DD")
	ErrInvalidInstant      = BadRequest("invalid appointment_time format, use ISO-8601 (e.g. 2006-01-02T15:04:05-03:00)")
	ErrNonWorkingDay       = BadRequest("selected date is not a working day")
	ErrPastTime            = BadRequest("selected time slot is in the past")
	ErrOutsideWorkingHours = BadRequest("appointment time is outside working hours")
	ErrLunchBreak          = BadRequest("appointment time conflicts with lunch break")
	ErrInvalidClient       = BadRequest("client name and a valid phone number are required")
	ErrInvalidService      = BadRequest("service name, positive duration and non-negative price are required")
	ErrSlotTaken           = Conflict("selected time slot is no longer available")
	ErrServiceNameTaken    = Conflict("service name already exists")
	ErrServiceInUse        = Conflict("service has appointments and cannot be deleted")
	ErrExportDisabled      = &Error{Kind: KindUnavailable, Message: "file storage is not configured"}
)

// KindOf returns the kind of the first *Error in err's chain. Unclassified
// errors are reported as unavailable.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnavailable
}

// MessageOf returns the public message of the first *Error in err's chain.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
