package domain

import (
	"errors"
	"fmt"
)

var ErrRecordNotFound = errors.New("Record not found")
var ErrDuplicateRecord = errors.New("Record already exists")

type ErrorKind string

const (
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindBusinessRule       ErrorKind = "BUSINESS_RULE"
	KindServiceUnavailable ErrorKind = "SERVICE_UNAVAILABLE"
	KindInternal           ErrorKind = "INTERNAL"
)

// Error is the classified error surfaced by services. Message is safe to show to
// callers; Err keeps the underlying cause for logs and errors.Is.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func BusinessRule(format string, args ...any) *Error {
	return &Error{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

func Unavailable(message string, cause error) *Error {
	return &Error{Kind: KindServiceUnavailable, Message: message, Err: cause}
}

func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: cause}
}

// KindOf classifies err. Errors that were never classified are internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-safe message of err.
func MessageOf(err error) string {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "Unexpected error"
}
