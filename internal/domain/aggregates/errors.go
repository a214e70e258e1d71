package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes aggregate failure semantics across domains.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeNotFound           ErrorCode = "not_found"
	CodeForbidden          ErrorCode = "forbidden"
	CodeIneligible         ErrorCode = "ineligible"
	CodeConflict           ErrorCode = "conflict"
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodePreconditionFailed ErrorCode = "precondition_failed"
	CodeUnavailable        ErrorCode = "unavailable"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"
)

// Eligibility failure reasons, in evaluation order.
const (
	ReasonClosed    = "closed"
	ReasonExpired   = "expired"
	ReasonCGPA      = "cgpa"
	ReasonYear      = "year"
	ReasonDuplicate = "duplicate"
)

// Error is the canonical aggregate error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	// Reason refines CodeIneligible (closed, expired, cgpa, year, duplicate).
	Reason  string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an aggregate error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with aggregate error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or wrapped err) carries the given aggregate code.
func IsCode(err error, code ErrorCode) bool {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == code
}

// Forbidden reports a wrong role or a non-owner attempting an operation.
func Forbidden(op, message string) error {
	return NewError(CodeForbidden, op, message, nil)
}

// Ineligible reports an eligibility failure with one of the Reason* values.
func Ineligible(op, reason string) error {
	reason = strings.TrimSpace(reason)
	return &Error{
		Code:    CodeIneligible,
		Op:      strings.TrimSpace(op),
		Message: "not eligible: " + reason,
		Reason:  reason,
	}
}

// StateConflict reports a transition from a non-Pending state, or one lost to a concurrent writer.
func StateConflict(op, message string) error {
	return NewError(CodeConflict, op, message, nil)
}

// Unavailable reports that a dependency (graph store, embeddings) could not serve the request.
func Unavailable(op string, cause error) error {
	msg := "dependency unavailable"
	if cause != nil {
		msg = cause.Error()
	}
	return NewError(CodeUnavailable, op, msg, cause)
}

// NotFound reports a missing entity.
func NotFound(op, message string) error {
	return NewError(CodeNotFound, op, message, nil)
}

// ReasonOf extracts the eligibility reason when available.
func ReasonOf(err error) string {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Reason
}

// CodeOf extracts the aggregate error code when available.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}
