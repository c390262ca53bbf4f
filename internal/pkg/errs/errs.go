// Package errs provides the typed errors shared across the dispatch core.
//
// Every error follows the same pattern: a sentinel for errors.Is checks, a
// struct carrying the details callers need to build a response, a constructor
// (plus a WithCause variant where a lower-level error is worth preserving),
// and Error/Unwrap methods. Handlers translate these into stable
// machine-readable codes at the HTTP boundary; nothing below that boundary
// formats user-facing messages.
package errs

import (
	"fmt"
	"strings"
)

var (
	// ErrObjectNotFound is the sentinel for lookups that resolve nothing.
	ErrObjectNotFound = fmt.Errorf("object not found")

	// ErrInvalidState is the sentinel for operations not legal in the
	// entity's current status.
	ErrInvalidState = fmt.Errorf("invalid state")

	// ErrNotAuthorized is the sentinel for actions attempted by an actor
	// other than the one permitted to perform them.
	ErrNotAuthorized = fmt.Errorf("not authorized")

	// ErrValidationFailed is the sentinel for proof-of-delivery validation
	// failures.
	ErrValidationFailed = fmt.Errorf("validation failed")

	// ErrValueIsRequired is the sentinel for missing required values.
	ErrValueIsRequired = fmt.Errorf("value is required")

	// ErrValueIsInvalid is the sentinel for malformed or out-of-range values.
	ErrValueIsInvalid = fmt.Errorf("value is invalid")
)

// ObjectNotFoundError reports that an entity of a given kind does not exist.
type ObjectNotFoundError struct {
	Kind  string
	ID    string
	Cause error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given entity
// kind ("order", "driver", ...) and identifier.
func NewObjectNotFoundError(kind, id string) *ObjectNotFoundError {
	return &ObjectNotFoundError{Kind: kind, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping the
// underlying lookup failure.
func NewObjectNotFoundErrorWithCause(kind, id string, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{Kind: kind, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s not found: %s (cause: %s)", e.Kind, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidStateError reports an operation attempted against an entity whose
// current status does not permit it. CurrentStatus always carries the literal
// status value so callers can surface it.
type InvalidStateError struct {
	Operation     string
	CurrentStatus string
}

// NewInvalidStateError creates an InvalidStateError for the named operation
// and the status that blocked it.
func NewInvalidStateError(operation, currentStatus string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, CurrentStatus: currentStatus}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s is not allowed in status %q", e.Operation, e.CurrentStatus)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// NotAuthorizedError reports that the acting principal is not the one
// permitted to perform the operation.
type NotAuthorizedError struct {
	Reason string
}

// NewNotAuthorizedError creates a NotAuthorizedError with a short reason.
func NewNotAuthorizedError(reason string) *NotAuthorizedError {
	return &NotAuthorizedError{Reason: reason}
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("not authorized: %s", e.Reason)
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// RequirementFlags names the proof-of-delivery checks that applied to the
// failed validation, so the caller sees which requirements are active, not
// only which ones were violated.
type RequirementFlags struct {
	OTP       bool
	Signature bool
	Photo     bool
	Biometric bool
}

// ValidationFailedError carries the complete list of unmet proof-of-delivery
// requirements together with the order's requirement flags. All violations
// are collected before the error is built, so callers always see every
// failure, not just the first.
type ValidationFailedError struct {
	Violations   []string
	Requirements RequirementFlags
}

// NewValidationFailedError creates a ValidationFailedError from the collected
// violation messages and the requirement set they were checked against.
func NewValidationFailedError(violations []string, requirements RequirementFlags) *ValidationFailedError {
	return &ValidationFailedError{Violations: violations, Requirements: requirements}
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Violations, "; "))
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidationFailed
}

// ValueIsRequiredError reports a missing required parameter.
type ValueIsRequiredError struct {
	ParamName string
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named
// parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func (e *ValueIsRequiredError) Error() string {
	return fmt.Sprintf("value is required: %s", e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a malformed or out-of-range parameter.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named
// parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping the
// underlying validation failure.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("value is invalid: %s (cause: %s)", e.ParamName, e.Cause)
	}
	return fmt.Sprintf("value is invalid: %s", e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}
