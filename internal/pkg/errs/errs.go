package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification via errors.Is. Every typed error in
// this package unwraps to exactly one of these.
var (
	// ErrValueIsRequired indicates a missing required value.
	ErrValueIsRequired = errors.New("value is required")

	// ErrValueIsInvalid indicates a value that fails validation.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrObjectNotFound indicates a lookup for a non-existent object.
	ErrObjectNotFound = errors.New("object not found")

	// ErrConflict indicates a mutation lost to a competing owner.
	ErrConflict = errors.New("conflict")

	// ErrForbidden indicates the caller's role or tenant does not permit
	// the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrUpstreamFailure indicates an external collaborator (platform
	// adapter, push gateway) could not be reached. It is logged at the
	// boundary and never surfaced to API callers.
	ErrUpstreamFailure = errors.New("upstream failure")
)

// ValueIsRequiredError reports a missing required parameter.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the given parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a parameter that failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the given parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a numeric parameter outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError with the offending
// value and the inclusive bounds it violated.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %s %v is out of range [min value: %v, max value: %v]",
		ErrValueIsInvalid, e.ParamName, e.Value, e.Min, e.Max)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError reports a failed lookup by identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ConflictError reports a mutation that lost to a competing owner.
// OwnerName carries the current owner's display name when it could be
// resolved, so callers can explain why the action failed.
type ConflictError struct {
	ParamName string
	ID        any
	OwnerName string
}

// NewConflictError creates a ConflictError naming the current owner.
// ownerName may be empty when the owner could not be resolved.
func NewConflictError(paramName string, id any, ownerName string) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, OwnerName: ownerName}
}

func (e *ConflictError) Error() string {
	if e.OwnerName != "" {
		return fmt.Sprintf("%s: %s %s is already owned by %s", ErrConflict, e.ParamName, e.ID, e.OwnerName)
	}
	return fmt.Sprintf("%s: %s %s is already owned by another courier", ErrConflict, e.ParamName, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ForbiddenError reports an operation the caller's role or tenant does not permit.
type ForbiddenError struct {
	Message string
}

// NewForbiddenError creates a ForbiddenError with a caller-facing message.
func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s", ErrForbidden, e.Message)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// UpstreamFailureError reports an unreachable external collaborator.
// These errors are swallowed at the boundary by design: a completed
// delivery is never rolled back because a platform or the push gateway
// was down. They exist so logs can classify the failure.
type UpstreamFailureError struct {
	Upstream string
	Cause    error
}

// NewUpstreamFailureError creates an UpstreamFailureError for the named collaborator.
func NewUpstreamFailureError(upstream string, cause error) *UpstreamFailureError {
	return &UpstreamFailureError{Upstream: upstream, Cause: cause}
}

func (e *UpstreamFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrUpstreamFailure, e.Upstream, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUpstreamFailure, e.Upstream)
}

func (e *UpstreamFailureError) Unwrap() error {
	return ErrUpstreamFailure
}
