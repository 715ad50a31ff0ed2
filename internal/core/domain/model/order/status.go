package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Active ──┬──> Completed
//	         └──> Cancelled
//
// Both Completed and Cancelled are final; the status never moves backward
// and an order never returns to the pool once terminated.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusActive is the initial status: the order is either in the pool
	// (no courier) or being delivered (claimed by a courier).
	StatusActive

	// StatusCompleted indicates the order was delivered. Final state.
	StatusCompleted

	// StatusCancelled indicates the order was called off before delivery.
	// Final state, no external side effects.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusActive:    "active",
		StatusCompleted: "completed",
		StatusCancelled: "cancelled",
	}
}

// StatusFromString parses the persisted/API representation of a status.
// Returns an error for anything other than active, completed or cancelled.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s != StatusActive && s != StatusCompleted && s != StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase representation used in persistence and the API.
// Implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether the status permits no further transitions.
func (s Status) IsFinal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Complete transitions the status to Completed.
// Only Active orders can complete; completing a completed or cancelled
// order is rejected so the caller can treat it as a no-op edge.
func (s Status) Complete() (Status, error) {
	if s != StatusActive {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a valid status to complete", s))
	}
	return StatusCompleted, nil
}

// Cancel transitions the status to Cancelled. Only Active orders can be
// cancelled.
func (s Status) Cancel() (Status, error) {
	if s != StatusActive {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a valid status to cancel", s))
	}
	return StatusCancelled, nil
}
