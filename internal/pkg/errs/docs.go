// Package errs provides the standardized error types used across the
// dispatch service. It implements one consistent pattern for error
// creation, formatting, and unwrapping.
//
// The taxonomy mirrors what API callers can observe:
//   - ValueIsRequiredError / ValueIsInvalidError: validation failures
//   - ObjectNotFoundError: unknown order/courier/business identifiers
//   - ConflictError: an order already owned by another courier, carrying
//     the current owner's name when resolvable
//   - ForbiddenError: role-gated or cross-business access denials
//   - UpstreamFailureError: unreachable platform adapter or push gateway;
//     always swallowed at the boundary and only logged
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrConflict)
//   - a struct type with fields for error details
//   - constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is classification
package errs
