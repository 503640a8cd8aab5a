// Package errs provides the error taxonomy shared by the booking service.
//
// Each error kind follows the same shape: a sentinel (ErrValueIsRequired,
// ErrObjectNotFound, ...), a struct carrying details, constructors with and
// without a cause, and an Unwrap that returns the sentinel so callers can use
// errors.Is regardless of the details.
//
// ExternalServiceError is the one kind that crosses to the end user: its
// Message is what the collaborator reported and is shown on the current
// wizard step.
package errs
