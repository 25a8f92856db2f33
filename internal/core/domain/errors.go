package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Session Errors.

	// ErrNotAuthenticated indicates an operation requires a signed-in subject.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSubmissionInFlight indicates a submission is already running.
	// Submit is a no-op while the session is busy.
	ErrSubmissionInFlight = errors.New("submission in flight")

	// ErrSessionClosed indicates the session has been torn down and no
	// further transitions are accepted.
	ErrSessionClosed = errors.New("session closed")

	// Authentication Errors.

	// ErrAuthRequired indicates authentication is required but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates the authentication has expired and refresh failed.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrLoginFailed indicates the identity provider rejected interactive sign-in.
	ErrLoginFailed = errors.New("login failed")

	// ErrLogoutFailed indicates the identity provider rejected sign-out.
	ErrLogoutFailed = errors.New("logout failed")

	// Enrichment Errors.

	// ErrEnrichmentFailed indicates the enrichment endpoint reported a
	// non-success outcome (network error, non-2xx status, malformed body).
	// Transport detail is wrapped but never shown to the user.
	ErrEnrichmentFailed = errors.New("enrichment failed")

	// ErrRateLimited indicates the enrichment rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// User-facing messages surfaced by the session workflow. The UI layer
// renders these strings verbatim; structured errors stay internal.
const (
	// MsgLoginFailed is shown when interactive sign-in is rejected.
	MsgLoginFailed = "Failed to login. Please try again."

	// MsgLogoutFailed is shown when sign-out is rejected.
	MsgLogoutFailed = "Failed to logout. Please try again."

	// MsgMissingFields is shown when a required form field is empty.
	MsgMissingFields = "Please fill in all fields"

	// MsgEnrichmentFailed is shown when the enrichment call fails.
	MsgEnrichmentFailed = "Failed to enrich lead data. Please try again."
)
