package domain

// SessionPhase identifies where the session workflow currently is.
type SessionPhase int

const (
	// PhaseSignedOut means no subject is authenticated.
	PhaseSignedOut SessionPhase = iota
	// PhaseIdle means a subject is signed in and no submission is running.
	PhaseIdle
	// PhaseSubmitting means an enrichment call is in flight.
	PhaseSubmitting
	// PhaseResulted means the last submission succeeded and a record is held.
	PhaseResulted
	// PhaseFailed means the last submission failed.
	PhaseFailed
)

// String returns the string representation of the session phase.
func (p SessionPhase) String() string {
	switch p {
	case PhaseSignedOut:
		return "signed_out"
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseResulted:
		return "resulted"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SignedIn reports whether the phase belongs to an authenticated session.
func (p SessionPhase) SignedIn() bool {
	return p != PhaseSignedOut
}

// CanSubmit reports whether a new submission may start from this phase.
func (p SessionPhase) CanSubmit() bool {
	switch p {
	case PhaseIdle, PhaseResulted, PhaseFailed:
		return true
	default:
		return false
	}
}

// SessionSnapshot is a point-in-time copy of the session state handed to
// observers and display collaborators. It never aliases the session's
// own mutable state.
type SessionSnapshot struct {
	// Phase is the current workflow phase.
	Phase SessionPhase

	// Subject is the signed-in identity, nil when signed out.
	Subject *Subject

	// Input is the current form input.
	Input SubmissionInput

	// Busy is true only while a submission is in flight. It soft-guards
	// re-entrant Submit calls.
	Busy bool

	// LastError is the user-facing error message, empty when none.
	LastError string

	// LastRecord is the most recent enrichment result, nil when none.
	LastRecord EnrichmentRecord
}
