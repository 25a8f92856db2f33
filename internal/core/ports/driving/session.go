package driving

import (
	"context"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

// SessionObserver receives a snapshot after every session state change.
type SessionObserver func(snapshot domain.SessionSnapshot)

// SessionService is the session workflow's outward face. It owns the
// authentication-scoped state and sequences validation, enrichment and
// deduplicated persistence into one coherent submission flow.
//
// All operations are safe for use from UI event loops: blocking work
// suspends only the calling goroutine, and completions that arrive after
// an identity change are discarded rather than applied to the new session.
type SessionService interface {
	// Login requests interactive sign-in from the identity provider.
	// On failure the session stays signed out and the snapshot carries
	// domain.MsgLoginFailed.
	Login(ctx context.Context) error

	// Logout requests sign-out. On failure the session state is unchanged
	// and the snapshot carries domain.MsgLogoutFailed.
	Logout(ctx context.Context) error

	// UpdateInput merges a single field value into the form input.
	// Permitted only while signed in.
	UpdateInput(field domain.InputField, value string) error

	// Submit validates the input, calls the enrichment service, and runs
	// the dedup gate on success. The returned error mirrors the snapshot's
	// LastError for callers that want programmatic detail; user-facing
	// surfaces should render the snapshot instead.
	Submit(ctx context.Context) error

	// Snapshot returns a point-in-time copy of the session state.
	Snapshot() domain.SessionSnapshot

	// Subscribe registers an observer notified after every state change,
	// and returns an unsubscribe function.
	Subscribe(observer SessionObserver) (unsubscribe func())

	// Close tears down the identity subscription. The session accepts no
	// transitions afterwards.
	Close()
}

// RequestService exposes the read side of the per-subject record store.
type RequestService interface {
	// List returns the signed-in subject's stored requests, newest first.
	// Returns domain.ErrNotAuthenticated when signed out.
	List(ctx context.Context) ([]domain.StoredRequest, error)
}
