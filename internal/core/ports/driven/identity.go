package driven

import (
	"context"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

// IdentityObserver receives identity-change notifications. It is called
// with the new subject, or nil when the user signed out. Notifications
// are delivered in the order the provider emits them.
type IdentityObserver func(subject *domain.Subject)

// IdentityProvider is the external credential provider: it authenticates
// the user interactively, reports identity changes, and mints short-lived
// bearer tokens on demand.
type IdentityProvider interface {
	// SignIn performs interactive sign-in and returns the authenticated
	// subject. Observers are notified before SignIn returns.
	SignIn(ctx context.Context) (*domain.Subject, error)

	// SignOut clears the authenticated subject.
	// Observers are notified before SignOut returns.
	SignOut(ctx context.Context) error

	// Subject returns the currently authenticated subject, or nil.
	Subject() *domain.Subject

	// Token mints a bearer token valid for an outbound call. Callers must
	// fetch a fresh token immediately before each request and never cache
	// it; tokens may expire or rotate between calls.
	Token(ctx context.Context) (string, error)

	// Subscribe registers an identity observer and returns an unsubscribe
	// function. New subscribers receive the current identity asynchronously,
	// mirroring providers that report the restored session after startup.
	Subscribe(observer IdentityObserver) (unsubscribe func())
}
