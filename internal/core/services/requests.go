package services

import (
	"context"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driven"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driving"
)

// Ensure Requests implements the interface.
var _ driving.RequestService = (*Requests)(nil)

// Requests exposes the read side of the per-subject record store.
type Requests struct {
	identity driven.IdentityProvider
	store    driven.RequestStore
}

// NewRequests creates a new request listing service.
func NewRequests(identity driven.IdentityProvider, store driven.RequestStore) *Requests {
	return &Requests{
		identity: identity,
		store:    store,
	}
}

// List returns the signed-in subject's stored requests, newest first.
func (r *Requests) List(ctx context.Context) ([]domain.StoredRequest, error) {
	if r.store == nil {
		return nil, domain.ErrNotImplemented
	}
	subject := r.identity.Subject()
	if subject == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return r.store.List(ctx, subject.Namespace())
}
