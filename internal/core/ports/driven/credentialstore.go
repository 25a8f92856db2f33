package driven

import (
	"context"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

// CredentialStore persists the OAuth session for an identity provider.
type CredentialStore interface {
	// Save stores or replaces the credential for its provider.
	Save(ctx context.Context, cred domain.Credential) error

	// Get retrieves the credential for a provider.
	// Returns domain.ErrNotFound when none is stored.
	Get(ctx context.Context, provider string) (*domain.Credential, error)

	// Delete removes the credential for a provider. Deleting a missing
	// credential is not an error.
	Delete(ctx context.Context, provider string) error
}
