package driven

import (
	"context"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

// RequestStore persists enrichment outcomes in per-subject namespaces.
// A namespace is logically owned by its subject; implementations never
// issue cross-namespace reads or writes on a caller's behalf.
type RequestStore interface {
	// Exists runs an equality query: does any stored request in the
	// namespace hold EnrichedData deep-equal to record?
	Exists(ctx context.Context, namespace string, record domain.EnrichmentRecord) (bool, error)

	// Append inserts a new stored request into its namespace. The store
	// assigns req.ID when empty. Append does not check for duplicates;
	// that is the dedup gate's job.
	Append(ctx context.Context, req domain.StoredRequest) error

	// List returns all stored requests in a namespace, newest first.
	List(ctx context.Context, namespace string) ([]domain.StoredRequest, error)
}
