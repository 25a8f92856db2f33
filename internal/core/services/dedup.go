package services

import (
	"context"
	"fmt"
	"time"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driven"
)

// DedupGate decides whether an enrichment result is new for a subject
// and appends it if so. Each subject's results live in a namespace
// derived from the subject's email; the gate never touches another
// subject's namespace.
//
// The existence check and the append are two separate store operations
// with no atomicity guarantee: two concurrent submissions producing the
// same record can both pass the check before either writes. The record
// fingerprint used by the stores would support an idempotent
// insert-if-absent, but the workflow tolerates the duplicate.
type DedupGate struct {
	store driven.RequestStore
	now   func() time.Time
}

// NewDedupGate creates a dedup gate over the given request store.
func NewDedupGate(store driven.RequestStore) *DedupGate {
	return &DedupGate{
		store: store,
		now:   time.Now,
	}
}

// PersistIfNew appends {record, now} to the subject's namespace unless a
// deep-equal record is already stored there. It reports whether a write
// happened.
func (g *DedupGate) PersistIfNew(
	ctx context.Context,
	subject domain.Subject,
	record domain.EnrichmentRecord,
) (bool, error) {
	if g.store == nil {
		return false, domain.ErrNotImplemented
	}
	if !subject.Valid() {
		return false, domain.ErrInvalidInput
	}

	namespace := subject.Namespace()

	exists, err := g.store.Exists(ctx, namespace, record)
	if err != nil {
		return false, fmt.Errorf("checking for duplicate: %w", err)
	}
	if exists {
		return false, nil
	}

	req := domain.StoredRequest{
		Namespace:    namespace,
		EnrichedData: record,
		RequestTime:  g.now(),
	}
	if err := g.store.Append(ctx, req); err != nil {
		return false, fmt.Errorf("appending request: %w", err)
	}
	return true, nil
}
