package driven

import (
	"context"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

// Enricher issues enrichment requests against the remote service.
type Enricher interface {
	// Enrich submits the input and returns the parsed response body.
	// Any transport failure (network error, non-2xx status, malformed
	// body) is reported as domain.ErrEnrichmentFailed; partial results
	// are never returned. There is no automatic retry.
	Enrich(ctx context.Context, input domain.SubmissionInput) (domain.EnrichmentRecord, error)
}
