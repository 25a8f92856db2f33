package domain

import "time"

// StoredRequest is a persisted enrichment outcome. For a given subject
// no two stored requests may hold deep-equal EnrichedData; the dedup
// gate enforces this before appending. Stored requests are never
// updated or deleted by the core.
type StoredRequest struct {
	// ID is the unique identifier (UUID), assigned by the store.
	ID string `json:"id"`

	// Namespace is the subject partition the request belongs to,
	// derived from the subject's email (see Subject.Namespace).
	Namespace string `json:"namespace"`

	// EnrichedData is the enrichment result as returned by the service.
	EnrichedData EnrichmentRecord `json:"enrichedData"`

	// RequestTime is when the request was persisted.
	RequestTime time.Time `json:"requestTime"`
}
