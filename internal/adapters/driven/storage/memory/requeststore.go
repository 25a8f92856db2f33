// Package memory provides in-memory implementations of the driven
// storage ports, used in tests and for ephemeral runs without a data
// directory.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driven"
)

// Ensure RequestStore implements the interface.
var _ driven.RequestStore = (*RequestStore)(nil)

// RequestStore is an in-memory implementation of driven.RequestStore.
type RequestStore struct {
	mu       sync.RWMutex
	requests map[string][]domain.StoredRequest
}

// NewRequestStore creates a new in-memory request store.
func NewRequestStore() *RequestStore {
	return &RequestStore{
		requests: make(map[string][]domain.StoredRequest),
	}
}

// Exists reports whether the namespace holds a request whose
// EnrichedData is deep-equal to record.
func (s *RequestStore) Exists(_ context.Context, namespace string, record domain.EnrichmentRecord) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, req := range s.requests[namespace] {
		if req.EnrichedData.Equal(record) {
			return true, nil
		}
	}
	return false, nil
}

// Append inserts a stored request into its namespace.
func (s *RequestStore) Append(_ context.Context, req domain.StoredRequest) error {
	if req.Namespace == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.EnrichedData = req.EnrichedData.Clone()
	s.requests[req.Namespace] = append(s.requests[req.Namespace], req)
	return nil
}

// List returns all stored requests in a namespace, newest first.
func (s *RequestStore) List(_ context.Context, namespace string) ([]domain.StoredRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reqs := s.requests[namespace]
	out := make([]domain.StoredRequest, len(reqs))
	copy(out, reqs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RequestTime.After(out[j].RequestTime)
	})
	return out, nil
}

// Count returns the total number of stored requests across namespaces.
func (s *RequestStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, reqs := range s.requests {
		n += len(reqs)
	}
	return n
}
