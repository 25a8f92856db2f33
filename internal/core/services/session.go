package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driven"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driving"
	"github.com/leadlens-labs/leadlens-cli/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.SessionService = (*Session)(nil)

// Session is the state machine that owns the authentication-scoped
// workflow state. It reacts to identity changes pushed by the provider,
// validates and sequences submissions, and guarantees that state from
// one identity never leaks into the next: every identity transition
// clears the form input, the last result and the last error before any
// queued submission can observe the new identity.
type Session struct {
	identity driven.IdentityProvider
	enricher driven.Enricher
	gate     *DedupGate

	mu         sync.Mutex
	phase      domain.SessionPhase
	subject    *domain.Subject
	input      domain.SubmissionInput
	busy       bool
	lastError  string
	lastRecord domain.EnrichmentRecord
	closed     bool

	// epoch increments on every identity transition. A submission
	// captures the epoch when it starts and drops its result if the
	// epoch moved on while the call was in flight, so completions can
	// never resurrect state after a session reset.
	epoch uint64

	observers map[int]driving.SessionObserver
	nextObsID int
	unobserve func()
}

// NewSession creates the session state machine and subscribes it to the
// identity provider's change notifications. The initial phase is
// SignedOut until the provider reports a subject.
func NewSession(identity driven.IdentityProvider, enricher driven.Enricher, gate *DedupGate) *Session {
	s := &Session{
		identity:  identity,
		enricher:  enricher,
		gate:      gate,
		phase:     domain.PhaseSignedOut,
		observers: make(map[int]driving.SessionObserver),
	}
	s.unobserve = identity.Subscribe(s.observeIdentity)

	// Adopt an already-restored sign-in synchronously. A one-shot caller
	// may submit immediately after construction and must not race the
	// provider's asynchronous replay of the current identity.
	if subject := identity.Subject(); subject != nil {
		s.observeIdentity(subject)
	}
	return s
}

// observeIdentity handles a pushed identity change. All transient state
// is cleared regardless of direction; a stale in-flight submission will
// see the epoch bump and discard its result.
func (s *Session) observeIdentity(subject *domain.Subject) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.epoch++
	s.input = domain.SubmissionInput{}
	s.lastRecord = nil
	s.lastError = ""
	s.busy = false
	if subject == nil {
		s.subject = nil
		s.phase = domain.PhaseSignedOut
	} else {
		sub := *subject
		s.subject = &sub
		s.phase = domain.PhaseIdle
	}
	logger.Debug("identity changed, session reset (phase=%s)", s.phase)
	s.notifyAndUnlock()
}

// Login requests interactive sign-in. State transitions are driven by
// the provider's identity notification, not by this call; on failure the
// session stays signed out with a user-facing error.
func (s *Session) Login(ctx context.Context) error {
	if _, err := s.identity.SignIn(ctx); err != nil {
		s.mu.Lock()
		if !s.closed {
			s.lastError = domain.MsgLoginFailed
			s.notifyAndUnlock()
		} else {
			s.mu.Unlock()
		}
		return fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
	}
	return nil
}

// Logout requests sign-out. On failure the session state is unchanged
// apart from the user-facing error.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.identity.SignOut(ctx); err != nil {
		s.mu.Lock()
		if !s.closed {
			s.lastError = domain.MsgLogoutFailed
			s.notifyAndUnlock()
		} else {
			s.mu.Unlock()
		}
		return fmt.Errorf("%w: %w", domain.ErrLogoutFailed, err)
	}
	return nil
}

// UpdateInput merges a single field value into the form input.
// Permitted only while signed in. No validation happens here.
func (s *Session) UpdateInput(field domain.InputField, value string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrSessionClosed
	}
	if !s.phase.SignedIn() {
		s.mu.Unlock()
		return domain.ErrNotAuthenticated
	}
	s.input.Set(field, value)
	s.notifyAndUnlock()
	return nil
}

// Submit runs the full submission flow: validate, enrich, persist-if-new.
// A second Submit while one is in flight is a no-op (cooperative busy
// guard). Persistence is best-effort and never affects the user-visible
// outcome; only the enrichment call decides success or failure.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrSessionClosed
	}
	if !s.phase.SignedIn() {
		s.mu.Unlock()
		return domain.ErrNotAuthenticated
	}
	if s.busy || !s.phase.CanSubmit() {
		s.mu.Unlock()
		return domain.ErrSubmissionInFlight
	}
	if !s.input.Complete() {
		s.lastError = domain.MsgMissingFields
		s.notifyAndUnlock()
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, domain.MsgMissingFields)
	}

	input := s.input
	subject := *s.subject
	epoch := s.epoch
	s.busy = true
	s.phase = domain.PhaseSubmitting
	s.lastError = ""
	s.notifyAndUnlock()

	record, err := s.enricher.Enrich(ctx, input)

	s.mu.Lock()
	if s.closed || s.epoch != epoch {
		// The identity changed while the call was in flight. The session
		// was already reset; the late result must be silently discarded.
		s.mu.Unlock()
		logger.Debug("discarding enrichment result from a previous session")
		return nil
	}
	if err != nil {
		s.busy = false
		s.phase = domain.PhaseFailed
		s.lastError = domain.MsgEnrichmentFailed
		s.notifyAndUnlock()
		return fmt.Errorf("%w: %w", domain.ErrEnrichmentFailed, err)
	}

	s.busy = false
	s.phase = domain.PhaseResulted
	s.lastRecord = record
	s.lastError = ""
	s.notifyAndUnlock()

	if s.gate != nil {
		if stored, err := s.gate.PersistIfNew(ctx, subject, record); err != nil {
			logger.Warn("persisting enrichment result: %v", err)
		} else if stored {
			logger.Info("stored new enrichment result for %s", subject.Email)
		} else {
			logger.Debug("duplicate enrichment result for %s, not stored", subject.Email)
		}
	}
	return nil
}

// Snapshot returns a point-in-time copy of the session state.
func (s *Session) Snapshot() domain.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers an observer and returns an unsubscribe function.
// The current snapshot is delivered asynchronously on registration.
func (s *Session) Subscribe(observer driving.SessionObserver) func() {
	s.mu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = observer
	snap := s.snapshotLocked()
	s.mu.Unlock()

	go observer(snap)

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Close tears down the identity subscription. In-flight submissions
// complete but their results are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	unobserve := s.unobserve
	s.mu.Unlock()

	if unobserve != nil {
		unobserve()
	}
}

// snapshotLocked builds a snapshot. Caller must hold s.mu.
func (s *Session) snapshotLocked() domain.SessionSnapshot {
	snap := domain.SessionSnapshot{
		Phase:      s.phase,
		Input:      s.input,
		Busy:       s.busy,
		LastError:  s.lastError,
		LastRecord: s.lastRecord.Clone(),
	}
	if s.subject != nil {
		sub := *s.subject
		snap.Subject = &sub
	}
	return snap
}

// notifyAndUnlock snapshots the state, releases the lock, and delivers
// the snapshot to all observers. Observers run outside the lock so they
// may call back into the session.
func (s *Session) notifyAndUnlock() {
	snap := s.snapshotLocked()
	observers := make([]driving.SessionObserver, 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.mu.Unlock()

	for _, obs := range observers {
		obs(snap)
	}
}
