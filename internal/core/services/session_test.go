package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driven/storage/memory"
	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driven"
)

// fakeIdentity is a controllable identity provider. Notifications are
// delivered synchronously so tests stay deterministic.
type fakeIdentity struct {
	mu        sync.Mutex
	subject   *domain.Subject
	observers []driven.IdentityObserver

	signInSubject *domain.Subject
	signInErr     error
	signOutErr    error
	token         string
	tokenErr      error
}

func (f *fakeIdentity) SignIn(_ context.Context) (*domain.Subject, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.setSubject(f.signInSubject)
	return f.signInSubject, nil
}

func (f *fakeIdentity) SignOut(_ context.Context) error {
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.setSubject(nil)
	return nil
}

func (f *fakeIdentity) Subject() *domain.Subject {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subject
}

func (f *fakeIdentity) Token(_ context.Context) (string, error) {
	return f.token, f.tokenErr
}

func (f *fakeIdentity) Subscribe(observer driven.IdentityObserver) func() {
	f.mu.Lock()
	f.observers = append(f.observers, observer)
	f.mu.Unlock()
	return func() {}
}

// setSubject changes the identity and pushes the change to observers,
// like a real provider would.
func (f *fakeIdentity) setSubject(subject *domain.Subject) {
	f.mu.Lock()
	f.subject = subject
	observers := append([]driven.IdentityObserver(nil), f.observers...)
	f.mu.Unlock()
	for _, obs := range observers {
		obs(subject)
	}
}

// fakeEnricher returns a fixed record or error and counts calls.
// When block is non-nil, Enrich signals started and waits on block.
type fakeEnricher struct {
	mu      sync.Mutex
	record  domain.EnrichmentRecord
	err     error
	calls   int
	started chan struct{}
	block   chan struct{}
}

func (f *fakeEnricher) Enrich(_ context.Context, _ domain.SubmissionInput) (domain.EnrichmentRecord, error) {
	f.mu.Lock()
	f.calls++
	started, block := f.started, f.block
	record, err := f.record, f.err
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	return record.Clone(), err
}

func (f *fakeEnricher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var alice = domain.Subject{ID: "uid-alice", DisplayName: "Alice", Email: "alice@x.com"}

// newTestSession wires a session over the fakes and an in-memory store.
func newTestSession(identity *fakeIdentity, enricher *fakeEnricher) (*Session, *memory.RequestStore) {
	store := memory.NewRequestStore()
	session := NewSession(identity, enricher, NewDedupGate(store))
	return session, store
}

func fillForm(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.UpdateInput(domain.FieldCompanyName, "Acme"))
	require.NoError(t, s.UpdateInput(domain.FieldWebsite, "https://acme.com"))
}

func TestSession_InitialState(t *testing.T) {
	session, _ := newTestSession(&fakeIdentity{}, &fakeEnricher{})
	defer session.Close()

	snap := session.Snapshot()
	assert.Equal(t, domain.PhaseSignedOut, snap.Phase)
	assert.Nil(t, snap.Subject)
	assert.True(t, snap.Input.Empty())
	assert.False(t, snap.Busy)
	assert.Empty(t, snap.LastError)
	assert.Nil(t, snap.LastRecord)
}

func TestSession_AdoptsRestoredIdentity(t *testing.T) {
	// The provider already holds a subject when the session is built,
	// as after a credential-store restore at startup.
	identity := &fakeIdentity{subject: &alice}
	session, _ := newTestSession(identity, &fakeEnricher{})
	defer session.Close()

	snap := session.Snapshot()
	assert.Equal(t, domain.PhaseIdle, snap.Phase)
	require.NotNil(t, snap.Subject)
	assert.Equal(t, alice, *snap.Subject)
}

func TestSession_Login_TransitionsDrivenByObservation(t *testing.T) {
	identity := &fakeIdentity{signInSubject: &alice}
	session, _ := newTestSession(identity, &fakeEnricher{})
	defer session.Close()

	require.NoError(t, session.Login(context.Background()))

	snap := session.Snapshot()
	assert.Equal(t, domain.PhaseIdle, snap.Phase)
	require.NotNil(t, snap.Subject)
	assert.Equal(t, "alice@x.com", snap.Subject.Email)
}

func TestSession_Login_Failure(t *testing.T) {
	identity := &fakeIdentity{signInErr: errors.New("popup dismissed")}
	session, _ := newTestSession(identity, &fakeEnricher{})
	defer session.Close()

	err := session.Login(context.Background())
	assert.ErrorIs(t, err, domain.ErrLoginFailed)

	snap := session.Snapshot()
	assert.Equal(t, domain.PhaseSignedOut, snap.Phase)
	assert.Equal(t, domain.MsgLoginFailed, snap.LastError)
}

func TestSession_Logout_Failure_StateUnchanged(t *testing.T) {
	identity := &fakeIdentity{signInSubject: &alice, signOutErr: errors.New("provider down")}
	session, _ := newTestSession(identity, &fakeEnricher{})
	defer session.Close()

	require.NoError(t, session.Login(context.Background()))
	fillForm(t, session)

	err := session.Logout(context.Background())
	assert.ErrorIs(t, err, domain.ErrLogoutFailed)

	snap := session.Snapshot()
	assert.Equal(t, domain.PhaseIdle, snap.Phase)
	require.NotNil(t, snap.Subject)
	assert.Equal(t, "Acme", snap.Input.CompanyName) // input survives a failed logout
	assert.Equal(t, domain.MsgLogoutFailed, snap.LastError)
}

func TestSession_ResetInvariant_EveryIdentityChangeClearsTransientState(t *testing.T) {
	identity := &fakeIdentity{signInSubject: &alice}
	enricher := &fakeEnricher{record: domain.EnrichmentRecord{"industry": "Tech"}}
	session, _ := newTestSession(identity, enricher)
	defer session.Close()

	require.NoError(t, session.Login(context.Background()))
	fillForm(t, session)
	require.NoError(t, session.Submit(context.Background()))
	require.NotNil(t, session.Snapshot().LastRecord)

	bob := domain.Subject{ID: "uid-bob", Email: "bob@x.com"}
	transitions := []*domain.Subject{nil, &alice, &bob, nil}
	for _, next := range transitions {
		identity.setSubject(next)

		snap := session.Snapshot()
		assert.True(t, snap.Input.Empty())
		assert.Nil(t, snap.LastRecord)
		assert.Empty(t, snap.LastError)
		assert.False(t, snap.Busy)
		if next == nil {
			assert.Equal(t, domain.PhaseSignedOut, snap.Phase)
		} else {
			assert.Equal(t, domain.PhaseIdle, snap.Phase)
		}
	}
}

func TestSession_UpdateInput_RequiresSignIn(t *testing.T) {
	session, _ := newTestSession(&fakeIdentity{}, &fakeEnricher{})
	defer session.Close()

	err := session.UpdateInput(domain.FieldCompanyName, "Acme")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestSession_Submit_ValidationInvariant(t *testing.T) {
	tests := []struct {
		name    string
		company string
		website string
	}{
		{"both empty", "", ""},
		{"missing website", "Acme", ""},
		{"missing company", "", "https://acme.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := &fakeIdentity{signInSubject: &alice}
			enricher := &fakeEnricher{record: domain.EnrichmentRecord{"industry": "Tech"}}
			session, store := newTestSession(identity, enricher)
			defer session.Close()

			require.NoError(t, session.Login(context.Background()))
			require.NoError(t, session.UpdateInput(domain.FieldCompanyName, tt.company))
			require.NoError(t, session.UpdateInput(domain.FieldWebsite, tt.website))

			err := session.Submit(context.Background())
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			snap := session.Snapshot()
			assert.Equal(t, domain.MsgMissingFields, snap.LastError)
			assert.Equal(t, domain.PhaseIdle, snap.Phase) // stays in the current state
			assert.Zero(t, enricher.callCount())          // no network call
			assert.Zero(t, store.Count())
		})
	}
}

func TestSession_Submit_RequiresSignIn(t *testing.T) {
	session, _ := newTestSession(&fakeIdentity{}, &fakeEnricher{})
	defer session.Close()

	err := session.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestSession_Submit_HappyPath(t *testing.T) {
	identity := &fakeIdentity{signInSubject: &alice}
	enricher := &fakeEnricher{record: domain.EnrichmentRecord{"industry": "Tech", "size": float64(42)}}
	session, store := newTestSession(identity, enricher)
	defer session.Close()

	require.NoError(t, session.Login(context.Background()))
	fillForm(t, session)
	require.NoError(t, session.Submit(context.Background()))

	snap := session.Snapshot()
	assert.Equal(t, domain.PhaseResulted, snap.Phase)
	assert.False(t, snap.Busy)
	assert.Empty(t, snap.LastError)
	require.NotNil(t, snap.LastRecord)
	assert.True(t, snap.LastRecord.Equal(domain.EnrichmentRecord{"industry": "Tech", "size": float64(42)}))

	reqs, err := store.List(context.Background(), alice.Namespace())
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].EnrichedData.Equal(snap.LastRecord))
}

func TestSession_Submit_DuplicateStoredOnce(t *testing.T) {
	identity := &fakeIdentity{signInSubject: &alice}
	enricher := &fakeEnricher{record: domain.EnrichmentRecord{"industry": "Tech", "size": float64(42)}}
	session, store := newTestSession(identity, enricher)
	defer session.Close()

	require.NoError(t, session.Login(context.Background()))
	fillForm(t, session)

	require.NoError(t, session.Submit(context.Background()))
	assert.Equal(t, domain.PhaseResulted, session.Snapshot().Phase)

	require.NoError(t, session.Submit(context.Background()))
	assert.Equal(t, domain.PhaseResulted, session.Snapshot().Phase)

	assert.Equal(t, 2, enricher.callCount())
	assert.Equal(t, 1, store.Count()) // identical payload persisted exactly once
}

func TestSession_Submit_TransportFailure(t *testing.T) {
	identity := &fakeIdentity{signInSubject: &alice}
	enricher := &fakeEnricher{err: errors.New("status 500")}
	session, store := newTestSession(identity, enricher)
	defer session.Close()

	require.NoError(t, session.Login(context.Background()))
	fillForm(t, session)

	err := session.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrEnrichmentFailed)

	snap := session.Snapshot()
	assert.Equal(t, domain.PhaseFailed, snap.Phase)
	assert.Equal(t, domain.MsgEnrichmentFailed, snap.LastError)
	assert.Nil(t, snap.LastRecord)
	assert.Zero(t, store.Count()) // no write attempted

	// The session stays retryable
	enricher.mu.Lock()
	enricher.err = nil
	enricher.record = domain.EnrichmentRecord{"industry": "Tech"}
	enricher.mu.Unlock()
	require.NoError(t, session.Submit(context.Background()))
	assert.Equal(t, domain.PhaseResulted, session.Snapshot().Phase)
}

func TestSession_Submit_BusyGuard(t *testing.T) {
	identity := &fakeIdentity{signInSubject: &alice}
	enricher := &fakeEnricher{
		record:  domain.EnrichmentRecord{"industry": "Tech"},
		started: make(chan struct{}),
		block:   make(chan struct{}),
	}
	session, _ := newTestSession(identity, enricher)
	defer session.Close()

	require.NoError(t, session.Login(context.Background()))
	fillForm(t, session)

	done := make(chan error, 1)
	go func() { done <- session.Submit(context.Background()) }()
	<-enricher.started

	snap := session.Snapshot()
	assert.Equal(t, domain.PhaseSubmitting, snap.Phase)
	assert.True(t, snap.Busy)

	// Re-entrant submit is a no-op while busy
	err := session.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)
	assert.Equal(t, 1, enricher.callCount())

	close(enricher.block)
	require.NoError(t, <-done)
	assert.Equal(t, domain.PhaseResulted, session.Snapshot().Phase)
}

func TestSession_LogoutMidFlight_DiscardsLateResult(t *testing.T) {
	identity := &fakeIdentity{signInSubject: &alice}
	enricher := &fakeEnricher{
		record:  domain.EnrichmentRecord{"industry": "Tech"},
		started: make(chan struct{}),
		block:   make(chan struct{}),
	}
	session, store := newTestSession(identity, enricher)
	defer session.Close()

	require.NoError(t, session.Login(context.Background()))
	fillForm(t, session)

	done := make(chan error, 1)
	go func() { done <- session.Submit(context.Background()) }()
	<-enricher.started

	// Logout fires before the enrichment call resolves
	require.NoError(t, session.Logout(context.Background()))
	assert.Equal(t, domain.PhaseSignedOut, session.Snapshot().Phase)

	// Let the in-flight call complete; its result must be dropped
	close(enricher.block)
	require.NoError(t, <-done)

	snap := session.Snapshot()
	assert.Equal(t, domain.PhaseSignedOut, snap.Phase)
	assert.Nil(t, snap.Subject)
	assert.True(t, snap.Input.Empty())
	assert.Nil(t, snap.LastRecord) // late result must not revive state
	assert.Empty(t, snap.LastError)
	assert.False(t, snap.Busy)
	assert.Zero(t, store.Count())
}

func TestSession_Submit_PersistenceFailureDoesNotMaskSuccess(t *testing.T) {
	identity := &fakeIdentity{signInSubject: &alice}
	enricher := &fakeEnricher{record: domain.EnrichmentRecord{"industry": "Tech"}}
	store := &failingRequestStore{err: errors.New("disk full")}
	session := NewSession(identity, enricher, NewDedupGate(store))
	defer session.Close()

	require.NoError(t, session.Login(context.Background()))
	fillForm(t, session)

	// Persistence is best-effort: the submission still succeeds
	require.NoError(t, session.Submit(context.Background()))

	snap := session.Snapshot()
	assert.Equal(t, domain.PhaseResulted, snap.Phase)
	assert.Empty(t, snap.LastError)
	require.NotNil(t, snap.LastRecord)
}

func TestSession_Subscribe_NotifiesOnChange(t *testing.T) {
	identity := &fakeIdentity{signInSubject: &alice}
	session, _ := newTestSession(identity, &fakeEnricher{})
	defer session.Close()

	snaps := make(chan domain.SessionSnapshot, 16)
	unsubscribe := session.Subscribe(func(snap domain.SessionSnapshot) {
		snaps <- snap
	})
	defer unsubscribe()

	// Initial snapshot arrives asynchronously
	select {
	case snap := <-snaps:
		assert.Equal(t, domain.PhaseSignedOut, snap.Phase)
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot delivered")
	}

	require.NoError(t, session.Login(context.Background()))

	select {
	case snap := <-snaps:
		assert.Equal(t, domain.PhaseIdle, snap.Phase)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after login")
	}
}

func TestSession_Close_RejectsTransitions(t *testing.T) {
	identity := &fakeIdentity{signInSubject: &alice}
	session, _ := newTestSession(identity, &fakeEnricher{})

	require.NoError(t, session.Login(context.Background()))
	session.Close()

	assert.ErrorIs(t, session.UpdateInput(domain.FieldCompanyName, "Acme"), domain.ErrSessionClosed)
	assert.ErrorIs(t, session.Submit(context.Background()), domain.ErrSessionClosed)
}

// failingRequestStore fails every operation.
type failingRequestStore struct {
	err error
}

func (s *failingRequestStore) Exists(context.Context, string, domain.EnrichmentRecord) (bool, error) {
	return false, s.err
}

func (s *failingRequestStore) Append(context.Context, domain.StoredRequest) error {
	return s.err
}

func (s *failingRequestStore) List(context.Context, string) ([]domain.StoredRequest, error) {
	return nil, s.err
}
