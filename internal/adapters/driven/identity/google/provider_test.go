package google

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driven/storage/memory"
	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

var testSubject = domain.Subject{
	ID:          "uid-alice",
	DisplayName: "Alice",
	Email:       "alice@x.com",
}

func storedCredential(t *testing.T, store *memory.CredentialStore) {
	t.Helper()
	err := store.Save(context.Background(), domain.Credential{
		Provider:     "google",
		AccessToken:  "stored-token",
		RefreshToken: "stored-refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour),
		Subject:      testSubject,
	})
	require.NoError(t, err)
}

// identityChannel subscribes with an observer that forwards every
// notification, including the asynchronous replay of the current
// identity, into a buffered channel.
func identityChannel(p *Provider) (<-chan *domain.Subject, func()) {
	ch := make(chan *domain.Subject, 8)
	unsubscribe := p.Subscribe(func(subject *domain.Subject) { ch <- subject })
	return ch, unsubscribe
}

func nextIdentity(t *testing.T, ch <-chan *domain.Subject) *domain.Subject {
	t.Helper()
	select {
	case subject := <-ch:
		return subject
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for identity notification")
		return nil
	}
}

func TestNewProvider_RequiresClientID(t *testing.T) {
	_, err := NewProvider(Config{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProvider_Restore_EmptyStore(t *testing.T) {
	provider, err := NewProvider(Config{ClientID: "client-123"}, memory.NewCredentialStore())
	require.NoError(t, err)

	require.NoError(t, provider.Restore(context.Background()))
	assert.Nil(t, provider.Subject())
}

func TestProvider_Restore_SignedIn(t *testing.T) {
	store := memory.NewCredentialStore()
	storedCredential(t, store)

	provider, err := NewProvider(Config{ClientID: "client-123"}, store)
	require.NoError(t, err)

	ch, _ := identityChannel(provider)

	// The replay fires first, before the restore ran, and reports signed out
	assert.Nil(t, nextIdentity(t, ch))

	require.NoError(t, provider.Restore(context.Background()))

	subject := provider.Subject()
	require.NotNil(t, subject)
	assert.Equal(t, testSubject, *subject)

	restored := nextIdentity(t, ch)
	require.NotNil(t, restored)
	assert.Equal(t, testSubject, *restored)
}

func TestProvider_Subscribe_AfterRestore_ReplaysSubject(t *testing.T) {
	store := memory.NewCredentialStore()
	storedCredential(t, store)

	provider, err := NewProvider(Config{ClientID: "client-123"}, store)
	require.NoError(t, err)
	require.NoError(t, provider.Restore(context.Background()))

	// A subscriber arriving after the restore must still be told about
	// the restored sign-in, not wait for the next transition.
	ch, _ := identityChannel(provider)

	replayed := nextIdentity(t, ch)
	require.NotNil(t, replayed)
	assert.Equal(t, testSubject, *replayed)
}

func TestProvider_Token_SignedOut(t *testing.T) {
	provider, err := NewProvider(Config{ClientID: "client-123"}, nil)
	require.NoError(t, err)

	_, err = provider.Token(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestProvider_Token_ValidStoredToken(t *testing.T) {
	store := memory.NewCredentialStore()
	storedCredential(t, store)

	provider, err := NewProvider(Config{ClientID: "client-123"}, store)
	require.NoError(t, err)
	require.NoError(t, provider.Restore(context.Background()))

	// Unexpired token is served without a refresh round-trip
	token, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored-token", token)
}

func TestProvider_SignOut(t *testing.T) {
	store := memory.NewCredentialStore()
	storedCredential(t, store)

	provider, err := NewProvider(Config{ClientID: "client-123"}, store)
	require.NoError(t, err)
	require.NoError(t, provider.Restore(context.Background()))

	ch, _ := identityChannel(provider)

	// Drain the replay of the restored sign-in
	require.NotNil(t, nextIdentity(t, ch))

	require.NoError(t, provider.SignOut(context.Background()))

	assert.Nil(t, provider.Subject())
	assert.Nil(t, nextIdentity(t, ch))

	_, err = store.Get(context.Background(), "google")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = provider.Token(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestProvider_SignOut_StoreFailure_StateUnchanged(t *testing.T) {
	store := &failingCredentialStore{deleteErr: errors.New("disk error")}

	provider, err := NewProvider(Config{ClientID: "client-123"}, store)
	require.NoError(t, err)

	// Seed signed-in state through the store-backed restore path
	store.cred = &domain.Credential{
		Provider:    "google",
		AccessToken: "stored-token",
		Expiry:      time.Now().Add(time.Hour),
		Subject:     testSubject,
	}
	require.NoError(t, provider.Restore(context.Background()))

	err = provider.SignOut(context.Background())
	require.Error(t, err)

	// Still signed in
	require.NotNil(t, provider.Subject())
	assert.Equal(t, testSubject, *provider.Subject())
}

func TestProvider_Subscribe_Unsubscribe(t *testing.T) {
	store := memory.NewCredentialStore()
	storedCredential(t, store)

	provider, err := NewProvider(Config{ClientID: "client-123"}, store)
	require.NoError(t, err)

	ch, unsubscribe := identityChannel(provider)

	// The replay of the pre-restore state is still delivered
	assert.Nil(t, nextIdentity(t, ch))
	unsubscribe()

	// Restore notifies synchronously, so any delivery to the removed
	// observer would be buffered by the time it returns
	require.NoError(t, provider.Restore(context.Background()))
	select {
	case subject := <-ch:
		t.Fatalf("notified after unsubscribe: %v", subject)
	default:
	}
}

// failingCredentialStore fails deletes and serves a canned credential.
type failingCredentialStore struct {
	cred      *domain.Credential
	deleteErr error
}

func (s *failingCredentialStore) Save(context.Context, domain.Credential) error {
	return nil
}

func (s *failingCredentialStore) Get(_ context.Context, provider string) (*domain.Credential, error) {
	if s.cred == nil || s.cred.Provider != provider {
		return nil, domain.ErrNotFound
	}
	cred := *s.cred
	return &cred, nil
}

func (s *failingCredentialStore) Delete(context.Context, string) error {
	return s.deleteErr
}
