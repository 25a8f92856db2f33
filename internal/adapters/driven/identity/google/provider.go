package google

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	googleendpoint "golang.org/x/oauth2/google"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driven"
	"github.com/leadlens-labs/leadlens-cli/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.IdentityProvider = (*Provider)(nil)

const (
	providerName  = "google"
	signInTimeout = 5 * time.Minute
)

// Config configures the Google identity provider.
type Config struct {
	ClientID     string
	ClientSecret string

	// Port for the loopback callback server. 0 picks a free port.
	Port int
}

// Provider authenticates against Google OAuth and mints bearer tokens.
type Provider struct {
	mu        sync.Mutex
	oauth     *oauth2.Config
	port      int
	creds     driven.CredentialStore
	subject   *domain.Subject
	source    oauth2.TokenSource
	lastToken string
	observers map[int]driven.IdentityObserver
	nextObsID int
}

// NewProvider creates a provider. The credential store may be nil, in
// which case sign-ins do not survive process restarts.
func NewProvider(cfg Config, creds driven.CredentialStore) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: oauth client id is required", domain.ErrInvalidInput)
	}

	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     googleendpoint.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		port:      cfg.Port,
		creds:     creds,
		observers: make(map[int]driven.IdentityObserver),
	}, nil
}

// Restore loads a persisted sign-in from the credential store, if any.
// Observers are notified when a subject is restored.
func (p *Provider) Restore(ctx context.Context) error {
	if p.creds == nil {
		return nil
	}

	cred, err := p.creds.Get(ctx, providerName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("loading credential: %w", err)
	}

	token := &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		TokenType:    cred.TokenType,
		Expiry:       cred.Expiry,
	}

	p.mu.Lock()
	subject := cred.Subject
	p.subject = &subject
	p.source = p.oauth.TokenSource(context.Background(), token)
	p.lastToken = token.AccessToken
	p.notifyAndUnlock(&subject)

	return nil
}

// SignIn performs the interactive authorization code flow with PKCE.
func (p *Provider) SignIn(ctx context.Context) (*domain.Subject, error) {
	verifier, err := generateCodeVerifier()
	if err != nil {
		return nil, fmt.Errorf("generating code verifier: %w", err)
	}
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generating state: %w", err)
	}

	server := newCallbackServer(p.port, state)
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("starting callback server: %w", err)
	}
	defer server.Stop()

	// Redirect URI carries the actual port picked by the listener
	cfg := *p.oauth
	cfg.RedirectURL = server.RedirectURI()

	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("code_challenge", generateCodeChallenge(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		oauth2.SetAuthURLParam("prompt", "consent"),
	)

	logger.Debug("Opening browser for sign-in: %s", authURL)
	if err := openBrowser(authURL); err != nil {
		return nil, fmt.Errorf("opening browser: %w", err)
	}

	code, err := server.WaitForCode(ctx, signInTimeout)
	if err != nil {
		return nil, fmt.Errorf("waiting for authorization: %w", err)
	}

	token, err := cfg.Exchange(ctx, code, oauth2.SetAuthURLParam("code_verifier", verifier))
	if err != nil {
		return nil, fmt.Errorf("exchanging code: %w", err)
	}

	source := p.oauth.TokenSource(context.Background(), token)
	subject, err := fetchSubject(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}

	p.persist(ctx, token, subject)

	p.mu.Lock()
	p.subject = subject
	p.source = source
	p.lastToken = token.AccessToken
	p.notifyAndUnlock(subject)

	return subject, nil
}

// SignOut removes the persisted credential and clears the session.
// On a store failure the signed-in state is left unchanged.
func (p *Provider) SignOut(ctx context.Context) error {
	if p.creds != nil {
		if err := p.creds.Delete(ctx, providerName); err != nil {
			return fmt.Errorf("deleting credential: %w", err)
		}
	}

	p.mu.Lock()
	p.subject = nil
	p.source = nil
	p.lastToken = ""
	p.notifyAndUnlock(nil)

	return nil
}

// Subject returns the signed-in subject, or nil when signed out.
func (p *Provider) Subject() *domain.Subject {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.subject == nil {
		return nil
	}
	subject := *p.subject
	return &subject
}

// Token returns a currently-valid access token, refreshing if expired.
// A refreshed token is written back to the credential store.
func (p *Provider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	source := p.source
	subject := p.subject
	last := p.lastToken
	p.mu.Unlock()

	if source == nil {
		return "", domain.ErrAuthRequired
	}

	token, err := source.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuthExpired, err)
	}

	if token.AccessToken != last {
		p.mu.Lock()
		p.lastToken = token.AccessToken
		p.mu.Unlock()
		p.persist(ctx, token, subject)
	}

	return token.AccessToken, nil
}

// Subscribe registers an identity observer and returns an unsubscribe
// func. The current identity is replayed to the new observer
// asynchronously, so a subscriber arriving after Restore still learns
// about the restored sign-in.
func (p *Provider) Subscribe(observer driven.IdentityObserver) func() {
	p.mu.Lock()
	id := p.nextObsID
	p.nextObsID++
	p.observers[id] = observer
	var current *domain.Subject
	if p.subject != nil {
		sub := *p.subject
		current = &sub
	}
	p.mu.Unlock()

	go observer(current)

	return func() {
		p.mu.Lock()
		delete(p.observers, id)
		p.mu.Unlock()
	}
}

// notifyAndUnlock snapshots the observer list, releases the lock, and
// delivers the notification. Caller must hold p.mu.
func (p *Provider) notifyAndUnlock(subject *domain.Subject) {
	observers := make([]driven.IdentityObserver, 0, len(p.observers))
	for _, obs := range p.observers {
		observers = append(observers, obs)
	}
	p.mu.Unlock()

	for _, obs := range observers {
		obs(subject)
	}
}

// persist writes the token and subject to the credential store.
// Failures are logged, not returned: an unsaved credential only means
// the sign-in will not survive a restart.
func (p *Provider) persist(ctx context.Context, token *oauth2.Token, subject *domain.Subject) {
	if p.creds == nil || subject == nil {
		return
	}

	err := p.creds.Save(ctx, domain.Credential{
		Provider:     providerName,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
		Subject:      *subject,
	})
	if err != nil {
		logger.Warn("Failed to persist credential: %v", err)
	}
}
