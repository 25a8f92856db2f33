// Command leadlens is the lead-enrichment CLI. It wires the driven
// adapters (config file, sqlite storage, Google identity, enrichment
// HTTP client) into the core services and hands them to the command
// layer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driven/config/file"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driven/enrich"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driven/identity/google"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driven/storage/memory"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driven/storage/sqlite"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/cli"
	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driven"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driving"
	"github.com/leadlens-labs/leadlens-cli/internal/core/services"
	"github.com/leadlens-labs/leadlens-cli/internal/logger"
)

// version is injected at build time via -ldflags.
var version = "dev"

// appDirName is the per-user application directory under $HOME.
const appDirName = ".leadlens"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	appDir := filepath.Join(home, appDirName)

	configStore, err := file.NewConfigStore(appDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settings := services.NewSettingsService(configStore)
	current, err := settings.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	dataDir := current.Storage.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(appDir, "data")
	}

	// Sqlite failures degrade to in-memory stores so read-only commands
	// keep working; nothing survives the process in that mode.
	var (
		requestStore    driven.RequestStore
		credentialStore driven.CredentialStore
	)
	if store, err := sqlite.NewStore(dataDir); err != nil {
		logger.Warn("opening storage at %s, falling back to in-memory: %v", dataDir, err)
		requestStore = memory.NewRequestStore()
		credentialStore = memory.NewCredentialStore()
	} else {
		defer store.Close()
		requestStore = store.RequestStore()
		credentialStore = store.CredentialStore()
	}

	// Services stay nil when their configuration is missing; commands
	// report the gap instead of failing on a half-wired dependency.
	var (
		sessionService driving.SessionService
		requestService driving.RequestService
	)

	if current.OAuth.ClientID == "" {
		logger.Warn("oauth.client_id is not set (config file or LEADLENS_OAUTH_CLIENT_ID); sign-in is unavailable")
	} else {
		provider, err := google.NewProvider(google.Config{
			ClientID:     current.OAuth.ClientID,
			ClientSecret: current.OAuth.ClientSecret,
		}, credentialStore)
		if err != nil {
			return fmt.Errorf("building identity provider: %w", err)
		}

		if err := provider.Restore(ctx); err != nil {
			logger.Warn("restoring previous sign-in: %v", err)
		}

		var enricher driven.Enricher = unconfiguredEnricher{}
		if current.API.BaseURL == "" {
			logger.Warn("api.base_url is not set (config file or LEADLENS_API_URL); enrichment is unavailable")
		} else {
			client, err := enrich.NewClient(enrich.Config{BaseURL: current.API.BaseURL}, provider)
			if err != nil {
				return fmt.Errorf("building enrichment client: %w", err)
			}
			enricher = client
			watchConfig(ctx, configStore, settings, client)
		}

		session := services.NewSession(provider, enricher, services.NewDedupGate(requestStore))
		defer session.Close()

		sessionService = session
		requestService = services.NewRequests(provider, requestStore)
	}

	cli.SetServices(sessionService, requestService, settings)
	return cli.Execute(version)
}

// watchConfig applies config file edits to the running process. Only the
// API base URL is hot-reloaded; identity settings take effect on restart.
func watchConfig(ctx context.Context, store *file.ConfigStore, settings *services.SettingsService, client *enrich.Client) {
	changes, err := store.Watch(ctx)
	if err != nil {
		logger.Warn("watching config file: %v", err)
		return
	}

	go func() {
		for range changes {
			current, err := settings.Get()
			if err != nil || current.API.BaseURL == "" {
				continue
			}
			client.SetBaseURL(current.API.BaseURL)
			logger.Debug("config reloaded, api base url is now %s", current.API.BaseURL)
		}
	}()
}

// unconfiguredEnricher stands in when api.base_url is not set so the
// session can still sign in and report a clear error on submit.
type unconfiguredEnricher struct{}

func (unconfiguredEnricher) Enrich(context.Context, domain.SubmissionInput) (domain.EnrichmentRecord, error) {
	return nil, fmt.Errorf("%w: api.base_url is not set, run: leadlens config set api.base_url <url>", domain.ErrEnrichmentFailed)
}
