package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// request and credential store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.leadlens/data/leadlens.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".leadlens", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "leadlens.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RequestStore returns a RequestStore interface backed by this store.
func (s *Store) RequestStore() driven.RequestStore {
	return &requestStore{store: s}
}

// CredentialStore returns a CredentialStore interface backed by this store.
func (s *Store) CredentialStore() driven.CredentialStore {
	return &credentialStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Request Store ====================

// requestStore implements driven.RequestStore.
type requestStore struct {
	store *Store
}

var _ driven.RequestStore = (*requestStore)(nil)

// Exists runs the per-namespace equality query. The fingerprint narrows
// the lookup to an indexed scan; comparing the stored canonical JSON
// keeps the answer exact even if two records ever shared a digest.
func (s *requestStore) Exists(ctx context.Context, namespace string, record domain.EnrichmentRecord) (bool, error) {
	fingerprint, err := record.Fingerprint()
	if err != nil {
		return false, fmt.Errorf("fingerprinting record: %w", err)
	}
	canonical, err := record.Canonical()
	if err != nil {
		return false, fmt.Errorf("canonicalising record: %w", err)
	}

	var count int
	err = s.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM requests
		WHERE namespace = ? AND fingerprint = ? AND enriched_data = ?
	`, namespace, fingerprint, string(canonical)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("querying requests: %w", err)
	}

	return count > 0, nil
}

// Append inserts a stored request into its namespace.
func (s *requestStore) Append(ctx context.Context, req domain.StoredRequest) error {
	if req.Namespace == "" {
		return domain.ErrInvalidInput
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.RequestTime.IsZero() {
		req.RequestTime = time.Now().UTC()
	}

	fingerprint, err := req.EnrichedData.Fingerprint()
	if err != nil {
		return fmt.Errorf("fingerprinting record: %w", err)
	}
	canonical, err := req.EnrichedData.Canonical()
	if err != nil {
		return fmt.Errorf("canonicalising record: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO requests (id, namespace, fingerprint, enriched_data, request_time)
		VALUES (?, ?, ?, ?, ?)
	`, req.ID, req.Namespace, fingerprint, string(canonical), req.RequestTime)
	if err != nil {
		return fmt.Errorf("inserting request: %w", err)
	}

	return nil
}

// List returns all stored requests in a namespace, newest first.
func (s *requestStore) List(ctx context.Context, namespace string) ([]domain.StoredRequest, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, namespace, enriched_data, request_time
		FROM requests
		WHERE namespace = ?
		ORDER BY request_time DESC
	`, namespace)
	if err != nil {
		return nil, fmt.Errorf("querying requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.StoredRequest
	for rows.Next() {
		var req domain.StoredRequest
		var enrichedJSON string
		if err := rows.Scan(&req.ID, &req.Namespace, &enrichedJSON, &req.RequestTime); err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}
		if err := json.Unmarshal([]byte(enrichedJSON), &req.EnrichedData); err != nil {
			return nil, fmt.Errorf("unmarshalling enriched data: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating requests: %w", err)
	}

	return requests, nil
}

// ==================== Credential Store ====================

// credentialStore implements driven.CredentialStore.
type credentialStore struct {
	store *Store
}

var _ driven.CredentialStore = (*credentialStore)(nil)

// Save stores or replaces the credential for its provider.
func (s *credentialStore) Save(ctx context.Context, cred domain.Credential) error {
	if cred.Provider == "" {
		return domain.ErrInvalidInput
	}
	if cred.ID == "" {
		cred.ID = uuid.NewString()
	}
	cred.UpdatedAt = time.Now().UTC()

	subjectJSON, err := json.Marshal(cred.Subject)
	if err != nil {
		return fmt.Errorf("marshalling subject: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO credentials (provider, id, access_token, refresh_token, token_type, expiry, subject, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(provider) DO UPDATE SET
			id = excluded.id,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			expiry = excluded.expiry,
			subject = excluded.subject,
			updated_at = excluded.updated_at
	`, cred.Provider, cred.ID, cred.AccessToken, cred.RefreshToken,
		cred.TokenType, cred.Expiry, string(subjectJSON), cred.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}

	return nil
}

// Get retrieves the credential for a provider.
func (s *credentialStore) Get(ctx context.Context, provider string) (*domain.Credential, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT provider, id, access_token, refresh_token, token_type, expiry, subject, updated_at
		FROM credentials WHERE provider = ?
	`, provider)

	var cred domain.Credential
	var refreshToken, tokenType sql.NullString
	var expiry sql.NullTime
	var subjectJSON string
	if err := row.Scan(&cred.Provider, &cred.ID, &cred.AccessToken,
		&refreshToken, &tokenType, &expiry, &subjectJSON, &cred.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning credential: %w", err)
	}

	cred.RefreshToken = refreshToken.String
	cred.TokenType = tokenType.String
	if expiry.Valid {
		cred.Expiry = expiry.Time
	}
	if err := json.Unmarshal([]byte(subjectJSON), &cred.Subject); err != nil {
		return nil, fmt.Errorf("unmarshalling subject: %w", err)
	}

	return &cred, nil
}

// Delete removes the credential for a provider.
func (s *credentialStore) Delete(ctx context.Context, provider string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM credentials WHERE provider = ?", provider)
	if err != nil {
		return fmt.Errorf("deleting credential: %w", err)
	}
	return nil
}
