// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - RequestStore: Per-subject enrichment outcome persistence
//   - CredentialStore: OAuth session persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Stored requests carry a SHA-256 fingerprint of their
// canonical JSON so the per-namespace equality query is an indexed lookup.
//
// # Data Location
//
// By default, the database is stored at ~/.leadlens/data/leadlens.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
