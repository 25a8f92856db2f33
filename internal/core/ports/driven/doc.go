// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - IdentityProvider: Interactive sign-in, identity observation, token minting
//   - Enricher: The remote enrichment endpoint
//   - RequestStore: Per-subject enrichment outcome persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CredentialStore: OAuth session persistence. Without it, sign-in
//     does not survive process restarts.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
