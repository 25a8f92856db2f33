// Package domain defines the core business entities for leadlens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Subject: The authenticated user identity
//   - SubmissionInput: The company identifier submitted for enrichment
//   - EnrichmentRecord: An opaque structured result from the enrichment service
//   - StoredRequest: A persisted enrichment outcome, one per unique payload
//   - SessionSnapshot: The observable state of the session workflow
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
