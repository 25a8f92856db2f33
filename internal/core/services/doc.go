// Package services implements the driving port interfaces.
// Services contain the core business logic: the session state machine,
// the deduplication gate, and request listing. They orchestrate calls
// to driven ports (adapters) and never touch infrastructure directly.
//
// Services are pure Go with no external dependencies beyond the ports.
package services
