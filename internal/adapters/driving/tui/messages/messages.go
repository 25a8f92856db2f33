// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

// SessionUpdated carries a fresh session snapshot pushed by the session
// service. It is the single source of truth for workflow state in the TUI.
type SessionUpdated struct {
	Snapshot domain.SessionSnapshot
}

// LoginCompleted signals an interactive sign-in attempt finished.
type LoginCompleted struct {
	Err error
}

// LogoutCompleted signals a sign-out attempt finished.
type LogoutCompleted struct {
	Err error
}

// SubmitCompleted signals an enrichment submission finished.
type SubmitCompleted struct {
	Err error
}

// RequestsLoaded carries the stored request history from the service.
type RequestsLoaded struct {
	Requests []domain.StoredRequest
	Err      error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLogin is the sign-in prompt shown while signed out.
	ViewLogin ViewType = iota
	// ViewForm is the lead input form.
	ViewForm
	// ViewResult shows the latest enrichment result.
	ViewResult
	// ViewRequests lists stored enrichment results.
	ViewRequests
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewForm:
		return "form"
	case ViewResult:
		return "result"
	case ViewRequests:
		return "requests"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
