// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/styles"
)

// State represents the current workflow state for display.
type State string

const (
	StateReady     State = "ready"
	StateEnriching State = "enriching"
	StateError     State = "error"
	StateResult    State = "result"
)

// Bar displays the signed-in subject, workflow state and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	subject string
	message string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is mostly passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := s.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the subject and workflow state.
func (s *Bar) renderLeft() string {
	parts := make([]string, 0, 2)
	if s.subject != "" {
		parts = append(parts, s.styles.Normal.Render(s.subject))
	}

	switch s.state {
	case StateEnriching:
		parts = append(parts, s.styles.Warning.Render("Enriching..."))
	case StateError:
		if s.message != "" {
			parts = append(parts, s.styles.Error.Render(s.message))
		} else {
			parts = append(parts, s.styles.Error.Render("Error"))
		}
	case StateResult:
		parts = append(parts, s.styles.Success.Render("Done"))
	case StateReady:
		if len(parts) == 0 {
			parts = append(parts, s.styles.Muted.Render("Not signed in"))
		}
	}

	return strings.Join(parts, s.styles.Muted.Render(" | "))
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.subject != "" {
		bindings = s.keymap.FormHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetSubject sets the signed-in subject label, empty when signed out.
func (s *Bar) SetSubject(subject string) {
	s.subject = subject
}

// Subject returns the current subject label.
func (s *Bar) Subject() string {
	return s.subject
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
