// Package login provides the sign-in view for the TUI.
package login

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/messages"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/styles"
	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driving"
)

// View is the sign-in prompt shown while no subject is authenticated.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	session driving.SessionService
	ctx     context.Context

	width   int
	height  int
	ready   bool
	signing bool
	errMsg  string
}

// NewView creates a new login view.
func NewView(s *styles.Styles, km *keymap.KeyMap, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:  s,
		keymap:  km,
		session: session,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SessionUpdated:
		v.errMsg = msg.Snapshot.LastError
		if msg.Snapshot.Phase.SignedIn() || v.errMsg != "" {
			v.signing = false
		}
		return v, nil

	case messages.LoginCompleted:
		v.signing = false
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	if keymap.Matches(key, v.keymap.Quit) {
		return v, tea.Quit
	}

	if msg.Type == tea.KeyEnter && !v.signing {
		v.signing = true
		v.errMsg = ""
		return v, v.performLogin()
	}

	return v, nil
}

// performLogin starts the interactive sign-in flow.
func (v *View) performLogin() tea.Cmd {
	return func() tea.Msg {
		if v.session == nil {
			return messages.LoginCompleted{Err: domain.ErrNotImplemented}
		}
		return messages.LoginCompleted{Err: v.session.Login(v.ctx)}
	}
}

// View renders the login view.
func (v *View) View() string {
	sections := make([]string, 0, 6)

	sections = append(sections, v.styles.Title.Render("LeadLens"), "")
	sections = append(sections, v.styles.Normal.Render("Lead enrichment for your terminal."), "")

	if v.signing {
		sections = append(sections, v.styles.Warning.Render("Signing in, check your browser..."))
	} else {
		sections = append(sections, v.styles.Subtitle.Render("Press enter to sign in with Google"))
	}

	if v.errMsg != "" {
		sections = append(sections, "", v.styles.Error.Render(v.errMsg))
	}

	sections = append(sections, "", v.styles.Help.Render("q: quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Signing reports whether a sign-in attempt is in flight.
func (v *View) Signing() bool {
	return v.signing
}

// Err returns the current user-facing error message.
func (v *View) Err() string {
	return v.errMsg
}

// Reset clears transient state.
func (v *View) Reset() {
	v.signing = false
	v.errMsg = ""
}
