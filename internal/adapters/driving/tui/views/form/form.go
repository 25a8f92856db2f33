// Package form provides the lead input form view for the TUI.
package form

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/components/input"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/components/status"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/messages"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/styles"
	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driving"
)

// View is the lead input form. It owns the two text fields locally and
// pushes their values into the session only on submit, so typing never
// races with session notifications.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	company   *input.FieldInput
	website   *input.FieldInput
	statusbar *status.Bar

	session driving.SessionService
	ctx     context.Context

	width  int
	height int
	ready  bool
	busy   bool
	errMsg string
	focus  int // 0 = company, 1 = website
}

// NewView creates a new form view.
func NewView(s *styles.Styles, km *keymap.KeyMap, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	company := input.NewFieldInput(s, "Company name", "Acme Inc")
	website := input.NewFieldInput(s, "Website", "https://acme.com")
	company.Focus()

	return &View{
		styles:    s,
		keymap:    km,
		company:   company,
		website:   website,
		statusbar: status.NewBar(s, km),
		session:   session,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.company.Init()
}

// Update handles messages for the form view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SessionUpdated:
		v.applySnapshot(msg.Snapshot)
		return v, nil
	}

	return v, nil
}

// applySnapshot mirrors the session's busy flag and error message.
// Field contents are deliberately left alone; they belong to the view.
func (v *View) applySnapshot(snap domain.SessionSnapshot) {
	v.busy = snap.Busy
	v.errMsg = snap.LastError

	if snap.Subject != nil {
		v.statusbar.SetSubject(snap.Subject.Email)
	} else {
		v.statusbar.SetSubject("")
	}

	switch {
	case snap.Busy:
		v.statusbar.SetState(status.StateEnriching)
	case snap.LastError != "":
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(snap.LastError)
	case snap.Phase == domain.PhaseResulted:
		v.statusbar.SetState(status.StateResult)
	default:
		v.statusbar.SetState(status.StateReady)
	}
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case key == "ctrl+c":
		return v, tea.Quit

	case keymap.Matches(key, v.keymap.Logout):
		return v, v.performLogout()

	case keymap.Matches(key, v.keymap.Requests):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewRequests}
		}

	case keymap.Matches(key, v.keymap.NextField), keymap.Matches(key, v.keymap.PrevField):
		v.toggleFocus()
		return v, nil

	case msg.Type == tea.KeyEnter:
		if v.busy {
			return v, nil
		}
		return v.submit()
	}

	// All other keys go to the focused field
	var cmd tea.Cmd
	if v.focus == 0 {
		v.company, cmd = v.company.Update(msg)
	} else {
		v.website, cmd = v.website.Update(msg)
	}
	return v, cmd
}

// toggleFocus moves focus between the two fields.
func (v *View) toggleFocus() {
	if v.focus == 0 {
		v.focus = 1
		v.company.Blur()
		v.website.Focus()
	} else {
		v.focus = 0
		v.website.Blur()
		v.company.Focus()
	}
}

// submit validates the fields and starts the enrichment flow.
func (v *View) submit() (*View, tea.Cmd) {
	company := strings.TrimSpace(v.company.Value())
	website := strings.TrimSpace(v.website.Value())

	if company == "" || website == "" {
		v.errMsg = domain.MsgMissingFields
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.errMsg)
		return v, nil
	}

	v.errMsg = ""
	return v, v.performSubmit(company, website)
}

// performSubmit pushes the field values into the session and submits.
func (v *View) performSubmit(company, website string) tea.Cmd {
	return func() tea.Msg {
		if err := v.session.UpdateInput(domain.FieldCompanyName, company); err != nil {
			return messages.SubmitCompleted{Err: err}
		}
		if err := v.session.UpdateInput(domain.FieldWebsite, website); err != nil {
			return messages.SubmitCompleted{Err: err}
		}
		return messages.SubmitCompleted{Err: v.session.Submit(v.ctx)}
	}
}

// performLogout requests sign-out.
func (v *View) performLogout() tea.Cmd {
	return func() tea.Msg {
		return messages.LogoutCompleted{Err: v.session.Logout(v.ctx)}
	}
}

// View renders the form view.
func (v *View) View() string {
	sections := make([]string, 0, 10)

	sections = append(sections, v.styles.Title.Render("Enrich a lead"), "")
	sections = append(sections, v.company.View())
	sections = append(sections, v.website.View(), "")

	if v.busy {
		sections = append(sections, v.styles.Warning.Render("Enriching..."), "")
	} else if v.errMsg != "" {
		sections = append(sections, v.styles.Error.Render(v.errMsg), "")
	}

	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.company.SetWidth(width)
	v.website.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// CompanyValue returns the current company field value.
func (v *View) CompanyValue() string {
	return v.company.Value()
}

// WebsiteValue returns the current website field value.
func (v *View) WebsiteValue() string {
	return v.website.Value()
}

// SetValues sets both field values (for testing and restore).
func (v *View) SetValues(company, website string) {
	v.company.SetValue(company)
	v.website.SetValue(website)
}

// FocusedField returns which field has focus, 0 for company and 1 for website.
func (v *View) FocusedField() int {
	return v.focus
}

// Busy reports whether a submission is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the current user-facing error message.
func (v *View) Err() string {
	return v.errMsg
}

// Reset clears the form for a fresh session.
func (v *View) Reset() {
	v.company.Reset()
	v.website.Reset()
	v.errMsg = ""
	v.busy = false
	v.focus = 0
	v.website.Blur()
	v.company.Focus()
	v.statusbar.Clear()
}
