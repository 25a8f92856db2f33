package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/messages"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/styles"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/views/form"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/views/login"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/views/requests"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/views/result"
	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// The session service pushes snapshots from its own goroutines; the app
// bridges them into the Bubbletea loop by coalescing the latest snapshot
// behind a signal channel that a long-running command waits on.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// loginView is the sign-in prompt.
	loginView *login.View

	// formView is the lead input form.
	formView *form.View

	// resultView shows the latest enrichment result.
	resultView *result.View

	// requestsView lists stored enrichment results.
	requestsView *requests.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// snapshot is the latest session snapshot applied to the model.
	snapshot domain.SessionSnapshot

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool

	// snapMu guards latest, written by the session observer goroutine.
	snapMu sync.Mutex
	latest *domain.SessionSnapshot
	signal chan struct{}

	// unsubscribe detaches the session observer.
	unsubscribe func()
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		loginView:    login.NewView(s, km, ports.Session),
		formView:     form.NewView(s, km, ports.Session),
		resultView:   result.NewView(s, km),
		requestsView: requests.NewView(s, km, ports.Requests),
		currentView:  messages.ViewLogin,
		signal:       make(chan struct{}, 1),
	}

	a.unsubscribe = ports.Session.Subscribe(a.observeSession)
	return a, nil
}

// observeSession receives pushed snapshots outside the Bubbletea loop.
// Only the latest snapshot matters, so intermediate ones coalesce.
func (a *App) observeSession(snap domain.SessionSnapshot) {
	a.snapMu.Lock()
	a.latest = &snap
	a.snapMu.Unlock()

	select {
	case a.signal <- struct{}{}:
	default:
	}
}

// waitForSession returns a command that blocks until the session pushes
// a new snapshot, then delivers it as a message. Update re-issues it
// after every delivery.
func (a *App) waitForSession() tea.Cmd {
	return func() tea.Msg {
		<-a.signal
		a.snapMu.Lock()
		snap := *a.latest
		a.snapMu.Unlock()
		return messages.SessionUpdated{Snapshot: snap}
	}
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.loginView.WithContext(ctx)
	a.formView.WithContext(ctx)
	a.requestsView.WithContext(ctx)
	return a
}

// Close detaches the app from the session service.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("leadlens - Lead Enrichment"),
		a.loginView.Init(),
		a.waitForSession(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.loginView.SetDimensions(msg.Width, msg.Height)
		a.formView.SetDimensions(msg.Width, msg.Height)
		a.resultView.SetDimensions(msg.Width, msg.Height)
		a.requestsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.SessionUpdated:
		return a, tea.Batch(a.applySessionUpdate(msg), a.waitForSession())

	case messages.LoginCompleted:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.loginView, cmd = a.loginView.Update(msg)
		return a, cmd

	case messages.LogoutCompleted:
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, nil

	case messages.SubmitCompleted:
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, nil

	case messages.RequestsLoaded:
		a.requestsView, cmd = a.requestsView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewRequests:
			return a, a.requestsView.Init()
		case messages.ViewForm:
			return a, a.formView.Init()
		case messages.ViewLogin, messages.ViewResult, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)
	}

	// Forward other messages to the active view
	return a, a.forwardToCurrent(msg)
}

// applySessionUpdate routes the model to the right view for the new
// session state and forwards the snapshot to the views that render it.
func (a *App) applySessionUpdate(msg messages.SessionUpdated) tea.Cmd {
	prev := a.snapshot
	a.snapshot = msg.Snapshot

	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.loginView, cmd = a.loginView.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.formView, cmd = a.formView.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.resultView, cmd = a.resultView.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch {
	case !msg.Snapshot.Phase.SignedIn():
		a.currentView = messages.ViewLogin

	case !prev.Phase.SignedIn():
		// A fresh sign-in starts with a clean form.
		a.formView.Reset()
		a.currentView = messages.ViewForm
		cmds = append(cmds, a.formView.Init())

	case msg.Snapshot.Phase == domain.PhaseResulted && a.currentView == messages.ViewForm:
		a.currentView = messages.ViewResult
	}

	return tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input at the app level.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit with ctrl+c
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// Help toggle from views without text input
	if msg.String() == "?" && a.currentView != messages.ViewForm {
		if a.currentView == messages.ViewHelp {
			a.currentView = a.homeView()
		} else {
			a.currentView = messages.ViewHelp
		}
		return a, nil
	}

	if a.currentView == messages.ViewHelp {
		if msg.Type == tea.KeyEsc {
			a.currentView = a.homeView()
		}
		return a, nil
	}

	return a, a.forwardToCurrent(msg)
}

// homeView is where Back lands: the form when signed in, login otherwise.
func (a *App) homeView() messages.ViewType {
	if a.snapshot.Phase.SignedIn() {
		return messages.ViewForm
	}
	return messages.ViewLogin
}

// forwardToCurrent forwards a message to the active view.
func (a *App) forwardToCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewForm:
		a.formView, cmd = a.formView.Update(msg)
	case messages.ViewResult:
		a.resultView, cmd = a.resultView.Update(msg)
	case messages.ViewRequests:
		a.requestsView, cmd = a.requestsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't handle other messages
	}

	return cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewLogin:
		return a.loginView.View()
	case messages.ViewForm:
		return a.formView.View()
	case messages.ViewResult:
		return a.resultView.View()
	case messages.ViewRequests:
		return a.requestsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.loginView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Sign in:
  enter       Sign in with Google
  q           Quit

Form:
  (type)      Fill in company name and website
  tab         Switch fields
  enter       Submit for enrichment
  ctrl+r      Enrichment history
  ctrl+d      Sign out

Result:
  n           New lead
  ctrl+r      Enrichment history
  esc         Back to form

History:
  j/k, ↑/↓    Navigate entries
  esc         Back to form

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Snapshot returns the latest session snapshot applied to the model.
func (a *App) Snapshot() domain.SessionSnapshot {
	return a.snapshot
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.loginView.SetDimensions(width, height)
	a.formView.SetDimensions(width, height)
	a.resultView.SetDimensions(width, height)
	a.requestsView.SetDimensions(width, height)
}
