// Package requests provides the stored request history view for the TUI.
package requests

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/messages"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/styles"
	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driving"
)

// View lists the signed-in subject's stored enrichment results, newest
// first, with the selected entry expanded.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	service driving.RequestService
	ctx     context.Context

	requests []domain.StoredRequest
	selected int
	loading  bool
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new requests view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.RequestService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:  s,
		keymap:  km,
		service: service,
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

// Init initialises the view and loads the history.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.loadRequests()
}

// loadRequests fetches the stored request history.
func (v *View) loadRequests() tea.Cmd {
	return func() tea.Msg {
		requests, err := v.service.List(v.ctx)
		return messages.RequestsLoaded{Requests: requests, Err: err}
	}
}

// Update handles messages for the requests view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RequestsLoaded:
		v.loading = false
		v.err = msg.Err
		v.requests = msg.Requests
		if v.selected >= len(v.requests) {
			v.selected = 0
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Quit):
		return v, tea.Quit

	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewForm}
		}

	case keymap.Matches(key, v.keymap.Up):
		v.MoveUp()
		return v, nil

	case keymap.Matches(key, v.keymap.Down):
		v.MoveDown()
		return v, nil
	}

	return v, nil
}

// MoveUp moves the selection up.
func (v *View) MoveUp() {
	if v.selected > 0 {
		v.selected--
	}
}

// MoveDown moves the selection down.
func (v *View) MoveDown() {
	if v.selected < len(v.requests)-1 {
		v.selected++
	}
}

// View renders the requests view.
func (v *View) View() string {
	sections := make([]string, 0, 12)

	sections = append(sections, v.styles.Title.Render("Enrichment history"), "")

	switch {
	case v.loading:
		sections = append(sections, v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		if errors.Is(v.err, domain.ErrNotAuthenticated) {
			sections = append(sections, v.styles.Error.Render("Not signed in."))
		} else {
			sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
		}
	case len(v.requests) == 0:
		sections = append(sections, v.styles.Muted.Render("No stored enrichment results."))
	default:
		sections = append(sections, v.renderList()...)
	}

	sections = append(sections, "",
		v.styles.Help.Render("↑/↓: navigate | esc: back | q: quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderList renders the entries with the selected one expanded.
func (v *View) renderList() []string {
	lines := make([]string, 0, len(v.requests)*3)

	for i, req := range v.requests {
		header := fmt.Sprintf("%s  (%d fields)",
			req.RequestTime.Local().Format(time.RFC3339), len(req.EnrichedData))
		if i == v.selected {
			lines = append(lines, v.styles.Selected.Render("> "+header))
			for _, key := range req.EnrichedData.Keys() {
				line := "    " + v.styles.Subtitle.Render(key+": ") +
					v.styles.Normal.Render(renderValue(req.EnrichedData[key]))
				lines = append(lines, line)
			}
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+header))
		}
	}

	return lines
}

// renderValue formats a single record value for display.
func renderValue(value any) string {
	switch val := value.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool, float64, int, int64:
		return fmt.Sprintf("%v", val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}

// Requests returns the loaded requests.
func (v *View) Requests() []domain.StoredRequest {
	return v.requests
}

// Selected returns the selected entry index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the load error, if any.
func (v *View) Err() error {
	return v.err
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
