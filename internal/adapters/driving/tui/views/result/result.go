// Package result provides the enrichment result view for the TUI.
package result

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/messages"
	"github.com/leadlens-labs/leadlens-cli/internal/adapters/driving/tui/styles"
	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

// View shows the most recent enrichment result.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	record  domain.EnrichmentRecord
	company string

	width  int
	height int
	ready  bool
}

// NewView creates a new result view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the result view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SessionUpdated:
		if msg.Snapshot.LastRecord != nil {
			v.record = msg.Snapshot.LastRecord
			v.company = msg.Snapshot.Input.CompanyName
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

	case keymap.Matches(key, v.keymap.NewLead), msg.Type == tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewForm}
		}

	case keymap.Matches(key, v.keymap.Requests):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewRequests}
		}
	}

	return v, nil
}

// View renders the result view.
func (v *View) View() string {
	sections := make([]string, 0, 8)

	title := "Enrichment result"
	if v.company != "" {
		title = "Enrichment result: " + v.company
	}
	sections = append(sections, v.styles.Title.Render(title), "")

	if len(v.record) == 0 {
		sections = append(sections, v.styles.Muted.Render("No result yet."))
	} else {
		for _, key := range v.record.Keys() {
			line := v.styles.Subtitle.Render(key+": ") +
				v.styles.Normal.Render(renderValue(v.record[key]))
			sections = append(sections, line)
		}
	}

	sections = append(sections, "",
		v.styles.Help.Render("n: new lead | ctrl+r: history | esc: back | q: quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderValue formats a single record value for display. Scalars render
// plainly, nested structures as compact JSON.
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

// SetRecord sets the record to display.
func (v *View) SetRecord(record domain.EnrichmentRecord, company string) {
	v.record = record
	v.company = company
}

// Record returns the displayed record.
func (v *View) Record() domain.EnrichmentRecord {
	return v.record
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
