// Package styles defines the leadlens colour palette and the lipgloss
// styles derived from it.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named colour palette. Styles are derived from a theme, so
// an alternate palette only has to supply colours, never styles.
type Theme struct {
	Name string

	Primary    lipgloss.Color // main accent, titles and selection
	Secondary  lipgloss.Color // secondary accent, field labels
	Foreground lipgloss.Color // default text
	Muted      lipgloss.Color // de-emphasised text, help lines
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	Surface    lipgloss.Color // status bar background
}

// DefaultTheme returns the built-in "harbor" palette: cold blue primary
// with an amber accent on a slate surface.
func DefaultTheme() *Theme {
	return &Theme{
		Name:       "harbor",
		Primary:    lipgloss.Color("#3B82F6"),
		Secondary:  lipgloss.Color("#F59E0B"),
		Foreground: lipgloss.Color("#E2E8F0"),
		Muted:      lipgloss.Color("#64748B"),
		Success:    lipgloss.Color("#22C55E"),
		Warning:    lipgloss.Color("#EAB308"),
		Error:      lipgloss.Color("#EF4444"),
		Border:     lipgloss.Color("#334155"),
		Surface:    lipgloss.Color("#0F172A"),
	}
}

// Styles contains the lipgloss styles the views render with.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles derives styles from a theme. A nil theme uses the default.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	// Every style starts from the theme's text colour; accented styles
	// override it so a palette swap recolours the whole UI.
	base := lipgloss.NewStyle().Foreground(theme.Foreground)
	boxed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		theme: theme,

		Title:    base.Bold(true).Foreground(theme.Primary),
		Subtitle: base.Bold(true).Foreground(theme.Secondary),
		Normal:   base,
		Muted:    base.Foreground(theme.Muted),
		Selected: base.Bold(true).Background(theme.Primary),
		Error:    base.Foreground(theme.Error),
		Success:  base.Foreground(theme.Success),
		Warning:  base.Foreground(theme.Warning),

		InputField: boxed.Padding(0, 1),
		StatusBar: base.Foreground(theme.Muted).
			Background(theme.Surface).
			Padding(0, 1),
		Help:   base.Foreground(theme.Muted),
		Border: boxed,
	}
}

// DefaultStyles returns styles derived from the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme these styles were derived from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
