package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	colorRaised     = lipgloss.Color("#3B82F6") // blue, matches the page buttons
	colorDifference = lipgloss.Color("#22C55E") // green
	colorMuted      = lipgloss.Color("#6B7280")
	colorFunded     = lipgloss.Color("#166534")
	colorFundedBg   = lipgloss.Color("#DCFCE7")
	colorError      = lipgloss.Color("#E53935")
)

// Styles groups the lipgloss styles used by the view.
type Styles struct {
	Header     lipgloss.Style
	State      lipgloss.Style
	Title      lipgloss.Style
	Selected   lipgloss.Style
	Amount     lipgloss.Style
	Difference lipgloss.Style
	Badge      lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
}

// DefaultStyles returns the standard styles.
func DefaultStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorRaised).Padding(0, 1),
		State:      lipgloss.NewStyle().Foreground(colorMuted),
		Title:      lipgloss.NewStyle().Bold(true),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(colorRaised),
		Amount:     lipgloss.NewStyle(),
		Difference: lipgloss.NewStyle().Foreground(colorDifference),
		Badge:      lipgloss.NewStyle().Foreground(colorFunded).Background(colorFundedBg).Padding(0, 1),
		Muted:      lipgloss.NewStyle().Foreground(colorMuted),
		Error:      lipgloss.NewStyle().Foreground(colorError),
	}
}
