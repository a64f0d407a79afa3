package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nao1215/fundboard/internal/model"
	"github.com/nao1215/fundboard/internal/money"
	"github.com/nao1215/fundboard/internal/view"
)

// DefaultTitle is the header text when none is configured.
const DefaultTitle = "Fundraising Campaigns"

// keyActions maps single keys to controller actions.
var keyActions = map[string]view.Action{
	"r": view.ActionRaisedAsc,
	"R": view.ActionRaisedDesc,
	"d": view.ActionDifferenceAsc,
	"D": view.ActionDifferenceDesc,
	"f": view.ActionToggleFunded,
}

// Model is the bubbletea model for the listing.
type Model struct {
	ctrl   *view.Controller
	cursor int
	width  int
	title  string
	err    error

	bar    progress.Model
	styles Styles
	money  *money.Formatter
}

// Option configures a Model.
type Option func(*Model)

// WithTitle sets the header text.
func WithTitle(title string) Option {
	return func(m *Model) {
		if title != "" {
			m.title = title
		}
	}
}

// WithFormatter sets the amount formatter.
func WithFormatter(f *money.Formatter) Option {
	return func(m *Model) {
		if f != nil {
			m.money = f
		}
	}
}

// WithStyles replaces the default styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// New creates a Model driving ctrl.
func New(ctrl *view.Controller, opts ...Option) Model {
	m := Model{
		ctrl:   ctrl,
		width:  80,
		title:  DefaultTitle,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		styles: DefaultStyles(),
		money:  money.NewFormatter(money.DefaultTag),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(10, min(60, msg.Width-8))
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "j", "down":
			m.cursor++
		case "k", "up":
			m.cursor--
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			m.cursor = len(m.ctrl.Campaigns()) - 1
		default:
			if action, ok := keyActions[key]; ok {
				m.err = m.ctrl.Apply(action)
			}
		}
		m.clampCursor()
	}
	return m, nil
}

// clampCursor keeps the selection inside the listing.
func (m *Model) clampCursor() {
	n := len(m.ctrl.Campaigns())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Cursor returns the selected index.
func (m Model) Cursor() int {
	return m.cursor
}

// State returns the controller state.
func (m Model) State() model.Query {
	return m.ctrl.State()
}

// Selected returns the selected campaign, if any.
func (m Model) Selected() (model.Campaign, bool) {
	campaigns := m.ctrl.Campaigns()
	if m.cursor < 0 || m.cursor >= len(campaigns) {
		return model.Campaign{}, false
	}
	return campaigns[m.cursor], true
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder
	listing := m.ctrl.Listing()
	q := listing.Query

	sb.WriteString(m.styles.Header.Render(m.title))
	sb.WriteString("\n")

	funded := fmt.Sprintf("fully funded hidden (%d)", listing.Hidden)
	if q.IncludeFunded {
		funded = "fully funded shown"
	}
	sb.WriteString(m.styles.State.Render(fmt.Sprintf("Sorted by %s (%s) · %s", q.Key.Label(), q.Direction.Label(), funded)))
	sb.WriteString("\n\n")

	if listing.IsEmpty() {
		sb.WriteString(m.styles.Muted.Render("No campaigns to display."))
		sb.WriteString("\n")
	}

	for i, c := range listing.Campaigns {
		m.writeCampaign(&sb, i, c)
	}

	s := listing.Summary()
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("Showing %d of %d · raised %s of %s",
		s.Count, listing.Total, m.money.Currency(s.TotalRaised), m.money.Currency(s.TotalGoal))))
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(m.styles.Error.Render(m.err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Muted.Render("r/R raised asc/desc · d/D difference asc/desc · f toggle funded · j/k move · q quit"))
	sb.WriteString("\n")

	return sb.String()
}

// writeCampaign renders one entry; the selected entry also shows its
// progress bar and link.
func (m Model) writeCampaign(sb *strings.Builder, i int, c model.Campaign) {
	marker := "  "
	title := m.styles.Title.Render(c.Title)
	if i == m.cursor {
		marker = "> "
		title = m.styles.Selected.Render(c.Title)
	}

	sb.WriteString(marker)
	sb.WriteString(title)
	if c.FullyFunded() {
		sb.WriteString(" ")
		sb.WriteString(m.styles.Badge.Render("Fully funded"))
	}
	sb.WriteString("\n")

	sb.WriteString("    ")
	sb.WriteString(m.styles.Amount.Render(fmt.Sprintf("Raised: %s (Goal: %s)", m.money.Currency(c.AmountRaised), m.money.Currency(c.Goal))))
	sb.WriteString("  ")
	sb.WriteString(m.styles.Difference.Render("Difference from Goal: " + m.money.Number(c.DifferenceFromGoal)))
	sb.WriteString("\n")

	if i == m.cursor {
		sb.WriteString("    ")
		sb.WriteString(m.bar.ViewAs(min(c.Progress(), 1)))
		sb.WriteString("\n    ")
		sb.WriteString(m.styles.Muted.Render(c.URL))
		sb.WriteString("\n")
	}
}

// Run starts the interactive program and blocks until the user quits or
// ctx ends. in and out default to the terminal when nil.
func Run(ctx context.Context, m Model, in io.Reader, out io.Writer) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	} else {
		opts = append(opts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}
