// Package tui implements the interactive findings review interface.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rpascale86/nfcheck/internal/adapters/driving/tui/styles"
	"github.com/rpascale86/nfcheck/internal/core/domain"
	"github.com/rpascale86/nfcheck/internal/core/ports/driving"
)

// Messages passed between commands and the model.

type runsLoaded struct {
	runs []domain.Run
	err  error
}

type findingsLoaded struct {
	runID    string
	findings []domain.Finding
	err      error
}

// Model is the findings review model: a run selector over a findings
// table.
type Model struct {
	styles  *styles.Styles
	history driving.RunHistory
	ctx     context.Context

	runs     []domain.Run
	runIdx   int
	findings []domain.Finding
	showAll  bool
	table    table.Model

	width  int
	height int
	err    error
}

// NewModel creates the review model.
func NewModel(history driving.RunHistory) *Model {
	s := styles.DefaultStyles()

	t := table.New(
		table.WithColumns(findingColumns(80)),
		table.WithFocused(true),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(s.Theme().Border).
		BorderBottom(true).
		Bold(true)
	ts.Selected = s.Selected
	t.SetStyles(ts)

	return &Model{
		styles:  s,
		history: history,
		ctx:     context.Background(),
		table:   t,
	}
}

// WithContext sets the context used for history queries.
func (m *Model) WithContext(ctx context.Context) *Model {
	if ctx != nil {
		m.ctx = ctx
	}
	return m
}

func findingColumns(width int) []table.Column {
	detail := width - 12 - 14 - 12 - 6
	if detail < 20 {
		detail = 20
	}
	return []table.Column{
		{Title: "Nota", Width: 12},
		{Title: "Campo", Width: 14},
		{Title: "Status", Width: 12},
		{Title: "Detalhe", Width: detail},
	}
}

// Init loads the run history.
func (m *Model) Init() tea.Cmd {
	return m.loadRuns()
}

func (m *Model) loadRuns() tea.Cmd {
	return func() tea.Msg {
		runs, err := m.history.Runs(m.ctx, 50)
		return runsLoaded{runs: runs, err: err}
	}
}

func (m *Model) loadFindings(runID string) tea.Cmd {
	return func() tea.Msg {
		findings, err := m.history.Findings(m.ctx, runID)
		return findingsLoaded{runID: runID, findings: findings, err: err}
	}
}

// Update handles key presses and loaded data.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(findingColumns(msg.Width - 4))
		m.table.SetHeight(msg.Height - 6)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.runIdx < len(m.runs)-1 {
				m.runIdx++
				return m, m.loadFindings(m.runs[m.runIdx].ID)
			}
			return m, nil
		case "right", "l":
			if m.runIdx > 0 {
				m.runIdx--
				return m, m.loadFindings(m.runs[m.runIdx].ID)
			}
			return m, nil
		case "a":
			m.showAll = !m.showAll
			m.refreshRows()
			return m, nil
		case "r":
			return m, m.loadRuns()
		}

	case runsLoaded:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.runs = msg.runs
		if m.runIdx >= len(m.runs) {
			m.runIdx = 0
		}
		if len(m.runs) == 0 {
			m.findings = nil
			m.refreshRows()
			return m, nil
		}
		return m, m.loadFindings(m.runs[m.runIdx].ID)

	case findingsLoaded:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.findings = msg.findings
		m.refreshRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// refreshRows rebuilds the table from the current findings and filter.
func (m *Model) refreshRows() {
	rows := make([]table.Row, 0, len(m.findings))
	for _, f := range m.findings {
		if !m.showAll && !f.Problem() {
			continue
		}
		rows = append(rows, table.Row{
			f.InvoiceNumber,
			string(f.Field),
			m.renderStatus(f.Status),
			f.Detail,
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *Model) renderStatus(status domain.FindingStatus) string {
	switch status {
	case domain.StatusMatched:
		return m.styles.Success.Render(string(status))
	case domain.StatusMissing:
		return m.styles.Warning.Render(string(status))
	case domain.StatusDivergent, domain.StatusError:
		return m.styles.Error.Render(string(status))
	default:
		return string(status)
	}
}

// View renders the header, table and key hints.
func (m *Model) View() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)) +
			"\n" + m.helpLine()
	}
	if len(m.runs) == 0 {
		return m.styles.Muted.Render("No runs recorded yet. Run 'nfcheck process' first.") +
			"\n" + m.helpLine()
	}

	run := m.runs[m.runIdx]
	header := m.styles.Title.Render("nfcheck review") + "  " +
		m.styles.Normal.Render(fmt.Sprintf("run %d/%d  %s",
			m.runIdx+1, len(m.runs), run.StartedAt.Local().Format("2006-01-02 15:04:05")))
	summary := m.styles.Muted.Render(fmt.Sprintf(
		"processed %d  matched %d  divergent %d  missing %d  errors %d",
		run.Processed, run.Matched, run.Divergent, run.Missing, run.Errors))

	filter := "problems only"
	if m.showAll {
		filter = "all findings"
	}

	return header + "\n" + summary + "\n" +
		m.styles.Border.Render(m.table.View()) + "\n" +
		m.styles.Muted.Render("showing: "+filter) + "\n" +
		m.helpLine()
}

func (m *Model) helpLine() string {
	return m.styles.Help.Render("←/→ run  ↑/↓ scroll  a all/problems  r refresh  q quit")
}
