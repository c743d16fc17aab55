// Package reportui provides the Bubble Tea report interface.
package reportui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumenlab/glaretrace/internal/stats"
)

const (
	plotHeight    = 8
	plotThreshold = 0.40
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	tableHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	selectedStyle    = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F0F0F0")).
				Background(lipgloss.Color("#C89A3A")).
				Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea report UI: a per-view-point summary
// table with a DGP profile plot for the selected point.
type Model struct {
	report stats.Report

	pointTable table.Model
	plotView   viewport.Model

	width  int
	height int
}

// NewModel constructs a report UI model.
func NewModel(report stats.Report) *Model {
	m := &Model{report: report}
	m.initTable()
	m.plotView = viewport.New(0, plotHeight+2)
	m.refreshPlot()
	return m
}

func (m *Model) initTable() {
	headers := stats.SummaryHeaders
	rows := stats.SummaryRows(m.report)

	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		width := len(h)
		for _, row := range rows {
			if i < len(row) && len(row[i]) > width {
				width = len(row[i])
			}
		}
		columns[i] = table.Column{Title: h, Width: width}
	}
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	styles := table.DefaultStyles()
	styles.Header = tableHeaderStyle
	styles.Selected = selectedStyle
	m.pointTable = table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(len(tableRows)+1),
		table.WithStyles(styles),
	)
}

func (m *Model) refreshPlot() {
	cursor := m.pointTable.Cursor()
	if cursor < 0 || cursor >= len(m.report.Points) {
		m.plotView.SetContent("")
		return
	}
	point := m.report.Points[cursor].Point
	series := m.report.PointSeries(point)
	width := m.width - 12
	var b strings.Builder
	if err := stats.PlotDGP(&b, fmt.Sprintf("DGP profile, point %d", point), series, plotThreshold, width, plotHeight); err != nil {
		b.Reset()
		b.WriteString("plot unavailable")
	}
	m.plotView.SetContent(b.String())
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.plotView.Width = msg.Width - 4
		m.refreshPlot()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.pointTable, cmd = m.pointTable.Update(msg)
	m.refreshPlot()
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	run := m.report.Run
	header := headerStyle.Render(fmt.Sprintf(
		"glaretrace report — run %d, finished %s, cores %d, ab %d, ad %d",
		run.ID, run.FinishedAt.Format("2006-01-02 15:04"), run.Cores, run.Bounces, run.Divisions))
	body := cardStyle.Render(m.pointTable.View())
	plot := cardStyle.Render(m.plotView.View())
	footer := footerStyle.Render("↑/↓ select view point · q quit")
	return strings.Join([]string{header, body, plot, footer}, "\n")
}
