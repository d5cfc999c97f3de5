package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/navstack/internal/infrastructure/persistence/sqlite"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Bold(false)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// RunsTableColumns returns columns for the trace runs table.
func RunsTableColumns() []table.Column {
	return []table.Column{
		{Title: "Run", Width: 36},
		{Title: "Label", Width: 24},
		{Title: "Stamp", Width: 12},
		{Title: "Events", Width: 7},
		{Title: "Started", Width: 19},
		{Title: "Duration", Width: 10},
	}
}

// RunRow converts a stored run to a table row.
func RunRow(run sqlite.Run) table.Row {
	duration := "open"
	if run.EndedAt != nil {
		duration = run.EndedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
	}
	return table.Row{
		run.ID,
		run.Label,
		fmt.Sprintf("%d", run.Stamp),
		fmt.Sprintf("%d", run.Events),
		run.StartedAt.Local().Format("2006-01-02 15:04:05"),
		duration,
	}
}

// RenderRuns renders runs as a static table.
func RenderRuns(theme *Theme, runs []sqlite.Run) string {
	if len(runs) == 0 {
		return theme.Subtle.Render("No recorded runs.")
	}
	rows := make([]table.Row, len(runs))
	for i, run := range runs {
		rows[i] = RunRow(run)
	}
	width := 0
	for _, c := range RunsTableColumns() {
		width += c.Width + 2
	}
	return NewStyledTable(theme, RunsTableColumns(), rows, width, len(rows)+1).View()
}
