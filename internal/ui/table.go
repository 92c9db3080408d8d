package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// TableStyles returns the bubbles table styling used for CLI output: a bold
// header over a muted rule, plain cells, and a muted selection bar.
func TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.Foreground(ColorPrimary)
	s.Selected = s.Selected.
		Foreground(ColorPrimary).
		Background(ColorMuted).
		Bold(false)
	return s
}

// NewTable creates an unfocused bubbles table tall enough for every row.
// Callers that want keyboard navigation call Focus and SetHeight.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
		table.WithStyles(TableStyles()),
	)
	return t
}

// RenderSimpleTable renders rows once, for output that isn't interactive.
// It returns "" when there are no rows.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}
	return NewTable(columns, tableRows).View()
}

// KeyValue is one labelled line of a summary block.
type KeyValue struct {
	Key   string
	Value string
}

// RenderKeyValues renders labelled lines with the labels padded to a common width.
//
//	CPU      Intel(R) Core(TM) i7  2400 MHz
//	Memory   2.0 GB / 8.0 GB
func RenderKeyValues(rows []KeyValue) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Key))
	}

	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(padRight(keyStyle.Render(r.Key), width+2))
		b.WriteString(r.Value)
		b.WriteString("\n")
	}
	return b.String()
}

// padRight pads s with spaces to width visible cells.
func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
