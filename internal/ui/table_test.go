package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
)

var processColumns = []TableColumn{
	{Title: "PID", Width: 8},
	{Title: "NAME", Width: 16},
	{Title: "STATUS", Width: 8},
}

func TestTableStyles(t *testing.T) {
	s := TableStyles()
	assert.True(t, s.Header.GetBold())
	assert.True(t, s.Header.GetBorderBottom())
	assert.False(t, s.Selected.GetBold())
}

func TestNewTable(t *testing.T) {
	rows := []table.Row{
		{"42", "postgres", "run"},
		{"7", "sshd", "sleep"},
	}

	tbl := NewTable(processColumns, rows)

	assert.False(t, tbl.Focused())
	assert.Equal(t, len(rows)+1, tbl.Height())
	view := tbl.View()
	for _, s := range []string{"PID", "NAME", "STATUS", "postgres", "sshd", "sleep"} {
		assert.Contains(t, view, s)
	}
}

func TestNewTable_EmptyRows(t *testing.T) {
	tbl := NewTable(processColumns, nil)
	assert.Contains(t, tbl.View(), "NAME")
}

func TestRenderSimpleTable(t *testing.T) {
	output := RenderSimpleTable(processColumns, [][]string{
		{"42", "postgres", "run"},
		{"7", "sshd", "sleep"},
	})

	assert.Contains(t, output, "postgres")
	assert.Contains(t, output, "sleep")
	assert.Less(t, strings.Index(output, "postgres"), strings.Index(output, "sshd"), "rows keep their order")
}

func TestRenderSimpleTable_EmptyRows(t *testing.T) {
	assert.Empty(t, RenderSimpleTable(processColumns, nil))
	assert.Empty(t, RenderSimpleTable(processColumns, [][]string{}))
}

func TestRenderKeyValues(t *testing.T) {
	output := RenderKeyValues([]KeyValue{
		{Key: "CPU", Value: "Test CPU  2400 MHz"},
		{Key: "Network", Value: "in 1.0KB/s"},
	})

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "CPU      Test CPU  2400 MHz", lines[0], "labels pad to the longest plus two")
	assert.Equal(t, "Network  in 1.0KB/s", lines[1])
}

func TestRenderKeyValues_Empty(t *testing.T) {
	assert.Empty(t, RenderKeyValues(nil))
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"shorter than width", "foo", 5, "foo  "},
		{"equal to width", "foobar", 6, "foobar"},
		{"longer than width", "foobar", 3, "foobar"},
		{"empty string", "", 3, "   "},
		{"zero width", "foo", 0, "foo"},
		{"wide runes", "日本", 6, "日本  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, padRight(tt.input, tt.width))
		})
	}
}
