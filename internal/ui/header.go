package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Version string // Version string (e.g., "v0.4.0")
	Tagline string // Optional tagline
}

// HeaderWidth is the default width of the header divider
const HeaderWidth = 50

// RenderHeader renders the tool name, version and tagline over a divider.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true)

	var output strings.Builder

	output.WriteString(titleStyle.Render("tusk"))
	if info.Version != "" {
		output.WriteString(" ")
		output.WriteString(lipgloss.NewStyle().Foreground(ColorInfo).Render(info.Version))
	}
	output.WriteString("\n")

	if info.Tagline != "" {
		output.WriteString(lipgloss.NewStyle().Foreground(ColorSecondary).Render(info.Tagline))
		output.WriteString("\n")
	}

	output.WriteString(lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("━", HeaderWidth)))
	output.WriteString("\n")

	return output.String()
}

// PrintHeader writes the styled header to w.
func PrintHeader(w io.Writer, info HeaderInfo) {
	fmt.Fprint(w, RenderHeader(info))
}
