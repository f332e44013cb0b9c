package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	algoritmo "go.algoritmo.dev/pkg"
)

var (
	colorError = lipgloss.Color("#EF4444") // Red
	colorMuted = lipgloss.Color("#94A3B8") // Slate 400

	headerStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	snippetStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

type diagnostics struct {
	color bool
}

// render formats err against src. The first line is the header, the rest
// is the source snippet.
func (d diagnostics) render(err error, src string) string {
	text := algoritmo.FormatError(err, src)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	if !d.color {
		return text
	}

	header, rest, _ := strings.Cut(text, "\n")

	var b strings.Builder
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")
	if rest = strings.TrimRight(rest, "\n"); rest != "" {
		b.WriteString(snippetStyle.Render(rest))
		b.WriteString("\n")
	}

	return b.String()
}
