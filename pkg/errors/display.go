package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	gutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	markerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD700"))
)

// UseColor reports whether f is an interactive terminal.
func UseColor(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// DisplayErrors writes each error followed by the offending source line and
// a caret under the reported column. Styling is applied only when color is set.
func DisplayErrors(w io.Writer, errs []ScriptError, color bool) {
	render := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	for _, err := range errs {
		pos := err.Pos()
		header := fmt.Sprintf("%s Error", err.Kind())
		if pos.IsZero() {
			fmt.Fprintf(w, "%s: %s\n\n", render(headerStyle, header), err.Message())
			continue
		}

		location := fmt.Sprintf("%d:%d", pos.Line, pos.Column)
		if pos.Source != nil {
			location = pos.Source.DisplayPath() + ":" + location
		}
		fmt.Fprintf(w, "%s at %s: %s\n", render(headerStyle, header), render(locationStyle, location), err.Message())

		if pos.Source == nil {
			fmt.Fprintln(w)
			continue
		}
		line, ok := pos.Source.Line(pos.Line)
		if !ok {
			fmt.Fprintln(w)
			continue
		}
		gutter := fmt.Sprintf("%4d | ", pos.Line)
		fmt.Fprintf(w, "%s%s\n", render(gutterStyle, gutter), strings.TrimRight(line, "\r\n\t "))

		width := 1
		content := pos.Source.Content
		if span := pos.EndPos - pos.StartPos; span > 1 && pos.EndPos <= len(content) && !strings.Contains(content[pos.StartPos:pos.EndPos], "\n") {
			width = span
		}
		marker := strings.Repeat(" ", max(pos.Column-1, 0)) + strings.Repeat("^", width)
		fmt.Fprintf(w, "%s%s\n\n", render(gutterStyle, "     | "), render(markerStyle, marker))
	}
}
