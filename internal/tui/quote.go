// Package tui holds terminal presentation helpers for xivquote output.
package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// QuoteStyle renders a quote dimmed and in italics.
//
//nolint:gochecknoglobals // Immutable style value.
var QuoteStyle = lipgloss.NewStyle().Faint(true).Italic(true)

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// RenderQuote returns text styled with QuoteStyle when styled is true, or
// text unchanged otherwise.
func RenderQuote(text string, styled bool) string {
	if !styled {
		return text
	}
	return QuoteStyle.Render(text)
}
