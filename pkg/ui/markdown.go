package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders resource descriptions for the detail view. The renderer
// is rebuilt on resize since word wrap is baked in at construction.
type Markdown struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdown creates a markdown renderer wrapping at the given width.
func NewMarkdown(width int) *Markdown {
	m := &Markdown{}
	m.SetWidth(width)
	return m
}

// SetWidth rebuilds the renderer for a new wrap width.
func (m *Markdown) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if width > 100 {
		width = 100
	}
	if m.renderer != nil && m.width == width {
		return
	}
	m.width = width
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}

// Render renders markdown to styled terminal text. On any renderer failure
// the raw text comes back unchanged; a detail view beats a blank pane.
func (m *Markdown) Render(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
