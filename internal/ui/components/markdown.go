package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders tutor output as terminal markdown. The renderer is
// rebuilt lazily when the wrap width changes.
type Markdown struct {
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdown creates a renderer wrapping at the given width.
func NewMarkdown(width int) *Markdown {
	return &Markdown{width: width}
}

// SetWidth changes the wrap width for subsequent renders.
func (m *Markdown) SetWidth(width int) {
	if width == m.width {
		return
	}
	m.width = width
	m.renderer = nil
}

// Render converts markdown to styled terminal text. On renderer failure
// the raw text is returned so content is never lost.
func (m *Markdown) Render(text string) string {
	if m.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(m.width),
		)
		if err != nil {
			return text
		}
		m.renderer = r
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
