// Package quizresults announces the classified learning style.
package quizresults

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumilearn/lumi/internal/screen"
	"github.com/lumilearn/lumi/internal/session"
	"github.com/lumilearn/lumi/internal/ui/components"
	"github.com/lumilearn/lumi/internal/ui/layout"
	"github.com/lumilearn/lumi/internal/ui/theme"
)

// ContinueMsg returns to the welcome screen with the style applied.
type ContinueMsg struct{}

// ResultsScreen shows the outcome of the discovery quiz.
type ResultsScreen struct {
	style session.Style
	next  components.Button
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen for the given style.
func New(style session.Style) *ResultsScreen {
	return &ResultsScreen{
		style: style,
		next: components.NewButton("Let's go", true, func() tea.Cmd {
			return func() tea.Msg { return ContinueMsg{} }
		}),
	}
}

func (r *ResultsScreen) Title() string {
	return "Your Learning Style"
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Let's go"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	r.next, cmd = r.next.Update(msg)
	return r, cmd
}

func (r *ResultsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Based on your answers, you seem to be a"))
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render(string(r.style) + " learner"))
	b.WriteString("\n\n")
	if desc := session.Describe(r.style); desc != "" {
		b.WriteString(theme.Subtitle.Width(width).Render(desc))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Subtitle.Width(width).Render("Lumi will tailor every explanation to this style."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(r.next.View()))
	return b.String()
}
