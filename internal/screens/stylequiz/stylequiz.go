// Package stylequiz runs the four-question learning-style discovery
// quiz. Answers are free of right/wrong; they feed the classifier.
package stylequiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumilearn/lumi/internal/screen"
	"github.com/lumilearn/lumi/internal/session"
	"github.com/lumilearn/lumi/internal/ui/layout"
	"github.com/lumilearn/lumi/internal/ui/theme"
)

// Intent messages handled by the app model.
type (
	// SubmitAnswersMsg carries all chosen answers for classification.
	SubmitAnswersMsg struct{ Answers []string }

	// CancelMsg returns to the welcome screen without answering.
	CancelMsg struct{}
)

// QuizScreen walks the learner through the discovery questions.
type QuizScreen struct {
	questions []session.DiscoveryQuestion
	index     int
	selected  int
	answers   []string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the discovery quiz screen.
func New() *QuizScreen {
	return &QuizScreen{
		questions: session.DiscoveryQuiz,
	}
}

func (q *QuizScreen) Title() string {
	return "Discover Your Style"
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Back"},
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return q, nil
	}

	current := q.questions[q.index]
	switch kmsg.String() {
	case "esc":
		return q, func() tea.Msg { return CancelMsg{} }
	case "up", "k":
		if q.selected > 0 {
			q.selected--
		}
	case "down", "j":
		if q.selected < len(current.Options)-1 {
			q.selected++
		}
	case "enter":
		q.answers = append(q.answers, current.Options[q.selected])
		if q.index == len(q.questions)-1 {
			answers := q.answers
			return q, func() tea.Msg { return SubmitAnswersMsg{Answers: answers} }
		}
		q.index++
		q.selected = 0
	}
	return q, nil
}

func (q *QuizScreen) View(width, height int) string {
	current := q.questions[q.index]

	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Question %d of %d", q.index+1, len(q.questions))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		PaddingLeft(4).
		Render(current.Question))
	b.WriteString("\n\n")

	for i, opt := range current.Options {
		if i == q.selected {
			b.WriteString(theme.Selected.PaddingLeft(4).Render("▸ "+opt) + "\n")
		} else {
			b.WriteString(theme.Unselected.PaddingLeft(4).Render("  "+opt) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.PaddingLeft(4).Render("There are no wrong answers. Pick what sounds most like you."))
	return b.String()
}
