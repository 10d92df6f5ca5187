package learning

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lumilearn/lumi/internal/controller"
	"github.com/lumilearn/lumi/internal/session"
	"github.com/lumilearn/lumi/internal/ui/theme"
)

func (l *LearningScreen) View(width, height int) string {
	l.syncQuiz()
	l.md.SetWidth(width - 8)

	if l.confirmReset {
		return l.renderConfirmReset(width)
	}

	var b strings.Builder
	b.WriteString(l.renderTabs(width))
	b.WriteString("\n")

	bodyHeight := height - 3
	switch l.ctrl.ActiveTab() {
	case session.TabChat:
		b.WriteString(l.renderChat(width, bodyHeight))
	case session.TabNotes:
		b.WriteString(l.renderNotes(width, bodyHeight))
	case session.TabQuiz:
		b.WriteString(l.renderQuiz(width, bodyHeight))
	}
	return b.String()
}

func (l *LearningScreen) renderTabs(width int) string {
	labels := map[session.Tab]string{
		session.TabChat:  "Chat",
		session.TabNotes: "Notes",
		session.TabQuiz:  "Quiz",
	}
	parts := make([]string, 0, len(session.Tabs))
	for _, t := range session.Tabs {
		label := labels[t]
		if t == l.ctrl.ActiveTab() {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.TabInactive.Render(label))
		}
	}
	return "  " + lipgloss.JoinHorizontal(lipgloss.Bottom, parts...)
}

func (l *LearningScreen) renderConfirmReset(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render("\n\n\nStart over?\n\nThis clears the session and its saved progress.\n\n" +
			theme.Hint.Render("Y to confirm, N to keep studying"))
}

// renderChat shows the session overview, the transcript, and the input
// line. The transcript is anchored to the bottom with PgUp history.
func (l *LearningScreen) renderChat(width, height int) string {
	var body strings.Builder

	learning := l.ctrl.Learning()
	if learning != nil {
		body.WriteString(l.renderOverview(learning, width))
		body.WriteString("\n")
	}

	for _, m := range l.ctrl.Transcript() {
		body.WriteString(l.renderMessage(m, width))
		body.WriteString("\n")
	}

	inputLine := "  " + l.input.View()
	if l.ctrl.Chatting() {
		inputLine = "  " + theme.Hint.Render("Lumi is writing...")
	}

	// Reserve two rows for the input line and its margin.
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	lines := strings.Split(strings.TrimRight(body.String(), "\n"), "\n")
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if l.scroll > maxScroll {
		l.scroll = maxScroll
	}
	end := len(lines) - l.scroll
	start := end - visible
	if start < 0 {
		start = 0
	}
	window := strings.Join(lines[start:end], "\n")

	return window + "\n\n" + inputLine
}

func (l *LearningScreen) renderOverview(learning *controller.Learning, width int) string {
	var b strings.Builder
	b.WriteString(theme.Selected.Render("Summary") + "\n")
	b.WriteString(theme.Body.Render(learning.Session.Summary) + "\n")
	if len(learning.Session.KeyQuestions) > 0 {
		b.WriteString(theme.Selected.Render("Questions to explore") + "\n")
		for _, q := range learning.Session.KeyQuestions {
			b.WriteString(theme.Body.Render("• "+q) + "\n")
		}
	}
	card := theme.Card.Width(width - 6).Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.NewStyle().PaddingLeft(2).Render(card) + "\n"
}

func (l *LearningScreen) renderMessage(m session.Message, width int) string {
	if m.Sender == session.SenderUser {
		label := theme.ChatUser.Render("You")
		return "  " + label + " " + theme.Body.Render(m.Text)
	}

	label := theme.ChatTutor.Render("Lumi")
	if m.Text == "" {
		return "  " + label + " " + theme.Hint.Render("thinking...")
	}
	rendered := l.md.Render(m.Text)
	return "  " + label + "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(rendered)
}

func (l *LearningScreen) renderNotes(width, height int) string {
	notes := l.ctrl.Notes()
	if notes == nil {
		if l.ctrl.Generating() {
			return centeredHint(width, "Lumi is preparing your Cornell notes...")
		}
		return centeredHint(width, "Open this tab again to generate notes.")
	}

	var b strings.Builder
	if len(notes.Cues) > 0 {
		b.WriteString(theme.Selected.Render("Cues") + "\n")
		for _, c := range notes.Cues {
			b.WriteString(theme.Body.Render("• "+c) + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(theme.Selected.Render("Notes") + "\n")
	b.WriteString(l.md.Render(notes.MainNotes) + "\n\n")
	if notes.Summary != "" {
		b.WriteString(theme.Selected.Render("Summary") + "\n")
		b.WriteString(theme.Body.Render(notes.Summary) + "\n")
	}

	return scrollWindow(b.String(), height, l.scroll, &l.scroll, 2)
}

func (l *LearningScreen) renderQuiz(width, height int) string {
	quiz := l.ctrl.Quiz()
	if len(quiz) == 0 {
		if l.ctrl.Generating() {
			return centeredHint(width, "Lumi is writing a quiz on your material...")
		}
		return centeredHint(width, "Open this tab again to generate the quiz.")
	}
	if !l.quizLoaded {
		l.syncQuiz()
	}

	if l.quizDone {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf("\n\n\nQuiz complete!\n\nYou scored %d out of %d.\n\n", l.quizScore, len(quiz)) +
				theme.Hint.Render("R to retake, Enter to go back to the chat"))
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Question %d of %d    Score %d", l.quizIdx+1, len(quiz), l.quizScore)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(l.currentQ.View()))
	if l.currentQ.Submitted {
		b.WriteString("\n")
		b.WriteString(theme.Hint.PaddingLeft(4).Render("Press Enter to continue"))
	}
	return b.String()
}

func centeredHint(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  " + text)
}

// scrollWindow bottom-anchors content within height rows, honoring and
// clamping the scroll offset.
func scrollWindow(content string, height, scroll int, clamp *int, reserved int) string {
	visible := height - reserved
	if visible < 1 {
		visible = 1
	}
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
		*clamp = maxScroll
	}
	end := len(lines) - scroll
	start := end - visible
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:end], "\n")
}
