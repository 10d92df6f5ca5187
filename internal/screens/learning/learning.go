// Package learning is the main session screen: a tabbed view over the
// tutor chat, generated notes, and the comprehension quiz.
package learning

import (
	tea "charm.land/bubbletea/v2"

	"github.com/lumilearn/lumi/internal/controller"
	"github.com/lumilearn/lumi/internal/screen"
	"github.com/lumilearn/lumi/internal/session"
	"github.com/lumilearn/lumi/internal/ui/components"
	"github.com/lumilearn/lumi/internal/ui/layout"
)

// Intent messages handled by the app model.
type (
	// SendChatMsg submits a chat message to the tutor.
	SendChatMsg struct{ Text string }

	// ExplainMoreMsg asks the tutor to expand on its last reply.
	ExplainMoreMsg struct{}

	// ChangeTabMsg switches the active tab.
	ChangeTabMsg struct{ Tab session.Tab }

	// StartOverMsg abandons the session after confirmation.
	StartOverMsg struct{}
)

// LearningScreen renders the active session. All session data is read
// from the controller; the screen only keeps view-local state such as
// scroll position and quiz progress.
type LearningScreen struct {
	ctrl  *controller.Controller
	input components.TextInput
	md    *components.Markdown

	scroll       int // lines scrolled up from the bottom
	confirmReset bool

	// Local quiz progress. The questions themselves live in the
	// controller; answering and scoring happen entirely client-side.
	quizIdx      int
	quizScore    int
	quizDone     bool
	quizLoaded   bool
	currentQ     components.MultiChoice
}

var _ screen.Screen = (*LearningScreen)(nil)
var _ screen.KeyHintProvider = (*LearningScreen)(nil)

// New creates the learning screen bound to the controller.
func New(ctrl *controller.Controller) *LearningScreen {
	return &LearningScreen{
		ctrl:  ctrl,
		input: components.NewTextInput("Ask Lumi anything about the material...", 500),
		md:    components.NewMarkdown(layout.MinWidth - 8),
	}
}

func (l *LearningScreen) Title() string {
	return "Study Session"
}

func (l *LearningScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LearningScreen) KeyHints() []layout.KeyHint {
	if l.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Start over"},
			{Key: "N", Description: "Keep session"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next tab"},
	}
	switch l.ctrl.ActiveTab() {
	case session.TabChat:
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: "Send"},
		)
		if l.ctrl.CanExplainMore() {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+E", Description: "Explain more"})
		}
	case session.TabQuiz:
		if l.quizDone {
			hints = append(hints,
				layout.KeyHint{Key: "R", Description: "Retake"},
				layout.KeyHint{Key: "Enter", Description: "Back to chat"},
			)
		} else if l.quizLoaded {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Answer"})
		}
	}
	hints = append(hints,
		layout.KeyHint{Key: "PgUp/PgDn", Description: "Scroll"},
		layout.KeyHint{Key: "Ctrl+N", Description: "New session"},
	)
	return hints
}

// syncQuiz picks up freshly generated quiz questions. An empty quiz is
// treated as not yet generated.
func (l *LearningScreen) syncQuiz() {
	quiz := l.ctrl.Quiz()
	if len(quiz) == 0 || l.quizLoaded {
		return
	}
	l.quizLoaded = true
	l.quizScore = 0
	l.quizDone = false
	l.loadQuestion(0)
}

// loadQuestion shows question i, skipping any question whose stated
// answer matches none of its options. Running past the last question
// completes the quiz.
func (l *LearningScreen) loadQuestion(i int) {
	quiz := l.ctrl.Quiz()
	for i < len(quiz) && quiz[i].CorrectIndex() < 0 {
		i++
	}
	if i >= len(quiz) {
		l.quizDone = true
		return
	}
	l.quizIdx = i
	q := quiz[i]
	l.currentQ = components.NewMultiChoice(q.Question, q.Options, q.CorrectIndex())
	l.currentQ.Explanation = q.Explanation
}

func (l *LearningScreen) resetQuiz() {
	l.quizLoaded = false
	l.syncQuiz()
}

func (l *LearningScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	l.syncQuiz()

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if l.ctrl.ActiveTab() == session.TabChat {
			var cmd tea.Cmd
			l.input, cmd = l.input.Update(msg)
			return l, cmd
		}
		return l, nil
	}

	if l.confirmReset {
		switch kmsg.String() {
		case "y", "Y":
			l.confirmReset = false
			return l, func() tea.Msg { return StartOverMsg{} }
		case "n", "N", "esc":
			l.confirmReset = false
		}
		return l, nil
	}

	switch kmsg.String() {
	case "ctrl+n":
		l.confirmReset = true
		return l, nil

	case "tab":
		next := nextTab(l.ctrl.ActiveTab())
		l.scroll = 0
		return l, func() tea.Msg { return ChangeTabMsg{Tab: next} }

	case "pgup":
		l.scroll += 5
		return l, nil

	case "pgdown":
		l.scroll -= 5
		if l.scroll < 0 {
			l.scroll = 0
		}
		return l, nil
	}

	switch l.ctrl.ActiveTab() {
	case session.TabChat:
		return l.updateChat(kmsg)
	case session.TabQuiz:
		return l.updateQuiz(kmsg)
	}
	return l, nil
}

func (l *LearningScreen) updateChat(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "enter":
		text := l.input.Value()
		if text == "" || l.ctrl.Chatting() {
			return l, nil
		}
		l.input.Reset()
		l.scroll = 0
		return l, func() tea.Msg { return SendChatMsg{Text: text} }

	case "ctrl+e":
		if l.ctrl.CanExplainMore() {
			l.scroll = 0
			return l, func() tea.Msg { return ExplainMoreMsg{} }
		}
		return l, nil
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(kmsg)
	return l, cmd
}

func (l *LearningScreen) updateQuiz(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if !l.quizLoaded {
		return l, nil
	}

	if l.quizDone {
		switch kmsg.String() {
		case "r", "R":
			l.resetQuiz()
		case "enter":
			return l, func() tea.Msg { return ChangeTabMsg{Tab: session.TabChat} }
		}
		return l, nil
	}

	wasSubmitted := l.currentQ.Submitted
	var cmd tea.Cmd
	l.currentQ, cmd = l.currentQ.Update(kmsg)

	if !wasSubmitted && l.currentQ.Submitted {
		if l.currentQ.IsCorrect() {
			l.quizScore++
		}
		return l, cmd
	}

	// Advance past an already-answered question.
	if wasSubmitted && kmsg.String() == "enter" {
		l.loadQuestion(l.quizIdx + 1)
	}
	return l, cmd
}

func nextTab(t session.Tab) session.Tab {
	for i, known := range session.Tabs {
		if known == t {
			return session.Tabs[(i+1)%len(session.Tabs)]
		}
	}
	return session.TabChat
}
