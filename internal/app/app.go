// Package app wires the controller, tutor client, and screens into the
// root Bubble Tea model.
package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumilearn/lumi/internal/controller"
	"github.com/lumilearn/lumi/internal/screen"
	"github.com/lumilearn/lumi/internal/screens/learning"
	"github.com/lumilearn/lumi/internal/screens/loading"
	"github.com/lumilearn/lumi/internal/screens/quizresults"
	"github.com/lumilearn/lumi/internal/screens/stylequiz"
	"github.com/lumilearn/lumi/internal/screens/welcome"
	"github.com/lumilearn/lumi/internal/store"
	"github.com/lumilearn/lumi/internal/tutor"
	"github.com/lumilearn/lumi/internal/ui/layout"
	"github.com/lumilearn/lumi/internal/ui/theme"
)

// Options carries the dependencies for the application.
type Options struct {
	Tutor     tutor.Client
	Snapshots store.SnapshotStore
	Logger    *slog.Logger
}

// AppModel is the root Bubble Tea model. It owns the controller and
// swaps the active screen to follow the controller's state.
type AppModel struct {
	ctrl   *controller.Controller
	tutor  tutor.Client
	logger *slog.Logger

	active      screen.Screen
	screenState controller.State

	loadingCaption string
	width          int
	height         int
}

func newAppModel(opts Options) *AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &AppModel{
		ctrl:   controller.New(opts.Snapshots, logger),
		tutor:  opts.Tutor,
		logger: logger,
	}
	m.active = welcome.New(m.ctrl)
	m.screenState = controller.StateWelcome
	return m
}

func (m *AppModel) Init() tea.Cmd {
	return m.active.Init()
}

// syncScreen rebuilds the active screen when the controller has moved
// to a different state, returning the new screen's Init command.
func (m *AppModel) syncScreen() tea.Cmd {
	if m.ctrl.State() == m.screenState {
		return nil
	}
	m.screenState = m.ctrl.State()
	switch m.screenState {
	case controller.StateWelcome:
		m.active = welcome.New(m.ctrl)
	case controller.StateLoading:
		m.active = loading.New(m.loadingCaption)
	case controller.StateShowQuiz:
		m.active = stylequiz.New()
	case controller.StateShowQuizResults:
		m.active = quizresults.New(m.ctrl.Style())
	case controller.StateLearning:
		m.active = learning.New(m.ctrl)
	}
	return m.active.Init()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.ctrl.CheckInvariants()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.ctrl.Err() != nil {
				m.ctrl.ClearErr()
				return m, nil
			}
		}

	// Screen intents.

	case welcome.StyleSelectedMsg:
		m.ctrl.SelectStyle(msg.Style)
		return m, nil

	case welcome.SubmitContentMsg:
		cmd := m.ctrl.SubmitContent(msg.Content)
		return m, tea.Batch(m.dispatch(cmd), m.syncScreen())

	case welcome.TakeStyleQuizMsg:
		m.ctrl.TakeStyleQuiz()
		return m, m.syncScreen()

	case welcome.ResumeMsg:
		m.ctrl.RequestResume()
		return m, m.syncScreen()

	case stylequiz.SubmitAnswersMsg:
		cmd := m.ctrl.SubmitStyleQuiz(msg.Answers)
		return m, tea.Batch(m.dispatch(cmd), m.syncScreen())

	case stylequiz.CancelMsg:
		m.ctrl.CancelStyleQuiz()
		return m, m.syncScreen()

	case quizresults.ContinueMsg:
		m.ctrl.ContinueFromResults()
		return m, m.syncScreen()

	case learning.ChangeTabMsg:
		cmd := m.ctrl.ChangeTab(msg.Tab)
		return m, m.dispatch(cmd)

	case learning.SendChatMsg:
		cmd := m.ctrl.SendChat(msg.Text)
		return m, m.dispatch(cmd)

	case learning.ExplainMoreMsg:
		cmd := m.ctrl.ExplainMore()
		return m, m.dispatch(cmd)

	case learning.StartOverMsg:
		m.ctrl.StartOver()
		return m, m.syncScreen()

	// Async completions.

	case analyzeDoneMsg:
		m.ctrl.AnalyzeDone(msg.epoch, msg.analysis, msg.err)
		return m, m.syncScreen()

	case classifyDoneMsg:
		m.ctrl.ClassifyDone(msg.epoch, msg.style, msg.err)
		return m, m.syncScreen()

	case quizReadyMsg:
		m.ctrl.QuizReady(msg.epoch, msg.questions, msg.err)
		return m, nil

	case notesReadyMsg:
		m.ctrl.NotesReady(msg.epoch, msg.notes, msg.err)
		return m, nil

	case chatStreamMsg:
		if msg.event.done {
			m.ctrl.ChatDone(msg.event.epoch, msg.event.id, msg.event.err)
			return m, nil
		}
		m.ctrl.ChatDelta(msg.event.epoch, msg.event.id, msg.event.delta)
		return m, awaitChat(msg.ch)
	}

	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)
	return m, cmd
}

func (m *AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	styleLabel := ""
	if m.ctrl.State() == controller.StateLearning {
		styleLabel = string(m.ctrl.Style())
	}
	header := layout.RenderHeader(m.active.Title(), styleLabel, m.width)

	banner := ""
	if err := m.ctrl.Err(); err != nil {
		banner = "  " + theme.ErrorBanner.Render(err.Message) +
			" " + theme.Hint.Render("(Esc to dismiss)")
	}

	hints := []layout.KeyHint{}
	if provider, ok := m.active.(screen.KeyHintProvider); ok {
		hints = provider.KeyHints()
	}
	if len(hints) == 0 {
		hints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	footer := layout.RenderFooter(hints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if banner != "" {
		contentHeight--
	}
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.active.View(m.width, contentHeight)
	if banner != "" {
		content = banner + "\n" + content
	}
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
