package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/lumilearn/lumi/internal/controller"
)

// dispatch turns a controller command into the tea.Cmd that performs
// the work and reports back. CmdNone maps to nil.
func (m *AppModel) dispatch(cmd controller.Command) tea.Cmd {
	switch cmd.Kind {
	case controller.CmdAnalyze:
		m.loadingCaption = "Lumi is reading your material..."
		return func() tea.Msg {
			analysis, err := m.tutor.Analyze(context.Background(), cmd.Content, cmd.Style)
			return analyzeDoneMsg{epoch: cmd.Epoch, analysis: analysis, err: err}
		}

	case controller.CmdClassifyStyle:
		m.loadingCaption = "Analyzing your answers..."
		return func() tea.Msg {
			style, err := m.tutor.ClassifyStyle(context.Background(), cmd.Answers)
			return classifyDoneMsg{epoch: cmd.Epoch, style: style, err: err}
		}

	case controller.CmdGenerateQuiz:
		return func() tea.Msg {
			questions, err := m.tutor.GenerateQuiz(context.Background(), cmd.Content, cmd.Style)
			return quizReadyMsg{epoch: cmd.Epoch, questions: questions, err: err}
		}

	case controller.CmdGenerateNotes:
		return func() tea.Msg {
			notes, err := m.tutor.GenerateNotes(context.Background(), cmd.Content, cmd.Transcript)
			return notesReadyMsg{epoch: cmd.Epoch, notes: notes, err: err}
		}

	case controller.CmdStreamChat:
		return m.startChatStream(cmd)
	}
	return nil
}

// startChatStream launches the streaming call in its own goroutine and
// pumps deltas through a channel back into the update loop.
func (m *AppModel) startChatStream(cmd controller.Command) tea.Cmd {
	ch := make(chan chatEventMsg, 32)
	tc := m.tutor
	go func() {
		err := tc.StreamChat(context.Background(), cmd.Content, cmd.Transcript, cmd.Style,
			func(delta string) {
				ch <- chatEventMsg{epoch: cmd.Epoch, id: cmd.MessageID, delta: delta}
			})
		ch <- chatEventMsg{epoch: cmd.Epoch, id: cmd.MessageID, done: true, err: err}
		close(ch)
	}()
	return awaitChat(ch)
}

// awaitChat blocks on the next stream event. It is re-issued after each
// event until the channel closes.
func awaitChat(ch chan chatEventMsg) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return chatStreamMsg{event: event, ch: ch}
	}
}
