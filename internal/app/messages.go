package app

import (
	"github.com/lumilearn/lumi/internal/session"
)

// analyzeDoneMsg is sent when content analysis finishes.
type analyzeDoneMsg struct {
	epoch    uint64
	analysis *session.Analysis
	err      error
}

// classifyDoneMsg is sent when style classification finishes.
type classifyDoneMsg struct {
	epoch uint64
	style session.Style
	err   error
}

// quizReadyMsg is sent when the comprehension quiz has been generated.
type quizReadyMsg struct {
	epoch     uint64
	questions []session.QuizQuestion
	err       error
}

// notesReadyMsg is sent when the Cornell notes have been generated.
type notesReadyMsg struct {
	epoch uint64
	notes *session.Notes
	err   error
}

// chatEventMsg is one streamed chat event: a text delta, or the final
// completion carrying any stream error.
type chatEventMsg struct {
	epoch uint64
	id    string
	delta string
	done  bool
	err   error
}

// chatStreamMsg wraps a chat event together with its channel so the
// update loop can keep listening for the next one.
type chatStreamMsg struct {
	event chatEventMsg
	ch    chan chatEventMsg
}
