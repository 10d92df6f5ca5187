package session

import (
	"strings"

	"github.com/google/uuid"
)

// Session is one learning engagement over a single piece of content.
// It is constructed atomically from a successful analysis — if analysis
// fails, no Session exists. All fields are immutable after construction.
type Session struct {
	// OriginalContent is the raw study material the learner pasted.
	OriginalContent string `json:"original_content"`

	// Summary is a brief overview of the content, tailored to the style.
	Summary string `json:"summary"`

	// Outline lists the key topics found in the content.
	Outline []string `json:"outline"`

	// KeyQuestions are thought-provoking questions to start the discussion.
	KeyQuestions []string `json:"key_questions"`
}

// Analysis is the result of the initial content analysis, before it is
// combined with the original content into a Session.
type Analysis struct {
	Summary      string   `json:"summary"`
	Outline      []string `json:"outline"`
	KeyQuestions []string `json:"key_questions"`
}

// NewSession combines an analysis with the content it was produced from.
func NewSession(content string, a *Analysis) *Session {
	return &Session{
		OriginalContent: content,
		Summary:         a.Summary,
		Outline:         a.Outline,
		KeyQuestions:    a.KeyQuestions,
	}
}

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is a single chat transcript entry. Messages carry a stable ID
// so that an in-progress streaming reply can be addressed directly
// instead of by transcript position.
type Message struct {
	ID     string `json:"id"`
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// NewMessage creates a message with a fresh ID.
func NewMessage(sender Sender, text string) Message {
	return Message{
		ID:     uuid.New().String(),
		Sender: sender,
		Text:   text,
	}
}

// QuizQuestion is a single multiple-choice comprehension question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// CorrectIndex resolves CorrectAnswer against Options, tolerating the
// whitespace and casing drift models produce. Returns -1 when no option
// matches; such a question cannot be scored.
func (q QuizQuestion) CorrectIndex() int {
	want := strings.TrimSpace(q.CorrectAnswer)
	for i, opt := range q.Options {
		if strings.EqualFold(strings.TrimSpace(opt), want) {
			return i
		}
	}
	return -1
}

// Notes holds Cornell-style notes for the session.
type Notes struct {
	MainNotes string   `json:"main_notes"`
	Cues      []string `json:"cues"`
	Summary   string   `json:"summary"`
}

// PlaceholderNotes is returned instead of calling the generator when the
// active style is not Cornell Notes. This is a fixed business rule: the
// notes feature is only generated for that style.
func PlaceholderNotes() *Notes {
	return &Notes{
		MainNotes: "Notes are optimized for the Cornell Notes style. Start a new session with that style to try them out!",
	}
}

// Tab identifies a panel of the learning screen.
type Tab string

const (
	TabChat  Tab = "chat"
	TabNotes Tab = "notes"
	TabQuiz  Tab = "quiz"
)

// Tabs lists the learning screen tabs in display order.
var Tabs = []Tab{TabChat, TabNotes, TabQuiz}

// Valid reports whether t is one of the known tabs.
func (t Tab) Valid() bool {
	for _, known := range Tabs {
		if t == known {
			return true
		}
	}
	return false
}

// SnapshotVersion is the current saved-session payload version.
const SnapshotVersion = 1

// Snapshot is the single persisted entity: everything needed to resume a
// learning session after a restart. A snapshot is only ever written while
// a session is active with both a Session and a Style set.
type Snapshot struct {
	Version    int            `json:"version"`
	Session    *Session       `json:"session"`
	Style      Style          `json:"style"`
	Transcript []Message      `json:"transcript"`
	Quiz       []QuizQuestion `json:"quiz,omitempty"`
	Notes      *Notes         `json:"notes,omitempty"`
	ActiveTab  Tab            `json:"active_tab"`
}
