package tutor

import (
	"context"
	"sync"

	"github.com/lumilearn/lumi/internal/session"
)

// MockClient is a deterministic Client for testing the controller and
// screens. Zero values fail with the configured Err (or succeed with
// empty results when Err is nil).
type MockClient struct {
	mu sync.Mutex

	AnalysisResult *session.Analysis
	AnalysisErr    error

	StyleResult session.Style
	StyleErr    error

	QuizResult []session.QuizQuestion
	QuizErr    error

	NotesResult *session.Notes
	NotesErr    error

	ChatDeltas []string
	ChatErr    error
	// ChatErrAfter, when > 0, emits that many deltas before failing.
	ChatErrAfter int

	AnalyzeCalls  int
	ClassifyCalls int
	QuizCalls     int
	NotesCalls    int
	ChatCalls     int
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) Analyze(_ context.Context, _ string, _ session.Style) (*session.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnalyzeCalls++
	if m.AnalysisErr != nil {
		return nil, m.AnalysisErr
	}
	if m.AnalysisResult != nil {
		return m.AnalysisResult, nil
	}
	return &session.Analysis{Summary: "summary"}, nil
}

func (m *MockClient) ClassifyStyle(_ context.Context, _ []string) (session.Style, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClassifyCalls++
	if m.StyleErr != nil {
		return "", m.StyleErr
	}
	if m.StyleResult != "" {
		return m.StyleResult, nil
	}
	return session.DefaultStyle, nil
}

func (m *MockClient) GenerateQuiz(_ context.Context, _ string, _ session.Style) ([]session.QuizQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuizCalls++
	if m.QuizErr != nil {
		return nil, m.QuizErr
	}
	return m.QuizResult, nil
}

func (m *MockClient) GenerateNotes(_ context.Context, _ string, _ []session.Message) (*session.Notes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotesCalls++
	if m.NotesErr != nil {
		return nil, m.NotesErr
	}
	if m.NotesResult != nil {
		return m.NotesResult, nil
	}
	return &session.Notes{}, nil
}

func (m *MockClient) StreamChat(_ context.Context, _ string, _ []session.Message, _ session.Style, onDelta func(string)) error {
	m.mu.Lock()
	m.ChatCalls++
	deltas := m.ChatDeltas
	errAfter := m.ChatErrAfter
	chatErr := m.ChatErr
	m.mu.Unlock()

	if chatErr != nil {
		// Emit the first errAfter deltas, then fail.
		for i := 0; i < errAfter && i < len(deltas); i++ {
			onDelta(deltas[i])
		}
		return chatErr
	}

	for _, d := range deltas {
		onDelta(d)
	}
	return nil
}
