package stylequiz

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/lumilearn/lumi/internal/session"
)

func press(q *QuizScreen, key string) tea.Cmd {
	var code rune
	switch key {
	case "enter":
		code = tea.KeyEnter
	case "esc":
		code = tea.KeyEscape
	case "up":
		code = tea.KeyUp
	case "down":
		code = tea.KeyDown
	default:
		code = rune(key[0])
	}
	_, cmd := q.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func TestAnswerAdvancesQuestions(t *testing.T) {
	q := New()

	view := q.View(80, 24)
	if !strings.Contains(view, "Question 1 of 4") {
		t.Errorf("expected first question counter, got:\n%s", view)
	}

	if cmd := press(q, "enter"); cmd != nil {
		t.Error("answering a middle question should not emit a command")
	}
	if q.index != 1 {
		t.Errorf("index = %d, want 1", q.index)
	}
	if !strings.Contains(q.View(80, 24), "Question 2 of 4") {
		t.Error("counter did not advance")
	}
}

func TestSelectionMovesAndClamps(t *testing.T) {
	q := New()

	press(q, "up")
	if q.selected != 0 {
		t.Errorf("selected = %d, up should clamp at 0", q.selected)
	}

	press(q, "down")
	press(q, "down")
	if q.selected != 2 {
		t.Errorf("selected = %d, want 2", q.selected)
	}

	last := len(session.DiscoveryQuiz[0].Options) - 1
	for i := 0; i < 10; i++ {
		press(q, "down")
	}
	if q.selected != last {
		t.Errorf("selected = %d, down should clamp at %d", q.selected, last)
	}
}

func TestSelectionResetsPerQuestion(t *testing.T) {
	q := New()

	press(q, "down")
	press(q, "enter")
	if q.selected != 0 {
		t.Errorf("selected = %d after advancing, want 0", q.selected)
	}
}

func TestLastAnswerSubmitsAll(t *testing.T) {
	q := New()

	var cmd tea.Cmd
	for i := range session.DiscoveryQuiz {
		if i == 1 {
			press(q, "down")
		}
		cmd = press(q, "enter")
	}
	if cmd == nil {
		t.Fatal("expected a command from the final answer")
	}

	msg, ok := cmd().(SubmitAnswersMsg)
	if !ok {
		t.Fatalf("expected SubmitAnswersMsg, got %T", cmd())
	}
	if len(msg.Answers) != len(session.DiscoveryQuiz) {
		t.Fatalf("got %d answers, want %d", len(msg.Answers), len(session.DiscoveryQuiz))
	}
	if msg.Answers[0] != session.DiscoveryQuiz[0].Options[0] {
		t.Errorf("answer 0 = %q", msg.Answers[0])
	}
	if msg.Answers[1] != session.DiscoveryQuiz[1].Options[1] {
		t.Errorf("answer 1 = %q", msg.Answers[1])
	}
}

func TestEscCancels(t *testing.T) {
	q := New()

	cmd := press(q, "esc")
	if cmd == nil {
		t.Fatal("expected a command from esc")
	}
	if _, ok := cmd().(CancelMsg); !ok {
		t.Fatalf("expected CancelMsg, got %T", cmd())
	}
}
