package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/lumilearn/lumi/internal/controller"
	"github.com/lumilearn/lumi/internal/session"
)

func newTestWelcome() *WelcomeScreen {
	return New(controller.New(nil, nil))
}

func press(w *WelcomeScreen, msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := w.Update(msg)
	return cmd
}

func TestCtrlSSubmitsTrimmedContent(t *testing.T) {
	w := newTestWelcome()

	for _, r := range "  hi  " {
		press(w, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	cmd := press(w, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a command from ctrl+s")
	}
	msg, ok := cmd().(SubmitContentMsg)
	if !ok {
		t.Fatalf("expected SubmitContentMsg, got %T", cmd())
	}
	if msg.Content != "hi" {
		t.Errorf("content = %q, want trimmed %q", msg.Content, "hi")
	}
}

func TestCtrlDOpensStyleQuiz(t *testing.T) {
	w := newTestWelcome()

	cmd := press(w, tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a command from ctrl+d")
	}
	if _, ok := cmd().(TakeStyleQuizMsg); !ok {
		t.Fatalf("expected TakeStyleQuizMsg, got %T", cmd())
	}
}

func TestCtrlRIgnoredWithoutSavedSession(t *testing.T) {
	w := newTestWelcome()

	if cmd := press(w, tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}); cmd != nil {
		t.Error("ctrl+r should do nothing when no session is saved")
	}
}

func TestStyleSelection(t *testing.T) {
	w := newTestWelcome()

	// Move focus to the style list, then pick the first entry.
	press(w, tea.KeyPressMsg{Code: tea.KeyTab})
	if w.focus != focusStyles {
		t.Fatalf("focus = %v, want styles", w.focus)
	}
	press(w, tea.KeyPressMsg{Code: tea.KeyUp})
	press(w, tea.KeyPressMsg{Code: tea.KeyUp})
	cmd := press(w, tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from enter on the style list")
	}
	msg, ok := cmd().(StyleSelectedMsg)
	if !ok {
		t.Fatalf("expected StyleSelectedMsg, got %T", cmd())
	}
	if msg.Style != session.AllStyles[0] {
		t.Errorf("style = %q, want %q", msg.Style, session.AllStyles[0])
	}
}

func TestViewMarksActiveStyle(t *testing.T) {
	ctrl := controller.New(nil, nil)
	w := New(ctrl)

	view := w.View(80, 24)
	if !strings.Contains(view, "✓ "+string(ctrl.Style())) {
		t.Errorf("active style not marked in view:\n%s", view)
	}
}
