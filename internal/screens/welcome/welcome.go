// Package welcome is the intake screen: paste study material, pick a
// learning style, or resume a saved session.
package welcome

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumilearn/lumi/internal/controller"
	"github.com/lumilearn/lumi/internal/screen"
	"github.com/lumilearn/lumi/internal/session"
	"github.com/lumilearn/lumi/internal/ui/components"
	"github.com/lumilearn/lumi/internal/ui/layout"
	"github.com/lumilearn/lumi/internal/ui/theme"
)

// Intent messages handled by the app model.
type (
	// SubmitContentMsg asks to start a session from the pasted material.
	SubmitContentMsg struct{ Content string }

	// StyleSelectedMsg records a learning style choice.
	StyleSelectedMsg struct{ Style session.Style }

	// TakeStyleQuizMsg opens the style discovery quiz.
	TakeStyleQuizMsg struct{}

	// ResumeMsg asks to restore the saved session.
	ResumeMsg struct{}
)

type focusArea int

const (
	focusContent focusArea = iota
	focusStyles
)

// WelcomeScreen collects study material and a learning style.
type WelcomeScreen struct {
	ctrl   *controller.Controller
	input  components.TextArea
	styles components.Menu
	focus  focusArea
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates the welcome screen.
func New(ctrl *controller.Controller) *WelcomeScreen {
	items := make([]components.MenuItem, len(session.AllStyles))
	for i, s := range session.AllStyles {
		style := s
		items[i] = components.MenuItem{
			Label:       string(s),
			Description: session.Describe(s),
			Action: func() tea.Cmd {
				return func() tea.Msg { return StyleSelectedMsg{Style: style} }
			},
		}
	}
	w := &WelcomeScreen{
		ctrl:   ctrl,
		input:  components.NewTextArea("Paste your study material here: lecture notes, a chapter, an article..."),
		styles: components.NewMenu(items),
	}
	for i, s := range session.AllStyles {
		if s == ctrl.Style() {
			w.styles.Selected = i
		}
	}
	return w
}

func (w *WelcomeScreen) Title() string {
	return "Welcome"
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.input.Init()
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Switch focus"},
		{Key: "Ctrl+S", Description: "Start learning"},
		{Key: "Ctrl+D", Description: "Discover my style"},
	}
	if w.ctrl.Resumable() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Resume"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "shift+tab":
			if w.focus == focusContent {
				w.focus = focusStyles
				w.input.Model.Blur()
			} else {
				w.focus = focusContent
				return w, w.input.Model.Focus()
			}
			return w, nil

		case "ctrl+s":
			content := strings.TrimSpace(w.input.Value())
			return w, func() tea.Msg { return SubmitContentMsg{Content: content} }

		case "ctrl+d":
			return w, func() tea.Msg { return TakeStyleQuizMsg{} }

		case "ctrl+r":
			if w.ctrl.Resumable() {
				return w, func() tea.Msg { return ResumeMsg{} }
			}
			return w, nil
		}

		if w.focus == focusStyles {
			if kmsg.String() == "space" {
				item := w.styles.Items[w.styles.Selected]
				return w, item.Action()
			}
			var cmd tea.Cmd
			w.styles, cmd = w.styles.Update(kmsg)
			return w, cmd
		}
	}

	if w.focus == focusContent {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Meet Lumi, your study companion"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Paste anything you want to learn and Lumi will teach it your way."))
	b.WriteString("\n\n")

	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	inputHeight := 8
	if layout.IsCompactHeight(height) {
		inputHeight = 5
	}
	w.input.SetSize(inputWidth, inputHeight)

	var contentLabel string
	if w.focus == focusContent {
		contentLabel = theme.Selected.Render("▾ Study material")
	} else {
		contentLabel = lipgloss.NewStyle().Foreground(theme.TextDim).Render("▾ Study material")
	}
	b.WriteString("  " + contentLabel + "\n")
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(w.input.View()))
	b.WriteString("\n\n")

	styleLabel := "▾ Learning style"
	if w.focus == focusStyles {
		b.WriteString("  " + theme.Selected.Render(styleLabel) + "\n")
	} else {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(styleLabel) + "\n")
	}
	b.WriteString(w.renderStyles())

	return b.String()
}

func (w *WelcomeScreen) renderStyles() string {
	// Mark the style currently applied to new sessions.
	for i, s := range session.AllStyles {
		label := "  " + string(s)
		if s == w.ctrl.Style() {
			label = "✓ " + string(s)
		}
		w.styles.Items[i].Label = label
	}
	return w.styles.View()
}
