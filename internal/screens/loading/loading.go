// Package loading shows an animated wait screen while the tutor works.
package loading

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lumilearn/lumi/internal/screen"
	"github.com/lumilearn/lumi/internal/ui/theme"
)

const tickInterval = 120 * time.Millisecond

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type tickMsg time.Time

// LoadingScreen renders a spinner with a caption.
type LoadingScreen struct {
	caption string
	frame   int
}

var _ screen.Screen = (*LoadingScreen)(nil)

// New creates a loading screen with the given caption.
func New(caption string) *LoadingScreen {
	return &LoadingScreen{caption: caption}
}

func (l *LoadingScreen) Title() string {
	return "Working"
}

func (l *LoadingScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (l *LoadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tickMsg); ok {
		l.frame = (l.frame + 1) % len(frames)
		return l, tick()
	}
	return l, nil
}

func (l *LoadingScreen) View(width, height int) string {
	spin := lipgloss.NewStyle().Foreground(theme.Primary).Render(frames[l.frame])
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  " + spin + " " + l.caption)
}
