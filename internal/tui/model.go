// Package tui renders a live countdown for a presigned URL.
package tui

import (
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"

	"tasnim.dev/presign/internal/presign"
	"tasnim.dev/presign/internal/tui/theme"
	"tasnim.dev/presign/internal/utils"
)

// tickMsg advances the countdown once per second.
type tickMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// tickNow fires the first tick immediately so the bar starts at the real
// fraction instead of resting at zero for a second.
func tickNow() tea.Cmd {
	return func() tea.Msg { return tickMsg{} }
}

// expiringSoon is when the countdown switches to the warning state.
const expiringSoon = time.Minute

// Model holds the countdown state for a single presigned URL.
type Model struct {
	endpoint string
	eval     presign.Evaluation
	clock    func() time.Time
	bar      progress.Model
	width    int
	height   int
}

// NewModel creates a countdown model for eval. A nil clock means time.Now;
// tests inject a fixed clock.
func NewModel(endpoint string, eval presign.Evaluation, clock func() time.Time) Model {
	if clock == nil {
		clock = time.Now
	}
	bar := progress.New(progress.WithDefaultBlend(), progress.WithoutPercentage())
	bar.SetWidth(50)
	return Model{
		endpoint: endpoint,
		eval:     eval,
		clock:    clock,
		bar:      bar,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tickNow()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tickMsg:
		m.eval.CheckedAt = m.clock().UTC()
		cmd := m.bar.SetPercent(m.fraction())
		return m, tea.Batch(cmd, tick())

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.bar, cmd = m.bar.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 12 {
			m.bar.SetWidth(msg.Width - 12)
		}
		return m, nil
	}

	return m, nil
}

// status classifies the countdown for coloring.
func (m Model) status() string {
	switch {
	case m.eval.Expired():
		return "expired"
	case m.eval.Remaining() <= expiringSoon:
		return "expiring"
	default:
		return "valid"
	}
}

// fraction is the share of the signing window still remaining, clamped
// to [0, 1] so negative expiry windows render an empty bar.
func (m Model) fraction() float64 {
	window := m.eval.Window()
	if window <= 0 {
		return 0
	}
	f := float64(m.eval.Remaining()) / float64(window)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (m Model) View() tea.View {
	b := utils.NewDetailBuilder(12, labelStyle)
	b.Blank()
	b.Line(titleStyle.Render("Watching " + m.endpoint))
	b.Blank()
	b.Row("Signed at", utils.TimeOrDash(m.eval.SignedAt, utils.DateTimeSec)+" UTC")
	b.Row("Expires at", utils.TimeOrDash(m.eval.ExpiresAt, utils.DateTimeSec)+" UTC")
	b.Row("Checked at", utils.TimeOrDash(m.eval.CheckedAt, utils.DateTimeSec)+" UTC")
	b.Blank()
	b.Line(m.bar.View())
	b.Blank()

	remaining := utils.Countdown(m.eval.Remaining())
	switch status := m.status(); status {
	case "expired":
		b.Line(theme.RenderStatus(status) + "  " + expiredStyle.Render(remaining+" ago"))
	case "expiring":
		b.Line(theme.RenderStatus(status) + "  " + warningStyle.Render(remaining+" left"))
	default:
		b.Line(theme.RenderStatus(status) + "  " + successStyle.Render(remaining+" left"))
	}
	b.WriteString(helpStyle.Render("  q quit"))

	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}
