package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/calmhq/calm-cli/internal/countdown"
	"github.com/calmhq/calm-cli/internal/session"
	"github.com/calmhq/calm-cli/internal/types"
)

// Minimal styles for the TUI
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Margin(0, 0, 1, 0)

	actionsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Margin(1, 0, 0, 0)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3).
			Margin(0, 1)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			Margin(2, 4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const progressBarWidth = 28

// View renders the entire TUI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.overlay != overlayNone {
		return m.renderOverlay()
	}

	theme := types.ThemeFor(m.settings.Level)
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Strong)).Bold(true)

	header := m.renderHeader(accent)
	slide := m.renderSlide(theme)
	stats := m.renderStatsLine()
	actions := m.renderActions()

	parts := []string{header, slide, stats, actions}
	if m.lastError != "" {
		parts = append(parts, errorStyle.Render(m.lastError))
	}
	if m.successMessage != "" {
		parts = append(parts, successStyle.Render(m.successMessage))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader(accent lipgloss.Style) string {
	title := accent.Render("CalmNow")
	level := fmt.Sprintf("%s %d", m.pack.LvLabel, m.settings.Level)
	mute := m.pack.MuteOff
	if m.settings.Muted {
		mute = m.pack.MuteOn
	}
	dots := m.renderCarouselDots()
	return headerStyle.Render(fmt.Sprintf("%s  %s  %s  %s", title, level, mute, dots))
}

// renderCarouselDots marks the active slide among the six.
func (m Model) renderCarouselDots() string {
	var b strings.Builder
	for i := 0; i < types.SlotCount; i++ {
		if i == m.idx {
			b.WriteString("●")
		} else {
			b.WriteString("○")
		}
	}
	return dimStyle.Render(b.String())
}

func (m Model) renderSlide(theme types.LevelTheme) string {
	slot := types.SlotID(m.idx)
	title := m.pack.SlideTitles[m.idx]

	var body []string
	body = append(body, lipgloss.NewStyle().Bold(true).Render(title))
	body = append(body, "")

	running := m.ctrl.State() == session.Running && m.ctrl.Slot() == slot

	switch {
	case slot == types.SlotBreathing && running:
		phase := m.pack.Exhale
		if m.inhale {
			phase = m.pack.Inhale
		}
		body = append(body, lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Ring)).Render(phase))
	case slot == types.SlotNature:
		medium := m.pack.ModeVideo
		if m.tr.Medium() == types.MediumAudio {
			medium = m.pack.ModeAudio
		}
		body = append(body, dimStyle.Render(medium))
	case slot == types.SlotJournal:
		body = append(body, m.renderJournal(running)...)
	}

	if running {
		body = append(body, "")
		body = append(body, m.renderProgress(theme))
		body = append(body, fmt.Sprintf("%s: %s", m.pack.TimeLeft, m.snap.Display))
	} else {
		dur := session.DurationFor(slot, m.settings.Level, m.ctrl.Class())
		body = append(body, "")
		body = append(body, dimStyle.Render(countdown.FormatRemaining(dur)))
	}

	label := m.pack.Start
	if running {
		label = m.pack.Stop
	}
	body = append(body, "")
	body = append(body, lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Strong)).Render("[ "+label+" ]"))

	return cardStyle.Render(strings.Join(body, "\n"))
}

// renderJournal shows the prompt and, while running, the editor fields.
func (m Model) renderJournal(running bool) []string {
	draft := m.ctrl.Draft()
	lines := []string{dimStyle.Render(runewidth.Truncate(draft.Prompt, 48, "…"))}

	if !running {
		class := m.pack.FullBtn
		if m.ctrl.Class() == types.ClassQuick {
			class = m.pack.QuickBtn
		}
		lines = append(lines, "", dimStyle.Render(class))
		return lines
	}

	labelCursor, textCursor := " ", " "
	if m.focus == fieldLabel {
		labelCursor = "▌"
	} else {
		textCursor = "▌"
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Label: %s%s", m.labelInput, labelCursor))
	lines = append(lines, fmt.Sprintf("%s%s", m.textInput, textCursor))
	lines = append(lines, dimStyle.Render(m.pack.Words(types.WordCount(m.textInput))))
	return lines
}

// renderProgress draws the countdown as a horizontal bar.
func (m Model) renderProgress(theme types.LevelTheme) string {
	filled := int(m.snap.Progress * progressBarWidth)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Ring)).Render(bar)
}

func (m Model) renderStatsLine() string {
	out := m.format.FormatStats(m.stats)
	if m.haveLast {
		out += "\n" + m.format.FormatLastJournal(*m.lastJournal)
	}
	return dimStyle.Render(out)
}

func (m Model) renderActions() string {
	keys := "←/→ slides • space start/stop • m mute • +/- level • q quit"
	switch types.SlotID(m.idx) {
	case types.SlotNature:
		keys = "v video/audio • " + keys
	case types.SlotJournal:
		if m.ctrl.EditorEnabled() {
			keys = "tab field • esc stop • " + keys
		} else {
			keys = "s shuffle • d 2m/12m • " + keys
		}
	}
	return actionsStyle.Render(keys)
}

func (m Model) renderOverlay() string {
	var body string
	switch m.overlay {
	case overlayGratitude:
		body = strings.Join([]string{
			lipgloss.NewStyle().Bold(true).Render(m.pack.SummaryTitle),
			"",
			m.pack.TryJournal,
			"",
			dimStyle.Render("j journal • esc " + m.pack.Later),
		}, "\n")

	case overlaySummary:
		lines := []string{
			lipgloss.NewStyle().Bold(true).Render(m.pack.SummaryTitle),
			"",
			m.format.FormatStats(m.stats),
		}
		if m.haveLast {
			lines = append(lines, m.format.FormatLastJournal(*m.lastJournal))
		}
		if hist := m.format.FormatHistoryList(m.history, 5); hist != "—" {
			lines = append(lines, "", hist)
		}
		lines = append(lines, "", dimStyle.Render("e export • r "+m.pack.SummaryRestart+" • esc "+m.pack.SummaryClose))
		body = strings.Join(lines, "\n")

	case overlayMilestone:
		title := fmt.Sprintf("%d %s", m.milestoneStreak, m.pack.StreakLabel)
		body = strings.Join([]string{
			lipgloss.NewStyle().Bold(true).Render(title),
			"",
			m.pack.MilestoneAsk,
			"",
			dimStyle.Render("s share • esc " + m.pack.Later),
		}, "\n")
	}

	card := overlayStyle.Render(body)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
	}
	return card
}
