package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keydrill/internal/game"
)

const cellWidth = 2

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	targetStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A5A8C")).Bold(true)
	boxStyle       = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(1, 4)
)

func (m *Model) frame(body string, bindings []key.Binding) string {
	content := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(" keydrill "),
		"",
		body,
	))
	footer := m.help.ShortHelpView(bindings)
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body = lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) viewMenu() string {
	s := m.settings
	summary := fmt.Sprintf("%ds · history %d · future %d · %s", s.DurationSec, s.HistoryLength, s.FutureLength, s.Categories)
	lines := []string{
		"b  Begin game",
		"s  Settings",
		"q  Quit",
		"",
		footerStyle.Render(summary),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) viewSettings(p *settingsPage) string {
	labelWidth := 0
	for _, item := range settingItems {
		labelWidth = max(labelWidth, runewidth.StringWidth(item.label))
	}
	lines := make([]string, 0, len(settingItems))
	for i, item := range settingItems {
		line := runewidth.FillRight(item.label, labelWidth) + "  " + runewidth.FillLeft(item.value(p.draft), 3)
		if i == p.cursor {
			lines = append(lines, selectedStyle.Render("> "+line))
			continue
		}
		lines = append(lines, "  "+line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) viewGame(p *gamePage) string {
	snap := p.session.Snapshot()
	if snap.Finished() {
		return m.viewScore(p, snap)
	}
	timer := fmt.Sprintf("Timer: %d sec / %d sec", int(snap.Elapsed/time.Second), int(snap.Limit/time.Second))
	percent := 0.0
	if snap.Limit > 0 {
		percent = float64(snap.Remaining) / float64(snap.Limit)
	}
	lines := []string{
		timer,
		m.bar.ViewAs(percent),
		"",
		renderRow(snap),
	}
	if snap.TenFingerHint {
		hint := ""
		if finger, ok := FingerFor(snap.Target); ok {
			hint = finger
		}
		lines = append(lines, "", footerStyle.Render(hint))
	}
	lines = append(lines, "", renderScoreLine(snap.Score, p))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) viewScore(p *gamePage, snap game.Snapshot) string {
	heading := "Time's up!"
	if snap.Reason == game.ReasonMistake {
		heading = "Mistake!"
	}
	lines := []string{
		titleStyle.Render(heading),
		"",
		"Your score is:",
		"",
		targetStyle.Render(fmt.Sprintf("%d", snap.Score)),
	}
	if p.newBest {
		lines = append(lines, "", correctStyle.Render("New best!"))
	} else if p.hasBest {
		lines = append(lines, "", footerStyle.Render(fmt.Sprintf("Best %d", p.best)))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func renderScoreLine(score int, p *gamePage) string {
	segments := []string{fmt.Sprintf("Score %d", score)}
	if p.hasBest {
		segments = append(segments, fmt.Sprintf("Best %d", p.best))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

// renderRow lays out history, target and future on one line.
func renderRow(snap game.Snapshot) string {
	var b strings.Builder
	for _, slot := range snap.VisibleHistory() {
		style := incorrectStyle
		switch {
		case slot.Char == ' ':
			style = pendingStyle
		case slot.Correct:
			style = correctStyle
		}
		b.WriteString(style.Render(cell(slot.Char)))
	}
	b.WriteString("  ")
	b.WriteString(targetStyle.Render(cell(snap.Target)))
	b.WriteString("  ")
	for _, r := range snap.VisibleFuture() {
		b.WriteString(pendingStyle.Render(cell(r)))
	}
	return b.String()
}

func cell(r rune) string {
	return runewidth.FillRight(string(r), cellWidth)
}
