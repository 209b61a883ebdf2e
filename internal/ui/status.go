package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top bar: name, producer state, counters and the
// active palette.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("process-logger", styles.Logo),
		m.renderProducerState(styles, bg),
		bg.Render(fmt.Sprintf("Entries: %d", m.stats.Total), styles.Text) +
			bg.Space() + bg.Space() +
			bg.Render(fmt.Sprintf("Highlighted: %d", m.stats.Highlighted), styles.AccentText),
	}
	if swatches := m.renderSwatches(bg); swatches != "" {
		parts = append(parts, swatches)
	}

	return bg.FillLine(strings.Join(parts, bg.Sep(styles.FaintText)), m.width)
}

func (m Model) renderProducerState(styles Styles, bg BgStyle) string {
	switch m.producerState {
	case producerFailed:
		msg := "source failed"
		if m.producerErr != nil {
			msg += ": " + truncate(m.producerErr.Error(), 60)
		}
		return bg.Render(msg, styles.DangerText)
	case producerStopped:
		return bg.Render("source stopped", styles.WarningText)
	default:
		return bg.Render("watching", styles.SuccessText)
	}
}

// renderSwatches draws one block per palette tone; the tone the next search
// will use is drawn larger.
func (m Model) renderSwatches(bg BgStyle) string {
	if m.session == nil {
		return ""
	}
	palette := m.session.Palette()
	cursor := m.session.Cursor()

	var b strings.Builder
	for i, tone := range palette.Tones() {
		glyph := "▪"
		if i == cursor {
			glyph = "■"
		}
		if i > 0 {
			b.WriteString(bg.Space())
		}
		b.WriteString(bg.Render(glyph, lipgloss.NewStyle().Foreground(lipgloss.Color(tone.Hex()))))
	}
	return b.String()
}

// renderLogStatus renders the bar below the log box. Prompts take priority,
// then notices, then the last search result.
func (m Model) renderLogStatus(styles Styles, bg BgStyle) string {
	if m.logState.searchActive {
		return m.logState.searchInput.View()
	}
	if m.logState.colorActive {
		line := m.logState.colorInput.View()
		if m.notice != "" && m.noticeIsErr {
			line += bg.Space() + bg.Space() + bg.Render(m.notice, styles.DangerText)
		}
		return line
	}

	follow := "off"
	if m.logState.follow {
		follow = "on"
	}
	parts := []string{bg.Render("follow "+follow, styles.FaintText)}

	switch {
	case m.notice != "":
		style := styles.InfoText
		if m.noticeIsErr {
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(m.notice, style))
	case m.logState.hasResult:
		parts = append(parts, m.renderSearchResult(styles, bg))
	}

	parts = append(parts, bg.Render("? help", styles.MutedText))
	return strings.Join(parts, bg.Sep(styles.FaintText))
}

func (m Model) renderSearchResult(styles Styles, bg BgStyle) string {
	res := m.logState.lastResult
	query := bg.Render(fmt.Sprintf("/%s", res.Query), styles.AccentText)
	if res.Matched == 0 {
		return query + bg.Space() + bg.Render("no matches", styles.WarningText)
	}
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(res.Tone.Hex())).Render("■")
	return query + bg.Space() +
		bg.Render(fmt.Sprintf("%d matched, %d new", res.Matched, res.Newly), styles.Text) +
		bg.Space() + swatch
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
