package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/led-robster/process-logger/internal/highlight"
)

// logState holds all log-view state.
type logState struct {
	follow bool

	// Search prompt
	searchActive bool
	searchInput  textinput.Model
	lastResult   highlight.Result
	hasResult    bool

	// Base color prompt
	colorActive bool
	colorInput  textinput.Model

	// Content caching - skip re-render when unchanged
	contentVersion uint64
	lastRendered   uint64
}

// initLogState initializes the log state.
func (m *Model) initLogState() {
	search := textinput.New()
	search.Placeholder = "Search process names..."
	search.Prompt = "/"
	search.CharLimit = 200

	color := textinput.New()
	color.Placeholder = "#ffff00 or a color name"
	color.Prompt = "color: "
	color.CharLimit = 32

	m.logState = logState{
		follow:      true,
		searchInput: search,
		colorInput:  color,
	}
}

// initLogViewport initializes the log viewport.
func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(max(m.width-4, 1), max(m.height-4, 1))
	m.logViewport.Style = lipgloss.NewStyle()
}

// updateLogViewport updates the log viewport with current content.
func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}

	// Header and status bar take one line each, the box border two more.
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = max(m.height-4, 1)
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	if m.logState.lastRendered == 0 || m.logState.contentVersion != m.logState.lastRendered {
		m.logViewport.SetContent(m.renderLogContent())
		m.logState.lastRendered = m.logState.contentVersion
		if m.logState.lastRendered == 0 {
			m.logState.lastRendered = 1 // Mark as rendered at least once
		}
	}

	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

// renderLogs renders the log box and the status bar below it.
func (m Model) renderLogs() string {
	bg := NewBgStyle(m.theme.Surface)
	styles := m.theme.Styles()

	title := fmt.Sprintf("New processes (%d)", m.stats.Total)
	box := m.renderBox(title, m.logViewport.View(), m.width, m.height-2, true)

	return box + "\n" + bg.FillLine(m.renderLogStatus(styles, bg), m.width)
}

// renderLogContent renders every entry, painting highlighted ones with
// their tone.
func (m *Model) renderLogContent() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles()
	width := m.logViewport.Width

	if m.session == nil {
		return ""
	}
	entries := m.session.Entries()
	if len(entries) == 0 {
		return bg.FillLine(bg.Render("Waiting for new processes...", styles.MutedText), width)
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		prefix := fmt.Sprintf("%4d │ ", e.Seq+1)
		if tone, ok := m.session.Mark(e.Seq); ok {
			// Marks left over from an older palette are not counted.
			if !m.session.Counted(tone) {
				prefix = fmt.Sprintf("%4d ┆ ", e.Seq+1)
			}
			style := m.theme.ToneStyle(tone.Color).Width(width).MaxHeight(1)
			lines = append(lines, style.Render(prefix+e.Line()))
			continue
		}
		content := bg.Render(prefix, styles.FaintText) + bg.Render(e.Line(), styles.Text)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(m.theme.FocusBg)).
			Width(width).
			MaxHeight(1).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

// renderBox draws a rounded border around content with title set into the
// top edge.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	borderColor := m.theme.Border
	if focused {
		borderColor = m.theme.BorderFocus
	}
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text)).Bold(true)

	inner := max(width-2, 0)
	label := " " + title + " "
	if lipgloss.Width(label)+1 > inner {
		label = ""
	}
	fill := max(inner-1-lipgloss.Width(label), 0)
	top := edge.Render(border.TopLeft+border.Top) +
		titleStyle.Render(label) +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	body := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(lipgloss.Color(borderColor)).
		Background(lipgloss.Color(m.theme.FocusBg)).
		Padding(0, 1).
		Width(inner).
		Height(max(height-2, 0)).
		Render(content)

	return top + "\n" + body
}

// handleLogsKey processes keyboard input outside of prompts.
func (m *Model) handleLogsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.logState.searchActive = true
		m.logState.searchInput.SetValue("")
		m.notice = ""
		return m.logState.searchInput.Focus()

	case key.Matches(msg, m.keys.BaseColor):
		m.logState.colorActive = true
		if m.session != nil {
			m.logState.colorInput.SetValue(m.session.Palette().Base().Hex())
		}
		m.logState.colorInput.CursorEnd()
		m.notice = ""
		return m.logState.colorInput.Focus()

	case key.Matches(msg, m.keys.Clear):
		if m.session == nil {
			return nil
		}
		m.stats = m.session.Clear()
		m.logState.hasResult = false
		m.logState.contentVersion++
		m.updateLogViewport()
		m.setNotice("Highlights cleared", false)
		return nil

	case key.Matches(msg, m.keys.CopyAll):
		if m.session == nil || m.stats.Total == 0 {
			m.setNotice("Nothing to copy", false)
			return nil
		}
		return copyAllCmd(m.session.CopyAll(), m.stats.Total, m.copier)

	case key.Matches(msg, m.keys.ToggleFollow):
		m.logState.follow = !m.logState.follow
		m.updateLogViewport()
		return nil

	case key.Matches(msg, m.keys.Escape):
		m.notice = ""
		return nil

	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		m.logState.follow = false

	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		m.logState.follow = true

	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		m.logState.follow = false

	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
		m.logState.follow = false

	case key.Matches(msg, m.keys.HalfPageDown):
		m.logViewport.HalfPageDown()
		m.logState.follow = false

	case key.Matches(msg, m.keys.HalfPageUp):
		m.logViewport.HalfPageUp()
		m.logState.follow = false

	case key.Matches(msg, m.keys.PageDown):
		m.logViewport.PageDown()
		m.logState.follow = false

	case key.Matches(msg, m.keys.PageUp):
		m.logViewport.PageUp()
		m.logState.follow = false
	}

	return nil
}

// handleSearchInput handles keyboard input while the search prompt is open.
func (m *Model) handleSearchInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		// Any text is a valid query; the empty one highlights everything.
		query := m.logState.searchInput.Value()
		m.logState.searchActive = false
		m.logState.searchInput.Blur()
		if m.session == nil {
			return nil
		}

		res, stats := m.session.Search(query)
		m.stats = stats
		m.logState.lastResult = res
		m.logState.hasResult = true
		m.logState.contentVersion++
		m.updateLogViewport()
		return nil

	case key.Matches(msg, m.keys.Escape):
		m.logState.searchActive = false
		m.logState.searchInput.Blur()
		m.logState.searchInput.SetValue("")
		return nil
	}

	var cmd tea.Cmd
	m.logState.searchInput, cmd = m.logState.searchInput.Update(msg)
	return cmd
}

// handleColorInput handles keyboard input while the base color prompt is
// open. An invalid color keeps the prompt open.
func (m *Model) handleColorInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if m.session == nil {
			m.logState.colorActive = false
			m.logState.colorInput.Blur()
			return nil
		}
		stats, err := m.session.SetBaseColor(m.logState.colorInput.Value())
		if err != nil {
			m.setNotice(err.Error(), true)
			return nil
		}
		m.stats = stats
		m.logState.colorActive = false
		m.logState.colorInput.Blur()
		m.logState.contentVersion++ // old marks are no longer counted
		m.updateLogViewport()
		m.savePrefs()
		m.setNotice("Base color set to "+m.session.Palette().Base().Hex(), false)
		return nil

	case key.Matches(msg, m.keys.Escape):
		m.logState.colorActive = false
		m.logState.colorInput.Blur()
		m.notice = ""
		return nil
	}

	var cmd tea.Cmd
	m.logState.colorInput, cmd = m.logState.colorInput.Update(msg)
	return cmd
}
