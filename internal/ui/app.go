package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/led-robster/process-logger/internal/ingest"
	"github.com/led-robster/process-logger/internal/logging"
	"github.com/led-robster/process-logger/internal/prefs"
	"github.com/led-robster/process-logger/internal/session"
)

// Producer is the part of the ingestion producer the UI observes.
type Producer interface {
	Done() <-chan struct{}
	Err() error
}

// producerState describes the ingestion side as shown in the header.
type producerState int

const (
	producerRunning producerState = iota
	producerStopped
	producerFailed
)

// Options configures the UI.
type Options struct {
	// Context ends the program when cancelled.
	Context   context.Context
	Session   *session.Session
	Queue     *ingest.Queue
	Producer  Producer
	ThemeName string
	PrefsPath string
	// Copier replaces the clipboard writer, mainly for tests.
	Copier func(string) error
	Logger *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	session   *session.Session
	queue     *ingest.Queue
	producer  Producer
	prefsPath string
	copier    func(string) error
	logger    *slog.Logger

	// UI state
	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	// Data state
	stats         session.Stats
	producerState producerState
	producerErr   error

	// Log state
	logViewport viewport.Model
	logState    logState

	// One-line feedback shown in the status bar until the next action.
	notice      string
	noticeIsErr bool

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	copier := opts.Copier
	if copier == nil {
		copier = CopyToClipboard
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	m := Model{
		session:   opts.Session,
		queue:     opts.Queue,
		producer:  opts.Producer,
		prefsPath: prefsPath,
		copier:    copier,
		logger:    logger,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
	}
	m.initLogState()
	if m.session != nil {
		m.stats = m.session.Stats()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForEntries()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initLogViewport()
		}
		m.ready = true
		m.logState.contentVersion++
		m.updateLogViewport()
		return m, nil

	case entriesMsg:
		m.deliver(msg)
		return m, m.waitForEntries()

	case producerDoneMsg:
		m.deliver(msg.entries)
		m.producerErr = nil
		m.producerState = producerStopped
		if m.producer != nil {
			if err := m.producer.Err(); err != nil {
				m.producerErr = err
				m.producerState = producerFailed
			}
		}
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.logger.Warn("copy to clipboard failed", "error", msg.err)
			m.setNotice("Copy failed: "+msg.err.Error(), true)
		} else {
			m.setNotice(fmt.Sprintf("Copied %d lines", msg.lines), false)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// Prompts swallow every key, including the global ones.
	if m.logState.searchActive {
		cmd := m.handleSearchInput(msg)
		return m, cmd
	}
	if m.logState.colorActive {
		cmd := m.handleColorInput(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.logState.contentVersion++
		m.updateLogViewport()
		m.savePrefs()
		return m, nil
	}

	cmd := m.handleLogsKey(msg)
	return m, cmd
}

// deliver hands freshly ingested entries to the session.
func (m *Model) deliver(entries []Entry) {
	if m.session == nil || len(entries) == 0 {
		return
	}
	m.stats = m.session.Deliver(entries)
	m.logState.contentVersion++
	m.updateLogViewport()
}

// savePrefs persists the current theme and base color.
func (m *Model) savePrefs() {
	if m.session == nil {
		return
	}
	p := prefs.Prefs{
		Theme:     m.theme.Name,
		BaseColor: m.session.Palette().Base().Hex(),
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeIsErr = isErr
}

// renderMain renders the full UI: header, log box, status bar.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderLogs())
	return b.String()
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled. Cancellation is a normal exit.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
