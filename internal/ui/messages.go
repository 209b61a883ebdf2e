package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/led-robster/process-logger/internal/logstore"
)

// Entry is a log entry as delivered to the UI.
type Entry = logstore.Entry

// Messages

// entriesMsg carries entries drained from the handoff queue.
type entriesMsg []Entry

// producerDoneMsg reports that the producer goroutine has exited. Entries
// still sitting in the queue at that point ride along.
type producerDoneMsg struct {
	entries []Entry
}

type copyResultMsg struct {
	lines int
	err   error
}

// Commands

// waitForEntries blocks until the producer hands over entries or exits.
// Exactly one such command is outstanding at any time.
func (m Model) waitForEntries() tea.Cmd {
	if m.queue == nil {
		return nil
	}
	q := m.queue
	var done <-chan struct{}
	if m.producer != nil {
		done = m.producer.Done()
	}
	return func() tea.Msg {
		select {
		case <-q.Ready():
			return entriesMsg(q.Drain())
		case <-done:
			return producerDoneMsg{entries: q.Drain()}
		}
	}
}

// copyAllCmd copies the whole log off the UI goroutine.
func copyAllCmd(text string, lines int, copier func(string) error) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{lines: lines, err: copier(text)}
	}
}
