// Package ui provides the terminal interface for process-logger.
//
// The interface is a single Bubble Tea program that shows every newly
// created process as one line in a scrolling log. It never touches the
// log store or the highlight engine directly; all reads and mutations go
// through a session.Session, which keeps the counters consistent.
//
// # Layout
//
//   - Header: program name, source state, entry and highlight counters,
//     and the active palette with the next tone enlarged
//   - Log box: one numbered line per entry, highlighted lines painted with
//     their tone
//   - Status bar: the open prompt, or follow mode, the last notice and the
//     last search result
//
// # Event Flow
//
//  1. Init starts a command that blocks on the ingest queue
//  2. Each wake-up drains the queue into an entriesMsg; the model hands the
//     entries to the session and re-arms the wait
//  3. When the producer exits, a producerDoneMsg carries any remaining
//     entries and the header switches to stopped or failed
//  4. Quitting returns from Run; stopping the producer is the caller's job
//
// # Key Bindings
//
//   - /: search and highlight (enter runs, esc cancels)
//   - c: clear highlights
//   - b: change the base highlight color
//   - y: copy the whole log to the clipboard (OSC 52 fallback)
//   - f or Space: toggle follow mode
//   - j/k, g/G, pgup/pgdown, ctrl+d/u: scroll
//   - T: cycle theme
//   - ?: toggle help
//   - q or Ctrl+C: quit
package ui
