package logstore

import (
	"strings"
	"sync"
	"time"
)

// lineLayout mirrors the "asctime - levelname - message" shape of a
// classic logging formatter.
const lineLayout = "2006-01-02 15:04:05"

// Entry is a single appended log line. Entries are immutable once stored.
type Entry struct {
	Seq  uint64
	Text string
	Time time.Time
}

// Line returns the display form of the entry.
func (e Entry) Line() string {
	return e.Time.Format(lineLayout) + " - INFO - " + e.Text
}

// Store is an append-only, ordered log. The zero value is ready to use.
type Store struct {
	mu      sync.RWMutex
	entries []Entry

	// Now overrides the clock used to stamp entries. Nil uses time.Now.
	Now func() time.Time
}

// Append stores text as the next entry and returns it. The sequence number
// is assigned under the write lock, so readers never see a gap or a
// partially built entry.
func (s *Store) Append(text string) Entry {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		Seq:  uint64(len(s.entries)),
		Text: text,
		Time: now(),
	}
	s.entries = append(s.entries, entry)
	return entry
}

// Entries returns a copy of every stored entry in sequence order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries)
}

// Since returns a copy of the entries whose sequence number is >= seq.
func (s *Store) Since(seq uint64) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if seq >= uint64(len(s.entries)) {
		return nil
	}
	return cloneEntries(s.entries[seq:])
}

// Count returns the number of stored entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Text renders the whole log, one line per entry.
func (s *Store) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	for i, e := range s.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Line())
	}
	return b.String()
}

func cloneEntries(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return dup
}
