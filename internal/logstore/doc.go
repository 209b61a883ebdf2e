// Package logstore provides the append-only log shared by the ingestion
// producer and the UI.
//
// # Overview
//
// Every observed event becomes one Entry. Entries are numbered from zero in
// arrival order and are never modified or removed, so the Store is the
// source of truth for the total count and for the full replay performed by
// a highlight search or clear.
//
// # Concurrency Model
//
// The Store mediates between two goroutines:
//
//	Producer (ingest):             Consumer (UI):
//	┌────────────────┐            ┌──────────────────┐
//	│ source.Next()  │            │                  │
//	│      ↓         │            │                  │
//	│ store.Append() │───────────→│ store.Entries()  │
//	│      ↓         │  (RWMutex) │ store.Count()    │
//	│  repeat...     │            │ highlight/render │
//	└────────────────┘            └──────────────────┘
//
// Append takes the write lock, assigns the next sequence number and stores
// the entry in one step. Entries, Since, Count and Text take the read lock.
//
// A reader therefore always observes a consistent prefix of the log: an
// entry being appended concurrently is either fully visible or absent.
//
// # Defensive Copying
//
// Entries and Since return cloned slices. Callers may hold on to them while
// the producer keeps appending without racing on the backing array.
//
// # Testing Considerations
//
// The zero value is ready to use. Set Store.Now to pin timestamps:
//
//	store := &logstore.Store{Now: func() time.Time { return fixed }}
package logstore
