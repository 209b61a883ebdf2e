package highlight

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/led-robster/process-logger/internal/logstore"
)

// Result summarises one search pass.
type Result struct {
	Query       string
	Tone        Tone
	Matched     int // entries matching the query
	Newly       int // entries that became counted during this pass
	Highlighted int // counter after the pass
}

// Engine tracks per-entry highlight marks on top of a logstore snapshot.
type Engine struct {
	mu          sync.Mutex
	rng         *rand.Rand
	palette     Palette
	generation  uint64
	cursor      int
	marks       map[uint64]Tone
	highlighted int
}

// NewEngine returns an engine whose palettes are derived from base using a
// PRNG seeded with seed.
func NewEngine(base colorful.Color, seed uint64) *Engine {
	e := &Engine{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		marks: make(map[uint64]Tone),
	}
	e.palette = NewPalette(e.generation, base, e.rng)
	return e
}

// Normalize lower-cases s and turns every "." into a space so dotted names
// such as "svchost.exe" match "svchost exe".
func Normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), ".", " ")
}

// Matches reports whether text contains query after normalization. An empty
// query matches everything.
func Matches(text, query string) bool {
	return strings.Contains(Normalize(text), Normalize(query))
}

// Search marks every entry matching query with the current rotation tone and
// advances the rotation. Entries are visited once each, in order.
//
// A match is counted only when the entry was unmarked or carried a tone from
// an older palette; re-matching a line already marked from the current
// palette just refreshes its shade. Non-matching marks are left alone.
func (e *Engine) Search(entries []logstore.Entry, query string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	tone := e.palette.Tone(e.cursor)
	e.cursor = (e.cursor + 1) % e.palette.Len()

	res := Result{Query: query, Tone: tone}
	needle := Normalize(query)
	for _, entry := range entries {
		if !strings.Contains(Normalize(entry.Text), needle) {
			continue
		}
		res.Matched++
		prev, marked := e.marks[entry.Seq]
		if !marked || !e.palette.Contains(prev) {
			e.highlighted++
			res.Newly++
		}
		e.marks[entry.Seq] = tone
	}
	res.Highlighted = e.highlighted
	return res
}

// Clear removes every mark and zeroes the counter. Safe to call repeatedly.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	clear(e.marks)
	e.highlighted = 0
}

// SetBaseColor regenerates the palette and restarts the rotation. Existing
// marks keep their old tone on screen but drop out of the counter; a later
// search that matches them counts them again under the new palette.
func (e *Engine) SetBaseColor(base colorful.Color) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.generation++
	e.palette = NewPalette(e.generation, base, e.rng)
	e.cursor = 0
	e.highlighted = 0
}

// HighlightedCount returns the number of entries marked from the current
// palette.
func (e *Engine) HighlightedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.highlighted
}

// Mark returns the tone currently assigned to the entry with sequence seq.
func (e *Engine) Mark(seq uint64) (Tone, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.marks[seq]
	return t, ok
}

// Palette returns the active palette.
func (e *Engine) Palette() Palette {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.palette
}

// Cursor returns the index of the tone the next search will use.
func (e *Engine) Cursor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// Current reports whether t belongs to the active palette.
func (e *Engine) Current(t Tone) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.palette.Contains(t)
}
