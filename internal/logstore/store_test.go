package logstore

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestStore_AppendAssignsSequentialNumbers(t *testing.T) {
	var s Store

	texts := []string{"svchost.exe", "explorer.exe", "svchost.exe"}
	for i, text := range texts {
		e := s.Append(text)
		if e.Seq != uint64(i) {
			t.Fatalf("Append(%q).Seq = %d, want %d", text, e.Seq, i)
		}
		if e.Text != text {
			t.Fatalf("Append(%q).Text = %q", text, e.Text)
		}
	}

	if got := s.Count(); got != len(texts) {
		t.Fatalf("Count = %d, want %d", got, len(texts))
	}

	entries := s.Entries()
	for i, e := range entries {
		if e.Seq != uint64(i) || e.Text != texts[i] {
			t.Fatalf("Entries()[%d] = %#v, want seq=%d text=%q", i, e, i, texts[i])
		}
	}
}

func TestStore_EntriesReturnsClone(t *testing.T) {
	var s Store
	s.Append("a")
	s.Append("b")

	entries := s.Entries()
	entries[0].Text = "mutated"

	if got := s.Entries()[0].Text; got != "a" {
		t.Fatalf("Entries should clone; got %q want %q", got, "a")
	}
}

func TestStore_EmptyStore(t *testing.T) {
	var s Store

	if s.Count() != 0 {
		t.Fatalf("Count = %d, want 0", s.Count())
	}
	if entries := s.Entries(); entries != nil {
		t.Fatalf("Entries = %#v, want nil", entries)
	}
	if text := s.Text(); text != "" {
		t.Fatalf("Text = %q, want empty", text)
	}
}

func TestStore_Since(t *testing.T) {
	var s Store
	for i := 0; i < 5; i++ {
		s.Append(fmt.Sprintf("p%d", i))
	}

	tests := []struct {
		name  string
		seq   uint64
		first string
		count int
	}{
		{"from start", 0, "p0", 5},
		{"middle", 3, "p3", 2},
		{"last", 4, "p4", 1},
		{"past end", 5, "", 0},
		{"far past end", 100, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Since(tt.seq)
			if len(got) != tt.count {
				t.Fatalf("Since(%d) returned %d entries, want %d", tt.seq, len(got), tt.count)
			}
			if tt.count > 0 && got[0].Text != tt.first {
				t.Fatalf("Since(%d)[0] = %q, want %q", tt.seq, got[0].Text, tt.first)
			}
		})
	}
}

func TestStore_TextUsesLineFormat(t *testing.T) {
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	s := Store{Now: func() time.Time { return fixed }}
	s.Append("cmd.exe")
	s.Append("notepad.exe")

	want := "2025-03-04 05:06:07 - INFO - cmd.exe\n2025-03-04 05:06:07 - INFO - notepad.exe"
	if got := s.Text(); got != want {
		t.Fatalf("Text = %q, want %q", got, want)
	}
}

func TestStore_ConcurrentAppendAndRead(t *testing.T) {
	var s Store
	const total = 2000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			s.Append(fmt.Sprintf("proc-%d", i))
		}
	}()

	// Every snapshot taken while appending must be a gap-free prefix.
	for s.Count() < total {
		entries := s.Entries()
		for i, e := range entries {
			if e.Seq != uint64(i) {
				t.Fatalf("snapshot entry %d has seq %d", i, e.Seq)
			}
			if e.Text != fmt.Sprintf("proc-%d", i) {
				t.Fatalf("snapshot entry %d has text %q", i, e.Text)
			}
		}
	}
	wg.Wait()

	if got := s.Count(); got != total {
		t.Fatalf("Count = %d, want %d", got, total)
	}
}
