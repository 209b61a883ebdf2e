package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// osc52Limit caps the payload sent through the terminal; most terminals
// silently drop larger sequences.
const osc52Limit = 100 * 1024

// CopyToClipboard writes text to the system clipboard. When no clipboard
// utility is available (SSH sessions, bare consoles) it falls back to an
// OSC 52 escape sequence written to stdout.
func CopyToClipboard(text string) error {
	if !clipboard.Unsupported {
		if err := clipboard.WriteAll(text); err == nil {
			return nil
		}
	}
	return osc52Write(os.Stdout, text)
}

// osc52Write emits text as an OSC 52 sequence, wrapped for tmux or screen
// when running inside one.
func osc52Write(w io.Writer, text string) error {
	if len(text) > osc52Limit {
		return fmt.Errorf("clipboard payload of %d bytes exceeds %d byte limit", len(text), osc52Limit)
	}
	seq := osc52.New(text).Limit(osc52Limit)
	term := strings.ToLower(os.Getenv("TERM"))
	if os.Getenv("TMUX") != "" || strings.HasPrefix(term, "tmux") {
		seq = seq.Tmux()
	} else if strings.HasPrefix(term, "screen") {
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(w); err != nil {
		return fmt.Errorf("write osc52 sequence: %w", err)
	}
	return nil
}
