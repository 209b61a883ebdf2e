package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for in, want := range cases {
		if got := NextTheme(in); got != want {
			t.Fatalf("NextTheme(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%s).Name = %q, want %s", name, got, name)
		}
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestToneStyle_PicksReadableForeground(t *testing.T) {
	th := GetTheme("Nightfox")

	light, _ := colorful.Hex("#ffff00")
	if got := th.ToneStyle(light).GetForeground(); got != lipgloss.Color(th.Background) {
		t.Fatalf("foreground on light tone = %v, want %v", got, th.Background)
	}

	dark, _ := colorful.Hex("#202040")
	if got := th.ToneStyle(dark).GetForeground(); got != lipgloss.Color(th.Text) {
		t.Fatalf("foreground on dark tone = %v, want %v", got, th.Text)
	}
}
