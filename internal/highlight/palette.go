package highlight

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteSize is the number of tones generated from a base color.
const PaletteSize = 5

// DefaultBaseColor is the base color used when no preference is stored.
const DefaultBaseColor = "#ffff00"

// Perturbation bounds, expressed on go-colorful's HSL scale
// (hue in degrees, saturation and lightness in [0, 1]).
const (
	hueJitter   = 10.0
	satJitter   = 30.0 / 255.0
	lightJitter = 40.0 / 255.0
)

var namedColors = map[string]string{
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"red":     "#ff0000",
	"pink":    "#ffc0cb",
	"magenta": "#ff00ff",
	"purple":  "#800080",
	"blue":    "#0000ff",
	"cyan":    "#00ffff",
	"green":   "#00ff00",
	"white":   "#ffffff",
}

// Tone is one shade of a palette. Generation identifies the palette that
// produced it.
type Tone struct {
	Generation uint64
	Index      int
	Color      colorful.Color
}

// Hex returns the tone as #rrggbb.
func (t Tone) Hex() string {
	return t.Color.Hex()
}

// Palette is an ordered set of near-identical tones derived from a base color.
type Palette struct {
	generation uint64
	base       colorful.Color
	tones      []Tone
}

// NewPalette derives PaletteSize tones from base by randomly nudging hue,
// saturation and lightness within fixed bounds.
func NewPalette(generation uint64, base colorful.Color, rng *rand.Rand) Palette {
	h, s, l := base.Clamped().Hsl()

	tones := make([]Tone, PaletteSize)
	for i := range tones {
		th := math.Mod(h+jitter(rng, hueJitter)+360, 360)
		ts := clamp01(s + jitter(rng, satJitter))
		tl := clamp01(l + jitter(rng, lightJitter))
		tones[i] = Tone{
			Generation: generation,
			Index:      i,
			Color:      colorful.Hsl(th, ts, tl).Clamped(),
		}
	}
	return Palette{generation: generation, base: base, tones: tones}
}

// Generation returns the palette's identity.
func (p Palette) Generation() uint64 { return p.generation }

// Base returns the color the palette was derived from.
func (p Palette) Base() colorful.Color { return p.base }

// Len returns the number of tones.
func (p Palette) Len() int { return len(p.tones) }

// Tone returns the tone at index i.
func (p Palette) Tone(i int) Tone { return p.tones[i] }

// Tones returns a copy of the palette's tones.
func (p Palette) Tones() []Tone {
	dup := make([]Tone, len(p.tones))
	copy(dup, p.tones)
	return dup
}

// Contains reports whether t was produced by this palette.
func (p Palette) Contains(t Tone) bool {
	return t.Generation == p.generation && t.Index >= 0 && t.Index < len(p.tones)
}

// ParseColor accepts #rrggbb, #rgb (with or without the leading #) and a
// handful of color names.
func ParseColor(value string) (colorful.Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if hex, ok := namedColors[v]; ok {
		v = hex
	}
	if v != "" && !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q", value)
	}
	return c, nil
}

func jitter(rng *rand.Rand, amount float64) float64 {
	return (rng.Float64()*2 - 1) * amount
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
