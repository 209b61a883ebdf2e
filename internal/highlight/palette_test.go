package highlight

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func TestNewPalette_TonesStayWithinBounds(t *testing.T) {
	bases := []string{"#ffff00", "#ff0000", "#0a0a0a", "#f0f0f0", "#3366cc"}
	const eps = 1e-6

	for _, hex := range bases {
		t.Run(hex, func(t *testing.T) {
			base, err := colorful.Hex(hex)
			if err != nil {
				t.Fatalf("Hex(%q): %v", hex, err)
			}
			bh, bs, bl := base.Hsl()

			p := NewPalette(3, base, rand.New(rand.NewPCG(1, 2)))
			if p.Len() != PaletteSize {
				t.Fatalf("Len = %d, want %d", p.Len(), PaletteSize)
			}
			for i, tone := range p.Tones() {
				if tone.Index != i || tone.Generation != 3 {
					t.Fatalf("tone %d = %#v, want index=%d generation=3", i, tone, i)
				}
				if !tone.Color.IsValid() {
					t.Fatalf("tone %d color %v is out of gamut", i, tone.Color)
				}
				h, s, l := tone.Color.Hsl()
				// Hue is meaningless for greys, so only check it on saturated bases.
				if bs > 0.1 && s > 0.1 && hueDistance(h, bh) > hueJitter+0.5 {
					t.Fatalf("tone %d hue %.2f too far from base %.2f", i, h, bh)
				}
				if math.Abs(s-bs) > satJitter+0.01+eps && s > eps && s < 1-eps {
					t.Fatalf("tone %d saturation %.3f too far from base %.3f", i, s, bs)
				}
				if math.Abs(l-bl) > lightJitter+0.01+eps {
					t.Fatalf("tone %d lightness %.3f too far from base %.3f", i, l, bl)
				}
			}
		})
	}
}

func TestNewPalette_DeterministicForSeed(t *testing.T) {
	base, _ := colorful.Hex("#ffff00")

	a := NewPalette(0, base, rand.New(rand.NewPCG(42, 42)))
	b := NewPalette(0, base, rand.New(rand.NewPCG(42, 42)))
	for i := 0; i < PaletteSize; i++ {
		if a.Tone(i).Hex() != b.Tone(i).Hex() {
			t.Fatalf("tone %d differs for identical seeds: %s vs %s", i, a.Tone(i).Hex(), b.Tone(i).Hex())
		}
	}
}

func TestPalette_ContainsUsesGeneration(t *testing.T) {
	base, _ := colorful.Hex("#ffff00")
	rng := rand.New(rand.NewPCG(7, 7))
	first := NewPalette(1, base, rng)
	second := NewPalette(2, base, rng)

	if !first.Contains(first.Tone(0)) {
		t.Fatal("palette should contain its own tone")
	}
	if second.Contains(first.Tone(0)) {
		t.Fatal("palette should not contain a tone from an older generation")
	}
	if first.Contains(Tone{Generation: 1, Index: PaletteSize}) {
		t.Fatal("palette should reject out-of-range index")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"#ffff00", "#ffff00", false},
		{"FF8800", "#ff8800", false},
		{"  #abc ", "#aabbcc", false},
		{"Yellow", "#ffff00", false},
		{"cyan", "#00ffff", false},
		{"", "", true},
		{"not-a-color", "", true},
		{"#zzzzzz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseColor(%q) = %v, want error", tt.input, got.Hex())
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.input, err)
			}
			if got.Hex() != tt.want {
				t.Fatalf("ParseColor(%q) = %s, want %s", tt.input, got.Hex(), tt.want)
			}
		})
	}
}
