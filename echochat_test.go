package echochat

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestRGB(t *testing.T) {
	c := RGB(0x11, 0x22, 0xff)
	assertNear(t, "R", c.R, 17.0/255)
	assertNear(t, "G", c.G, 34.0/255)
	assertNear(t, "B", c.B, 1)
	assertNear(t, "A", c.A, 1)
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.toRGBA()
	want := color.RGBA{R: 128, G: 64, B: 0, A: 128}
	if got != want {
		t.Errorf("toRGBA = %v, want %v", got, want)
	}
}

func TestColorToRGBAClamps(t *testing.T) {
	got := Color{2, -1, 0.5, 3}.toRGBA()
	want := color.RGBA{R: 255, G: 0, B: 128, A: 255}
	if got != want {
		t.Errorf("toRGBA = %v, want %v", got, want)
	}
}

func TestWithAlpha(t *testing.T) {
	c := ColorInk.WithAlpha(0.25)
	assertNear(t, "A", c.A, 0.25)
	assertNear(t, "R", c.R, ColorInk.R)
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{40, 60, true},
		{25, 30, true},
		{9.9, 30, false},
		{25, 60.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRangeSample(t *testing.T) {
	rng := newTestRand()
	r := Range{Min: 50, Max: 150}
	for i := 0; i < 1000; i++ {
		v := r.Sample(rng)
		if v < r.Min || v >= r.Max {
			t.Fatalf("Sample = %v, want in [%v, %v)", v, r.Min, r.Max)
		}
	}
	if got := (Range{Min: 3, Max: 3}).Sample(rng); got != 3 {
		t.Errorf("degenerate Sample = %v, want 3", got)
	}
}

func TestSeededRand(t *testing.T) {
	if SeededRand(0) != nil {
		t.Error("SeededRand(0) should be nil")
	}
	a, b := SeededRand(42), SeededRand(42)
	for i := 0; i < 10; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("same seed should give the same sequence")
		}
	}
}

func TestLerp(t *testing.T) {
	assertNear(t, "lerp(0,10,0.25)", lerp(0, 10, 0.25), 2.5)
	assertNear(t, "lerp(4,-4,1)", lerp(4, -4, 1), -4)
}
