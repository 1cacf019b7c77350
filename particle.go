package echochat

import "math/rand/v2"

// Particle is one square sampled from the mask text.
type Particle struct {
	X, Y         float64
	BaseX, BaseY float64
	VX, VY       float64
	Size         float64
	// Life is the number of frames left before the particle respawns.
	Life float64

	// Fixed at creation.
	Color             Color
	ReflectionColor   Color
	ReflectionOpacity float64
	IsEcho            bool
	Reflective        bool

	// Render state for the current frame, written by Field.Update.
	Fill      Color
	Alpha     float64
	Glow      float64
	GlowColor Color
}

const (
	spawnAttempts    = 100
	reflectiveChance = 0.15
	driftMagnitude   = 0.05 // velocity per axis is (U[0,1)-0.5)*driftMagnitude
)

var (
	particleLife        = Range{50, 150}
	reflectiveSize      = Range{0.8, 2.0}
	plainSize           = Range{0.4, 1.2}
	reflectionOpacities = Range{0.5, 1.0}
)

// spawnParticle rejection-samples mask for an opaque pixel and materializes a
// particle there. ok is false when the attempt budget runs out, which is a
// normal outcome on sparse masks.
func spawnParticle(mask *TextMask, rng *rand.Rand) (p Particle, ok bool) {
	if mask.Empty() {
		return Particle{}, false
	}
	for attempt := 0; attempt < spawnAttempts; attempt++ {
		x := rng.IntN(mask.Width)
		y := rng.IntN(mask.Height)
		if !mask.Opaque(x, y) {
			continue
		}
		return newParticle(float64(x), float64(y), float64(x) < mask.SplitX, rng), true
	}
	return Particle{}, false
}

// newParticle draws the randomized attributes of a particle based at (x, y).
func newParticle(x, y float64, isEcho bool, rng *rand.Rand) Particle {
	reflective := rng.Float64() < reflectiveChance

	reflection := ColorInk
	if reflective {
		reflection = reflectionColor(isEcho, rng)
	}

	size := plainSize.Sample(rng)
	if reflective {
		size = reflectiveSize.Sample(rng)
	}

	p := Particle{
		X:                 x,
		Y:                 y,
		BaseX:             x,
		BaseY:             y,
		Size:              size,
		Color:             ColorInk,
		ReflectionColor:   reflection,
		ReflectionOpacity: reflectionOpacities.Sample(rng),
		IsEcho:            isEcho,
		Life:              particleLife.Sample(rng),
		VX:                (rng.Float64() - 0.5) * driftMagnitude,
		VY:                (rng.Float64() - 0.5) * driftMagnitude,
		Reflective:        reflective,
	}
	p.Fill = p.Color
	p.Alpha = 1
	return p
}

// reflectionColor picks a dark tint: bluish for "Echo", reddish for "Chat".
func reflectionColor(isEcho bool, rng *rand.Rand) Color {
	if isEcho {
		return RGB(
			uint8(30+rng.IntN(20)),
			uint8(30+rng.IntN(20)),
			uint8(50+rng.IntN(30)),
		)
	}
	return RGB(
		uint8(40+rng.IntN(20)),
		uint8(30+rng.IntN(20)),
		uint8(30+rng.IntN(20)),
	)
}
