package echochat

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	// InteractionRadius is the pointer distance below which particles are repelled.
	InteractionRadius = 180.0
	// RepulsionStrength is the deflection in pixels at zero pointer distance.
	RepulsionStrength = 30.0

	idleDrift         = 0.5
	idleReturn        = 0.08
	interactiveReturn = 0.1

	baseParticleCount = 10000
	referenceArea     = 1920 * 1080

	// topUpRetries bounds the factory calls per missing particle in TopUp so a
	// mask without opaque pixels cannot stall a frame.
	topUpRetries = 64
)

// interactiveGlowColor is the soft shadow behind plain particles near the pointer.
var interactiveGlowColor = Color{0, 0, 0, 0.3}

// TargetCount returns the particle count for a w×h canvas: 10000 at
// 1920×1080, scaled by the square root of the area ratio.
func TargetCount(w, h int) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	ratio := float64(w) * float64(h) / referenceArea
	return int(math.Floor(baseParticleCount * math.Sqrt(ratio)))
}

// Pulse returns the shared glow pulse in [0, 1] for the given elapsed time.
// One full cycle takes 2π seconds.
func Pulse(elapsed time.Duration) float64 {
	return math.Sin(elapsed.Seconds())*0.5 + 0.5
}

// Field owns the text mask and the particle collection sampled from it. It is
// not safe for concurrent use; the page drives it from the game goroutine.
type Field struct {
	width, height int
	mobile        bool

	font      *MaskFont
	surface   maskSurface
	mask      *TextMask
	particles []Particle
	rng       *rand.Rand

	// pulse is the glow phase of the current frame, applied to particles
	// created outside the per-frame step.
	pulse float64

	// generation counts rebuilds; each Resize starts a new one.
	generation int
}

// NewField creates an empty field. Call Resize to build the mask and the
// initial population. A nil rng seeds one from the runtime.
func NewField(font *MaskFont, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Field{font: font, rng: rng, pulse: Pulse(0)}
}

// Resize rebuilds the mask for a w×h canvas, discards every particle, and
// repopulates up to the new target.
func (f *Field) Resize(w, h int) {
	f.width, f.height = w, h
	f.mobile = IsMobile(w)
	f.mask = f.surface.build(w, h, f.mobile, f.font)
	f.particles = f.particles[:0:0]
	f.generation++
	f.populate()
}

// populate makes one factory call per target slot. Misses are left for TopUp.
func (f *Field) populate() {
	target := f.Target()
	if cap(f.particles) < target {
		f.particles = make([]Particle, 0, target)
	}
	for i := 0; i < target; i++ {
		if p, ok := spawnParticle(f.mask, f.rng); ok {
			p.idleStyle(f.pulse)
			f.particles = append(f.particles, p)
		}
	}
}

// TopUp refills the collection to the target count. It returns the number
// of particles added.
func (f *Field) TopUp() int {
	target := f.Target()
	missing := target - len(f.particles)
	if missing <= 0 {
		return 0
	}
	added := 0
	for budget := missing * topUpRetries; len(f.particles) < target && budget > 0; budget-- {
		if p, ok := spawnParticle(f.mask, f.rng); ok {
			p.idleStyle(f.pulse)
			f.particles = append(f.particles, p)
			added++
		}
	}
	return added
}

// Update advances every particle by one frame against the pointer snapshot
// and sets its render state. A particle whose life ran out on the previous
// frame is replaced by a fresh one before stepping, so the expiring particle
// is drawn once more and its replacement is styled on its first frame. The
// collection is topped back up at the end.
func (f *Field) Update(ptr PointerSnapshot, pulse float64) {
	f.pulse = pulse
	forceIdle := ptr.forceIdle()

	// Filter in place: a kept or respawned particle is written to the next
	// output slot, a failed respawn is dropped. Order is preserved.
	out := f.particles[:0]
	for i := range f.particles {
		p := &f.particles[i]
		if p.Life <= 0 {
			np, ok := spawnParticle(f.mask, f.rng)
			if !ok {
				continue
			}
			*p = np
		}

		dx := ptr.X - p.X
		dy := ptr.Y - p.Y
		dist := math.Sqrt(dx*dx + dy*dy)

		if dist >= InteractionRadius || forceIdle {
			p.stepIdle(pulse)
		} else {
			p.stepInteractive(dx, dy, dist)
		}
		p.Life--
		out = append(out, *p)
	}
	clear(f.particles[len(out):])
	f.particles = out

	f.TopUp()
}

// stepIdle drifts the particle and relaxes it toward its base position.
func (p *Particle) stepIdle(pulse float64) {
	p.X += p.VX * idleDrift
	p.Y += p.VY * idleDrift
	p.X += (p.BaseX - p.X) * idleReturn
	p.Y += (p.BaseY - p.Y) * idleReturn
	p.idleStyle(pulse)
}

// idleStyle sets the render state of a particle away from the pointer.
func (p *Particle) idleStyle(pulse float64) {
	if p.Reflective {
		p.Glow = 3 + pulse*2
		p.GlowColor = p.ReflectionColor
		p.Fill = p.ReflectionColor
		p.Alpha = p.ReflectionOpacity * (0.7 + pulse*0.3)
		return
	}
	p.Glow = 0
	p.Fill = p.Color
	p.Alpha = 1
}

// stepInteractive relaxes the particle toward its base position pushed away
// from the pointer. (dx, dy) points from the particle to the pointer.
func (p *Particle) stepInteractive(dx, dy, dist float64) {
	force := (InteractionRadius - dist) / InteractionRadius
	angle := math.Atan2(dy, dx)
	moveX := math.Cos(angle) * force * RepulsionStrength
	moveY := math.Sin(angle) * force * RepulsionStrength

	p.X += (p.BaseX - moveX - p.X) * interactiveReturn
	p.Y += (p.BaseY - moveY - p.Y) * interactiveReturn

	if p.Reflective {
		p.Glow = 5 + force*5
		p.GlowColor = p.ReflectionColor
		p.Fill = p.ReflectionColor
		p.Alpha = p.ReflectionOpacity * (0.8 + force*0.2)
		return
	}
	p.Glow = force * 3
	p.GlowColor = interactiveGlowColor
	p.Fill = p.Color
	p.Alpha = 1
}

// Size returns the canvas size the field was last built for.
func (f *Field) Size() (w, h int) {
	return f.width, f.height
}

// Mobile reports whether the current layout is the mobile one.
func (f *Field) Mobile() bool {
	return f.mobile
}

// Mask returns the current text mask.
func (f *Field) Mask() *TextMask {
	return f.mask
}

// Target returns the particle count the field maintains at its current size.
func (f *Field) Target() int {
	return TargetCount(f.width, f.height)
}

// Len returns the number of live particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns the live particles. The returned slice MUST NOT be
// retained across Update or Resize calls.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Generation returns how many times the field has been rebuilt.
func (f *Field) Generation() int {
	return f.generation
}
