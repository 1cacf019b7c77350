package echochat

import "github.com/hajimehoshi/ebiten/v2"

// glowOpacity scales the halo drawn behind a glowing particle relative to the
// particle's own alpha.
const glowOpacity = 0.25

// quadBatch accumulates solid quads and submits them with one
// DrawTriangles32 call against WhitePixel.
type quadBatch struct {
	verts []ebiten.Vertex
	inds  []uint32
	quads int
}

// reset empties the batch while keeping its buffers.
func (b *quadBatch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	b.quads = 0
}

// appendParticles adds one quad per particle, preceded by a halo quad for
// particles with a glow. The field is drawn shifted by (dx, dy).
func (b *quadBatch) appendParticles(particles []Particle, dx, dy float64) {
	for i := range particles {
		p := &particles[i]
		if p.Glow > 0 {
			side := p.Size + 2*p.Glow
			b.appendQuad(p.X-p.Glow+dx, p.Y-p.Glow+dy, side, side,
				p.GlowColor, p.GlowColor.A*p.Alpha*glowOpacity)
		}
		b.appendQuad(p.X+dx, p.Y+dy, p.Size, p.Size, p.Fill, p.Fill.A*p.Alpha)
	}
}

// appendQuad adds an axis-aligned w×h quad at (x, y) with color c at alpha a.
func (b *quadBatch) appendQuad(x, y, w, h float64, c Color, a float64) {
	a = clamp01(a)
	if a == 0 || w <= 0 || h <= 0 {
		return
	}

	// Premultiplied vertex color.
	cr := float32(clamp01(c.R) * a)
	cg := float32(clamp01(c.G) * a)
	cb := float32(clamp01(c.B) * a)
	ca := float32(a)

	x0, y0 := float32(x), float32(y)
	x1, y1 := float32(x+w), float32(y+h)
	dstX := [4]float32{x0, x1, x0, x1}
	dstY := [4]float32{y0, y0, y1, y1}
	srcX := [4]float32{0, 1, 0, 1}
	srcY := [4]float32{0, 0, 1, 1}

	base := uint32(len(b.verts))
	for j := 0; j < 4; j++ {
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   dstX[j],
			DstY:   dstY[j],
			SrcX:   srcX[j],
			SrcY:   srcY[j],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	b.inds = append(b.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
	b.quads++
}

// submit draws the batch onto target and resets it.
func (b *quadBatch) submit(target *ebiten.Image) {
	if len(b.verts) == 0 {
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = ebiten.BlendSourceOver
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha

	target.DrawTriangles32(b.verts, b.inds, WhitePixel, &triOp)
	b.reset()
}
