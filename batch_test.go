package echochat

import "testing"

func TestAppendQuadGeometry(t *testing.T) {
	var b quadBatch
	b.appendQuad(10, 20, 2, 3, ColorInk, 1)
	if len(b.verts) != 4 || len(b.inds) != 6 || b.quads != 1 {
		t.Fatalf("verts/inds/quads = %d/%d/%d, want 4/6/1", len(b.verts), len(b.inds), b.quads)
	}
	v := b.verts
	if v[0].DstX != 10 || v[0].DstY != 20 || v[3].DstX != 12 || v[3].DstY != 23 {
		t.Errorf("corners = (%v,%v)-(%v,%v), want (10,20)-(12,23)", v[0].DstX, v[0].DstY, v[3].DstX, v[3].DstY)
	}
	want := []uint32{0, 1, 2, 1, 3, 2}
	for i, idx := range b.inds {
		if idx != want[i] {
			t.Errorf("inds[%d] = %d, want %d", i, idx, want[i])
		}
	}
}

func TestAppendQuadPremultiplied(t *testing.T) {
	var b quadBatch
	b.appendQuad(0, 0, 1, 1, Color{1, 0.5, 0.25, 1}, 0.5)
	v := b.verts[0]
	assertNear(t, "ColorR", float64(v.ColorR), 0.5)
	assertNear(t, "ColorG", float64(v.ColorG), 0.25)
	assertNear(t, "ColorB", float64(v.ColorB), 0.125)
	assertNear(t, "ColorA", float64(v.ColorA), 0.5)
}

func TestAppendQuadSkipsInvisible(t *testing.T) {
	var b quadBatch
	b.appendQuad(0, 0, 1, 1, ColorInk, 0)
	b.appendQuad(0, 0, 0, 1, ColorInk, 1)
	if b.quads != 0 || len(b.verts) != 0 {
		t.Errorf("quads = %d, want 0", b.quads)
	}
}

func TestAppendParticlesGlow(t *testing.T) {
	particles := []Particle{
		{X: 10, Y: 10, Size: 1, Fill: ColorInk, Alpha: 1},
		{X: 20, Y: 20, Size: 2, Fill: ColorInk, Alpha: 1, Glow: 4, GlowColor: ColorInk},
	}
	var b quadBatch
	b.appendParticles(particles, 0, -5)
	if b.quads != 3 {
		t.Fatalf("quads = %d, want 3 (one plain, one glow halo, one core)", b.quads)
	}
	if len(b.verts) != 12 || len(b.inds) != 18 {
		t.Errorf("verts/inds = %d/%d, want 12/18", len(b.verts), len(b.inds))
	}
	if b.verts[0].DstY != 5 {
		t.Errorf("first quad DstY = %v, want 5 after the offset", b.verts[0].DstY)
	}
	halo := b.verts[4]
	// The halo extends glow pixels beyond every side of the core.
	if halo.DstX != 16 || halo.DstY != 11 {
		t.Errorf("halo origin = (%v, %v), want (16, 11)", halo.DstX, halo.DstY)
	}
	if b.verts[7].DstX != 26 || b.verts[7].DstY != 21 {
		t.Errorf("halo far corner = (%v, %v), want (26, 21)", b.verts[7].DstX, b.verts[7].DstY)
	}
	assertNear(t, "halo alpha", float64(halo.ColorA), glowOpacity)
}

func TestQuadBatchReset(t *testing.T) {
	var b quadBatch
	b.appendQuad(0, 0, 1, 1, ColorInk, 1)
	b.reset()
	if b.quads != 0 || len(b.verts) != 0 || len(b.inds) != 0 {
		t.Error("reset should empty the batch")
	}
	b.appendQuad(0, 0, 1, 1, ColorInk, 1)
	if b.inds[0] != 0 {
		t.Errorf("indices should restart at 0 after reset, got %d", b.inds[0])
	}
}
