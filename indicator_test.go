package echochat

import "testing"

func TestIndicatorScrolledThreshold(t *testing.T) {
	s := NewScrollIndicator()
	s.SetScroll(50)
	if s.Scrolled() {
		t.Error("offset 50 should not count as scrolled")
	}
	s.SetScroll(50.5)
	if !s.Scrolled() {
		t.Error("offset past 50 should count as scrolled")
	}
	s.SetScroll(0)
	if s.Scrolled() {
		t.Error("scrolling back should clear the flag")
	}
}

func TestIndicatorFadesOut(t *testing.T) {
	s := NewScrollIndicator()
	s.SetScroll(200)
	s.update(0.35)
	if o := s.Opacity(); o <= 0 || o >= 1 {
		t.Errorf("mid-fade opacity = %v, want in (0, 1)", o)
	}
	s.update(0.5)
	assertNear(t, "Opacity", s.Opacity(), 0)

	s.SetScroll(0)
	for i := 0; i < 60; i++ {
		s.update(1.0 / 60)
	}
	assertNear(t, "Opacity", s.Opacity(), 1)
}

func TestIndicatorFadeRestartsFromCurrent(t *testing.T) {
	s := NewScrollIndicator()
	s.SetScroll(200)
	s.update(0.35)
	mid := s.Opacity()
	s.SetScroll(0)
	s.update(0.0001)
	if s.Opacity() < mid-0.01 {
		t.Errorf("reversed fade jumped from %v to %v", mid, s.Opacity())
	}
}

func TestIndicatorBounce(t *testing.T) {
	s := NewScrollIndicator()
	peak := 0.0
	for i := 0; i < 240; i++ {
		s.update(1.0 / 60)
		off := s.Offset()
		if off < 0 || off > indicatorBounceHeight {
			t.Fatalf("offset %v outside [0, %v]", off, indicatorBounceHeight)
		}
		peak = max(peak, off)
		if a := s.pulseAlpha(); a < 0.8-epsilon || a > 1+epsilon {
			t.Fatalf("pulse alpha %v outside [0.8, 1]", a)
		}
	}
	if peak < indicatorBounceHeight-0.5 {
		t.Errorf("peak offset = %v, want close to %v", peak, indicatorBounceHeight)
	}
}

func TestIndicatorBounds(t *testing.T) {
	s := NewScrollIndicator()
	b := s.Bounds(1280, 720)
	want := Rect{X: 620, Y: 640, Width: 40, Height: 40}
	if b != want {
		t.Errorf("Bounds = %+v, want %+v", b, want)
	}
}
