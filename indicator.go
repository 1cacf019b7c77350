package echochat

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// ScrollThreshold is the scroll offset past which the indicator hides.
	ScrollThreshold = 50.0

	indicatorFadeSeconds   = 0.7
	indicatorBounceSeconds = 1.0 // half of the 2s bounce cycle
	indicatorBounceHeight  = 10.0
	indicatorSize          = 40.0
	indicatorBottom        = 40.0
)

var indicatorStroke = RGB(0x33, 0x33, 0x33)

// ScrollIndicator is the bouncing down-arrow at the bottom of the hero
// section. It fades out once the page is scrolled past ScrollThreshold.
type ScrollIndicator struct {
	scrolled bool
	opacity  float64
	fade     *gween.Tween

	bounce     [2]*gween.Tween // down, then up
	bounceHalf int
	offset     float64 // current bounce offset, 0..indicatorBounceHeight
}

// NewScrollIndicator creates a fully visible indicator.
func NewScrollIndicator() *ScrollIndicator {
	return &ScrollIndicator{
		opacity: 1,
		bounce: [2]*gween.Tween{
			gween.New(0, indicatorBounceHeight, indicatorBounceSeconds, ease.InOutSine),
			gween.New(indicatorBounceHeight, 0, indicatorBounceSeconds, ease.InOutSine),
		},
	}
}

// SetScroll updates the scrolled flag from the page offset and starts a fade
// when it flips.
func (s *ScrollIndicator) SetScroll(scrollY float64) {
	scrolled := scrollY > ScrollThreshold
	if scrolled == s.scrolled {
		return
	}
	s.scrolled = scrolled
	target := 1.0
	if scrolled {
		target = 0
	}
	s.fade = gween.New(float32(s.opacity), float32(target), indicatorFadeSeconds, ease.Linear)
}

// Scrolled reports whether the page is past ScrollThreshold.
func (s *ScrollIndicator) Scrolled() bool {
	return s.scrolled
}

// Opacity returns the fade opacity in [0, 1].
func (s *ScrollIndicator) Opacity() float64 {
	return s.opacity
}

// Offset returns the current bounce offset in pixels.
func (s *ScrollIndicator) Offset() float64 {
	return s.offset
}

// pulseAlpha maps the bounce offset to the 0.8..1 keyframe opacity.
func (s *ScrollIndicator) pulseAlpha() float64 {
	return 0.8 + 0.2*(s.offset/indicatorBounceHeight)
}

// update advances the fade and bounce tweens by dt seconds.
func (s *ScrollIndicator) update(dt float32) {
	if s.fade != nil {
		val, done := s.fade.Update(dt)
		s.opacity = clamp01(float64(val))
		if done {
			s.fade = nil
		}
	}

	t := s.bounce[s.bounceHalf]
	val, done := t.Update(dt)
	s.offset = float64(val)
	if done {
		t.Reset()
		s.bounceHalf = 1 - s.bounceHalf
	}
}

// Bounds returns the clickable area for a hero section of the given size.
func (s *ScrollIndicator) Bounds(w, h float64) Rect {
	return Rect{
		X:      (w - indicatorSize) / 2,
		Y:      h - indicatorBottom - indicatorSize,
		Width:  indicatorSize,
		Height: indicatorSize,
	}
}

// draw strokes the arrow: a vertical shaft and two head segments, following
// the 40×40 "M20 5V35M20 35L10 25M20 35L30 25" outline.
func (s *ScrollIndicator) draw(dst *ebiten.Image, w, h, dy float64) {
	a := s.opacity * s.pulseAlpha()
	if a <= 0 {
		return
	}
	b := s.Bounds(w, h)
	ox := float32(b.X)
	oy := float32(b.Y + s.offset + dy)
	c := indicatorStroke.WithAlpha(a).toRGBA()

	stroke := func(x0, y0, x1, y1 float32) {
		vector.StrokeLine(dst, ox+x0, oy+y0, ox+x1, oy+y1, 2, c, true)
	}
	stroke(20, 5, 20, 35)
	stroke(20, 35, 10, 25)
	stroke(20, 35, 30, 25)
}
