package echochat

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport is the vertical scroll position of the page. ScrollY is the
// number of pixels the page content is shifted up, in [0, MaxScroll].
type Viewport struct {
	ScrollY   float64
	MaxScroll float64

	scrollTween *gween.Tween
}

// SetMaxScroll updates the scroll range and clamps the current position.
func (v *Viewport) SetMaxScroll(max float64) {
	if max < 0 {
		max = 0
	}
	v.MaxScroll = max
	v.clamp()
}

// ScrollBy moves the page by dy pixels immediately, cancelling any running
// scroll animation.
func (v *Viewport) ScrollBy(dy float64) {
	if dy == 0 {
		return
	}
	v.scrollTween = nil
	v.ScrollY += dy
	v.clamp()
}

// ScrollTo animates the page to offset y over duration seconds.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	if y < 0 {
		y = 0
	}
	if y > v.MaxScroll {
		y = v.MaxScroll
	}
	v.scrollTween = gween.New(float32(v.ScrollY), float32(y), duration, easeFn)
}

// Scrolling reports whether a ScrollTo animation is running.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// update advances the scroll animation by dt seconds.
func (v *Viewport) update(dt float32) {
	if v.scrollTween == nil {
		return
	}
	val, done := v.scrollTween.Update(dt)
	v.ScrollY = float64(val)
	if done {
		v.scrollTween = nil
	}
	v.clamp()
}

func (v *Viewport) clamp() {
	if v.ScrollY < 0 {
		v.ScrollY = 0
	}
	if v.ScrollY > v.MaxScroll {
		v.ScrollY = v.MaxScroll
	}
}
