package echochat

import (
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSnapshot is the pointer state the field reads once per frame.
// X and Y are in field coordinates.
type PointerSnapshot struct {
	X, Y        float64
	TouchDevice bool
	Touching    bool
}

// forceIdle reports whether every particle stays idle this frame: on touch
// devices the field only reacts while a finger is down.
func (s PointerSnapshot) forceIdle() bool {
	return s.TouchDevice && !s.Touching
}

// Pointer merges mouse and single-touch input into one last-known position.
// Positions are stored in window (viewport) coordinates; Snapshot converts
// them to field coordinates for the current scroll offset.
type Pointer struct {
	x, y   float64
	active bool // false after a reset; the position then reads as the field origin

	touching    bool
	touchDevice bool

	cursorInside bool
	lastCursorX  int
	lastCursorY  int
	touchIDs     []ebiten.TouchID
	touchBuf     []ebiten.TouchID

	clicks      []Vec2
	injectQueue []syntheticPointerEvent
}

// NewPointer creates a Pointer. Mobile operating systems start out as touch
// devices; elsewhere the first touch event flips the flag.
func NewPointer() *Pointer {
	return &Pointer{
		touchDevice: runtime.GOOS == "android" || runtime.GOOS == "ios",
	}
}

// Move records a mouse movement to (x, y).
func (p *Pointer) Move(x, y float64) {
	p.x, p.y = x, y
	p.active = true
}

// TouchStart marks a finger as down.
func (p *Pointer) TouchStart() {
	p.touchDevice = true
	p.touching = true
}

// TouchMove records the primary touch moving to (x, y).
func (p *Pointer) TouchMove(x, y float64) {
	p.touchDevice = true
	p.x, p.y = x, y
	p.active = true
}

// TouchEnd lifts the finger and resets the position to the origin.
func (p *Pointer) TouchEnd() {
	p.touching = false
	p.reset()
}

// Leave handles the mouse leaving the window. Ignored on touch devices.
func (p *Pointer) Leave() {
	if p.touchDevice {
		return
	}
	p.reset()
}

// Click queues a click at window coordinates (x, y) for the page to consume.
func (p *Pointer) Click(x, y float64) {
	p.clicks = append(p.clicks, Vec2{x, y})
}

func (p *Pointer) reset() {
	p.x, p.y = 0, 0
	p.active = false
}

// Position returns the last known position in window coordinates and whether
// it is live (not reset).
func (p *Pointer) Position() (x, y float64, ok bool) {
	return p.x, p.y, p.active
}

// Touching reports whether a finger is currently down.
func (p *Pointer) Touching() bool {
	return p.touching
}

// TouchDevice reports whether this device has produced touch input.
func (p *Pointer) TouchDevice() bool {
	return p.touchDevice
}

// Snapshot returns the pointer in field coordinates, where the field is
// scrolled up by scrollY pixels.
func (p *Pointer) Snapshot(scrollY float64) PointerSnapshot {
	s := PointerSnapshot{TouchDevice: p.touchDevice, Touching: p.touching}
	if p.active {
		s.X = p.x
		s.Y = p.y + scrollY
	}
	return s
}

// takeClicks returns and clears the queued clicks.
func (p *Pointer) takeClicks(buf []Vec2) []Vec2 {
	buf = append(buf[:0], p.clicks...)
	p.clicks = p.clicks[:0]
	return buf
}

// poll reads this frame's input. A queued synthetic event replaces real input
// for the frame. bounds is the window rectangle in window coordinates.
func (p *Pointer) poll(bounds Rect) {
	if p.processInjected() {
		return
	}
	p.pollMouse(bounds)
	p.pollTouches()
}

// pollMouse turns cursor position changes into Move, Leave and Click. An
// unfocused window counts as the cursor being gone.
func (p *Pointer) pollMouse(bounds Rect) {
	cx, cy := ebiten.CursorPosition()
	available := ebiten.IsFocused() && bounds.Contains(float64(cx), float64(cy))
	p.trackCursor(cx, cy, available, inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft))
}

// trackCursor applies one frame of cursor state. A cursor that stops being
// available leaves once; a released button inside the window clicks.
func (p *Pointer) trackCursor(cx, cy int, available, released bool) {
	if !available {
		if p.cursorInside {
			p.Leave()
		}
		p.cursorInside = false
		return
	}
	if !p.cursorInside || cx != p.lastCursorX || cy != p.lastCursorY {
		p.Move(float64(cx), float64(cy))
	}
	p.cursorInside = true
	p.lastCursorX, p.lastCursorY = cx, cy

	if released {
		p.Click(float64(cx), float64(cy))
	}
}

// pollTouches tracks the first active touch only.
func (p *Pointer) pollTouches() {
	p.touchBuf = inpututil.AppendJustPressedTouchIDs(p.touchBuf[:0])
	if len(p.touchBuf) > 0 {
		p.TouchStart()
	}

	for _, id := range p.touchIDs {
		if inpututil.IsTouchJustReleased(id) {
			x, y := inpututil.TouchPositionInPreviousTick(id)
			p.TouchEnd()
			p.Click(float64(x), float64(y))
			break
		}
	}

	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) == 0 {
		return
	}
	id := p.touchIDs[0]
	x, y := ebiten.TouchPosition(id)
	px, py := inpututil.TouchPositionInPreviousTick(id)
	if x != px || y != py || !p.active {
		p.TouchMove(float64(x), float64(y))
	}
}
