package echochat

// pointerEventKind identifies a synthetic pointer event.
type pointerEventKind uint8

const (
	eventMove pointerEventKind = iota
	eventTouchStart
	eventTouchMove
	eventTouchEnd
	eventLeave
	eventClick
)

// syntheticPointerEvent represents a single injected pointer event in window
// coordinates, identical to what real input would report.
type syntheticPointerEvent struct {
	kind pointerEventKind
	x, y float64
}

// InjectMove queues a mouse move to (x, y). The event is consumed on the next
// frame's poll, replacing real input for that frame.
func (p *Pointer) InjectMove(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{kind: eventMove, x: x, y: y})
}

// InjectLeave queues the mouse leaving the window.
func (p *Pointer) InjectLeave() {
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{kind: eventLeave})
}

// InjectClick queues a click at (x, y). Consumes one frame.
func (p *Pointer) InjectClick(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{kind: eventClick, x: x, y: y})
}

// InjectTouch queues a finger going down at (x, y). Consumes two frames:
// touch start, then the first touch move.
func (p *Pointer) InjectTouch(x, y float64) {
	p.injectQueue = append(p.injectQueue,
		syntheticPointerEvent{kind: eventTouchStart, x: x, y: y},
		syntheticPointerEvent{kind: eventTouchMove, x: x, y: y},
	)
}

// InjectRelease queues the finger lifting.
func (p *Pointer) InjectRelease() {
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{kind: eventTouchEnd})
}

// InjectSwipe queues a full touch sequence: touch at (fromX, fromY), linearly
// interpolated moves over frames-3 intermediate frames, a final move to
// (toX, toY), and a release. The sequence consumes `frames` frames. Minimum
// frames is 4.
func (p *Pointer) InjectSwipe(fromX, fromY, toX, toY float64, frames int) {
	if frames < 4 {
		frames = 4
	}
	p.InjectTouch(fromX, fromY)
	steps := frames - 4
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		p.injectQueue = append(p.injectQueue, syntheticPointerEvent{
			kind: eventTouchMove,
			x:    lerp(fromX, toX, t),
			y:    lerp(fromY, toY, t),
		})
	}
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{kind: eventTouchMove, x: toX, y: toY})
	p.InjectRelease()
}

// Pending returns the number of queued synthetic events.
func (p *Pointer) Pending() int {
	return len(p.injectQueue)
}

// processInjected pops one event from the inject queue and applies it.
// Returns true if an event was consumed (real input should be skipped).
func (p *Pointer) processInjected() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	switch evt.kind {
	case eventMove:
		p.Move(evt.x, evt.y)
	case eventTouchStart:
		p.TouchStart()
	case eventTouchMove:
		p.TouchMove(evt.x, evt.y)
	case eventTouchEnd:
		p.TouchEnd()
	case eventLeave:
		p.Leave()
	case eventClick:
		p.Move(evt.x, evt.y)
		p.Click(evt.x, evt.y)
	}
	return true
}
