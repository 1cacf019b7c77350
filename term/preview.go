// Package term renders an echochat particle field in a terminal with tcell.
// Each cell stands for a CellWidth×CellHeight block of field pixels; a cell
// that holds at least one particle is drawn as a shade rune.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/echochat"
)

const (
	// CellWidth and CellHeight are the field pixels covered by one cell.
	CellWidth  = 8
	CellHeight = 16

	frameInterval = 16 * time.Millisecond
)

// shades orders runes from sparse to dense.
var shades = []rune{'·', '░', '▒', '▓', '█'}

// Preview drives a Field from terminal input and draws it to a tcell screen.
type Preview struct {
	screen  tcell.Screen
	field   *echochat.Field
	pointer *echochat.Pointer

	cols, rows int
	counts     []int
	colors     []echochat.Color
	frames     int
}

// NewPreview wraps an initialized screen. The field is sized to the screen
// immediately.
func NewPreview(screen tcell.Screen, field *echochat.Field) *Preview {
	pv := &Preview{
		screen:  screen,
		field:   field,
		pointer: echochat.NewPointer(),
	}
	pv.resize()
	return pv
}

// Pointer returns the pointer fed by mouse events.
func (pv *Preview) Pointer() *echochat.Pointer {
	return pv.pointer
}

// Size returns the grid size in cells.
func (pv *Preview) Size() (cols, rows int) {
	return pv.cols, pv.rows
}

func (pv *Preview) resize() {
	cols, rows := pv.screen.Size()
	if cols == pv.cols && rows == pv.rows {
		return
	}
	pv.cols, pv.rows = cols, rows
	pv.counts = make([]int, cols*rows)
	pv.colors = make([]echochat.Color, cols*rows)
	pv.field.Resize(cols*CellWidth, rows*CellHeight)
}

// CellCenter converts a cell to the field pixel at its center.
func CellCenter(col, row int) (x, y float64) {
	return float64(col*CellWidth) + CellWidth/2, float64(row*CellHeight) + CellHeight/2
}

// HandleEvent applies one terminal event. It returns false when the event
// asks the preview to quit.
func (pv *Preview) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		if x < 0 || y < 0 || x >= pv.cols || y >= pv.rows {
			pv.pointer.Leave()
			return true
		}
		pv.pointer.Move(CellCenter(x, y))
		if ev.Buttons()&tcell.Button1 != 0 {
			pv.pointer.Click(CellCenter(x, y))
		}
	case *tcell.EventFocus:
		if !ev.Focused {
			pv.pointer.Leave()
		}
	case *tcell.EventResize:
		pv.screen.Sync()
		pv.resize()
	}
	return true
}

// Step advances the field by one frame.
func (pv *Preview) Step() {
	pv.frames++
	elapsed := time.Duration(pv.frames) * frameInterval
	pv.field.Update(pv.pointer.Snapshot(0), echochat.Pulse(elapsed))
}

// Draw bins particles into cells and shows the frame.
func (pv *Preview) Draw() {
	clear(pv.counts)
	for _, p := range pv.field.Particles() {
		col := int(p.X) / CellWidth
		row := int(p.Y) / CellHeight
		if p.X < 0 || p.Y < 0 || col >= pv.cols || row >= pv.rows {
			continue
		}
		i := row*pv.cols + col
		pv.counts[i]++
		pv.colors[i] = p.Fill
	}

	pv.screen.Clear()
	for i, n := range pv.counts {
		if n == 0 {
			continue
		}
		style := tcell.StyleDefault.Foreground(toTcell(pv.colors[i]))
		pv.screen.SetContent(i%pv.cols, i/pv.cols, shade(n), nil, style)
	}
	pv.screen.Show()
}

// Occupied returns the number of cells drawn in the last frame.
func (pv *Preview) Occupied() int {
	n := 0
	for _, c := range pv.counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// shade picks a rune for a cell holding n particles.
func shade(n int) rune {
	switch {
	case n <= 1:
		return shades[0]
	case n <= 3:
		return shades[1]
	case n <= 6:
		return shades[2]
	case n <= 10:
		return shades[3]
	default:
		return shades[4]
	}
}

func toTcell(c echochat.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R*255+0.5), int32(c.G*255+0.5), int32(c.B*255+0.5))
}

// Run polls input on a separate goroutine and renders at about 60 frames per
// second until the user quits or ctx is canceled. The caller owns the
// screen's Init and Fini.
func (pv *Preview) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := pv.pollEvents(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !pv.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			pv.Step()
			pv.Draw()
		}
	}
}

// pollEvents forwards screen events until ctx is canceled or the screen is
// finalized, then closes the returned channel.
func (pv *Preview) pollEvents(ctx context.Context) <-chan tcell.Event {
	events := make(chan tcell.Event, 100)
	go func() {
		defer close(events)
		for {
			ev := pv.screen.PollEvent()
			if ev == nil || ctx.Err() != nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events
}
