package echochat

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens a resizable window for the page and blocks until the window is
// closed, Escape is pressed, a script quits, or ctx is canceled. Canceling
// ctx is a normal stop and returns nil.
func Run(ctx context.Context, p *Page) error {
	title := p.cfg.Title
	if title == "" {
		title = AriaLabel
	} else {
		title += " | " + AriaLabel
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(p.cfg.Width, p.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	p.done = ctx.Done()
	if err := ebiten.RunGame(p); err != nil {
		return errors.Wrap(err, "run page")
	}
	return nil
}
