package echochat

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/ebiten/v2"
)

// captures collects the screenshot labels requested during a frame. The page
// writes them after the frame is fully drawn.
type captures struct {
	dir    string
	labels []string
	seq    int
}

func (c *captures) request(label string) {
	c.labels = append(c.labels, label)
}

func (c *captures) pending() []string {
	return c.labels
}

// flush saves the drawn frame once per requested label.
func (c *captures) flush(frame *ebiten.Image, now time.Time) ([]string, error) {
	if len(c.labels) == 0 {
		return nil, nil
	}
	img := image.NewNRGBA(frame.Bounds())
	frame.ReadPixels(img.Pix)
	straightAlpha(img.Pix)
	return c.write(img, now)
}

// write saves img as one PNG per requested label and clears the requests. It
// returns the written paths and every failure combined.
func (c *captures) write(img image.Image, now time.Time) ([]string, error) {
	labels := c.labels
	c.labels = c.labels[:0]
	if len(labels) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create screenshot dir %s", c.dir)
	}

	var (
		paths []string
		errs  error
	)
	stamp := now.Format("20060102-150405")
	for _, label := range labels {
		c.seq++
		path := filepath.Join(c.dir, fmt.Sprintf("%s-%03d-%s.png", stamp, c.seq, fileLabel(label)))
		if err := savePNG(path, img); err != nil {
			errs = errors.CombineErrors(errs, err)
			continue
		}
		paths = append(paths, path)
	}
	return paths, errs
}

// Screenshot asks for the current frame to be saved under label once Draw
// finishes. Files land in Config.ScreenshotDir.
func (p *Page) Screenshot(label string) {
	p.shots.request(label)
}

func (p *Page) flushScreenshots(screen *ebiten.Image) {
	paths, err := p.shots.flush(screen, time.Now())
	for _, path := range paths {
		p.logger.Info("screenshot saved", slog.String("path", path))
	}
	if err != nil {
		p.logger.Error("screenshot failed", slog.String("error", err.Error()))
	}
}

// straightAlpha converts premultiplied RGBA pixels to straight alpha in place.
func straightAlpha(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := int(pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for j := i; j < i+3; j++ {
			pix[j] = uint8(min(int(pix[j])*255/a, 255))
		}
	}
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create screenshot")
	}
	defer func() { err = errors.CombineErrors(err, f.Close()) }()
	return errors.Wrapf(png.Encode(f, img), "encode %s", path)
}

// fileLabel keeps letters, digits, '-' and '.' and maps everything else to
// '_'. Blank labels become "shot".
func fileLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "shot"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
