package echochat

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TextAlign controls horizontal text alignment within a TextBlock.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse TTF data"), ErrFontLoad)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	// Compute line height from metrics
	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// WithSize returns a font sharing this font's source at a different size.
func (f *TTFFont) WithSize(size float64) *TTFFont {
	face := &text.GoTextFace{Source: f.source, Size: size}
	m := face.Metrics()
	return &TTFFont{face: face, source: f.source, size: size, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content    string
	Font       *TTFFont
	Align      TextAlign
	WrapWidth  float64 // 0 = no wrapping
	Color      Color
	LineHeight float64 // override; 0 = use Font.LineHeight()

	layoutDirty bool
	layoutWidth float64 // WrapWidth the cached layout was computed for
	lines       []textLine
	measuredW   float64
	measuredH   float64
}

// textLine stores one wrapped line.
type textLine struct {
	content string
	width   float64
}

// NewTextBlock creates a block ready for layout.
func NewTextBlock(content string, font *TTFFont, c Color) *TextBlock {
	return &TextBlock{Content: content, Font: font, Color: c, layoutDirty: true}
}

// Invalidate forces a re-layout on the next Measure or Draw. Call after
// changing Content, Font or LineHeight.
func (tb *TextBlock) Invalidate() {
	tb.layoutDirty = true
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// Measure returns the laid-out size of the block.
func (tb *TextBlock) Measure() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// layout recomputes line breaks if dirty or if WrapWidth changed.
func (tb *TextBlock) layout() []textLine {
	if !tb.layoutDirty && tb.layoutWidth == tb.WrapWidth {
		return tb.lines
	}
	tb.layoutDirty = false
	tb.layoutWidth = tb.WrapWidth
	tb.lines = tb.lines[:0]
	tb.measuredW, tb.measuredH = 0, 0
	if tb.Font == nil {
		return tb.lines
	}

	for _, para := range strings.Split(tb.Content, "\n") {
		tb.wrapParagraph(para)
	}
	for _, l := range tb.lines {
		tb.measuredW = max(tb.measuredW, l.width)
	}
	tb.measuredH = float64(len(tb.lines)) * tb.lineHeight()
	return tb.lines
}

// wrapParagraph greedily breaks one paragraph at spaces so no line exceeds
// WrapWidth. A single word wider than WrapWidth gets a line of its own.
func (tb *TextBlock) wrapParagraph(para string) {
	words := strings.Fields(para)
	if len(words) == 0 {
		tb.lines = append(tb.lines, textLine{})
		return
	}
	cur := words[0]
	curW, _ := tb.Font.MeasureString(cur)
	for _, w := range words[1:] {
		candidate := cur + " " + w
		cw, _ := tb.Font.MeasureString(candidate)
		if tb.WrapWidth > 0 && cw > tb.WrapWidth {
			tb.lines = append(tb.lines, textLine{content: cur, width: curW})
			cur = w
			curW, _ = tb.Font.MeasureString(w)
			continue
		}
		cur, curW = candidate, cw
	}
	tb.lines = append(tb.lines, textLine{content: cur, width: curW})
}

// Draw renders the block with its top-left corner at (x, y). Alignment is
// relative to WrapWidth, or to the widest line when not wrapping.
func (tb *TextBlock) Draw(dst *ebiten.Image, x, y, alpha float64) {
	lines := tb.layout()
	if len(lines) == 0 {
		return
	}
	boxW := tb.WrapWidth
	if boxW <= 0 {
		boxW = tb.measuredW
	}
	lh := tb.lineHeight()
	for i, l := range lines {
		if l.content == "" {
			continue
		}
		lx := x
		switch tb.Align {
		case TextAlignCenter:
			lx += (boxW - l.width) / 2
		case TextAlignRight:
			lx += boxW - l.width
		}
		drawString(dst, l.content, tb.Font, lx, y+float64(i)*lh, tb.Color, alpha)
	}
}

// drawString draws s with its top-left corner at (x, y).
func drawString(dst *ebiten.Image, s string, f *TTFFont, x, y float64, c Color, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.WithAlpha(c.A * alpha).toRGBA())
	op.LineSpacing = f.lh
	text.Draw(dst, s, f.face, op)
}

// --- Rich line ---

// TextSpan is a run of text sharing one font and color.
type TextSpan struct {
	Content string
	Font    *TTFFont
	Color   Color
	// Link marks the span as clickable; its bounds are reported by RichLine.
	Link bool
}

// RichLine is a single line of mixed-style spans, centered horizontally.
type RichLine struct {
	Spans []TextSpan
}

// spanBounds lays the spans out centered in a row of width w whose top edge
// is at y, and returns one rectangle per span.
func (rl *RichLine) spanBounds(w, y float64, buf []Rect) []Rect {
	buf = buf[:0]
	total := 0.0
	for _, s := range rl.Spans {
		sw, _ := s.Font.MeasureString(s.Content)
		total += sw
	}
	x := (w - total) / 2
	for _, s := range rl.Spans {
		sw, sh := s.Font.MeasureString(s.Content)
		buf = append(buf, Rect{X: x, Y: y, Width: sw, Height: sh})
		x += sw
	}
	return buf
}

// LinkBounds returns the bounds of the first link span for a row of width w
// at y, and false if the line has no link.
func (rl *RichLine) LinkBounds(w, y float64) (Rect, bool) {
	rects := rl.spanBounds(w, y, nil)
	for i, s := range rl.Spans {
		if s.Link {
			return rects[i], true
		}
	}
	return Rect{}, false
}

// Draw renders the line centered in a row of width w at y, shifted by dy.
func (rl *RichLine) Draw(dst *ebiten.Image, w, y, dy float64, colors []Color) {
	rects := rl.spanBounds(w, y, nil)
	for i, s := range rl.Spans {
		c := s.Color
		if i < len(colors) {
			c = colors[i]
		}
		drawString(dst, s.Content, s.Font, rects[i].X, rects[i].Y+dy, c, 1)
	}
}
