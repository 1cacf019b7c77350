package echochat

import (
	"image"

	"github.com/cockroachdb/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// MaskText is the string rendered into the particle mask.
	MaskText = "Echo Chat"
	// MaskSplitWord is the leading word; particles left of its right edge are "Echo" particles.
	MaskSplitWord = "Echo"

	// MobileBreakpoint is the canvas width below which the mobile layout is used.
	MobileBreakpoint = 768

	fontSizeMobile  = 52.0
	fontSizeDesktop = 90.0

	// opacityThreshold is the minimum mask alpha (exclusive) for a spawn point.
	opacityThreshold = 128
)

// IsMobile reports whether a canvas of the given width uses the mobile layout.
func IsMobile(width int) bool {
	return width < MobileBreakpoint
}

// MaskFontSize returns the pixel size the mask text is rendered at.
func MaskFontSize(mobile bool) float64 {
	if mobile {
		return fontSizeMobile
	}
	return fontSizeDesktop
}

// MaskFont rasterizes the mask text. Faces are cached per pixel size.
type MaskFont struct {
	font  *opentype.Font
	faces map[float64]font.Face
}

// LoadMaskFont parses TTF/OTF data for mask rendering.
func LoadMaskFont(data []byte) (*MaskFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse mask font"), ErrFontLoad)
	}
	return &MaskFont{font: f, faces: make(map[float64]font.Face)}, nil
}

// DefaultMaskFont returns Go Bold, the bundled bold sans-serif.
func DefaultMaskFont() (*MaskFont, error) {
	return LoadMaskFont(gobold.TTF)
}

// face returns the cached face at size pixels (72 DPI, so points == pixels).
func (m *MaskFont) face(size float64) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "mask face at %vpx", size), ErrFontLoad)
	}
	m.faces[size] = f
	return f, nil
}

// TextMask is the captured alpha channel of the rendered mask text.
type TextMask struct {
	Width, Height int
	FontSize      float64
	// TextX is the left edge of the rendered string; Baseline its baseline y.
	TextX, Baseline float64
	// SplitX is the x coordinate of the boundary between "Echo" and "Chat".
	SplitX float64

	alpha  []uint8
	opaque int // pixels above the opacity threshold
}

// Alpha returns the mask alpha at (x, y), or 0 outside the mask.
func (m *TextMask) Alpha(x, y int) uint8 {
	if m == nil || x < 0 || y < 0 || x >= m.Width || y >= m.Height || m.alpha == nil {
		return 0
	}
	return m.alpha[y*m.Width+x]
}

// Opaque reports whether (x, y) is a valid spawn point.
func (m *TextMask) Opaque(x, y int) bool {
	return m.Alpha(x, y) > opacityThreshold
}

// Empty reports whether the mask has no spawnable pixels.
func (m *TextMask) Empty() bool {
	return m == nil || m.opaque == 0
}

// Coverage returns the number of pixels a particle may spawn on.
func (m *TextMask) Coverage() int {
	if m == nil {
		return 0
	}
	return m.opaque
}

// maskSurface is the reusable offscreen buffer the text is drawn into before
// its alpha is captured.
type maskSurface struct {
	img *image.Alpha
}

// ensure returns a cleared surface of the given size.
func (s *maskSurface) ensure(w, h int) *image.Alpha {
	if s.img == nil || s.img.Rect.Dx() != w || s.img.Rect.Dy() != h {
		s.img = image.NewAlpha(image.Rect(0, 0, w, h))
		return s.img
	}
	clear(s.img.Pix)
	return s.img
}

// BuildTextMask renders MaskText centered on a w×h surface and captures its
// alpha channel. A nil font or an empty canvas yields an empty mask, on which
// every sample fails.
func BuildTextMask(w, h int, mobile bool, mf *MaskFont) *TextMask {
	var s maskSurface
	return s.build(w, h, mobile, mf)
}

func (s *maskSurface) build(w, h int, mobile bool, mf *MaskFont) *TextMask {
	size := MaskFontSize(mobile)
	m := &TextMask{Width: w, Height: h, FontSize: size}
	if mf == nil || w <= 0 || h <= 0 {
		return m
	}
	face, err := mf.face(size)
	if err != nil {
		return m
	}

	textW := fixedToFloat(font.MeasureString(face, MaskText))
	m.TextX = (float64(w) - textW) / 2
	m.Baseline = float64(h)/2 + size/3
	m.SplitX = m.TextX + fixedToFloat(font.MeasureString(face, MaskSplitWord))

	// Render phase.
	dst := s.ensure(w, h)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(m.TextX), Y: floatToFixed(m.Baseline)},
	}
	d.DrawString(MaskText)

	// Capture phase. The surface is cleared once the alpha is copied out.
	m.alpha = make([]uint8, w*h)
	for y := 0; y < h; y++ {
		copy(m.alpha[y*w:(y+1)*w], dst.Pix[y*dst.Stride:y*dst.Stride+w])
	}
	for _, a := range m.alpha {
		if a > opacityThreshold {
			m.opaque++
		}
	}
	clear(dst.Pix)
	return m
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
