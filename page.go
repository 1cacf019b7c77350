package echochat

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// AriaLabel describes the hero canvas for assistive technology. It is also
// used as the window title suffix.
const AriaLabel = "Interactive particle effect with Echo Chat text"

// Page copy.
const (
	TaglinePrefix = "Experience the future of "
	TaglineLink   = "conversational AI"
	TaglineJoin   = " with "
	TaglineBrand  = "Echo Chat"

	StoryHeading   = "The Story Begins"
	StoryParagraph = "As you step through the threshold of possibility, Echo Chat reveals a new dimension of conversation. Here, language transcends its boundaries, and ideas flow with unprecedented clarity."
)

const (
	taglineBottom   = 140.0
	storyMaxWidth   = 768.0
	storyPadding    = 32.0
	storyHeadingGap = 32.0
	storyLeading    = 1.625

	wheelStep       = 40.0
	keyStep         = 40.0
	pageStepRatio   = 0.9
	scrollToSeconds = 0.8

	smallBreakpoint = 640
)

var (
	colorGray700 = RGB(0x37, 0x41, 0x51)
	colorGray900 = RGB(0x11, 0x18, 0x27)
)

// pageFonts holds the parsed font sources the page text is sized from.
type pageFonts struct {
	regular *TTFFont
	medium  *TTFFont
	bold    *TTFFont
}

func loadPageFonts() (pageFonts, error) {
	var pf pageFonts
	var err error
	if pf.regular, err = LoadTTFFont(goregular.TTF, 16); err != nil {
		return pf, err
	}
	if pf.medium, err = LoadTTFFont(gomedium.TTF, 16); err != nil {
		return pf, err
	}
	if pf.bold, err = LoadTTFFont(gobold.TTF, 16); err != nil {
		return pf, err
	}
	return pf, nil
}

// Page is the landing page: a hero section with the particle field, tagline
// and scroll indicator, followed by the story section. It implements
// ebiten.Game.
type Page struct {
	cfg    Config
	logger *slog.Logger
	debug  bool

	field     *Field
	pointer   *Pointer
	viewport  Viewport
	indicator *ScrollIndicator
	batch     quadBatch

	fonts   pageFonts
	tagline RichLine
	heading *TextBlock
	story   *TextBlock

	width, height  int
	fixedW, fixedH int
	taglineH       float64
	linkHover      bool
	taglineColors  []Color
	clickBuf       []Vec2
	elapsed        time.Duration
	frame          int
	stats          debugStats
	fps            *fpsOverlay
	testRunner     *TestRunner
	shots          captures

	done    <-chan struct{}
	stopped bool
}

// NewPage loads fonts and builds a page from cfg. A nil logger discards all
// output. The field is populated on the first Layout or Resize.
func NewPage(cfg Config, logger *slog.Logger) (*Page, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = discardLogger()
	}
	maskFont, err := DefaultMaskFont()
	if err != nil {
		return nil, err
	}
	fonts, err := loadPageFonts()
	if err != nil {
		return nil, err
	}

	p := &Page{
		cfg:           cfg,
		logger:        logger,
		debug:         cfg.Debug,
		field:         NewField(maskFont, SeededRand(cfg.Seed)),
		pointer:       NewPointer(),
		indicator:     NewScrollIndicator(),
		fonts:         fonts,
		taglineColors: make([]Color, 4),
		shots:         captures{dir: cfg.ScreenshotDir},
	}
	if cfg.ShowFPS {
		p.fps = newFPSOverlay()
	}
	if cfg.Script != "" {
		runner, err := LoadTestScriptFile(cfg.Script)
		if err != nil {
			return nil, err
		}
		p.testRunner = runner
	}
	return p, nil
}

// Field returns the particle field.
func (p *Page) Field() *Field {
	return p.field
}

// Pointer returns the page's pointer tracker.
func (p *Page) Pointer() *Pointer {
	return p.pointer
}

// Viewport returns the page scroll state.
func (p *Page) Viewport() *Viewport {
	return &p.viewport
}

// Indicator returns the scroll indicator.
func (p *Page) Indicator() *ScrollIndicator {
	return p.indicator
}

// LinkHovered reports whether the pointer is over the tagline link.
func (p *Page) LinkHovered() bool {
	return p.linkHover
}

// Stop ends the run loop at the next Update.
func (p *Page) Stop() {
	p.stopped = true
}

// Resize pins the logical screen to w×h, overriding the window size, and
// rebuilds the page immediately.
func (p *Page) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	p.fixedW, p.fixedH = w, h
	p.resize(w, h)
}

// Layout implements ebiten.Game.
func (p *Page) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth, outsideHeight
	if p.fixedW > 0 {
		w, h = p.fixedW, p.fixedH
	}
	if w != p.width || h != p.height {
		p.resize(w, h)
	}
	return w, h
}

// resize rebuilds the field and every size-dependent piece of the page.
func (p *Page) resize(w, h int) {
	p.width, p.height = w, h

	start := time.Now()
	p.field.Resize(w, h)
	p.viewport.SetMaxScroll(float64(h))
	p.indicator.SetScroll(p.viewport.ScrollY)

	// The line is medium gray-700; the link and the brand are bold.
	tagSize := taglineFontSize(w)
	medium := p.fonts.medium.WithSize(tagSize)
	bold := p.fonts.bold.WithSize(tagSize)
	p.tagline = RichLine{Spans: []TextSpan{
		{Content: TaglinePrefix, Font: medium, Color: colorGray700},
		{Content: TaglineLink, Font: bold, Color: colorGray900, Link: true},
		{Content: TaglineJoin, Font: medium, Color: colorGray700},
		{Content: TaglineBrand, Font: bold, Color: colorGray700},
	}}
	_, p.taglineH = medium.MeasureString(TaglinePrefix)

	headingSize, bodySize := storyFontSizes(w)
	wrap := max(min(storyMaxWidth, float64(w)-2*storyPadding), 0)
	p.heading = NewTextBlock(StoryHeading, p.fonts.bold.WithSize(headingSize), ColorWhite)
	p.heading.WrapWidth = wrap
	p.story = NewTextBlock(StoryParagraph, p.fonts.regular.WithSize(bodySize), ColorWhite)
	p.story.WrapWidth = wrap
	p.story.LineHeight = bodySize * storyLeading

	p.logger.Debug("field built",
		slog.Int("width", w),
		slog.Int("height", h),
		slog.Bool("mobile", p.field.Mobile()),
		slog.Int("particles", p.field.Len()),
		slog.Int("target", p.field.Target()),
		slog.Int("coverage", p.field.Mask().Coverage()),
		slog.Duration("elapsed", time.Since(start)),
	)
}

// taglineFontSize follows the text-xs, sm:text-base, md:text-sm steps.
func taglineFontSize(w int) float64 {
	switch {
	case w < smallBreakpoint:
		return 12
	case w < MobileBreakpoint:
		return 16
	default:
		return 14
	}
}

// storyFontSizes returns the heading and paragraph sizes for a width.
func storyFontSizes(w int) (heading, body float64) {
	if w < MobileBreakpoint {
		return 36, 20
	}
	return 60, 24
}

// taglineY returns the top edge of the tagline in page coordinates.
func (p *Page) taglineY() float64 {
	return float64(p.height) - taglineBottom - p.taglineH
}

// Update implements ebiten.Game.
func (p *Page) Update() error {
	if p.stopped {
		return ebiten.Termination
	}
	select {
	case <-p.done:
		return ebiten.Termination
	default:
	}
	if p.cfg.QuitOnEscape && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if p.width == 0 || p.height == 0 {
		p.resize(p.cfg.Width, p.cfg.Height)
	}

	start := time.Now()
	tps := float64(ebiten.TPS())
	if tps <= 0 {
		tps = 60
	}
	dt := 1 / tps
	p.frame++

	if p.testRunner != nil {
		p.testRunner.step(p)
	}
	w, h := float64(p.width), float64(p.height)
	p.pointer.poll(Rect{Width: w, Height: h})
	p.updateScroll(h)

	p.handleClicks(w, h)
	p.advance(dt)

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		p.Screenshot("f12")
	}
	if p.fps != nil {
		p.fps.update(dt, p.field.Len(), p.field.Target())
	}
	p.stats.updateTime = time.Since(start)
	return nil
}

// advance moves the scroll animation, the indicator and the field forward by
// dt seconds.
func (p *Page) advance(dt float64) {
	p.viewport.update(float32(dt))
	p.indicator.SetScroll(p.viewport.ScrollY)
	p.indicator.update(float32(dt))

	p.elapsed += time.Duration(dt * float64(time.Second))
	p.field.Update(p.pointer.Snapshot(p.viewport.ScrollY), Pulse(p.elapsed))
}

// handleClicks routes queued clicks to the tagline link and the scroll
// indicator, and refreshes the link hover state.
func (p *Page) handleClicks(w, h float64) {
	linkRect, hasLink := p.tagline.LinkBounds(w, p.taglineY())
	p.clickBuf = p.pointer.takeClicks(p.clickBuf)
	for _, c := range p.clickBuf {
		py := c.Y + p.viewport.ScrollY
		switch {
		case hasLink && linkRect.Contains(c.X, py):
			p.followLink()
		case p.indicator.Bounds(w, h).Contains(c.X, py):
			p.viewport.ScrollTo(h, scrollToSeconds, ease.InOutQuad)
		}
	}

	p.linkHover = false
	if x, y, ok := p.pointer.Position(); ok && hasLink {
		p.linkHover = linkRect.Contains(x, y+p.viewport.ScrollY)
	}
}

// updateScroll applies wheel and keyboard scrolling for a window of height h.
func (p *Page) updateScroll(h float64) {
	if _, wy := ebiten.Wheel(); wy != 0 {
		p.viewport.ScrollBy(-wy * wheelStep)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		p.viewport.ScrollBy(keyStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		p.viewport.ScrollBy(-keyStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		p.viewport.ScrollBy(h * pageStepRatio)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		p.viewport.ScrollBy(-h * pageStepRatio)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		p.viewport.ScrollTo(0, scrollToSeconds, ease.InOutQuad)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		p.viewport.ScrollTo(h, scrollToSeconds, ease.InOutQuad)
	}
}

// followLink hands the link target to the configured handler.
func (p *Page) followLink() {
	if p.cfg.OnLink != nil {
		p.cfg.OnLink(p.cfg.LinkURL)
		return
	}
	p.logger.Info("link clicked", slog.String("url", p.cfg.LinkURL))
}

// Draw implements ebiten.Game.
func (p *Page) Draw(screen *ebiten.Image) {
	screen.Fill(ColorWhite.toRGBA())
	if p.width == 0 || p.height == 0 {
		return
	}
	w, h := float64(p.width), float64(p.height)
	dy := -p.viewport.ScrollY

	batchStart := time.Now()
	p.batch.reset()
	p.batch.appendParticles(p.field.Particles(), 0, dy)
	p.batch.appendQuad(0, h+dy, w, h, ColorBlack, 1)
	quads := p.batch.quads
	p.stats.batchTime = time.Since(batchStart)

	submitStart := time.Now()
	p.batch.submit(screen)

	p.tagline.Draw(screen, w, p.taglineY(), dy, p.spanColors())
	p.indicator.draw(screen, w, h, dy)
	p.drawStory(screen, w, h, dy)
	p.stats.submitTime = time.Since(submitStart)

	if p.fps != nil {
		p.fps.draw(screen)
	}

	p.stats.particleCount = p.field.Len()
	p.stats.quadCount = quads
	p.debugLog(p.stats)

	p.flushScreenshots(screen)
}

// drawStory lays the left-aligned heading and paragraph out as a centered
// column in the section below the hero.
func (p *Page) drawStory(screen *ebiten.Image, w, h, dy float64) {
	top := h + dy
	if top >= h {
		return
	}
	_, hh := p.heading.Measure()
	_, sh := p.story.Measure()
	total := hh + storyHeadingGap + sh
	x := (w - p.story.WrapWidth) / 2
	y := top + (h-total)/2
	p.heading.Draw(screen, x, y, 1)
	p.story.Draw(screen, x, y+hh+storyHeadingGap, 1)
}

// spanColors returns the tagline colors for this frame. Hovering the link
// turns it and the trailing brand black.
func (p *Page) spanColors() []Color {
	for i, s := range p.tagline.Spans {
		p.taglineColors[i] = s.Color
		if p.linkHover && (s.Link || i == len(p.tagline.Spans)-1) {
			p.taglineColors[i] = ColorBlack
		}
	}
	return p.taglineColors
}
