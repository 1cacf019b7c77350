// Package echochat renders the Echo Chat landing page on [Ebitengine].
//
// The hero section is a particle field: the words "Echo Chat" are rasterized
// off screen into a [TextMask], and thousands of small squares are sampled
// from its opaque pixels. Each frame every particle either drifts around its
// base position or, within [InteractionRadius] of the pointer, is pushed
// away from it. About 15% of particles are reflective and glow with a shared
// pulse. Particles age out and respawn at fresh mask positions, and the
// population scales with the square root of the canvas area ([TargetCount]).
//
// Below the hero sit a tagline with a link, a bouncing scroll indicator, and
// a story section one window height further down.
//
// # Quick start
//
// [Run] opens a window and drives a [Page] until the window closes or the
// context is canceled:
//
//	cfg := echochat.DefaultConfig()
//	page, err := echochat.NewPage(cfg, echochat.NewLogger(os.Stderr, false))
//	if err != nil {
//		log.Fatal(err)
//	}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := echochat.Run(ctx, page); err != nil {
//		log.Fatal(err)
//	}
//
// [Page] implements [ebiten.Game], so it can also be passed to
// [ebiten.RunGame] directly.
//
// # Headless use
//
// [Field] has no Ebitengine dependency at update time. Build one with
// [NewField], size it with [Field.Resize], and advance it with
// [Field.Update] and a [PointerSnapshot]. Pass a seeded generator
// ([SeededRand]) for reproducible layouts. The term subpackage uses this to
// preview the field in a terminal.
//
// # Configuration
//
// [Config] is read from YAML with [LoadConfig] and overridden by ECHOCHAT_*
// environment variables through [Config.ApplyEnv].
//
// # Automated checks
//
// A [TestRunner] replays a YAML or JSON script of pointer, scroll, resize and
// screenshot steps, one per frame:
//
//	steps:
//	  - action: move
//	    x: 640
//	    y: 360
//	  - action: wait
//	    frames: 30
//	  - action: screenshot
//	    label: scattered
//
// Set [Config.Script] or attach a runner with [Page.SetTestRunner].
// Screenshots are written as PNG files to [Config.ScreenshotDir]; F12 takes
// one interactively.
//
// [Ebitengine]: https://ebitengine.org
package echochat
