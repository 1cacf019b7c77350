package echochat

import (
	"log/slog"
	"time"
)

// debugLogInterval is the number of frames between timing reports.
const debugLogInterval = 60

// debugStats holds per-frame timing and draw metrics.
// Only populated when the page runs in debug mode.
type debugStats struct {
	updateTime    time.Duration
	batchTime     time.Duration
	submitTime    time.Duration
	particleCount int
	quadCount     int
}

// debugLog reports the stats of every debugLogInterval-th frame at debug level.
func (p *Page) debugLog(stats debugStats) {
	if !p.debug || p.frame%debugLogInterval != 0 {
		return
	}
	total := stats.updateTime + stats.batchTime + stats.submitTime
	p.logger.Debug("frame stats",
		slog.Int("frame", p.frame),
		slog.Duration("update", stats.updateTime),
		slog.Duration("batch", stats.batchTime),
		slog.Duration("submit", stats.submitTime),
		slog.Duration("total", total),
		slog.Int("particles", stats.particleCount),
		slog.Int("quads", stats.quadCount),
	)
}
