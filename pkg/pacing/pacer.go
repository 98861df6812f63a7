// Package pacing bounds the aggregate request rate against the catalog host.
//
// Pacing is a caller-side contract: the item scraper pauses after album
// detail fetches and user-rating subpages, while listing pages deliberately
// run unpaced. Within a decade partition fetches are strictly sequential,
// so a fixed post-fetch delay is the whole rate limiter.
package pacing

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for pacing.
var (
	pacerPausesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrape_pacer_pauses_total",
		Help: "Total number of post-fetch pacing pauses",
	})

	pacerPauseSeconds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrape_pacer_pause_seconds_total",
		Help: "Total time spent in pacing pauses",
	})
)

// DefaultDelay is the post-fetch delay applied between paced requests.
const DefaultDelay = 150 * time.Millisecond

// Pacer sleeps a fixed delay after paced fetches. A zero delay disables
// pausing entirely, which is how tests avoid wall-clock waits.
type Pacer struct {
	delay time.Duration
}

// New creates a pacer with the given post-fetch delay.
func New(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

// Default returns a pacer with the default delay.
func Default() *Pacer {
	return New(DefaultDelay)
}

// Delay returns the configured post-fetch delay.
func (p *Pacer) Delay() time.Duration {
	return p.delay
}

// Pause sleeps the configured delay, returning early if the context is
// cancelled. Pausing after a cancelled fetch would only delay unwinding.
func (p *Pacer) Pause(ctx context.Context) {
	if p == nil || p.delay <= 0 {
		return
	}

	pacerPausesTotal.Inc()
	pacerPauseSeconds.Add(p.delay.Seconds())

	select {
	case <-ctx.Done():
	case <-time.After(p.delay):
	}
}
