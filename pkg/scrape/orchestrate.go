package scrape

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/aoty-data/harvester/pkg/logging"
)

var scrapePartitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "scrape_partitions_total",
	Help: "Completed decade partitions by pass and outcome",
}, []string{"pass", "outcome"})

// Pass selects which scrape pass the orchestrator runs.
type Pass string

const (
	// PassSlugs harvests the slug universe from year/type listings.
	PassSlugs Pass = "slugs"

	// PassCritic harvests album info and critic reviews per slug.
	PassCritic Pass = "critic"

	// PassUser harvests user ratings per slug.
	PassUser Pass = "user"
)

// Decades returns the fixed partition set, 1950s through the truncated 2020s.
func Decades() []int {
	decades := make([]int, 0, 8)
	for d := 1950; d <= 2020; d += 10 {
		decades = append(decades, d)
	}
	return decades
}

// Orchestrator fans one batch runner out per decade partition and waits for
// all of them. Partitions are independent: one partition's failure neither
// stops the others nor touches their output files.
type Orchestrator struct {
	scraper *Scraper
	config  Config
	logger  zerolog.Logger
}

// NewOrchestrator creates the top-level orchestrator.
func NewOrchestrator(scraper *Scraper, cfg Config) *Orchestrator {
	return &Orchestrator{
		scraper: scraper,
		config:  cfg,
		logger:  logging.NewLogger("orchestrator"),
	}
}

// EnsureOutputDirs creates the output tree once, before any partition
// starts. Directory creation is an explicit initialization step, not a
// side effect buried in the passes.
func (o *Orchestrator) EnsureOutputDirs() error {
	for _, dir := range []string{"slugs", "critic_ratings", "albums", "user_ratings"} {
		if err := os.MkdirAll(filepath.Join(o.config.OutDir, dir), 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	return nil
}

// Run executes one pass across all decade partitions concurrently and
// waits for every partition to finish. Concurrency is bounded by the fixed
// partition count; within each partition fetches stay strictly sequential.
func (o *Orchestrator) Run(ctx context.Context, pass Pass) error {
	decades := Decades()
	errs := make([]error, len(decades))

	var wg sync.WaitGroup
	for i, decade := range decades {
		wg.Add(1)
		go func(i, decade int) {
			defer wg.Done()

			runner := NewRunner(o.scraper, o.config, decade)

			var err error
			switch pass {
			case PassSlugs:
				err = runner.SlugPass(ctx)
			case PassCritic:
				err = runner.CriticPass(ctx)
			case PassUser:
				err = runner.UserPass(ctx)
			default:
				err = fmt.Errorf("unknown pass %q", pass)
			}

			if err != nil {
				errs[i] = fmt.Errorf("decade %ds: %w", decade, err)
				scrapePartitionsTotal.WithLabelValues(string(pass), "error").Inc()
				o.logger.Error().Err(err).Int("decade", decade).Msg("Partition failed")
				return
			}

			scrapePartitionsTotal.WithLabelValues(string(pass), "ok").Inc()
			o.logger.Info().Int("decade", decade).Str("pass", string(pass)).Msg("Completed decade")
		}(i, decade)
	}
	wg.Wait()

	return errors.Join(errs...)
}
