// Command aoty-harvest runs one harvest pass across all decade partitions.
//
// Usage:
//
//	aoty-harvest slugs     harvest the slug universe from year/type listings
//	aoty-harvest critic    harvest album info + critic reviews per slug
//	aoty-harvest user      harvest user ratings per slug
//
// Configuration comes from the environment: AOTY_BASE_URL, AOTY_OUT_DIR,
// AOTY_DELAY_MS, REDIS_URL (empty disables the page cache), LOG_LEVEL,
// LOG_PRETTY.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aoty-data/harvester/pkg/cache"
	"github.com/aoty-data/harvester/pkg/fetch"
	"github.com/aoty-data/harvester/pkg/logging"
	"github.com/aoty-data/harvester/pkg/pacing"
	"github.com/aoty-data/harvester/pkg/scrape"
)

func main() {
	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "") != "",
		Output: os.Stderr,
	})

	pass, err := parsePass(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "usage: aoty-harvest <slugs|critic|user>\n")
		os.Exit(2)
	}

	cfg := scrape.DefaultConfig()
	cfg.BaseURL = getEnv("AOTY_BASE_URL", cfg.BaseURL)
	cfg.OutDir = getEnv("AOTY_OUT_DIR", cfg.OutDir)

	fetcher := fetch.New(fetch.DefaultConfig())

	// Optional page cache: only wired when REDIS_URL is set.
	if redisURL := getEnv("REDIS_URL", ""); redisURL != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: redisURL,
		})
		ctx := context.Background()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Str("redis", redisURL).Msg("Failed to connect to Redis")
		}
		fetcher.SetCache(cache.NewManager(redisClient, cache.DefaultTTL))
		logger.Info().Str("redis", redisURL).Msg("Page cache enabled")
	}

	delay := pacing.DefaultDelay
	if ms := getEnv("AOTY_DELAY_MS", ""); ms != "" {
		n, err := strconv.Atoi(ms)
		if err != nil {
			logger.Fatal().Str("AOTY_DELAY_MS", ms).Msg("Invalid delay")
		}
		delay = time.Duration(n) * time.Millisecond
	}

	scraper := scrape.NewScraper(fetcher, pacing.New(delay), cfg.BaseURL)
	orchestrator := scrape.NewOrchestrator(scraper, cfg)

	if err := orchestrator.EnsureOutputDirs(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create output directories")
	}

	logger.Info().
		Str("pass", string(pass)).
		Str("base_url", cfg.BaseURL).
		Str("out_dir", cfg.OutDir).
		Dur("delay", delay).
		Msg("Starting harvest")

	if err := orchestrator.Run(context.Background(), pass); err != nil {
		logger.Fatal().Err(err).Msg("Harvest finished with failed partitions")
	}

	logger.Info().Msg("Harvest complete")
}

func parsePass(args []string) (scrape.Pass, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("missing pass")
	}
	switch args[1] {
	case "slugs":
		return scrape.PassSlugs, nil
	case "critic":
		return scrape.PassCritic, nil
	case "user":
		return scrape.PassUser, nil
	default:
		return "", fmt.Errorf("unknown pass %q", args[1])
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
