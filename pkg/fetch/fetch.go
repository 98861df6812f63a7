// Package fetch provides the resilient HTTP fetcher for catalog pages:
// browser identity header, redirect following, retry with exponential
// backoff on transient failures, and an optional Redis page cache.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aoty-data/harvester/pkg/cache"
	"github.com/aoty-data/harvester/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for fetch operations.
var (
	scrapeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scrape_requests_total",
		Help: "Total page requests by status",
	}, []string{"status"})

	scrapeRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scrape_request_duration_seconds",
		Help:    "Page request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	scrapeErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scrape_errors_total",
		Help: "Total fetch errors by class",
	}, []string{"class"})
)

// DefaultUserAgent is the browser identity sent with every request. The
// catalog site rejects obviously non-browser agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds the fetcher configuration.
type Config struct {
	// UserAgent is sent on every request.
	UserAgent string

	// Timeout bounds one attempt including body read.
	Timeout time.Duration

	// Retry controls the transient-failure retry policy.
	Retry RetryConfig
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		UserAgent: DefaultUserAgent,
		Timeout:   30 * time.Second,
		Retry:     DefaultRetryConfig(),
	}
}

// Client fetches catalog pages. Redirects are followed (the site redirects
// canonicalized album URLs); retry applies only to transient failures.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// New creates a new fetch client.
func New(cfg Config) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryConfig()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: logging.NewLogger("fetch"),
	}
}

// SetCache enables the Redis page cache. A nil manager disables caching.
func (c *Client) SetCache(m *cache.Manager) {
	c.cache = m
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Get fetches one page body. Transient failures (network errors, timeouts,
// 5xx, 429) are retried with backoff; other 4xx statuses fail immediately
// with a terminal *Error. Exhausting the retry budget wraps
// ErrRetryExhausted around the last transient error.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	// Page cache first: a hit costs the remote host nothing.
	if c.cache != nil {
		key := cache.Key{URL: url}
		if entry, err := c.cache.Get(ctx, key); err == nil {
			c.logger.Debug().Str("url", url).Msg("Page cache hit")
			return string(entry.Body), nil
		} else if err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("url", url).Msg("Page cache get error")
		}
	}

	startTime := time.Now()
	defer func() {
		scrapeRequestDuration.Observe(time.Since(startTime).Seconds())
	}()

	var body string
	var terminal *Error

	retryErr := retryWithBackoff(ctx, c.config.Retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			terminal = &Error{URL: url, Class: ErrorClassClient, Err: err}
			return nil
		}
		req.Header.Set("User-Agent", c.config.UserAgent)

		resp, reqErr := c.httpClient.Do(req)
		if reqErr != nil {
			fe := &Error{
				URL:     url,
				Class:   ErrorClassNetwork,
				Timeout: isTimeoutErr(reqErr),
				Err:     reqErr,
			}
			scrapeErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			scrapeRequestsTotal.WithLabelValues("network_error").Inc()
			c.logger.Warn().Err(reqErr).Str("url", url).Msg("HTTP request failed")
			return fe
		}
		defer resp.Body.Close()

		scrapeRequestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()

		if resp.StatusCode >= 400 {
			errClass := classifyStatus(resp.StatusCode)
			scrapeErrorsTotal.WithLabelValues(string(errClass)).Inc()

			c.logger.Warn().
				Str("url", url).
				Int("status", resp.StatusCode).
				Str("error_class", string(errClass)).
				Msg("Fetch status error")

			fe := &Error{URL: url, StatusCode: resp.StatusCode, Class: errClass}
			if shouldRetry(errClass) {
				return fe
			}
			// Non-retryable status: capture and end the loop without retry.
			terminal = fe
			return nil
		}

		data, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			fe := &Error{
				URL:     url,
				Class:   ErrorClassNetwork,
				Timeout: isTimeoutErr(readErr),
				Err:     readErr,
			}
			scrapeErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			return fe
		}

		body = string(data)

		if c.cache != nil {
			if err := c.cache.Put(ctx, cache.Key{URL: url}, data, resp.StatusCode); err != nil {
				c.logger.Warn().Err(err).Str("url", url).Msg("Page cache put error")
			}
		}

		return nil
	}, classifyError)

	if retryErr != nil {
		return "", retryErr
	}
	if terminal != nil {
		return "", terminal
	}

	return body, nil
}

// classifyStatus maps an HTTP status code to an error class.
func classifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return ErrorClassRateLimit
	case statusCode >= 400 && statusCode < 500:
		return ErrorClassClient
	case statusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// classifyError maps a fetch attempt error to an error class for the retry loop.
func classifyError(err error) ErrorClass {
	if fe, ok := err.(*Error); ok {
		return fe.Class
	}
	return ErrorClassNetwork
}
