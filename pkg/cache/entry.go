// Package cache provides an optional Redis-backed page cache so that
// repeated harvest runs do not refetch unchanged catalog pages.
//
// The catalog site serves no usable ETag or Expires validators, so entries
// are body-only and age out under a fixed TTL chosen by the manager.
package cache

import "time"

// Entry is one cached page body.
type Entry struct {
	// Body is the page HTML.
	Body []byte `json:"body"`

	// StatusCode is the HTTP status code of the cached response.
	StatusCode int `json:"status_code"`

	// FetchedAt is when the page was fetched.
	FetchedAt time.Time `json:"fetched_at"`

	// Expires is when the entry becomes stale.
	Expires time.Time `json:"expires"`
}

// IsExpired returns true if the entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
