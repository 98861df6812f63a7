package cache

import (
	"net/url"
	"sort"
	"strings"
)

// Key identifies a cached page by its request URL.
type Key struct {
	// URL is the full page URL including pagination query parameters.
	URL string
}

// String generates a deterministic cache key string.
// Format: page:host:path:query1=val1:query2=val2
//
// Example:
//
//	page:www.albumoftheyear.org:1974/releases/2:type=lp
func (k Key) String() string {
	parts := []string{"page"}

	u, err := url.Parse(k.URL)
	if err != nil {
		// Unparseable URLs still need a stable key.
		return "page:" + k.URL
	}

	if u.Host != "" {
		parts = append(parts, u.Host)
	}

	path := strings.Trim(u.Path, "/")
	if path != "" {
		parts = append(parts, path)
	}

	// Query params sorted for determinism.
	query := u.Query()
	if len(query) > 0 {
		queryKeys := make([]string, 0, len(query))
		for key := range query {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, key+"="+query.Get(key))
		}
	}

	return strings.Join(parts, ":")
}
