// Package testutil provides testing utilities for the harvester: a
// configurable mock catalog site and HTML fixture builders shared by the
// extract and scrape tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// MockSite is a configurable mock catalog server for testing.
type MockSite struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount int
	pathCounts   map[string]int
	LastHeader   http.Header
}

// NewMockSite creates a new mock catalog server. Unconfigured paths return
// 404 so tests fail loudly on unexpected fetches.
func NewMockSite() *MockSite {
	mock := &MockSite{
		handlers:   make(map[string]func(w http.ResponseWriter, r *http.Request)),
		pathCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}

		mock.mu.Lock()
		mock.RequestCount++
		mock.pathCounts[key]++
		mock.LastHeader = r.Header.Clone()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[key]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		http.NotFound(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockSite) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockSite) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockSite) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.pathCounts = make(map[string]int)
	m.LastHeader = nil
}

// SetHandler sets a custom handler for a path (including query string).
func (m *MockSite) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetHTML serves a fixed HTML body with status 200 for a path.
func (m *MockSite) SetHTML(path, html string) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(html))
	})
}

// SetStatus serves a bare status code for a path.
func (m *MockSite) SetStatus(path string, status int) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}

// GetRequestCount returns the total number of requests served.
func (m *MockSite) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetPathCount returns the number of requests served for one path.
func (m *MockSite) GetPathCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pathCounts[path]
}

// ListingEntry describes one album block on a listing fixture page.
// RatingRows controls the scoreable filter: two rows means critic + user
// score are both present.
type ListingEntry struct {
	Artist     string
	Album      string
	Slug       string
	RatingRows int
}

// ListingPage builds a year/type listing fixture.
func ListingPage(entries ...ListingEntry) string {
	var b strings.Builder
	b.WriteString("<html><body><div class=\"centerContent\">\n")
	for _, e := range entries {
		b.WriteString("<div class=\"albumBlock small\">\n")
		fmt.Fprintf(&b, "<a href=\"/album/%s.php\"><div class=\"image\"></div></a>\n", e.Slug)
		fmt.Fprintf(&b, "<div class=\"artistTitle\">%s</div>\n", e.Artist)
		fmt.Fprintf(&b, "<div class=\"albumTitle\">%s</div>\n", e.Album)
		for i := 0; i < e.RatingRows; i++ {
			b.WriteString("<div class=\"ratingRow\"><div class=\"rating\">82</div></div>\n")
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</div></body></html>")
	return b.String()
}

// ReviewEntry describes one critic review row on an album fixture page.
type ReviewEntry struct {
	Publication string
	Author      string
	Snippet     string
	Date        string
	Score       string
}

// AlbumPage describes an album detail fixture page.
type AlbumPage struct {
	Artist      string
	Album       string
	CriticScore string
	UserScore   string
	// DateText is the detail-row date text, e.g. "March 12, 2019" or "2019".
	DateText string
	Genres   []string
	Reviews  []ReviewEntry
}

// HTML renders the album detail fixture.
func (p AlbumPage) HTML() string {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "<div class=\"artist\"><span itemprop=\"name\">%s</span></div>\n", p.Artist)
	fmt.Fprintf(&b, "<h1 class=\"albumTitle\"><span itemprop=\"name\">%s</span></h1>\n", p.Album)
	if p.CriticScore != "" {
		fmt.Fprintf(&b, "<div class=\"albumCriticScore\"><a href=\"#\">%s</a></div>\n", p.CriticScore)
	}
	if p.UserScore != "" {
		fmt.Fprintf(&b, "<div class=\"albumUserScore\"><a href=\"#\">%s</a></div>\n", p.UserScore)
	}

	b.WriteString("<div class=\"albumTopBox info\">\n")
	if p.DateText != "" {
		fmt.Fprintf(&b, "<div class=\"detailRow\">%s / <span>Release Date</span></div>\n", p.DateText)
	}
	if len(p.Genres) > 0 {
		b.WriteString("<div class=\"detailRow\">\n")
		for _, g := range p.Genres {
			fmt.Fprintf(&b, "<meta itemprop=\"genre\" content=\"%s\">\n", g)
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n")

	b.WriteString("<div id=\"criticReviewContainer\">\n")
	for _, rev := range p.Reviews {
		b.WriteString("<div class=\"albumReviewRow\">\n")
		fmt.Fprintf(&b, "<div class=\"publication\"><a href=\"#\">%s</a></div>\n", rev.Publication)
		if rev.Author != "" {
			fmt.Fprintf(&b, "<div class=\"author\"><a href=\"#\">%s</a></div>\n", rev.Author)
		}
		if rev.Snippet != "" {
			fmt.Fprintf(&b, "<div class=\"albumReviewText\"><p>%s</p></div>\n", rev.Snippet)
		}
		fmt.Fprintf(&b, "<div class=\"albumReviewLinks\"><div class=\"actionContainer\" title=\"%s\"></div></div>\n", rev.Date)
		fmt.Fprintf(&b, "<div class=\"albumReviewRating\">%s</div>\n", rev.Score)
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n")

	b.WriteString("</body></html>")
	return b.String()
}

// RatingEntry describes one user rating row on a rating fixture page.
type RatingEntry struct {
	Username string
	Score    string
	Date     string
}

// RatingsPage describes a user-rating fixture page. LastPage 0 omits the
// pager entirely (single-page resource).
type RatingsPage struct {
	Ratings  []RatingEntry
	LastPage int
}

// HTML renders the user-rating fixture.
func (p RatingsPage) HTML() string {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	for _, r := range p.Ratings {
		b.WriteString("<div class=\"userRatingBlock\">\n")
		fmt.Fprintf(&b, "<div class=\"userName\">%s</div>\n", r.Username)
		if r.Score != "" {
			fmt.Fprintf(&b, "<div class=\"rating\">%s</div>\n", r.Score)
		}
		fmt.Fprintf(&b, "<div class=\"date\" title=\"%s\"></div>\n", r.Date)
		b.WriteString("</div>\n")
	}
	if p.LastPage > 0 {
		for i := 1; i <= p.LastPage; i++ {
			fmt.Fprintf(&b, "<div class=\"pageSelectSmall\">%d</div>\n", i)
		}
	}
	b.WriteString("</body></html>")
	return b.String()
}
