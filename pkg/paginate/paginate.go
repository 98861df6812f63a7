// Package paginate drives repeated fetch+extract cycles over a family of
// pages addressed by an incrementing page number.
//
// Two continuation policies exist because the catalog exposes two kinds of
// paginated resources. Year/type release listings carry no page indicator,
// but are sorted by popularity: once a page yields zero qualifying records,
// every later page is also empty, so stopping there is a correctness
// condition for termination, not an optimization. User-rating pages instead
// publish an explicit last-page indicator on page one.
package paginate

import "context"

// PageFetcher fetches and extracts a single page.
//
// added is the number of qualifying records the callee appended to its own
// accumulator for this page. lastPage is the explicit last-page indicator
// parsed from the page, or 0 when the resource exposes none; only the value
// from page 1 is consulted.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) (added int, lastPage int, err error)
}

// PageFetcherFunc adapts a function to the PageFetcher interface.
type PageFetcherFunc func(ctx context.Context, page int) (int, int, error)

func (f PageFetcherFunc) FetchPage(ctx context.Context, page int) (int, int, error) {
	return f(ctx, page)
}

// Continuation decides, after each fetched page, whether to fetch the next.
type Continuation interface {
	// Continue reports whether page+1 should be fetched, given the outcome
	// of the page just fetched.
	Continue(page, added, lastPage int) bool
}

// stopOnEmpty terminates after the first page that yields zero records.
type stopOnEmpty struct{}

func (stopOnEmpty) Continue(page, added, lastPage int) bool {
	return added > 0
}

// StopOnEmpty returns the emptiness-based continuation policy used for
// year/type release listings.
func StopOnEmpty() Continuation {
	return stopOnEmpty{}
}

// stopAtIndicator iterates up to the last-page indicator from page 1.
// An absent indicator (0) means the resource is single-page.
type stopAtIndicator struct {
	last int
}

func (s *stopAtIndicator) Continue(page, added, lastPage int) bool {
	if page == 1 {
		s.last = lastPage
	}
	return page < s.last
}

// StopAtIndicator returns the indicator-based continuation policy used for
// user-rating pages. The returned value is stateful and must not be shared
// across runs.
func StopAtIndicator() Continuation {
	return &stopAtIndicator{}
}

// FetchAll runs the fetch loop from page 1 until the continuation policy
// stops it, returning the number of pages fetched. Pages are fetched
// strictly one at a time; sequencing within a partition is the per-host
// rate limiter.
func FetchAll(ctx context.Context, pf PageFetcher, cont Continuation) (int, error) {
	pages := 0
	for page := 1; ; page++ {
		added, lastPage, err := pf.FetchPage(ctx, page)
		if err != nil {
			return pages, err
		}
		pages++

		if !cont.Continue(page, added, lastPage) {
			return pages, nil
		}
	}
}
