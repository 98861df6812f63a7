// Package scrape composes the fetcher, extractor and paginator into item
// scrapers, decade batch runners and the top-level orchestrator.
package scrape

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aoty-data/harvester/pkg/extract"
	"github.com/aoty-data/harvester/pkg/fetch"
	"github.com/aoty-data/harvester/pkg/logging"
	"github.com/aoty-data/harvester/pkg/model"
	"github.com/aoty-data/harvester/pkg/pacing"
	"github.com/aoty-data/harvester/pkg/paginate"
)

// Scraper produces the full record set for a single album. Fetch failures
// propagate to the caller unhandled: skipping or aborting is the batch
// runner's decision, not the item scraper's.
type Scraper struct {
	fetcher *fetch.Client
	pacer   *pacing.Pacer
	baseURL string
	logger  zerolog.Logger
}

// NewScraper creates an item scraper. The pacer is applied after album
// detail fetches and user-rating pages; listing fetches are unpaced.
func NewScraper(fetcher *fetch.Client, pacer *pacing.Pacer, baseURL string) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Scraper{
		fetcher: fetcher,
		pacer:   pacer,
		baseURL: baseURL,
		logger:  logging.NewLogger("scrape"),
	}
}

// Album fetches an album's detail page exactly once and extracts its
// summary and critic review rows.
func (s *Scraper) Album(ctx context.Context, slug string) (model.AlbumInfo, []model.CriticReview, error) {
	body, err := s.fetcher.Get(ctx, albumURL(s.baseURL, slug))
	if err != nil {
		return model.AlbumInfo{}, nil, err
	}
	s.pacer.Pause(ctx)

	doc, err := extract.Parse(body)
	if err != nil {
		return model.AlbumInfo{}, nil, fmt.Errorf("parse album page (slug %s): %w", slug, err)
	}

	info, err := extract.AlbumInfo(doc, slug)
	if err != nil {
		return model.AlbumInfo{}, nil, err
	}

	reviews := extract.CriticReviews(doc, slug)
	s.logger.Debug().
		Str("slug", slug).
		Int("reviews", len(reviews)).
		Msg("Album scraped")

	return info, reviews, nil
}

// UserRatings walks an album's user-rating pages under the indicator-based
// continuation policy and returns all rating rows.
func (s *Scraper) UserRatings(ctx context.Context, slug string) ([]model.UserRating, error) {
	var results []model.UserRating

	fetchPage := paginate.PageFetcherFunc(func(ctx context.Context, page int) (int, int, error) {
		body, err := s.fetcher.Get(ctx, userRatingsURL(s.baseURL, slug, page))
		if err != nil {
			return 0, 0, err
		}

		doc, err := extract.Parse(body)
		if err != nil {
			return 0, 0, fmt.Errorf("parse user-rating page %d (slug %s): %w", page, slug, err)
		}

		rows := extract.UserRatings(doc, slug)
		results = append(results, rows...)
		s.pacer.Pause(ctx)

		return len(rows), extract.LastPage(doc), nil
	})

	pages, err := paginate.FetchAll(ctx, fetchPage, paginate.StopAtIndicator())
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("slug", slug).
		Int("pages", pages).
		Int("ratings", len(results)).
		Msg("User ratings scraped")

	return results, nil
}
