package scrape

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/aoty-data/harvester/pkg/extract"
	"github.com/aoty-data/harvester/pkg/fetch"
	"github.com/aoty-data/harvester/pkg/logging"
	"github.com/aoty-data/harvester/pkg/model"
	"github.com/aoty-data/harvester/pkg/paginate"
	"github.com/aoty-data/harvester/pkg/sink"
)

// Runner executes one decade partition. Each runner owns its accumulators
// and its output files; nothing is shared across partitions, so the
// orchestrator can fan runners out without coordination.
//
// Failure policy inside the item loop: a timeout-class failure is logged
// with the slug and skipped, anything else stops the remaining items. In
// both cases records accumulated so far are still written (best-effort
// partial output) since the sink write happens once at the end.
type Runner struct {
	scraper *Scraper
	config  Config
	decade  int
	logger  zerolog.Logger
}

// NewRunner creates a batch runner for one decade partition.
func NewRunner(scraper *Scraper, cfg Config, decade int) *Runner {
	return &Runner{
		scraper: scraper,
		config:  cfg,
		decade:  decade,
		logger:  logging.NewLogger("batch").With().Int("decade", decade).Logger(),
	}
}

// Years returns the partition's year range. The 2020s partition is
// truncated to its elapsed years.
func (r *Runner) Years() []int {
	span := 10
	if r.decade == 2020 {
		span = 6
	}
	years := make([]int, 0, span)
	for y := r.decade; y < r.decade+span; y++ {
		years = append(years, y)
	}
	return years
}

// SlugPass walks every year/type listing of the partition under the
// emptiness-based continuation policy and writes the slug file that seeds
// the detail-page passes. Listing fetches are deliberately unpaced.
func (r *Runner) SlugPass(ctx context.Context) error {
	var slugs []model.Slug
	var abort error

listing:
	for _, year := range r.Years() {
		for _, releaseType := range []model.ReleaseType{model.ReleaseLP, model.ReleaseMixtape} {
			fetchPage := paginate.PageFetcherFunc(func(ctx context.Context, page int) (int, int, error) {
				body, err := r.scraper.fetcher.Get(ctx, listingURL(r.config.BaseURL, year, page, releaseType))
				if err != nil {
					return 0, 0, err
				}
				doc, err := extract.Parse(body)
				if err != nil {
					return 0, 0, fmt.Errorf("parse listing %d/%s page %d: %w", year, releaseType, page, err)
				}
				found := extract.Slugs(doc, releaseType)
				slugs = append(slugs, found...)
				return len(found), 0, nil
			})

			pages, err := paginate.FetchAll(ctx, fetchPage, paginate.StopOnEmpty())
			if err != nil {
				abort = fmt.Errorf("listing %d/%s: %w", year, releaseType, err)
				r.logger.Error().Err(err).Int("year", year).Msg("Aborting remaining listings in partition")
				break listing
			}
			r.logger.Debug().
				Int("year", year).
				Str("type", string(releaseType)).
				Int("pages", pages).
				Msg("Listing exhausted")
		}
	}

	werr := r.writeRecords(slugsPath(r.config.OutDir, r.decade), slugRecords(slugs))
	return errors.Join(abort, werr)
}

// CriticPass scrapes each slug's detail page and writes the partition's
// critic review and album info files.
func (r *Runner) CriticPass(ctx context.Context) error {
	slugs, err := r.readSlugs()
	if err != nil {
		return err
	}

	var infos []model.AlbumInfo
	var reviews []model.CriticReview
	var abort error

	for _, slug := range slugs {
		info, rows, err := r.scraper.Album(ctx, slug)
		if err != nil {
			if fetch.IsTimeout(err) {
				r.logger.Warn().Err(err).Str("slug", slug).Msg("Scraping failed, skipping")
				continue
			}
			abort = fmt.Errorf("album %s: %w", slug, err)
			r.logger.Error().Err(err).Str("slug", slug).Msg("Aborting remaining items in partition")
			break
		}
		infos = append(infos, info)
		reviews = append(reviews, rows...)
	}

	rerr := r.writeRecords(criticReviewsPath(r.config.OutDir, r.decade), reviewRecords(reviews))
	ierr := r.writeRecords(albumInfoPath(r.config.OutDir, r.decade), infoRecords(infos))
	return errors.Join(abort, rerr, ierr)
}

// UserPass scrapes each slug's user-rating pages and writes the partition's
// user rating file.
func (r *Runner) UserPass(ctx context.Context) error {
	slugs, err := r.readSlugs()
	if err != nil {
		return err
	}

	var ratings []model.UserRating
	var abort error

	for _, slug := range slugs {
		rows, err := r.scraper.UserRatings(ctx, slug)
		if err != nil {
			if fetch.IsTimeout(err) {
				r.logger.Warn().Err(err).Str("slug", slug).Msg("Scraping failed, skipping")
				continue
			}
			abort = fmt.Errorf("user ratings %s: %w", slug, err)
			r.logger.Error().Err(err).Str("slug", slug).Msg("Aborting remaining items in partition")
			break
		}
		ratings = append(ratings, rows...)
	}

	werr := r.writeRecords(userRatingsPath(r.config.OutDir, r.decade), ratingRecords(ratings))
	return errors.Join(abort, werr)
}

// readSlugs reads the partition's slug file: header row ignored, the last
// field of each data row is the slug.
func (r *Runner) readSlugs() ([]string, error) {
	path := slugsPath(r.config.OutDir, r.decade)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open slug list: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read slug list header: %w", err)
	}

	var slugs []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read slug list: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		slugs = append(slugs, row[len(row)-1])
	}
	return slugs, nil
}

// writeRecords writes one output file, treating an empty accumulator as a
// logged skip rather than a failure: there is nothing to infer a header
// from, and an absent file is the documented outcome.
func (r *Runner) writeRecords(path string, records []sink.Record) error {
	err := sink.WriteCSV(path, records)
	if errors.Is(err, sink.ErrNoRecords) {
		r.logger.Warn().Str("path", path).Msg("No records accumulated, write skipped")
		return nil
	}
	if err != nil {
		return err
	}

	r.logger.Info().Str("path", path).Int("rows", len(records)).Msg("Saved output file")
	return nil
}

func slugRecords(slugs []model.Slug) []sink.Record {
	records := make([]sink.Record, 0, len(slugs))
	for _, s := range slugs {
		records = append(records, s)
	}
	return records
}

func reviewRecords(reviews []model.CriticReview) []sink.Record {
	records := make([]sink.Record, 0, len(reviews))
	for _, r := range reviews {
		records = append(records, r)
	}
	return records
}

func infoRecords(infos []model.AlbumInfo) []sink.Record {
	records := make([]sink.Record, 0, len(infos))
	for _, i := range infos {
		records = append(records, i)
	}
	return records
}

func ratingRecords(ratings []model.UserRating) []sink.Record {
	records := make([]sink.Record, 0, len(ratings))
	for _, u := range ratings {
		records = append(records, u)
	}
	return records
}
