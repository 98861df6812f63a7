package scrape

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/aoty-data/harvester/pkg/model"
)

// DefaultBaseURL is the catalog site root.
const DefaultBaseURL = "https://www.albumoftheyear.org"

// Config holds the scrape configuration shared by all partitions.
type Config struct {
	// BaseURL is the catalog site root (overridden in tests).
	BaseURL string

	// OutDir is the root of the output tree.
	OutDir string
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		OutDir:  "data",
	}
}

// listingURL addresses one page of a year/type release listing.
func listingURL(base string, year, page int, releaseType model.ReleaseType) string {
	return fmt.Sprintf("%s/%d/releases/%d/?type=%s", base, year, page, releaseType)
}

// albumURL addresses an album detail page.
func albumURL(base, slug string) string {
	return fmt.Sprintf("%s/album/%s.php", base, url.PathEscape(slug))
}

// userRatingsURL addresses one page of an album's user-rating listing.
// Page 1 is the bare listing; later pages add the page parameter.
func userRatingsURL(base, slug string, page int) string {
	u := fmt.Sprintf("%s/album/%s/user-reviews/?type=ratings", base, url.PathEscape(slug))
	if page > 1 {
		u = fmt.Sprintf("%s&p=%d", u, page)
	}
	return u
}

// Output file layout, one file set per decade partition.

func slugsPath(outDir string, decade int) string {
	return filepath.Join(outDir, "slugs", fmt.Sprintf("album_slugs_%ds.csv", decade))
}

func criticReviewsPath(outDir string, decade int) string {
	return filepath.Join(outDir, "critic_ratings", fmt.Sprintf("critic_reviews_%ds.csv", decade))
}

func albumInfoPath(outDir string, decade int) string {
	return filepath.Join(outDir, "albums", fmt.Sprintf("album_info_%ds.csv", decade))
}

func userRatingsPath(outDir string, decade int) string {
	return filepath.Join(outDir, "user_ratings", fmt.Sprintf("user_ratings_%ds.csv", decade))
}
