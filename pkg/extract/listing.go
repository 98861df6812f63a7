package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aoty-data/harvester/pkg/model"
)

// Slugs extracts the scoreable releases from a year/type listing page.
//
// A record is produced iff the entry exposes exactly two rating rows (one
// critic, one user); any other count means at most one of the two scores
// exists and the entry is excluded. This filter defines the input universe
// for the detail-page passes.
func Slugs(doc *goquery.Document, releaseType model.ReleaseType) []model.Slug {
	var results []model.Slug

	doc.Find("div.albumBlock.small").Each(func(_ int, block *goquery.Selection) {
		if block.Find("div.ratingRow").Length() != 2 {
			return
		}

		href, ok := block.Find(`a[href^="/album/"]`).First().Attr("href")
		if !ok {
			return
		}
		slug := strings.TrimSuffix(strings.TrimPrefix(href, "/album/"), ".php")

		results = append(results, model.Slug{
			Type:   releaseType,
			Artist: textOr(block, ".artistTitle", ""),
			Album:  textOr(block, ".albumTitle", ""),
			Slug:   slug,
		})
	})

	return results
}
