package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aoty-data/harvester/pkg/model"
)

// UserRatings extracts the rating rows from one user-rating page. A row
// without a visible score is a review-only entry and carries the "N/A"
// sentinel; the rating date lives in the title attribute of the date node.
func UserRatings(doc *goquery.Document, slug string) []model.UserRating {
	var results []model.UserRating

	doc.Find("div.userRatingBlock").Each(func(_ int, entry *goquery.Selection) {
		results = append(results, model.UserRating{
			Slug:     slug,
			Username: textOr(entry, "div.userName", ""),
			Score:    textOr(entry, "div.rating", "N/A"),
			Date:     attrOr(entry, "div.date", "title", ""),
		})
	})

	return results
}

// LastPage returns the explicit last-page indicator from a user-rating
// page, or 0 when the pager is absent and the listing is single-page.
func LastPage(doc *goquery.Document) int {
	pager := doc.Find("div.pageSelectSmall")
	if pager.Length() == 0 {
		return 0
	}

	last, err := strconv.Atoi(strings.TrimSpace(pager.Last().Text()))
	if err != nil {
		return 0
	}
	return last
}
