package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aoty-data/harvester/pkg/model"
)

// AlbumInfo extracts the per-album summary from a detail page.
//
// The album title container is the structural anchor: its absence means the
// page is not a detail page (or the site changed shape) and surfaces as an
// error wrapping ErrStructure. Every other field is optional and degrades
// to empty.
func AlbumInfo(doc *goquery.Document, slug string) (model.AlbumInfo, error) {
	title := doc.Find("h1.albumTitle").First()
	if title.Length() == 0 {
		return model.AlbumInfo{}, fmt.Errorf("%w: missing album title container (slug %s)", ErrStructure, slug)
	}

	album := textOr(title, `span[itemprop="name"]`, strings.TrimSpace(title.Text()))
	artist := textOr(doc.Selection, `div.artist span[itemprop="name"]`, "")
	if artist == "" {
		artist = textOr(doc.Selection, "div.artist", "")
	}

	releaseDate, releaseYear := releaseTokens(doc)

	return model.AlbumInfo{
		Slug:        slug,
		Artist:      artist,
		Album:       album,
		CriticScore: textOr(doc.Selection, "div.albumCriticScore a", ""),
		UserScore:   textOr(doc.Selection, "div.albumUserScore a", ""),
		ReleaseDate: releaseDate,
		ReleaseYear: releaseYear,
		Genres:      genreSet(doc),
	}, nil
}

// releaseTokens parses the release-date detail row, which the site renders
// in two shapes: "Month Day, Year" for dated releases and a bare year when
// only the year is known. Three tokens compose "Month Day" plus the year;
// a single token is year-only with no composed date.
func releaseTokens(doc *goquery.Document) (releaseDate, releaseYear string) {
	row := doc.Find("div.albumTopBox.info div.detailRow").First()
	if row.Length() == 0 {
		return "", ""
	}

	// The row text carries a trailing "/ Release Date" label; the date
	// tokens are everything before the slash.
	text, _, _ := strings.Cut(row.Text(), "/")
	tokens := strings.Fields(text)

	switch {
	case len(tokens) >= 3:
		releaseDate = tokens[0] + " " + strings.TrimSuffix(tokens[1], ",")
		releaseYear = tokens[2]
	case len(tokens) == 1:
		releaseYear = tokens[0]
	}

	return releaseDate, releaseYear
}

// genreSet collects the genre metadata as an ordered set: first occurrence
// wins, duplicates dropped. Serialization pipe-joins the set.
func genreSet(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var genres []string

	doc.Find(`div.detailRow meta[itemprop="genre"]`).Each(func(_ int, meta *goquery.Selection) {
		content, ok := meta.Attr("content")
		if !ok {
			return
		}
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		if _, dup := seen[content]; dup {
			return
		}
		seen[content] = struct{}{}
		genres = append(genres, content)
	})

	return genres
}

// CriticReviews extracts the publication review rows from a detail page.
//
// Rows are scoped to the critic review container so unrelated review blocks
// elsewhere on the page are never picked up. A missing container simply
// means the album has no critic reviews.
func CriticReviews(doc *goquery.Document, slug string) []model.CriticReview {
	var results []model.CriticReview

	doc.Find("#criticReviewContainer div.albumReviewRow").Each(func(_ int, row *goquery.Selection) {
		publication := textOr(row, "div.publication a", "")
		if publication == "" {
			publication = textOr(row, "div.publication", "")
		}
		snippet := textOr(row, "div.albumReviewText p", "")
		if snippet == "" {
			snippet = textOr(row, "div.albumReviewText", "")
		}

		results = append(results, model.CriticReview{
			Slug:        slug,
			Publication: publication,
			Author:      textOr(row, "div.author a", ""),
			Snippet:     snippet,
			Date:        attrOr(row, "div.albumReviewLinks div.actionContainer[title]", "title", ""),
			Score:       textOr(row, "div.albumReviewRating", ""),
		})
	})

	return results
}
