// Package extract maps catalog HTML documents to structured records.
//
// Extraction is pure: same document, same records. Optional fields degrade
// to an absent value through the select-or-default accessors below, so each
// field's missing-vs-present policy is declared at exactly one call site.
// Only a missing required anchor (the album title container) is an error,
// because that means the source changed shape rather than omitted a field.
package extract

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrStructure indicates a required markup anchor is missing and the remote
// page shape has changed. Never retried.
var ErrStructure = errors.New("page structure changed")

// Parse builds a goquery document from a fetched page body.
func Parse(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// textOr returns the trimmed text of the first selector match inside s,
// or def when the element is absent or empty.
func textOr(s *goquery.Selection, selector, def string) string {
	found := s.Find(selector).First()
	if found.Length() == 0 {
		return def
	}
	text := strings.TrimSpace(found.Text())
	if text == "" {
		return def
	}
	return text
}

// attrOr returns the named attribute of the first selector match inside s,
// or def when the element or attribute is absent.
func attrOr(s *goquery.Selection, selector, attr, def string) string {
	value, ok := s.Find(selector).First().Attr(attr)
	if !ok {
		return def
	}
	return strings.TrimSpace(value)
}
