// Package model defines the immutable records produced by the scrape passes.
//
// Every record knows its own CSV projection: Header returns the column names
// in serialization order, Row the matching values. The batch runner derives
// the output header from the first accumulated record, so the order here is
// the order that appears on disk.
package model

import "strings"

// ReleaseType tags a listing entry as an LP or a mixtape.
type ReleaseType string

const (
	ReleaseLP      ReleaseType = "lp"
	ReleaseMixtape ReleaseType = "mixtape"
)

// Slug identifies one album listing entry that exposes both a critic and a
// user score. The slug is the opaque key the detail-page passes consume.
type Slug struct {
	Type   ReleaseType
	Artist string
	Album  string
	Slug   string
}

func (s Slug) Header() []string {
	return []string{"type", "artist", "album", "slug"}
}

func (s Slug) Row() []string {
	return []string{string(s.Type), s.Artist, s.Album, s.Slug}
}

// AlbumInfo is the per-album summary from the detail page. CriticScore and
// UserScore may be empty when the page exposes no score; ReleaseDate is empty
// when only the release year is known.
type AlbumInfo struct {
	Slug        string
	Artist      string
	Album       string
	CriticScore string
	UserScore   string
	ReleaseDate string
	ReleaseYear string
	Genres      []string
}

func (a AlbumInfo) Header() []string {
	return []string{"slug", "artist", "album", "critic_score", "user_score", "release_date", "release_year", "genres"}
}

func (a AlbumInfo) Row() []string {
	return []string{a.Slug, a.Artist, a.Album, a.CriticScore, a.UserScore, a.ReleaseDate, a.ReleaseYear, strings.Join(a.Genres, "|")}
}

// CriticReview is one publication review row on an album detail page.
// Author and Snippet are legitimately absent on many rows.
type CriticReview struct {
	Slug        string
	Publication string
	Author      string
	Snippet     string
	Date        string
	Score       string
}

func (r CriticReview) Header() []string {
	return []string{"slug", "publication", "author", "snippet", "date", "score"}
}

func (r CriticReview) Row() []string {
	return []string{r.Slug, r.Publication, r.Author, r.Snippet, r.Date, r.Score}
}

// UserRating is one user rating row. Score carries the sentinel "N/A" when
// the user reviewed without rating.
type UserRating struct {
	Slug     string
	Username string
	Score    string
	Date     string
}

func (u UserRating) Header() []string {
	return []string{"slug", "username", "score", "date"}
}

func (u UserRating) Row() []string {
	return []string{u.Slug, u.Username, u.Score, u.Date}
}
