package model

import (
	"strings"
	"testing"
)

func TestRowsMatchHeaders(t *testing.T) {
	records := []interface {
		Header() []string
		Row() []string
	}{
		Slug{Type: ReleaseLP, Artist: "a", Album: "b", Slug: "1-a-b"},
		AlbumInfo{Slug: "1-a-b", Genres: []string{"Rock", "Pop"}},
		CriticReview{Slug: "1-a-b", Publication: "Zine"},
		UserRating{Slug: "1-a-b", Username: "u", Score: "N/A"},
	}

	for _, rec := range records {
		if got, want := len(rec.Row()), len(rec.Header()); got != want {
			t.Errorf("%T: row width = %d, header width = %d", rec, got, want)
		}
	}
}

func TestAlbumInfo_GenresPipeJoined(t *testing.T) {
	a := AlbumInfo{Genres: []string{"Jazz", "Fusion"}}
	row := a.Row()
	genres := row[len(row)-1]
	if genres != "Jazz|Fusion" {
		t.Errorf("genres cell = %q, want %q", genres, "Jazz|Fusion")
	}
	if strings.Contains(genres, ",") {
		t.Errorf("genres cell %q must not use the CSV delimiter", genres)
	}
}
