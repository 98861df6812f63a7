package scrape

import (
	"context"
	"errors"
	"testing"

	"github.com/aoty-data/harvester/internal/testutil"
	"github.com/aoty-data/harvester/pkg/extract"
)

func TestAlbum_SingleFetch(t *testing.T) {
	mock := testutil.NewMockSite()
	defer mock.Close()

	mock.SetHTML("/album/42-artist-album.php", testutil.AlbumPage{
		Artist:      "Artist",
		Album:       "Album",
		CriticScore: "77",
		UserScore:   "81",
		DateText:    "April 4, 1994",
		Genres:      []string{"Rock"},
		Reviews: []testutil.ReviewEntry{
			{Publication: "Zine", Author: "Writer", Snippet: "Good.", Date: "April 5, 1994", Score: "70"},
		},
	}.HTML())

	scraper := newTestScraper(mock)

	info, reviews, err := scraper.Album(context.Background(), "42-artist-album")
	if err != nil {
		t.Fatalf("Album failed: %v", err)
	}

	if info.Slug != "42-artist-album" {
		t.Errorf("Slug = %q, want %q", info.Slug, "42-artist-album")
	}
	if info.Artist != "Artist" {
		t.Errorf("Artist = %q, want %q", info.Artist, "Artist")
	}
	if len(reviews) != 1 {
		t.Fatalf("reviews = %d, want 1", len(reviews))
	}
	if reviews[0].Publication != "Zine" {
		t.Errorf("Publication = %q, want %q", reviews[0].Publication, "Zine")
	}

	// Info and reviews come from one page load.
	if got := mock.GetRequestCount(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestAlbum_StructureError(t *testing.T) {
	mock := testutil.NewMockSite()
	defer mock.Close()

	mock.SetHTML("/album/9-broken.php", "<html><body><p>maintenance</p></body></html>")

	scraper := newTestScraper(mock)

	_, _, err := scraper.Album(context.Background(), "9-broken")
	if !errors.Is(err, extract.ErrStructure) {
		t.Errorf("error = %v, want ErrStructure", err)
	}
}

func TestUserRatings_SinglePage(t *testing.T) {
	mock := testutil.NewMockSite()
	defer mock.Close()

	// No pager on page 1 means the resource is single-page.
	mock.SetHTML("/album/5-x/user-reviews/?type=ratings", testutil.RatingsPage{
		Ratings: []testutil.RatingEntry{
			{Username: "only", Score: "65", Date: "Dec 1, 2015"},
		},
	}.HTML())

	scraper := newTestScraper(mock)

	ratings, err := scraper.UserRatings(context.Background(), "5-x")
	if err != nil {
		t.Fatalf("UserRatings failed: %v", err)
	}
	if len(ratings) != 1 {
		t.Fatalf("ratings = %d, want 1", len(ratings))
	}
	if got := mock.GetRequestCount(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestURLBuilders(t *testing.T) {
	base := "https://host"

	if got := listingURL(base, 1974, 2, "lp"); got != "https://host/1974/releases/2/?type=lp" {
		t.Errorf("listingURL = %q", got)
	}
	if got := albumURL(base, "1-a"); got != "https://host/album/1-a.php" {
		t.Errorf("albumURL = %q", got)
	}
	if got := userRatingsURL(base, "1-a", 1); got != "https://host/album/1-a/user-reviews/?type=ratings" {
		t.Errorf("userRatingsURL page 1 = %q", got)
	}
	if got := userRatingsURL(base, "1-a", 3); got != "https://host/album/1-a/user-reviews/?type=ratings&p=3" {
		t.Errorf("userRatingsURL page 3 = %q", got)
	}
}
