package paginate

import (
	"context"
	"errors"
	"testing"
)

// recordingFetcher replays scripted per-page results and records which
// pages were fetched.
type recordingFetcher struct {
	added    []int
	lastPage int
	fetched  []int
}

func (f *recordingFetcher) FetchPage(ctx context.Context, page int) (int, int, error) {
	f.fetched = append(f.fetched, page)
	if page-1 < len(f.added) {
		return f.added[page-1], f.lastPage, nil
	}
	return 0, f.lastPage, nil
}

func TestFetchAll_StopOnEmpty(t *testing.T) {
	// Non-empty, non-empty, empty, non-empty: must stop after the third
	// page and never fetch the fourth.
	f := &recordingFetcher{added: []int{5, 3, 0, 7}}

	pages, err := FetchAll(context.Background(), f, StopOnEmpty())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if pages != 3 {
		t.Errorf("pages = %d, want 3", pages)
	}
	for _, p := range f.fetched {
		if p == 4 {
			t.Error("Page 4 was fetched after an empty page")
		}
	}
}

func TestFetchAll_StopOnEmpty_FirstPageEmpty(t *testing.T) {
	f := &recordingFetcher{added: []int{0}}

	pages, err := FetchAll(context.Background(), f, StopOnEmpty())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if pages != 1 {
		t.Errorf("pages = %d, want 1", pages)
	}
}

func TestFetchAll_StopAtIndicator_Absent(t *testing.T) {
	// No last-page indicator on page 1: the resource is single-page.
	f := &recordingFetcher{added: []int{4}, lastPage: 0}

	pages, err := FetchAll(context.Background(), f, StopAtIndicator())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if pages != 1 {
		t.Errorf("pages = %d, want 1", pages)
	}
}

func TestFetchAll_StopAtIndicator_Present(t *testing.T) {
	f := &recordingFetcher{added: []int{4, 4, 2}, lastPage: 3}

	pages, err := FetchAll(context.Background(), f, StopAtIndicator())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if pages != 3 {
		t.Errorf("pages = %d, want 3", pages)
	}
	if len(f.fetched) != 3 {
		t.Errorf("fetches = %d, want 3", len(f.fetched))
	}
}

func TestFetchAll_StopAtIndicator_EmptyMiddlePageContinues(t *testing.T) {
	// Indicator-based pagination trusts the indicator, not emptiness.
	f := &recordingFetcher{added: []int{2, 0, 1}, lastPage: 3}

	pages, err := FetchAll(context.Background(), f, StopAtIndicator())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if pages != 3 {
		t.Errorf("pages = %d, want 3", pages)
	}
}

func TestFetchAll_PropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	failing := PageFetcherFunc(func(ctx context.Context, page int) (int, int, error) {
		if page == 2 {
			return 0, 0, wantErr
		}
		return 1, 0, nil
	})

	pages, err := FetchAll(context.Background(), failing, StopOnEmpty())
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
	if pages != 1 {
		t.Errorf("pages = %d, want 1", pages)
	}
}
