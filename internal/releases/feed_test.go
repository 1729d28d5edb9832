package releases_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"showsaver/internal/api"
	"showsaver/internal/logging"
	"showsaver/internal/releases"
)

type fakeSource struct {
	mu       sync.Mutex
	listings []api.ReleaseListResponse
	listCall int
	info     map[string]api.EpisodeInfoResponse
	infoErr  map[string]error
	gate     chan struct{}
}

func newFakeSource(listings ...api.ReleaseListResponse) *fakeSource {
	return &fakeSource{
		listings: listings,
		info:     make(map[string]api.EpisodeInfoResponse),
		infoErr:  make(map[string]error),
	}
}

func (s *fakeSource) NewReleases(ctx context.Context, forceRefresh bool) (api.ReleaseListResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.listCall
	if idx >= len(s.listings) {
		idx = len(s.listings) - 1
	}
	s.listCall++
	return s.listings[idx], nil
}

func (s *fakeSource) EpisodeInfo(ctx context.Context, episodeURL string) (api.EpisodeInfoResponse, error) {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.infoErr[episodeURL]; err != nil {
		return api.EpisodeInfoResponse{}, err
	}
	resp, ok := s.info[episodeURL]
	if !ok {
		return api.EpisodeInfoResponse{Success: true}, nil
	}
	return resp, nil
}

func listing(videos ...api.ReleaseVideo) api.ReleaseListResponse {
	return api.ReleaseListResponse{Success: true, Videos: videos}
}

func cardByURL(t *testing.T, cards []releases.Card, url string) releases.Card {
	t.Helper()
	for _, card := range cards {
		if card.URL == url {
			return card
		}
	}
	t.Fatalf("no card for %s in %+v", url, cards)
	return releases.Card{}
}

func TestRefreshCapsListingAndKeepsOrder(t *testing.T) {
	var videos []api.ReleaseVideo
	for _, url := range []string{"a", "b", "c", "d"} {
		videos = append(videos, api.ReleaseVideo{URL: url, Title: url, Thumbnail: "thumb"})
	}
	source := newFakeSource(listing(videos...))

	feed := releases.NewFeed(source, 3, logging.NewNop(), nil)
	if err := feed.Refresh(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	feed.Wait()

	cards := feed.Cards()
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	for i, want := range []string{"a", "b", "c"} {
		if cards[i].URL != want {
			t.Fatalf("card %d = %s, want %s", i, cards[i].URL, want)
		}
	}
}

func TestEnrichmentPatchesSparseCards(t *testing.T) {
	source := newFakeSource(listing(
		api.ReleaseVideo{URL: "sparse"},
		api.ReleaseVideo{URL: "full", Title: "Already Known", Thumbnail: "thumb", Duration: 50},
	))
	source.info["sparse"] = api.EpisodeInfoResponse{
		Success: true,
		Info:    api.EpisodeInfo{Title: "Backfilled", Thumbnail: "thumb2", Duration: 95},
	}

	feed := releases.NewFeed(source, 9, logging.NewNop(), nil)
	if err := feed.Refresh(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	feed.Wait()

	cards := feed.Cards()
	sparse := cardByURL(t, cards, "sparse")
	if sparse.Title != "Backfilled" || sparse.Thumbnail != "thumb2" || sparse.Duration != 95 {
		t.Fatalf("sparse card not enriched: %+v", sparse)
	}
	if !sparse.Enriched {
		t.Fatal("enriched card not marked")
	}
	full := cardByURL(t, cards, "full")
	if full.Enriched {
		t.Fatalf("fully populated card should not fetch details: %+v", full)
	}
}

func TestEnrichmentNeverClearsFields(t *testing.T) {
	source := newFakeSource(listing(
		api.ReleaseVideo{URL: "v", Title: "Listed Title"},
	))
	// Detail response with an empty title must not blank the listed one.
	source.info["v"] = api.EpisodeInfoResponse{
		Success: true,
		Info:    api.EpisodeInfo{Thumbnail: "thumb"},
	}

	feed := releases.NewFeed(source, 9, logging.NewNop(), nil)
	if err := feed.Refresh(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	feed.Wait()

	card := cardByURL(t, feed.Cards(), "v")
	if card.Title != "Listed Title" {
		t.Fatalf("listed title lost: %+v", card)
	}
	if card.Thumbnail != "thumb" {
		t.Fatalf("thumbnail not applied: %+v", card)
	}
}

func TestLateDetailForRemovedCardIsDropped(t *testing.T) {
	source := newFakeSource(
		listing(api.ReleaseVideo{URL: "old"}),
		listing(api.ReleaseVideo{URL: "new", Title: "New", Thumbnail: "thumb"}),
	)
	source.gate = make(chan struct{})
	source.info["old"] = api.EpisodeInfoResponse{
		Success: true,
		Info:    api.EpisodeInfo{Title: "Stale"},
	}

	feed := releases.NewFeed(source, 9, logging.NewNop(), nil)
	if err := feed.Refresh(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	// Second refresh lands while the first card's detail fetch is still
	// in flight; the old card is gone by the time the response arrives.
	if err := feed.Refresh(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	close(source.gate)
	feed.Wait()

	cards := feed.Cards()
	if len(cards) != 1 || cards[0].URL != "new" {
		t.Fatalf("stale detail leaked into feed: %+v", cards)
	}
}

func TestFailedEnrichmentLeavesCardSparse(t *testing.T) {
	source := newFakeSource(listing(api.ReleaseVideo{URL: "v"}))
	source.infoErr["v"] = errors.New("connection reset")

	changes := 0
	feed := releases.NewFeed(source, 9, logging.NewNop(), func([]releases.Card) {
		changes++
	})
	if err := feed.Refresh(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	feed.Wait()

	card := cardByURL(t, feed.Cards(), "v")
	if card.Enriched {
		t.Fatalf("failed fetch marked card enriched: %+v", card)
	}
	if changes != 1 {
		t.Fatalf("expected only the listing snapshot, got %d change callbacks", changes)
	}
}

func TestRefreshRejectedListing(t *testing.T) {
	source := newFakeSource(api.ReleaseListResponse{Success: false, Error: "scrape failed"})

	feed := releases.NewFeed(source, 9, logging.NewNop(), nil)
	err := feed.Refresh(context.Background(), false)
	if err == nil {
		t.Fatal("expected error for rejected listing")
	}
}
