package releases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"showsaver/internal/api"
	"showsaver/internal/logging"
)

// Source provides the release listing and per-episode detail lookups.
type Source interface {
	NewReleases(ctx context.Context, forceRefresh bool) (api.ReleaseListResponse, error)
	EpisodeInfo(ctx context.Context, episodeURL string) (api.EpisodeInfoResponse, error)
}

// Card is the render state for one release, keyed by URL. Fields fill in
// monotonically: once set by the listing or an enrichment response they are
// never cleared.
type Card struct {
	URL       string
	Title     string
	Thumbnail string
	Duration  int
	Enriched  bool
}

// Feed fetches a bounded release list and enriches each card independently.
// Every enrichment response patches only its own card, and only while that
// card is still part of the current listing; late responses for cards that a
// refresh removed are dropped.
type Feed struct {
	source   Source
	limit    int
	logger   *slog.Logger
	onChange func([]Card)

	mu    sync.Mutex
	cards map[string]*Card
	order []string
	wg    sync.WaitGroup
}

// NewFeed builds a feed that keeps at most limit cards. onChange receives a
// full snapshot after the initial listing and after every applied patch; it
// may be nil.
func NewFeed(source Source, limit int, logger *slog.Logger, onChange func([]Card)) *Feed {
	if limit <= 0 {
		limit = 9
	}
	if onChange == nil {
		onChange = func([]Card) {}
	}
	return &Feed{
		source:   source,
		limit:    limit,
		logger:   logging.NewComponentLogger(logger, "releases"),
		onChange: onChange,
		cards:    make(map[string]*Card),
	}
}

// Refresh replaces the feed contents from a fresh listing, emits the
// placeholder snapshot immediately, then launches one enrichment fetch per
// card still missing a title or thumbnail. Enrichment runs concurrently and
// Refresh does not wait for it; use Wait for that.
func (f *Feed) Refresh(ctx context.Context, forceRefresh bool) error {
	resp, err := f.source.NewReleases(ctx, forceRefresh)
	if err != nil {
		return fmt.Errorf("fetch releases: %w", err)
	}
	if !resp.Success {
		if resp.Error != "" {
			return fmt.Errorf("release listing rejected: %s", resp.Error)
		}
		return fmt.Errorf("release listing rejected")
	}

	videos := resp.Videos
	if len(videos) > f.limit {
		videos = videos[:f.limit]
	}

	f.mu.Lock()
	f.cards = make(map[string]*Card, len(videos))
	f.order = f.order[:0]
	for _, video := range videos {
		if video.URL == "" {
			continue
		}
		if _, ok := f.cards[video.URL]; ok {
			continue
		}
		f.cards[video.URL] = &Card{
			URL:       video.URL,
			Title:     video.Title,
			Thumbnail: video.Thumbnail,
			Duration:  video.Duration,
		}
		f.order = append(f.order, video.URL)
	}
	snapshot := f.snapshotLocked()
	var pending []string
	for _, url := range f.order {
		card := f.cards[url]
		if card.Title == "" || card.Thumbnail == "" {
			pending = append(pending, url)
		}
	}
	f.mu.Unlock()

	f.onChange(snapshot)

	for _, url := range pending {
		f.wg.Add(1)
		go f.enrich(ctx, url)
	}
	return nil
}

// Wait blocks until all enrichment fetches launched so far have resolved.
func (f *Feed) Wait() {
	f.wg.Wait()
}

// Cards returns the current snapshot in listing order.
func (f *Feed) Cards() []Card {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Feed) enrich(ctx context.Context, url string) {
	defer f.wg.Done()

	resp, err := f.source.EpisodeInfo(ctx, url)
	if err != nil {
		if ctx.Err() == nil {
			f.logger.Debug("episode info fetch failed", slog.String("url", url), slog.Any("error", err))
		}
		return
	}
	if !resp.Success {
		f.logger.Debug("episode info reported failure", slog.String("url", url))
		return
	}
	f.apply(url, resp.Info)
}

// apply patches one card from a detail response. Fields are only ever set,
// never cleared, and a card that no longer exists swallows the patch.
func (f *Feed) apply(url string, info api.EpisodeInfo) {
	f.mu.Lock()
	card, ok := f.cards[url]
	if !ok {
		f.mu.Unlock()
		f.logger.Debug("dropping detail for removed card", slog.String("url", url))
		return
	}
	if info.Title != "" {
		card.Title = info.Title
	}
	if info.Thumbnail != "" {
		card.Thumbnail = info.Thumbnail
	}
	if info.Duration > 0 {
		card.Duration = info.Duration
	}
	card.Enriched = true
	snapshot := f.snapshotLocked()
	f.mu.Unlock()

	f.onChange(snapshot)
}

func (f *Feed) snapshotLocked() []Card {
	out := make([]Card, 0, len(f.order))
	for _, url := range f.order {
		out = append(out, *f.cards[url])
	}
	return out
}
