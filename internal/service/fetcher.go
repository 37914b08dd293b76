package service

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"feed_player/internal/domain"
	"feed_player/internal/resolver"
)

// Batch is the playable part of one listing page.
type Batch struct {
	Number  int
	Cursor  string
	Entries int // raw entries on the page, before filtering
	After   string
	Items   []domain.QueueItem
}

// Exhausted reports whether the page that produced the batch was empty.
func (b Batch) Exhausted() bool {
	return b.Entries == 0
}

type Fetcher struct {
	source     ListingSource
	maxBatches int
	logger     *slog.Logger
}

func NewFetcher(source ListingSource, maxBatches int, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		source:     source,
		maxBatches: maxBatches,
		logger:     logger.With("component", "fetcher"),
	}
}

// FetchBatch fetches one listing page and keeps the video-like entries whose
// URL resolves to a video id.
func (f *Fetcher) FetchBatch(ctx context.Context, feed, cursor string) (Batch, error) {
	page, err := f.source.FetchListing(ctx, feed, cursor)
	if err != nil {
		return Batch{}, err
	}

	batch := Batch{
		Cursor:  cursor,
		Entries: len(page.Entries),
		After:   page.After,
		Items:   make([]domain.QueueItem, 0, len(page.Entries)),
	}

	for _, e := range page.Entries {
		if !e.IsVideoLike() {
			continue
		}
		id, ok := resolver.Resolve(e.URL)
		if !ok {
			continue
		}
		batch.Items = append(batch.Items, domain.QueueItem{
			ID:         id,
			SourceName: e.Name,
			Title:      e.Title,
			URL:        e.URL,
			Permalink:  e.Permalink,
			Thumbnail:  e.Thumbnail,
		})
	}

	return batch, nil
}

// Paginate yields batches for feed. The first batch is fetched without a
// cursor; every later batch is fetched with cursor, which is the snapshot
// taken when pagination started and is not advanced between batches.
// The sequence ends after maxBatches fetches, after an empty page, after an
// error, or when the consumer stops.
func (f *Fetcher) Paginate(ctx context.Context, feed, cursor string) iter.Seq2[Batch, error] {
	return func(yield func(Batch, error) bool) {
		for n := 1; n <= f.maxBatches; n++ {
			after := cursor
			if n == 1 {
				after = ""
			}

			batch, err := f.FetchBatch(ctx, feed, after)
			if err != nil {
				yield(Batch{Number: n, Cursor: after}, fmt.Errorf("fetch batch %d: %w", n, err))
				return
			}
			batch.Number = n

			f.logger.Debug("fetched batch",
				"feed", feed,
				"batch", n,
				"cursor", after,
				"entries", batch.Entries,
				"playable", len(batch.Items),
			)

			if !yield(batch, nil) || batch.Exhausted() {
				return
			}
		}
	}
}
