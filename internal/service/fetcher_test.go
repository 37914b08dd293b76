package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"feed_player/internal/domain"
	"feed_player/internal/service/mocks"
)

func newTestFetcher(t *testing.T, maxBatches int) (*Fetcher, *mocks.MockListingSource) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockListingSource(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewFetcher(source, maxBatches, logger), source
}

func TestFetchBatch_FiltersAndResolves(t *testing.T) {
	fetcher, source := newTestFetcher(t, 10)

	source.EXPECT().FetchListing(gomock.Any(), "videos", "t3_prev").Return(&domain.ListingPage{
		After: "t3_5",
		Entries: []domain.ListingEntry{
			{Name: "t3_1", Title: "embedded", URL: "https://www.youtube.com/watch?v=" + idA, HasMedia: true},
			{Name: "t3_2", Title: "native flag", URL: "https://youtu.be/" + idB, IsVideo: true},
			{Name: "t3_3", Title: "not video-like", URL: "https://youtu.be/" + idC},
			{Name: "t3_4", Title: "unresolvable", URL: "https://v.redd.it/abc", IsVideo: true},
			{Name: "t3_5", Title: "short id", URL: "https://youtu.be/abc", HasMedia: true},
		},
	}, nil)

	batch, err := fetcher.FetchBatch(context.Background(), "videos", "t3_prev")
	require.NoError(t, err)

	assert.Equal(t, 5, batch.Entries)
	assert.Equal(t, "t3_5", batch.After)
	assert.False(t, batch.Exhausted())
	require.Len(t, batch.Items, 2)

	assert.Equal(t, domain.QueueItem{
		ID:         idA,
		SourceName: "t3_1",
		Title:      "embedded",
		URL:        "https://www.youtube.com/watch?v=" + idA,
	}, batch.Items[0])
	assert.Equal(t, idB, batch.Items[1].ID)
	assert.Equal(t, "t3_2", batch.Items[1].SourceName)
}

func TestFetchBatch_PropagatesError(t *testing.T) {
	fetcher, source := newTestFetcher(t, 10)
	source.EXPECT().FetchListing(gomock.Any(), "videos", "").Return(nil, errors.New("timeout"))

	_, err := fetcher.FetchBatch(context.Background(), "videos", "")
	assert.EqualError(t, err, "timeout")
}

// Documented quirk: every batch after the first reuses the cursor captured
// when pagination started, even though each page reports a newer "after".
func TestPaginate_ReusesSnapshotCursor(t *testing.T) {
	fetcher, source := newTestFetcher(t, 3)

	gomock.InOrder(
		source.EXPECT().FetchListing(gomock.Any(), "videos", "").
			Return(&domain.ListingPage{After: "t3_p1", Entries: []domain.ListingEntry{videoEntry("t3_p1", idA)}}, nil),
		source.EXPECT().FetchListing(gomock.Any(), "videos", "t3_snapshot").
			Return(&domain.ListingPage{After: "t3_p2", Entries: []domain.ListingEntry{videoEntry("t3_p2", idB)}}, nil),
		source.EXPECT().FetchListing(gomock.Any(), "videos", "t3_snapshot").
			Return(&domain.ListingPage{After: "t3_p3", Entries: []domain.ListingEntry{videoEntry("t3_p3", idC)}}, nil),
	)

	var numbers []int
	var cursors []string
	for batch, err := range fetcher.Paginate(context.Background(), "videos", "t3_snapshot") {
		require.NoError(t, err)
		numbers = append(numbers, batch.Number)
		cursors = append(cursors, batch.Cursor)
	}

	assert.Equal(t, []int{1, 2, 3}, numbers)
	assert.Equal(t, []string{"", "t3_snapshot", "t3_snapshot"}, cursors)
}

func TestPaginate_StopsOnEmptyPage(t *testing.T) {
	fetcher, source := newTestFetcher(t, 10)

	gomock.InOrder(
		source.EXPECT().FetchListing(gomock.Any(), "music", "").
			Return(&domain.ListingPage{Entries: []domain.ListingEntry{videoEntry("t3_a", idA)}}, nil),
		source.EXPECT().FetchListing(gomock.Any(), "music", "").
			Return(&domain.ListingPage{}, nil),
	)

	count := 0
	for _, err := range fetcher.Paginate(context.Background(), "music", "") {
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 2, count)
}

func TestPaginate_StopsWhenConsumerStops(t *testing.T) {
	fetcher, source := newTestFetcher(t, 10)

	source.EXPECT().FetchListing(gomock.Any(), "videos", "").
		Return(&domain.ListingPage{Entries: []domain.ListingEntry{videoEntry("t3_a", idA)}}, nil).
		Times(1)

	for range fetcher.Paginate(context.Background(), "videos", "") {
		break
	}
}

func TestPaginate_YieldsErrorOnce(t *testing.T) {
	fetcher, source := newTestFetcher(t, 10)

	source.EXPECT().FetchListing(gomock.Any(), "videos", "").Return(nil, errors.New("503"))

	var errs []error
	for _, err := range fetcher.Paginate(context.Background(), "videos", "") {
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "fetch batch 1")
	assert.ErrorContains(t, errs[0], "503")
}
