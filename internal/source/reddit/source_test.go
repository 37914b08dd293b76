package reddit

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hotPage = `{
  "kind": "Listing",
  "data": {
    "after": "t3_bbb",
    "dist": 3,
    "children": [
      {"kind": "t3", "data": {"id": "aaa", "name": "t3_aaa", "title": "A video", "url": "https://youtu.be/dQw4w9WgXcQ", "media": {"type": "youtube.com"}, "is_video": false, "score": 10}},
      {"kind": "t3", "data": {"id": "ccc", "name": "t3_ccc", "title": "Native", "url": "https://v.redd.it/xyz", "media": null, "is_video": true}},
      {"kind": "t3", "data": {"id": "bbb", "name": "t3_bbb", "title": "Text post", "url": "https://www.reddit.com/r/videos/comments/bbb", "media": null, "is_video": false}}
    ]
  }
}`

func newTestSource(baseURL string, attempts int) *Source {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Config{
		BaseURL:        baseURL,
		UserAgent:      "feed_player/test",
		Limit:          25,
		Timeout:        5 * time.Second,
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}, logger)
}

func TestFetchListing_ParsesPage(t *testing.T) {
	var gotPath, gotAfter, gotLimit, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAfter = r.URL.Query().Get("after")
		gotLimit = r.URL.Query().Get("limit")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, hotPage)
	}))
	defer srv.Close()

	page, err := newTestSource(srv.URL, 1).FetchListing(context.Background(), "videos", "t3_prev")
	require.NoError(t, err)

	assert.Equal(t, "/r/videos/hot.json", gotPath)
	assert.Equal(t, "t3_prev", gotAfter)
	assert.Equal(t, "25", gotLimit)
	assert.Equal(t, "feed_player/test", gotUA)

	require.Len(t, page.Entries, 3)
	assert.Equal(t, "t3_bbb", page.After)

	assert.Equal(t, "t3_aaa", page.Entries[0].Name)
	assert.True(t, page.Entries[0].HasMedia)
	assert.False(t, page.Entries[0].IsVideo)
	assert.Equal(t, 10, page.Entries[0].Score)

	assert.True(t, page.Entries[1].IsVideo)
	assert.False(t, page.Entries[1].HasMedia)

	assert.False(t, page.Entries[2].IsVideoLike())
}

func TestFetchListing_OnlyMediaCountsAsMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data": {"children": [
			{"data": {"name": "t3_sec", "url": "https://youtu.be/dQw4w9WgXcQ", "media": null, "secure_media": {"type": "youtube.com"}}}
		]}}`)
	}))
	defer srv.Close()

	page, err := newTestSource(srv.URL, 1).FetchListing(context.Background(), "videos", "")
	require.NoError(t, err)

	require.Len(t, page.Entries, 1)
	assert.False(t, page.Entries[0].HasMedia)
	assert.False(t, page.Entries[0].IsVideoLike())
}

func TestFetchListing_NoCursorOmitsAfter(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"data":{"children":[]}}`)
	}))
	defer srv.Close()

	page, err := newTestSource(srv.URL, 1).FetchListing(context.Background(), "music", "")
	require.NoError(t, err)
	assert.Empty(t, page.Entries)
	assert.NotContains(t, rawQuery, "after")
}

func TestFetchListing_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, hotPage)
	}))
	defer srv.Close()

	page, err := newTestSource(srv.URL, 3).FetchListing(context.Background(), "videos", "")
	require.NoError(t, err)
	assert.Len(t, page.Entries, 3)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchListing_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestSource(srv.URL, 3).FetchListing(context.Background(), "nope", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status: 404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchListing_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestSource(srv.URL, 2).FetchListing(context.Background(), "videos", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch r/videos")
	assert.Equal(t, int32(2), calls.Load())
}
