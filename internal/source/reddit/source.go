package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"

	"feed_player/internal/domain"
)

const (
	SourceID   = "reddit"
	SourceName = "Reddit"
)

// Config holds reddit source configuration.
type Config struct {
	BaseURL        string
	UserAgent      string
	Limit          int
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source implements service.ListingSource for the reddit hot listing.
type Source struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	limit          int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// New creates a new reddit source.
func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		userAgent:      cfg.UserAgent,
		limit:          cfg.Limit,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("source", SourceID),
	}
}

// Name returns human-readable name.
func (s *Source) Name() string {
	return SourceName
}

// FetchListing fetches one page of the hot listing of a subreddit.
// An empty after requests the first page.
func (s *Source) FetchListing(ctx context.Context, feed, after string) (*domain.ListingPage, error) {
	listing, err := s.fetchPage(ctx, s.pageURL(feed, after))
	if err != nil {
		return nil, fmt.Errorf("fetch r/%s: %w", feed, err)
	}

	page := s.transform(listing)

	s.logger.Debug("fetched listing",
		"feed", feed,
		"after", after,
		"entries", len(page.Entries),
		"next", page.After,
	)

	return page, nil
}

func (s *Source) pageURL(feed, after string) string {
	q := url.Values{}
	if after != "" {
		q.Set("after", after)
	}
	if s.limit > 0 {
		q.Set("limit", strconv.Itoa(s.limit))
	}
	u := fmt.Sprintf("%s/r/%s/hot.json", s.baseURL, url.PathEscape(feed))
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (s *Source) fetchPage(ctx context.Context, url string) (*Listing, error) {
	attempts := s.maxAttempts
	if attempts < 1 {
		attempts = 1
	}

	return retry.DoWithData(
		func() (*Listing, error) {
			return s.doRequest(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(s.initialBackoff),
		retry.MaxDelay(s.maxBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("request failed, retrying",
				"attempt", n+1,
				"error", err,
			)
		}),
	)
}

func (s *Source) doRequest(ctx context.Context, url string) (*Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status: %d", resp.StatusCode)
		// 4xx will not get better on retry, except rate limiting
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, retry.Unrecoverable(err)
		}
		return nil, err
	}

	var listing Listing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("decode response: %w", err))
	}

	return &listing, nil
}

func (s *Source) transform(listing *Listing) *domain.ListingPage {
	page := &domain.ListingPage{
		Entries: make([]domain.ListingEntry, 0, len(listing.Data.Children)),
		After:   listing.Data.After,
	}

	for _, child := range listing.Data.Children {
		p := child.Data
		page.Entries = append(page.Entries, domain.ListingEntry{
			Name:      p.Name,
			Title:     p.Title,
			URL:       p.URL,
			Subreddit: p.Subreddit,
			Permalink: p.Permalink,
			Author:    p.Author,
			Thumbnail: p.Thumbnail,
			Score:     p.Score,
			IsVideo:   p.IsVideo,
			HasMedia:  p.hasMedia(),
		})
	}

	return page
}
