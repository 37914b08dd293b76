package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"feed_player/internal/domain"
)

type ListingSource interface {
	FetchListing(ctx context.Context, feed, after string) (*domain.ListingPage, error)
}

// WatchStore persists the watch-record set as a whole.
type WatchStore interface {
	Load(ctx context.Context) ([]domain.WatchRecord, error)
	Save(ctx context.Context, records []domain.WatchRecord) error
}

type Player interface {
	Load(ctx context.Context, videoID string) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Seek(ctx context.Context, seconds float64, relative bool) error
	Volume() int
	SetVolume(ctx context.Context, volume int) error
	CurrentTime() float64
	State() domain.PlayerState
}

type Notifier interface {
	Notify(ctx context.Context, notice domain.Notice) error
}
