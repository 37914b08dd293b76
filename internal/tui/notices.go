package tui

import (
	"context"
	"sync"
	"time"

	"feed_player/internal/domain"
)

// NoticeBoard keeps the most recent notice until its duration runs out.
type NoticeBoard struct {
	mu      sync.Mutex
	notice  domain.Notice
	expires time.Time
	now     func() time.Time
}

func NewNoticeBoard() *NoticeBoard {
	return &NoticeBoard{now: time.Now}
}

func (b *NoticeBoard) Notify(_ context.Context, n domain.Notice) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.notice = n
	b.expires = time.Time{}
	if n.Duration > 0 {
		b.expires = b.now().Add(n.Duration)
	}
	return nil
}

// Current returns the live notice, if any. Notices without a duration stay
// until replaced.
func (b *NoticeBoard) Current() (domain.Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.notice.Message == "" {
		return domain.Notice{}, false
	}
	if !b.expires.IsZero() && b.now().After(b.expires) {
		return domain.Notice{}, false
	}
	return b.notice, true
}
