package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"feed_player/internal/config"
	"feed_player/internal/domain"
)

var (
	ErrNotFound     = errors.New("video not found in queue")
	ErrStaleSession = errors.New("pagination session superseded")
)

// Controller owns the playback queue and the current selection. Every
// mutation goes through its methods and is serialized by mu.
type Controller struct {
	fetcher  *Fetcher
	store    WatchStore
	player   Player
	notifier Notifier
	logger   *slog.Logger
	config   config.FeedConfig

	mu         sync.Mutex
	queue      *queue
	feed       string
	generation uint64
	settled    bool
	cancel     context.CancelFunc
}

func NewController(
	fetcher *Fetcher,
	store WatchStore,
	player Player,
	notifier Notifier,
	logger *slog.Logger,
	cfg config.FeedConfig,
) *Controller {
	return &Controller{
		fetcher:  fetcher,
		store:    store,
		player:   player,
		notifier: notifier,
		logger:   logger.With("component", "controller"),
		config:   cfg,
		queue:    newQueue(),
	}
}

// ChangeFeed resets the queue and runs a pagination session for feed. Once
// pagination settles, stored watch-state is restored and the first unwatched
// item starts playing. A session superseded by a later ChangeFeed returns
// ErrStaleSession and leaves the newer queue untouched.
func (c *Controller) ChangeFeed(ctx context.Context, feed string) (*domain.SessionStats, error) {
	startTime := time.Now()

	sessionCtx, gen, cursor := c.beginSession(ctx, feed)
	defer c.endSession(gen)

	c.logger.Info("starting session",
		"feed", feed,
		"generation", gen,
		"max_items", c.config.MaxItems,
		"max_batches", c.config.MaxBatches,
	)

	snapshot, err := c.store.Load(sessionCtx)
	if err != nil {
		if c.isStale(gen) {
			return nil, ErrStaleSession
		}
		return nil, fmt.Errorf("load watch records: %w", err)
	}

	stats := &domain.SessionStats{Feed: feed, Generation: gen}

	for batch, err := range c.fetcher.Paginate(sessionCtx, feed, cursor) {
		if err != nil {
			restored, ok := c.restore(gen, snapshot)
			if !ok {
				return stats, ErrStaleSession
			}
			stats.Restored = restored
			return stats, fmt.Errorf("paginate r/%s: %w", feed, err)
		}
		stats.Batches++

		size, ok := c.merge(gen, batch.Items)
		if !ok {
			return stats, ErrStaleSession
		}
		if size >= c.config.MaxItems {
			break
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return stats, ErrStaleSession
	}

	stats.Items = c.queue.len()
	stats.Restored = c.queue.apply(indexRecords(snapshot))
	c.settled = true

	var selectErr error
	if idx := c.queue.firstUnwatched(); idx >= 0 {
		stats.Selected = c.queue.items[idx].ID
		selectErr = c.selectIndex(ctx, idx, 0)
	}

	stats.Duration = time.Since(startTime)

	c.logger.Info("session completed",
		"feed", feed,
		"generation", gen,
		"batches", stats.Batches,
		"items", stats.Items,
		"restored", stats.Restored,
		"selected", stats.Selected,
		"duration", stats.Duration,
	)

	return stats, selectErr
}

func (c *Controller) beginSession(ctx context.Context, feed string) (context.Context, uint64, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	c.generation++
	c.feed = feed
	c.settled = false
	c.queue.reset()

	sessionCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	// Later batches reuse the queue tail as it was when the session began.
	return sessionCtx, c.generation, c.queue.lastSourceName()
}

func (c *Controller) endSession(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen == c.generation && c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) isStale(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen != c.generation
}

// merge appends items if gen is still current and returns the queue length.
func (c *Controller) merge(gen uint64, items []domain.QueueItem) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("discarding stale batch", "generation", gen, "current", c.generation)
		return 0, false
	}
	c.queue.append(items)
	return c.queue.len(), true
}

// restore copies stored flags onto the items merged so far, without selecting
// anything, so a session cut short still saves the history it loaded.
func (c *Controller) restore(gen uint64, snapshot []domain.WatchRecord) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return 0, false
	}
	return c.queue.apply(indexRecords(snapshot)), true
}

// LoadMore appends one batch fetched after the last queued item. It returns
// the number of items added.
func (c *Controller) LoadMore(ctx context.Context) (int, error) {
	c.mu.Lock()
	gen, feed, cursor := c.generation, c.feed, c.queue.lastSourceName()
	empty := c.queue.len() == 0
	c.mu.Unlock()

	if empty {
		return 0, nil
	}

	c.logger.Info("loading more", "feed", feed, "after", cursor)

	batch, err := c.fetcher.FetchBatch(ctx, feed, cursor)
	if err != nil {
		return 0, fmt.Errorf("load more r/%s: %w", feed, err)
	}
	if _, ok := c.merge(gen, batch.Items); !ok {
		return 0, ErrStaleSession
	}
	return len(batch.Items), nil
}

// Select starts playback of the first queued item with id.
func (c *Controller) Select(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.queue.indexOf(id)
	if idx < 0 {
		c.notify(ctx, domain.Notice{
			Level:   domain.NoticeError,
			Message: fmt.Sprintf("Failed to select video %s", id),
			VideoID: id,
		})
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.selectIndex(ctx, idx, 0)
}

// SelectNext plays the item after the current one. It is a no-op at the end
// of the queue or when nothing is selected.
func (c *Controller) SelectNext(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.stepLocked(ctx, 1, 0)
	return err
}

// SelectPrevious plays the item before the current one. It is a no-op at the
// start of the queue or when nothing is selected.
func (c *Controller) SelectPrevious(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.stepLocked(ctx, -1, 0)
	return err
}

// OnPlayerState reacts to player notifications. Only ENDED changes state:
// the current item is marked finished and playback advances.
func (c *Controller) OnPlayerState(ctx context.Context, state domain.PlayerState) error {
	c.logger.Debug("player state changed", "state", state)

	if state != domain.PlayerEnded {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.queue.currentItem()
	if cur == nil {
		return nil
	}
	cur.Finished = true

	moved, err := c.stepLocked(ctx, 1, c.config.SettleDelay)
	if !moved {
		return c.persistLocked(ctx)
	}
	return err
}

// Mark overrides the watch flags of every queued item with id and persists.
func (c *Controller) Mark(ctx context.Context, id string, mark domain.WatchMark) error {
	watched, finished, err := mark.Flags()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	for i := range c.queue.items {
		if c.queue.items[i].ID != id {
			continue
		}
		c.queue.items[i].Watched = watched
		c.queue.items[i].Finished = finished
		found = true
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return c.persistLocked(ctx)
}

// SaveAll persists the watch projection of the whole queue.
func (c *Controller) SaveAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.persistLocked(ctx)
}

// Checkpoint is SaveAll for periodic callers: it skips while a session is
// still paginating or the queue is empty.
func (c *Controller) Checkpoint(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.settled || c.queue.len() == 0 {
		return nil
	}
	return c.persistLocked(ctx)
}

// ClearHistory resets every item's flags and empties the store.
func (c *Controller) ClearHistory(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue.clearFlags()

	if err := c.store.Save(ctx, []domain.WatchRecord{}); err != nil {
		return fmt.Errorf("clear watch records: %w", err)
	}

	c.logger.Info("watch history cleared", "items", c.queue.len())
	return nil
}

// Snapshot returns a copy of the queue state.
func (c *Controller) Snapshot() domain.QueueSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := domain.QueueSnapshot{
		Feed:       c.feed,
		Generation: c.generation,
		Settled:    c.settled,
		Items:      c.queue.snapshot(),
	}
	if cur := c.queue.currentItem(); cur != nil {
		snap.Current = cur.ID
	}
	return snap
}

func (c *Controller) stepLocked(ctx context.Context, delta int, delay time.Duration) (bool, error) {
	if c.queue.current < 0 {
		return false, nil
	}
	idx := c.queue.current + delta
	if idx < 0 || idx >= c.queue.len() {
		return false, nil
	}
	return true, c.selectIndex(ctx, idx, delay)
}

// selectIndex must be called with mu held.
func (c *Controller) selectIndex(ctx context.Context, idx int, delay time.Duration) error {
	if prev := c.queue.currentItem(); prev != nil && c.queue.current != idx {
		prev.Playing = false
		prev.Watched = true
	}

	target := &c.queue.items[idx]
	target.Playing = true
	target.Watched = true
	c.queue.current = idx

	var errs []error

	if err := c.startPlayback(ctx, target.ID, delay); err != nil {
		c.logger.Warn("failed to start playback", "video_id", target.ID, "error", err)
		errs = append(errs, fmt.Errorf("start playback: %w", err))
	}

	if err := c.persistLocked(ctx); err != nil {
		errs = append(errs, err)
	}

	c.notify(ctx, domain.Notice{
		Level:    domain.NoticeInfo,
		Message:  fmt.Sprintf("Playing - %s", target.Title),
		VideoID:  target.ID,
		Duration: c.config.NoticeDuration,
	})

	return errors.Join(errs...)
}

func (c *Controller) startPlayback(ctx context.Context, id string, delay time.Duration) error {
	if err := c.player.Load(ctx, id); err != nil {
		return err
	}
	if delay <= 0 {
		return c.player.Play(ctx)
	}

	playCtx := context.WithoutCancel(ctx)
	time.AfterFunc(delay, func() {
		if err := c.player.Play(playCtx); err != nil {
			c.logger.Warn("delayed play failed", "video_id", id, "error", err)
		}
	})
	return nil
}

func (c *Controller) persistLocked(ctx context.Context) error {
	records := c.queue.records()
	if err := c.store.Save(ctx, records); err != nil {
		c.logger.Error("failed to save watch records", "count", len(records), "error", err)
		return fmt.Errorf("save watch records: %w", err)
	}
	return nil
}

func (c *Controller) notify(ctx context.Context, n domain.Notice) {
	c.logger.Info("notice", "level", n.Level, "message", n.Message, "video_id", n.VideoID)

	if c.notifier == nil {
		return
	}
	if err := c.notifier.Notify(ctx, n); err != nil {
		c.logger.Warn("failed to send notice", "error", err)
	}
}

func indexRecords(records []domain.WatchRecord) map[string]domain.WatchRecord {
	m := make(map[string]domain.WatchRecord, len(records))
	for _, r := range records {
		m[r.ID] = r
	}
	return m
}
