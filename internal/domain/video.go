package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownMark = errors.New("unknown watch mark")

type QueueItem struct {
	ID         string `json:"id"`          // resolved video id
	SourceName string `json:"source_name"` // listing fullname
	Title      string `json:"title"`
	URL        string `json:"url"`
	Permalink  string `json:"permalink,omitempty"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	Watched    bool   `json:"watched"`
	Finished   bool   `json:"finished"`
	Playing    bool   `json:"playing"`
}

// Record returns the persisted projection of the item.
func (q QueueItem) Record() WatchRecord {
	return WatchRecord{ID: q.ID, Watched: q.Watched, Finished: q.Finished}
}

type WatchRecord struct {
	ID       string `json:"id" db:"id"`
	Watched  bool   `json:"watched" db:"watched"`
	Finished bool   `json:"finished" db:"finished"`
}

// WatchMark is an explicit watch-state override requested by the user.
type WatchMark string

const (
	MarkUnwatched  WatchMark = "UNWATCHED"
	MarkWatched    WatchMark = "WATCHED"
	MarkUnfinished WatchMark = "UNFINISHED"
	MarkFinished   WatchMark = "FINISHED"
)

func ParseWatchMark(s string) (WatchMark, error) {
	m := WatchMark(strings.ToUpper(strings.TrimSpace(s)))
	if _, _, err := m.Flags(); err != nil {
		return "", err
	}
	return m, nil
}

// Flags returns the watched and finished values a mark sets.
// UNFINISHED and WATCHED intentionally produce the same pair.
func (m WatchMark) Flags() (watched, finished bool, err error) {
	switch m {
	case MarkUnwatched:
		return false, false, nil
	case MarkWatched, MarkUnfinished:
		return true, false, nil
	case MarkFinished:
		return true, true, nil
	default:
		return false, false, fmt.Errorf("%w: %q", ErrUnknownMark, string(m))
	}
}

// QueueSnapshot is a point-in-time copy of the playback queue.
type QueueSnapshot struct {
	Feed       string      `json:"feed"`
	Generation uint64      `json:"generation"`
	Current    string      `json:"current,omitempty"`
	Settled    bool        `json:"settled"`
	Items      []QueueItem `json:"items"`
}

// SessionStats holds statistics about one pagination session.
type SessionStats struct {
	Feed       string
	Generation uint64
	Batches    int
	Items      int
	Restored   int
	Selected   string
	Duration   time.Duration
}
