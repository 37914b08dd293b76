package service

import "feed_player/internal/domain"

// queue is the ordered playback queue. It is not safe for concurrent use;
// Controller guards it.
type queue struct {
	items   []domain.QueueItem
	current int
}

func newQueue() *queue {
	return &queue{current: -1}
}

func (q *queue) reset() {
	q.items = nil
	q.current = -1
}

func (q *queue) len() int {
	return len(q.items)
}

func (q *queue) append(items []domain.QueueItem) {
	q.items = append(q.items, items...)
}

// indexOf returns the first position of id, or -1.
func (q *queue) indexOf(id string) int {
	for i := range q.items {
		if q.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (q *queue) lastSourceName() string {
	if len(q.items) == 0 {
		return ""
	}
	return q.items[len(q.items)-1].SourceName
}

func (q *queue) currentItem() *domain.QueueItem {
	if q.current < 0 || q.current >= len(q.items) {
		return nil
	}
	return &q.items[q.current]
}

// firstUnwatched returns the first unwatched position, falling back to 0.
// It returns -1 on an empty queue.
func (q *queue) firstUnwatched() int {
	if len(q.items) == 0 {
		return -1
	}
	for i := range q.items {
		if !q.items[i].Watched {
			return i
		}
	}
	return 0
}

// apply copies the stored flags onto every item with a matching id and
// returns how many items were touched.
func (q *queue) apply(records map[string]domain.WatchRecord) int {
	restored := 0
	for i := range q.items {
		rec, ok := records[q.items[i].ID]
		if !ok {
			continue
		}
		q.items[i].Watched = rec.Watched
		q.items[i].Finished = rec.Finished
		restored++
	}
	return restored
}

// records returns the watch projection keyed by id in queue order. Duplicate
// ids collapse into one record whose flags are set if any occurrence has them.
func (q *queue) records() []domain.WatchRecord {
	out := make([]domain.WatchRecord, 0, len(q.items))
	seen := make(map[string]int, len(q.items))
	for _, item := range q.items {
		if i, ok := seen[item.ID]; ok {
			out[i].Watched = out[i].Watched || item.Watched
			out[i].Finished = out[i].Finished || item.Finished
			continue
		}
		seen[item.ID] = len(out)
		out = append(out, item.Record())
	}
	return out
}

func (q *queue) clearFlags() {
	for i := range q.items {
		q.items[i].Playing = false
		q.items[i].Watched = false
		q.items[i].Finished = false
	}
	q.current = -1
}

func (q *queue) snapshot() []domain.QueueItem {
	out := make([]domain.QueueItem, len(q.items))
	copy(out, q.items)
	return out
}
