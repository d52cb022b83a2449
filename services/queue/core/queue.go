package core

import (
	"sort"

	"github.com/RuvinSL/url-analysis-queue/pkg/models"
)

// Queue holds the pending URLs and the progress of the latest batch.
// It is not safe for concurrent use; the Processor serializes access.
type Queue struct {
	pending []string

	batchURLs      map[string]struct{}
	batchCompleted []models.URLEntry
}

func NewQueue() *Queue {
	return &Queue{batchURLs: make(map[string]struct{})}
}

// Add dedupes urls against themselves and the pending list, appends the
// new ones in order and makes the deduped input the current batch.
// It returns the URLs actually appended.
func (q *Queue) Add(urls []string) []string {
	pending := toSet(q.pending)
	seen := make(map[string]struct{}, len(urls))

	batch := make(map[string]struct{}, len(urls))
	var appended []string
	for _, u := range urls {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		batch[u] = struct{}{}

		if _, queued := pending[u]; queued {
			continue
		}
		q.pending = append(q.pending, u)
		appended = append(appended, u)
	}

	q.batchURLs = batch
	q.batchCompleted = nil
	return appended
}

// Progress is the share of the batch that reached a terminal state, 0 to 100.
func (q *Queue) Progress() float64 {
	if len(q.batchURLs) == 0 {
		return 0
	}
	return 100 * float64(len(q.batchCompleted)) / float64(len(q.batchURLs))
}

// InBatch reports whether url belongs to the current batch.
func (q *Queue) InBatch(url string) bool {
	_, ok := q.batchURLs[url]
	return ok
}

// RecordCompleted stores a terminal entry for the batch, replacing any
// earlier copy of the same URL. Entries outside the batch are ignored.
func (q *Queue) RecordCompleted(entry models.URLEntry) bool {
	if !q.InBatch(entry.URL) {
		return false
	}
	for i := range q.batchCompleted {
		if q.batchCompleted[i].URL == entry.URL {
			q.batchCompleted[i] = entry.Clone()
			return true
		}
	}
	q.batchCompleted = append(q.batchCompleted, entry.Clone())
	return true
}

// Completed is the number of batch URLs that reached a terminal state.
func (q *Queue) Completed() int {
	return len(q.batchCompleted)
}

// RecentlyCompleted returns up to n batch entries, latest update first.
func (q *Queue) RecentlyCompleted(n int) []models.URLEntry {
	out := make([]models.URLEntry, len(q.batchCompleted))
	for i, e := range q.batchCompleted {
		out[i] = e.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Snapshot returns a copy of the pending URLs in order.
func (q *Queue) Snapshot() []string {
	return append([]string(nil), q.pending...)
}

// Remove drops every pending occurrence of url.
func (q *Queue) Remove(url string) {
	kept := q.pending[:0]
	for _, u := range q.pending {
		if u != url {
			kept = append(kept, u)
		}
	}
	q.pending = kept
}

func (q *Queue) Contains(url string) bool {
	for _, u := range q.pending {
		if u == url {
			return true
		}
	}
	return false
}

// Clear empties the pending list and the batch.
func (q *Queue) Clear() {
	q.pending = nil
	q.batchURLs = make(map[string]struct{})
	q.batchCompleted = nil
}

func (q *Queue) Len() int {
	return len(q.pending)
}
