package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
	"github.com/google/uuid"
)

const (
	subscriberBuffer = 64
	persistTimeout   = 5 * time.Second
)

// EntryStore holds one URLEntry per URL, newest first.
// Every mutation is persisted and published to subscribers before it returns.
type EntryStore struct {
	mu      sync.RWMutex
	entries []*models.URLEntry
	byURL   map[string]*models.URLEntry

	persister interfaces.EntryPersister
	logger    interfaces.Logger
	now       func() time.Time

	subsMu  sync.Mutex
	subs    map[int]chan models.EntryEvent
	nextSub int
}

// NewEntryStore loads the persisted collection and returns a ready store.
// A nil persister keeps entries in memory only.
func NewEntryStore(ctx context.Context, persister interfaces.EntryPersister, logger interfaces.Logger) (*EntryStore, error) {
	s := &EntryStore{
		byURL:     make(map[string]*models.URLEntry),
		persister: persister,
		logger:    logger,
		now:       time.Now,
		subs:      make(map[int]chan models.EntryEvent),
	}

	if persister == nil {
		return s, nil
	}

	loaded, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	for i := range loaded {
		e := loaded[i].Clone()
		// first occurrence wins; the slot is newest first
		if _, dup := s.byURL[e.URL]; dup {
			continue
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		s.entries = append(s.entries, &e)
		s.byURL[e.URL] = &e
	}

	logger.Info("Entry store loaded", "entries", len(s.entries))
	return s, nil
}

// Upsert resets the entry for url to Queued, or creates it at the front.
func (s *EntryStore) Upsert(url string) models.URLEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byURL[url]
	if !ok {
		e = s.insertLocked(url)
	}
	s.resetLocked(e)

	out := e.Clone()
	s.commitLocked(models.EventUpserted, out)
	return out
}

// MarkRunning moves the entry for url to Running and keeps everything else.
func (s *EntryStore) MarkRunning(url string) models.URLEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byURL[url]
	if !ok {
		e = s.insertLocked(url)
		s.resetLocked(e)
	}
	e.Status = models.StatusRunning
	e.LastUpdated = s.now()

	out := e.Clone()
	s.commitLocked(models.EventUpserted, out)
	return out
}

// ApplyResult merges a successful analysis into the entry for url.
// Fields the service omitted take their defaults.
func (s *EntryStore) ApplyResult(url string, result *models.AnalysisResult) models.URLEntry {
	if result == nil {
		result = &models.AnalysisResult{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byURL[url]
	if !ok {
		e = s.insertLocked(url)
	}

	e.Title = stringOr(result.PageTitle, models.DefaultDoneTitle)
	e.HTMLVersion = stringOr(result.HTMLVersion, models.DefaultDoneHTMLVersion)
	e.InternalLinks = intOr(result.InternalLinks)
	e.ExternalLinks = intOr(result.ExternalLinks)
	e.BrokenLinks = intOr(result.BrokenLinks)
	e.HasLoginForm = result.HasLoginForm != nil && *result.HasLoginForm

	e.HeadingCounts = make(map[string]int, len(result.HeadingCounts))
	for level, n := range result.HeadingCounts {
		e.HeadingCounts[level] = n
	}
	e.BrokenLinkDetails = append([]models.BrokenLink{}, result.BrokenLinkDetails...)

	pt := 0.0
	if result.ProcessingTime != nil {
		pt = *result.ProcessingTime
	}
	e.ProcessingTime = &pt
	e.ErrorMessage = ""
	e.Status = models.StatusDone
	e.LastUpdated = s.now()

	out := e.Clone()
	s.commitLocked(models.EventUpserted, out)
	return out
}

// ApplyError marks the entry for url as failed. Prior fields are preserved.
func (s *EntryStore) ApplyError(url, message string) models.URLEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byURL[url]
	if !ok {
		e = s.insertLocked(url)
		s.resetLocked(e)
		e.Title = models.DefaultFailedTitle
	}

	e.Status = models.StatusError
	e.ErrorMessage = message
	e.LastUpdated = s.now()

	out := e.Clone()
	s.commitLocked(models.EventUpserted, out)
	return out
}

// Delete removes the entries with the given ids and returns how many went.
func (s *EntryStore) Delete(ids []string) int {
	drop := toSet(ids)

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []models.URLEntry
	kept := s.entries[:0]
	for _, e := range s.entries {
		if _, ok := drop[e.ID]; ok {
			delete(s.byURL, e.URL)
			removed = append(removed, e.Clone())
			continue
		}
		kept = append(kept, e)
	}
	// release pointers beyond the new length
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = kept

	if len(removed) == 0 {
		return 0
	}

	s.persistLocked()
	for _, e := range removed {
		s.publish(models.EntryEvent{Type: models.EventDeleted, Entry: e})
	}
	return len(removed)
}

// MarkQueued resets the matching entries to Queued and returns their URLs in store order.
func (s *EntryStore) MarkQueued(ids []string) []string {
	want := toSet(ids)

	s.mu.Lock()
	defer s.mu.Unlock()

	var urls []string
	var changed []models.URLEntry
	for _, e := range s.entries {
		if _, ok := want[e.ID]; !ok {
			continue
		}
		s.resetLocked(e)
		urls = append(urls, e.URL)
		changed = append(changed, e.Clone())
	}

	if len(changed) == 0 {
		return nil
	}

	s.persistLocked()
	for _, e := range changed {
		s.publish(models.EntryEvent{Type: models.EventUpserted, Entry: e})
	}
	return urls
}

// List returns a copy of every entry, newest first.
func (s *EntryStore) List() []models.URLEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *EntryStore) Get(id string) (models.URLEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return models.URLEntry{}, false
}

func (s *EntryStore) GetByURL(url string) (models.URLEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byURL[url]
	if !ok {
		return models.URLEntry{}, false
	}
	return e.Clone(), true
}

func (s *EntryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Subscribe returns a channel of change events and a func that closes it.
// Slow subscribers miss events rather than block writers.
func (s *EntryStore) Subscribe() (<-chan models.EntryEvent, func()) {
	ch := make(chan models.EntryEvent, subscriberBuffer)

	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(ch)
		})
	}
}

// CheckHealth reports the persister's health.
func (s *EntryStore) CheckHealth(ctx context.Context) error {
	if hc, ok := s.persister.(interfaces.HealthChecker); ok {
		return hc.CheckHealth(ctx)
	}
	return nil
}

func (s *EntryStore) insertLocked(url string) *models.URLEntry {
	e := &models.URLEntry{ID: uuid.NewString(), URL: url}
	s.entries = append([]*models.URLEntry{e}, s.entries...)
	s.byURL[url] = e
	return e
}

func (s *EntryStore) resetLocked(e *models.URLEntry) {
	e.Title = models.PlaceholderTitle
	e.HTMLVersion = models.PlaceholderHTMLVersion
	e.InternalLinks = 0
	e.ExternalLinks = 0
	e.BrokenLinks = 0
	e.HasLoginForm = false
	e.HeadingCounts = map[string]int{}
	e.BrokenLinkDetails = []models.BrokenLink{}
	e.ProcessingTime = nil
	e.ErrorMessage = ""
	e.Status = models.StatusQueued
	e.LastUpdated = s.now()
}

func (s *EntryStore) commitLocked(eventType string, entry models.URLEntry) {
	s.persistLocked()
	s.publish(models.EntryEvent{Type: eventType, Entry: entry})
}

// persistLocked writes the whole collection. Failures are logged; memory stays authoritative.
func (s *EntryStore) persistLocked() {
	if s.persister == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.persister.Save(ctx, s.snapshotLocked()); err != nil {
		s.logger.Error("Failed to persist entries", "error", err, "entries", len(s.entries))
	}
}

func (s *EntryStore) snapshotLocked() []models.URLEntry {
	out := make([]models.URLEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

func (s *EntryStore) publish(ev models.EntryEvent) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func stringOr(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}

func intOr(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
