package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/metrics"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
)

// RecentLimit caps QueueStatus.RecentlyCompleted.
const RecentLimit = 10

// Config tunes the pacing of a processing run.
type Config struct {
	// JobDelay is the pause between two jobs.
	JobDelay time.Duration
	// PollInterval bounds how long a cancel can go unnoticed during the pause.
	PollInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		JobDelay:     500 * time.Millisecond,
		PollInterval: 50 * time.Millisecond,
	}
}

// Processor drains the Queue one URL at a time through the Analyzer.
//
// mu serializes every turn: state checks together with the store and queue
// writes they guard. The analysis call and the pause run outside it, so
// Cancel, AddToQueue and Status never wait on the network.
type Processor struct {
	analyzer  interfaces.Analyzer
	store     *EntryStore
	queue     *Queue
	canceller *Canceller
	metrics   interfaces.QueueMetrics
	logger    interfaces.Logger
	cfg       Config

	mu         sync.Mutex
	running    bool
	currentURL string
	closed     bool

	runs    sync.WaitGroup
	baseCtx context.Context
	stop    context.CancelFunc
}

func NewProcessor(analyzer interfaces.Analyzer, store *EntryStore, queueMetrics interfaces.QueueMetrics, logger interfaces.Logger, cfg Config) *Processor {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultConfig().PollInterval
	}
	if cfg.JobDelay < 0 {
		cfg.JobDelay = 0
	}

	ctx, stop := context.WithCancel(context.Background())

	return &Processor{
		analyzer:  analyzer,
		store:     store,
		queue:     NewQueue(),
		canceller: NewCanceller(),
		metrics:   queueMetrics,
		logger:    logger.With("component", "processor"),
		cfg:       cfg,
		baseCtx:   ctx,
		stop:      stop,
	}
}

// Store exposes the entry store for read access.
func (p *Processor) Store() *EntryStore {
	return p.store
}

// Submit validates urls, enqueues them and starts a run if none is active.
// An invalid URL rejects the whole request. Each appended URL gets a Queued
// entry right away. It returns the URLs appended.
func (p *Processor) Submit(urls []string) ([]string, error) {
	normalized, err := NormalizeURLs(urls)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	appended := p.addLocked(normalized)
	p.upsertLocked(appended)
	p.startLocked()
	return appended, nil
}

// AddToQueue enqueues urls without starting a run. Appended URLs get a Queued entry.
func (p *Processor) AddToQueue(urls []string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	appended := p.addLocked(urls)
	p.upsertLocked(appended)
	return appended
}

// Start launches a run over the queue. It returns false if a run is
// already active, the queue is empty or the processor is shut down.
func (p *Processor) Start() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.startLocked()
}

// Cancel stops the active run, aborts its in-flight call and empties the
// queue and batch before returning. A second call is a no-op.
func (p *Processor) Cancel() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.canceller.Cancel() {
		return false
	}

	wasRunning := p.running
	p.queue.Clear()
	p.running = false
	p.currentURL = ""

	p.metrics.RecordCancellation()
	p.metrics.SetQueueDepth(0)
	p.metrics.SetProcessing(false)
	p.logger.Info("Processing cancelled", "was_running", wasRunning)
	return true
}

// Rerun resets the selected entries to Queued and feeds them back into the queue.
// Entries whose URL is being analysed right now are left alone and not returned.
func (p *Processor) Rerun(ids []string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	busy := toSet(p.canceller.InFlight())
	ready := make([]string, 0, len(ids))
	for _, id := range ids {
		if e, ok := p.store.Get(id); ok {
			if _, inFlight := busy[e.URL]; inFlight {
				p.logger.Info("Skipping rerun of URL in flight", "url", e.URL)
				continue
			}
		}
		ready = append(ready, id)
	}

	urls := p.store.MarkQueued(ready)
	if len(urls) == 0 {
		return nil
	}

	p.addLocked(urls)
	p.startLocked()
	return urls
}

// Delete removes entries. Pending URLs stay queued and are recreated when processed.
func (p *Processor) Delete(ids []string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := p.store.Delete(ids)
	p.logger.Info("Entries deleted", "requested", len(ids), "deleted", n)
	return n
}

// Status is a read-only projection of the queue and the run.
func (p *Processor) Status() models.QueueStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	var current *string
	if p.currentURL != "" {
		u := p.currentURL
		current = &u
	}

	return models.QueueStatus{
		Pending:           p.queue.Len(),
		CurrentURL:        current,
		IsProcessing:      p.running,
		TotalCompleted:    p.queue.Completed(),
		RecentlyCompleted: p.queue.RecentlyCompleted(RecentLimit),
		Progress:          p.queue.Progress(),
	}
}

// Wait blocks until every run goroutine has returned, including cancelled ones.
func (p *Processor) Wait() {
	p.runs.Wait()
}

// Shutdown stops the active run and waits for its goroutine or ctx.
func (p *Processor) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	if p.running {
		p.canceller.Cancel()
		p.running = false
		p.currentURL = ""
		p.metrics.SetProcessing(false)
	}
	p.mu.Unlock()

	p.stop()

	done := make(chan struct{})
	go func() {
		p.runs.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Processor) addLocked(urls []string) []string {
	appended := p.queue.Add(urls)
	p.canceller.Arm()
	p.metrics.SetQueueDepth(p.queue.Len())

	p.logger.Info("URLs added to queue",
		"submitted", len(urls),
		"appended", len(appended),
		"pending", p.queue.Len(),
	)
	return appended
}

func (p *Processor) upsertLocked(urls []string) {
	for _, u := range urls {
		p.store.Upsert(u)
	}
}

func (p *Processor) startLocked() bool {
	if p.closed || p.running || p.queue.Len() == 0 {
		return false
	}

	ctx, token := p.canceller.Begin(p.baseCtx)
	p.running = true
	p.metrics.SetProcessing(true)

	p.runs.Add(1)
	go p.run(ctx, token)
	return true
}

func (p *Processor) run(ctx context.Context, token Token) {
	defer p.runs.Done()

	p.logger.Info("Processing run started")

	for pass := 1; ; pass++ {
		work, ok := p.nextPass(token)
		if !ok {
			return
		}

		p.logger.Debug("Processing pass", "pass", pass, "urls", len(work))

		for _, url := range work {
			ran, ok := p.process(ctx, token, url)
			if !ok {
				return
			}
			if ran && !p.pause(ctx, token) {
				return
			}
		}
	}
}

// nextPass snapshots the queue. When it is empty the run ends here, under
// the same lock AddToQueue takes, so no enqueued URL is stranded.
func (p *Processor) nextPass(token Token) ([]string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.canceller.Expired(token) {
		p.logger.Debug("Processing run stopped by cancellation")
		return nil, false
	}

	work := p.queue.Snapshot()
	if len(work) == 0 {
		p.running = false
		p.currentURL = ""
		p.metrics.SetProcessing(false)
		p.logger.Info("Processing run finished", "completed", p.queue.Completed())
		return nil, false
	}
	return work, true
}

// process runs one job. ran reports whether the pause should follow;
// ok is false when the run must stop.
func (p *Processor) process(ctx context.Context, token Token, url string) (ran, ok bool) {
	switch p.claim(token, url) {
	case claimExpired:
		return false, false
	case claimSkipped, claimBusy:
		return false, true
	}

	start := time.Now()
	result, err := p.analyze(ctx, url)
	elapsed := time.Since(start).Seconds()

	p.mu.Lock()
	defer p.mu.Unlock()

	// cancel may have landed while the call was outstanding
	if p.canceller.Expired(token) {
		p.metrics.RecordJob(metrics.OutcomeDiscarded, elapsed)
		p.logger.Debug("Discarding result of cancelled job", "url", url)
		return true, false
	}

	switch {
	case err == nil:
		entry := p.store.ApplyResult(url, result)
		p.queue.RecordCompleted(entry)
		p.metrics.RecordJob(metrics.OutcomeDone, elapsed)
		p.logger.Info("URL analysed", "url", url, "duration", elapsed)

	case isAbort(err):
		p.metrics.RecordJob(metrics.OutcomeAborted, elapsed)
		p.logger.Debug("Analysis aborted", "url", url)

	default:
		entry := p.store.ApplyError(url, err.Error())
		p.queue.RecordCompleted(entry)
		p.metrics.RecordJob(metrics.OutcomeError, elapsed)
		p.logger.Warn("URL analysis failed", "url", url, "error", err)
	}

	p.queue.Remove(url)
	p.canceller.Release(url)
	p.metrics.SetQueueDepth(p.queue.Len())
	return true, true
}

type claimResult int

const (
	claimed claimResult = iota
	claimExpired
	// the URL left the queue since the pass snapshot
	claimSkipped
	// another job holds the URL; it was dropped from the queue
	claimBusy
)

// claim marks url as the current job and moves its entry to Running.
func (p *Processor) claim(token Token, url string) claimResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.canceller.Expired(token) {
		return claimExpired
	}
	if !p.queue.Contains(url) {
		return claimSkipped
	}

	if !p.canceller.TryAcquire(url) {
		p.logger.Warn("URL already in flight, skipping", "url", url)
		p.queue.Remove(url)
		p.metrics.SetQueueDepth(p.queue.Len())
		return claimBusy
	}
	p.currentURL = url

	p.store.Upsert(url)
	p.store.MarkRunning(url)
	return claimed
}

// analyze calls the analyzer and turns a panic into a job failure.
func (p *Processor) analyze(ctx context.Context, url string) (result *models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Analyzer panicked", "url", url, "panic", r)
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	return p.analyzer.AnalyzeURL(ctx, url)
}

// pause waits JobDelay, checking for cancellation every PollInterval.
func (p *Processor) pause(ctx context.Context, token Token) bool {
	if p.cfg.JobDelay <= 0 {
		return !p.canceller.Expired(token)
	}

	timer := time.NewTimer(p.cfg.JobDelay)
	defer timer.Stop()
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
			return !p.canceller.Expired(token)
		case <-ticker.C:
			if p.canceller.Expired(token) {
				return false
			}
		}
	}
}

func isAbort(err error) bool {
	return errors.Is(err, context.Canceled)
}
