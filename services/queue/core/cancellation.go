package core

import (
	"context"
	"sync"
)

// Token identifies one processing run. It expires once the run is cancelled.
type Token uint64

// Canceller holds the cancelled flag, the in-flight URL set and the
// cancel func of the current run's context.
type Canceller struct {
	mu        sync.Mutex
	cancelled bool
	epoch     uint64
	inFlight  map[string]struct{}
	cancelRun context.CancelFunc
}

func NewCanceller() *Canceller {
	return &Canceller{inFlight: make(map[string]struct{})}
}

// Arm clears the flag and the in-flight set.
func (c *Canceller) Arm() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelled = false
	c.inFlight = make(map[string]struct{})
}

// Begin arms the controller and derives the context for a new run.
// Cancel aborts that context.
func (c *Canceller) Begin(parent context.Context) (context.Context, Token) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelled = false
	c.inFlight = make(map[string]struct{})

	if c.cancelRun != nil {
		c.cancelRun()
	}
	ctx, cancel := context.WithCancel(parent)
	c.cancelRun = cancel

	return ctx, Token(c.epoch)
}

// Cancel sets the flag, empties the in-flight set and aborts the run context.
// It returns false when the controller was already cancelled.
func (c *Canceller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelled {
		return false
	}

	c.cancelled = true
	c.epoch++
	c.inFlight = make(map[string]struct{})
	if c.cancelRun != nil {
		c.cancelRun()
		c.cancelRun = nil
	}
	return true
}

// Expired reports whether the run holding t must stop. A token stays
// expired after Arm, so a re-armed controller never revives a cancelled run.
func (c *Canceller) Expired(t Token) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cancelled || uint64(t) != c.epoch
}

// TryAcquire adds url to the in-flight set. It returns false if url is already there.
func (c *Canceller) TryAcquire(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[url]; busy {
		return false
	}
	c.inFlight[url] = struct{}{}
	return true
}

func (c *Canceller) Release(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inFlight, url)
}

// InFlight lists the URLs currently being analysed, in no particular order.
func (c *Canceller) InFlight() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, len(c.inFlight))
	for url := range c.inFlight {
		out = append(out, url)
	}
	return out
}
