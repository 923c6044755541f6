package weather

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Options tunes the Coordinator.
type Options struct {
	// UnavailableAfter is the number of consecutive failed cycles after
	// which a source is surfaced as unavailable (not merely stale).
	UnavailableAfter int

	// CollectTimeout bounds one source's fetch+parse+normalize pipeline.
	CollectTimeout time.Duration

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// Coordinator owns the poll schedule for every source, fans out the due
// pipelines concurrently, merges successful deltas with the previous
// snapshot, and publishes the result in one atomic replace.
type Coordinator struct {
	store   Store
	sources []Source

	unavailableAfter int
	collectTimeout   time.Duration
	now              func() time.Time

	// mergeMu serializes merge+publish so only one is in flight at a time.
	mergeMu sync.Mutex

	schedMu sync.Mutex
	sched   map[SourceID]*sourceSchedule
}

type sourceSchedule struct {
	nextDue  time.Time
	inFlight bool
}

// NewCoordinator creates a Coordinator over the given store and sources.
func NewCoordinator(store Store, sources []Source, opts Options) *Coordinator {
	if opts.UnavailableAfter <= 0 {
		opts.UnavailableAfter = 3
	}
	if opts.CollectTimeout <= 0 {
		opts.CollectTimeout = 30 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	sched := make(map[SourceID]*sourceSchedule, len(sources))
	for _, s := range sources {
		sched[s.ID()] = &sourceSchedule{}
	}

	return &Coordinator{
		store:            store,
		sources:          sources,
		unavailableAfter: opts.UnavailableAfter,
		collectTimeout:   opts.CollectTimeout,
		now:              opts.Now,
		sched:            sched,
	}
}

// SourceIDs returns the configured source IDs in registration order.
func (c *Coordinator) SourceIDs() []SourceID {
	ids := make([]SourceID, 0, len(c.sources))
	for _, s := range c.sources {
		ids = append(ids, s.ID())
	}
	return ids
}

type outcome struct {
	id    SourceID
	delta Delta
	err   error
}

// RunCycle collects every due source concurrently, then merges all results
// into one new snapshot and publishes it. A source whose previous pipeline
// is still in flight is skipped this cycle, never queued.
func (c *Coordinator) RunCycle(ctx context.Context) {
	now := c.now()

	var due []Source
	c.schedMu.Lock()
	for _, s := range c.sources {
		st := c.sched[s.ID()]
		if st.inFlight || now.Before(st.nextDue) {
			continue
		}
		st.inFlight = true
		st.nextDue = now.Add(s.Interval())
		due = append(due, s)
	}
	c.schedMu.Unlock()

	if len(due) == 0 {
		return
	}

	results := make([]outcome, len(due))
	var wg sync.WaitGroup
	for i, s := range due {
		wg.Add(1)
		go func(i int, s Source) {
			defer wg.Done()

			cctx, cancel := context.WithTimeout(ctx, c.collectTimeout)
			defer cancel()

			delta, err := s.Collect(cctx)
			if err != nil {
				log.Printf("coordinator: source %s cycle failed: %v", s.ID(), err)
			}
			results[i] = outcome{id: s.ID(), delta: delta, err: err}
		}(i, s)
	}
	wg.Wait()

	c.merge(results)

	c.schedMu.Lock()
	for _, s := range due {
		c.sched[s.ID()].inFlight = false
	}
	c.schedMu.Unlock()
}

// merge applies this cycle's outcomes to a clone of the current snapshot
// and publishes it. Sources that failed contribute no delta: their previous
// data persists, tagged stale.
func (c *Coordinator) merge(results []outcome) {
	c.mergeMu.Lock()
	defer c.mergeMu.Unlock()

	now := c.now()
	next := c.store.Current().clone()

	for _, r := range results {
		st := next.SourceStates[r.id]
		if r.err != nil {
			st.LastError = r.err.Error()
			st.ConsecutiveFailures++
			// First failure after a success marks the data stale;
			// repeated failures keep the original staleness time.
			if st.StaleSinceAt.IsZero() && !st.LastSuccessAt.IsZero() {
				st.StaleSinceAt = now
			}
			next.SourceStates[r.id] = st
			continue
		}

		next.apply(r.delta)
		st.LastSuccessAt = now
		st.LastError = ""
		st.StaleSinceAt = time.Time{}
		st.ConsecutiveFailures = 0
		next.SourceStates[r.id] = st
	}

	next.NextTide = ComputeNextTide(next.TideDays, now)
	next.ID = uuid.NewString()
	next.Version++
	next.PublishedAt = now

	c.store.Publish(next)
}

// GetSnapshot returns the latest published snapshot. Consumers always get a
// valid, possibly stale, snapshot; never an error value.
func (c *Coordinator) GetSnapshot() Snapshot {
	return c.store.Current()
}

// SourceHealth is the per-source health view exposed to consumers.
type SourceHealth struct {
	SourceID      SourceID  `json:"sourceId"`
	LastSuccessAt time.Time `json:"lastSuccessAt"`
	LastError     string    `json:"lastError,omitempty"`
	IsStale       bool      `json:"isStale"`
	IsUnavailable bool      `json:"isUnavailable"`
}

// GetSourceHealth reports the health of one source; ok is false for a
// source that was never configured.
func (c *Coordinator) GetSourceHealth(id SourceID) (SourceHealth, bool) {
	st, ok := c.store.Current().SourceStates[id]
	if !ok {
		return SourceHealth{}, false
	}
	return SourceHealth{
		SourceID:      id,
		LastSuccessAt: st.LastSuccessAt,
		LastError:     st.LastError,
		IsStale:       !st.StaleSinceAt.IsZero(),
		IsUnavailable: st.ConsecutiveFailures >= c.unavailableAfter,
	}, true
}
