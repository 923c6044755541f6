package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/jerseymet/weather-aggregation/internal/weather"
)

// Scheduler drives the Coordinator on a fixed base tick. Per-source
// intervals live inside the Coordinator; the tick only decides how often
// due sources are checked. Singleton mode coalesces a tick that fires while
// the previous one is still running instead of queueing it.
type Scheduler struct {
	scheduler *gocron.Scheduler
	coord     *weather.Coordinator
	tick      time.Duration
	timeout   time.Duration
}

// New creates a Scheduler with the given base tick. timeout bounds one full
// cycle of the coordinator.
func New(coord *weather.Coordinator, tick, timeout time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		coord:     coord,
		tick:      tick,
		timeout:   timeout,
	}
}

// Start schedules the periodic cycle and starts the underlying scheduler.
// The first cycle runs immediately so consumers get data without waiting a
// full tick.
func (s *Scheduler) Start() error {
	seconds := int(s.tick.Seconds())
	if seconds <= 0 {
		seconds = 30
	}

	_, err := s.scheduler.Every(seconds).Seconds().
		SingletonMode().
		StartImmediately().
		Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()
			s.coord.RunCycle(ctx)
		})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("scheduler: running every %ds", seconds)
	return nil
}

// Stop stops the scheduler. A cycle already running finishes on its own
// timeout; no new cycles start.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
