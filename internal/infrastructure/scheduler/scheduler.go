// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Task is one unit of scheduled work
type Task func(ctx context.Context) error

// Scheduler wraps a seconds-resolution cron runner
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	jobs    map[string]cron.EntryID
}

// New creates a scheduler evaluating schedules in loc. Each run gets a
// context that expires after timeout.
func New(loc *time.Location, timeout time.Duration) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		timeout: timeout,
		jobs:    map[string]cron.EntryID{},
	}
}

// Add registers task under name. Format: "0 0 9 * * *" runs at 09:00:00
// every day.
func (s *Scheduler) Add(name, schedule string, task Task) error {
	id, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		started := time.Now()
		if err := task(ctx); err != nil {
			log.Printf("[scheduler] %s failed after %v: %v", name, time.Since(started), err)
			return
		}
		log.Printf("[scheduler] %s finished in %v", name, time.Since(started))
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, schedule, err)
	}
	s.jobs[name] = id
	return nil
}

// Next reports when the named job runs next
func (s *Scheduler) Next(name string) (time.Time, bool) {
	id, ok := s.jobs[name]
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Next, true
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("[scheduler] started with %d job(s)", len(s.jobs))
}

// Stop stops scheduling and waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] stopped")
}
