// Package scheduler runs named recurring jobs on a cron runner.
package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Aidan-usc/Game-Line/internal/logger"
)

var log = logger.Named("scheduler")

// cronLogger routes cron's own messages to the debug log.
type cronLogger struct{}

func (cronLogger) Printf(format string, args ...interface{}) { log.Debug(format, args...) }

// Scheduler registers each job name at most once. A tick that fires while the
// previous run of the same job is still going is skipped.
type Scheduler struct {
	mu   sync.Mutex
	cron *cron.Cron
	jobs map[string]cron.EntryID
}

// New creates a stopped scheduler.
func New() *Scheduler {
	l := cron.PrintfLogger(cronLogger{})
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		jobs: make(map[string]cron.EntryID),
	}
}

// Every runs fn every interval under name. Intervals are rounded down to whole
// seconds, with a one second minimum. It reports false and changes nothing if
// name is already registered.
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[name]; ok {
		return false
	}
	s.jobs[name] = s.cron.Schedule(cron.Every(interval), cron.FuncJob(fn))
	log.Debug("registered %s every %v", name, interval)
	return true
}

// Cancel removes the job registered under name. It reports whether one existed.
func (s *Scheduler) Cancel(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.jobs[name]
	if !ok {
		return false
	}
	s.cron.Remove(id)
	delete(s.jobs, name)
	log.Debug("cancelled %s", name)
	return true
}

// Has reports whether name is registered.
func (s *Scheduler) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[name]
	return ok
}

// Names returns the registered job names, sorted.
func (s *Scheduler) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.jobs))
	for n := range s.jobs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Start begins running jobs in the background. Starting twice is a no-op.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs or ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
