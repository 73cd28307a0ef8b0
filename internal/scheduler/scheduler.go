// Package scheduler drives watch mode: periodic suite runs on a cron
// schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job represents a scheduled task
type Job func(ctx context.Context) error

// Scheduler manages periodic suite runs
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
	jobs map[string]cron.EntryID
}

// New creates a new scheduler
func New(log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log,
		jobs: make(map[string]cron.EntryID),
	}
}

// AddJob adds a job with a cron schedule
// schedule format: "0 */2 * * *" (every two hours)
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	entryID, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		s.log.Info("starting job", zap.String("job", name))
		start := time.Now()

		if err := job(ctx); err != nil {
			s.log.Error("job failed", zap.String("job", name), zap.Error(err))
		} else {
			s.log.Info("job completed", zap.String("job", name), zap.Duration("elapsed", time.Since(start)))
		}
	})

	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	s.log.Info("added job", zap.String("job", name), zap.String("schedule", schedule))

	return nil
}

// AddSuiteJob schedules the suite to run every intervalHours hours
func (s *Scheduler) AddSuiteJob(intervalHours int, job Job) error {
	if intervalHours < 1 {
		intervalHours = 1
	}
	schedule := fmt.Sprintf("0 */%d * * *", intervalHours)
	return s.AddJob("suite", schedule, job)
}

// RunNow triggers a scheduled job immediately, outside its schedule
func (s *Scheduler) RunNow(name string) error {
	entryID, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("no such job: %s", name)
	}
	s.cron.Entry(entryID).Job.Run()
	return nil
}

// RemoveJob removes a scheduled job
func (s *Scheduler) RemoveJob(name string) {
	if entryID, ok := s.jobs[name]; ok {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
		s.log.Info("removed job", zap.String("job", name))
	}
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.log.Info("starting scheduler")
	s.cron.Start()
}

// Stop halts the scheduler
func (s *Scheduler) Stop() context.Context {
	s.log.Info("stopping scheduler")
	return s.cron.Stop()
}

// ListJobs returns info about scheduled jobs
func (s *Scheduler) ListJobs() []JobInfo {
	entries := s.cron.Entries()
	infos := make([]JobInfo, 0, len(entries))

	for name, entryID := range s.jobs {
		for _, entry := range entries {
			if entry.ID == entryID {
				infos = append(infos, JobInfo{
					Name:    name,
					NextRun: entry.Next,
					LastRun: entry.Prev,
				})
				break
			}
		}
	}

	return infos
}

// JobInfo contains information about a scheduled job
type JobInfo struct {
	Name    string
	NextRun time.Time
	LastRun time.Time
}
