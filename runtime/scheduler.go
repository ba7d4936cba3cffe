package runtime

import (
	"context"
	"fmt"
	"liftotron/errors"
	"liftotron/observability"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a named task fired by the scheduler on a standard 5-field cron spec
// evaluated in the scheduler's location. An empty Spec disables the job.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler fires jobs at fixed local times.
// Each run gets its own timeout and its failure is reported, never propagated:
// a failed broadcast must not stop the next reset.
type Scheduler struct {
	log      *slog.Logger
	location *time.Location
	timeout  time.Duration
	jobs     []Job
}

func NewScheduler(log *slog.Logger, location *time.Location, timeout time.Duration, jobs ...Job) *Scheduler {
	return &Scheduler{log: log, location: location, timeout: timeout, jobs: jobs}
}

func (s *Scheduler) Run(ctx context.Context) error {
	logger := cronLogger{log: s.log}
	c := cron.New(
		cron.WithLocation(s.location),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger)),
	)
	for _, job := range s.jobs {
		if job.Spec == "" {
			s.log.Info("Job disabled", "job", job.Name)
			continue
		}
		if _, err := c.AddFunc(job.Spec, func() { _ = s.Execute(ctx, job) }); err != nil {
			return fmt.Errorf("%w: schedule of %s: %v", errors.ErrConfig, job.Name, err)
		}
		s.log.Info("Job scheduled", "job", job.Name, "spec", job.Spec, "location", s.location.String())
	}

	c.Start()
	<-ctx.Done()
	// Wait for running jobs before returning
	<-c.Stop().Done()
	return ctx.Err()
}

// Execute runs one job under the scheduler timeout and reports its outcome.
func (s *Scheduler) Execute(ctx context.Context, job Job) error {
	jobCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := job.Run(jobCtx)
	observability.JobDuration.WithLabelValues(job.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		observability.JobRuns.WithLabelValues(job.Name, observability.StatusError).Inc()
		errors.Report(s.log, err, "job", job.Name)
		return err
	}
	observability.JobRuns.WithLabelValues(job.Name, observability.StatusOK).Inc()
	s.log.Debug("Job done", "job", job.Name, "duration", time.Since(start))
	return nil
}

// cronLogger routes cron's own logs to slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
