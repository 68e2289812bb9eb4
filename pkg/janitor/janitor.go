package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/logger"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/twofactor"
)

// Job is the periodic work. *twofactor.Manager satisfies it.
type Job interface {
	Cleanup(ctx context.Context) (*twofactor.CleanupResult, error)
}

// Janitor runs a Job on a Schedule until its context is cancelled.
type Janitor struct {
	job        Job
	schedule   Schedule
	timeout    time.Duration
	runOnStart bool
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*Janitor)

func WithLogger(l *slog.Logger) Option {
	return func(j *Janitor) {
		if l != nil {
			j.logger = l
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(j *Janitor) { j.timeout = d }
}

// WithRunOnStart runs the job once before waiting for the first slot.
func WithRunOnStart(v bool) Option {
	return func(j *Janitor) { j.runOnStart = v }
}

func WithClock(now func() time.Time) Option {
	return func(j *Janitor) {
		if now != nil {
			j.now = now
		}
	}
}

func New(job Job, schedule Schedule, opts ...Option) (*Janitor, error) {
	if job == nil {
		return nil, ErrNoJob
	}
	if schedule == nil {
		return nil, ErrInvalidSchedule
	}
	j := &Janitor{
		job:      job,
		schedule: schedule,
		timeout:  5 * time.Minute,
		logger:   logger.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	j.logger = j.logger.With(logger.Component("janitor"))
	return j, nil
}

// FromConfig builds a Janitor from environment settings.
func FromConfig(job Job, cfg Config, opts ...Option) (*Janitor, error) {
	schedule, err := ParseSchedule(cfg.Schedule)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithTimeout(cfg.Timeout), WithRunOnStart(cfg.RunOnStart)}, opts...)
	return New(job, schedule, opts...)
}

// Run blocks until ctx is done and returns ctx.Err(). Failed runs are
// logged and retried at the next slot.
func (j *Janitor) Run(ctx context.Context) error {
	j.logger.InfoContext(ctx, "janitor started", slog.String("schedule", j.schedule.String()))

	if j.runOnStart {
		_, _ = j.RunOnce(ctx)
	}

	for {
		wait := max(j.schedule.Next(j.now()).Sub(j.now()), 0)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			j.logger.InfoContext(ctx, "janitor stopped")
			return ctx.Err()
		case <-timer.C:
			_, _ = j.RunOnce(ctx)
		}
	}
}

// RunOnce runs the job a single time with the configured timeout.
// Each run gets its own correlation id unless ctx already carries one.
func (j *Janitor) RunOnce(ctx context.Context) (*twofactor.CleanupResult, error) {
	if _, ok := logger.CorrelationIDFromContext(ctx); !ok {
		ctx = logger.WithCorrelationID(ctx, uuid.NewString())
	}
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := j.now()
	res, err := j.job.Cleanup(ctx)
	took := logger.Duration(j.now().Sub(start))
	if err != nil {
		j.logger.ErrorContext(ctx, "cleanup failed", took, logger.Error(err))
		return res, err
	}

	j.logger.InfoContext(ctx, "cleanup finished",
		took,
		slog.Int64("codes", res.Codes),
		slog.Int64("devices", res.Devices),
	)
	return res, nil
}
