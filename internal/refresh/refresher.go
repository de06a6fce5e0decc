// Package refresh periodically re-runs the catalog fetch in the background.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// TaskFunc is the function signature for the refresh task.
type TaskFunc func(ctx context.Context) error

// ErrAlreadyRunning is returned by RunNow while a refresh is in flight,
// whether it was started manually or by the schedule.
var ErrAlreadyRunning = errors.New("refresh already running")

// Status describes the refresher for the status line.
type Status struct {
	LastRun  time.Time
	LastErr  error
	NextRun  time.Time
	Running  bool
	Interval time.Duration
}

// Refresher runs a task on a fixed interval using a gocron scheduler and
// on demand through RunNow. Runs never overlap.
type Refresher struct {
	gocron   gocron.Scheduler
	job      gocron.Job
	task     TaskFunc
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	lastRun time.Time
	lastErr error
}

// New creates a refresher that calls task every interval. A zero interval
// schedules nothing and leaves only RunNow. Each run gets a context bounded
// by timeout when timeout > 0.
func New(interval, timeout time.Duration, task TaskFunc, logger *slog.Logger) (*Refresher, error) {
	if interval < 0 {
		return nil, fmt.Errorf("refresh interval must not be negative, got %s", interval)
	}
	if logger == nil {
		logger = slog.Default()
	}

	gs, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	r := &Refresher{
		gocron:   gs,
		task:     task,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "refresh"),
	}
	if interval == 0 {
		return r, nil
	}

	job, err := gs.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(r.execute),
		gocron.WithName("catalog-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = gs.Shutdown()
		return nil, fmt.Errorf("failed to create refresh job: %w", err)
	}
	r.job = job

	return r, nil
}

// execute is the scheduled entry point. A tick that lands on a manual run
// is skipped.
func (r *Refresher) execute() {
	_ = r.run(context.Background())
}

// run runs the task once unless a run is already in progress
func (r *Refresher) run(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		r.logger.Debug("refresh skipped, already running")
		return ErrAlreadyRunning
	}
	r.running = true
	r.mu.Unlock()

	start := time.Now()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	err := r.task(ctx)

	r.mu.Lock()
	r.running = false
	r.lastRun = start
	r.lastErr = err
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("refresh failed", "error", err, "duration", time.Since(start))
		return err
	}
	r.logger.Debug("refresh completed", "duration", time.Since(start))
	return nil
}

// Start starts the scheduler. The first scheduled run happens one interval
// from now.
func (r *Refresher) Start() {
	r.logger.Info("starting refresher", "interval", r.interval)
	r.gocron.Start()
}

// Stop stops the scheduler and waits for a running task to finish.
func (r *Refresher) Stop() error {
	r.logger.Info("stopping refresher")
	return r.gocron.Shutdown()
}

// RunNow runs the task on the calling goroutine and returns its error, or
// ErrAlreadyRunning without running it when another run is in flight.
func (r *Refresher) RunNow(ctx context.Context) error {
	return r.run(ctx)
}

// Status returns the refresher's current state.
func (r *Refresher) Status() Status {
	r.mu.Lock()
	st := Status{
		LastRun:  r.lastRun,
		LastErr:  r.lastErr,
		Running:  r.running,
		Interval: r.interval,
	}
	r.mu.Unlock()

	if r.job != nil {
		if next, err := r.job.NextRun(); err == nil {
			st.NextRun = next
		}
	}
	return st
}
