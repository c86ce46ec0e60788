package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-library-sync/internal/config"
	"github.com/MKhiriev/go-library-sync/internal/logger"
	"github.com/MKhiriev/go-library-sync/internal/syncer"
	"github.com/MKhiriev/go-library-sync/models"
)

// SyncScheduler starts periodic syncs on the engine and re-arms narrower
// attempts when a finished sync reports a retry directive. The scheduler is
// idle until Start is called.
type SyncScheduler struct {
	engine *syncer.Engine
	cfg    config.ClientSync
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncScheduler creates a scheduler that triggers a normal all-libraries
// sync every cfg.Interval and consumes the engine's reports.
func NewSyncScheduler(engine *syncer.Engine, cfg config.ClientSync, log *logger.Logger) *SyncScheduler {
	return &SyncScheduler{
		engine: engine,
		cfg:    cfg,
		logger: log,
	}
}

// Run implements [Worker]. It starts the scheduler with a background context;
// use Start directly when the caller owns a lifecycle context.
func (s *SyncScheduler) Run() {
	s.Start(context.Background())
}

// Start stops any previously running schedule, then launches a background
// goroutine that starts a sync every interval and handles sync reports. The
// goroutine exits when ctx is cancelled or Stop is called.
func (s *SyncScheduler) Start(ctx context.Context) {
	s.Stop()

	s.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		t := time.NewTicker(s.cfg.Interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				s.engine.Start(jobCtx, models.NormalSync, models.AllLibraries(), 0)
			case report := <-s.engine.Reports():
				s.handleReport(jobCtx, report)
			}
		}
	}()
}

// Stop cancels the schedule and blocks until the background goroutine and
// any pending retry timers have exited. Safe to call when not running.
func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *SyncScheduler) handleReport(ctx context.Context, report syncer.Report) {
	if report.Fatal != nil {
		s.logger.Error().
			Str("func", "SyncScheduler.handleReport").
			Str("kind", string(report.Fatal.Kind)).
			Msg("sync aborted")
	}
	for _, syncErr := range report.Errors {
		s.logger.Warn().
			Str("func", "SyncScheduler.handleReport").
			Err(syncErr).
			Msg("sync finished with error")
	}

	if report.Retry == nil {
		return
	}
	s.scheduleRetry(ctx, *report.Retry)
}

// scheduleRetry waits out the backoff delay of the directive's attempt, then
// starts the narrower sync. The wait never blocks the scheduler loop.
func (s *SyncScheduler) scheduleRetry(ctx context.Context, directive models.RetryDirective) {
	delay := s.retryDelay(directive.Attempt)
	s.logger.Info().
		Str("func", "SyncScheduler.scheduleRetry").
		Int("attempt", directive.Attempt).
		Dur("delay", delay).
		Msg("scheduling sync retry")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t := time.NewTimer(delay)
		defer t.Stop()

		select {
		case <-ctx.Done():
		case <-t.C:
			s.engine.StartRetry(ctx, directive)
		}
	}()
}

// retryDelay resolves the backoff before attempt n: RetryDelays[n-1], clamped
// to the last entry of the schedule.
func (s *SyncScheduler) retryDelay(attempt int) time.Duration {
	if len(s.cfg.RetryDelays) == 0 {
		return 0
	}

	idx := attempt - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.cfg.RetryDelays) {
		idx = len(s.cfg.RetryDelays) - 1
	}
	return s.cfg.RetryDelays[idx]
}
