package backup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/appclacks/datto-monitor/pkg/backup/aggregates"
	er "github.com/mcorbin/corbierror"
)

type Runner interface {
	Run(ctx context.Context) (*aggregates.RunReport, error)
}

// Scheduler executes backup checks periodically and keeps the last report.
type Scheduler struct {
	logger     *slog.Logger
	runner     Runner
	interval   time.Duration
	runTimeout time.Duration
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	ticker     *time.Ticker
	lock       sync.RWMutex
	lastRun    *aggregates.RunReport
}

func NewScheduler(logger *slog.Logger, runner Runner, interval time.Duration, runTimeout time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		logger:     logger,
		runner:     runner,
		interval:   interval,
		runTimeout: runTimeout,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// RunOnce executes a check and stores its report when it succeeds.
// The check is interrupted when the scheduler is stopped.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(s.ctx, s.runTimeout)
	defer cancel()
	report, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("backup check failed: %s", err.Error()))
		return
	}
	s.lock.Lock()
	s.lastRun = report
	s.lock.Unlock()
}

func (s *Scheduler) Start() {
	s.ticker = time.NewTicker(s.interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.RunOnce()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-s.ticker.C:
				s.RunOnce()
			}
		}
	}()
}

// Stop cancels the running check if any and waits for the loop to exit.
// It is safe to call even if Start was never called.
func (s *Scheduler) Stop() {
	s.cancel()
	if s.ticker != nil {
		s.ticker.Stop()
	}
	s.wg.Wait()
}

func (s *Scheduler) LastRun() (*aggregates.RunReport, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.lastRun == nil {
		return nil, er.New("no backup check completed yet", er.NotFound, true)
	}
	return s.lastRun, nil
}
