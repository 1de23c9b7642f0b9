// Package scheduler runs periodic background maintenance.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Cleaner removes stored documents older than a given age
type Cleaner interface {
	CleanupOlderThan(ctx context.Context, age time.Duration) (int, error)
}

// RetentionConfig holds configuration for the retention sweeper
type RetentionConfig struct {
	// MaxAge is how long a stored PDF is kept
	MaxAge time.Duration
	// CheckInterval is how often expired PDFs are swept
	CheckInterval time.Duration
}

// RetentionDays returns a configuration keeping PDFs for days, swept hourly
func RetentionDays(days int) RetentionConfig {
	return RetentionConfig{
		MaxAge:        time.Duration(days) * 24 * time.Hour,
		CheckInterval: time.Hour,
	}
}

// RetentionSweeper periodically deletes stored PDFs past their retention
type RetentionSweeper struct {
	config  RetentionConfig
	cleaner Cleaner
	logger  *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastSweep time.Time
	removed   int
}

// NewRetentionSweeper creates a new sweeper
func NewRetentionSweeper(config RetentionConfig, cleaner Cleaner, logger *zap.Logger) (*RetentionSweeper, error) {
	if cleaner == nil {
		return nil, fmt.Errorf("%w: cleaner is required", ErrInvalidConfig)
	}
	if config.MaxAge <= 0 || config.CheckInterval <= 0 {
		return nil, fmt.Errorf("%w: max age and check interval must be positive", ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetentionSweeper{
		config:  config,
		cleaner: cleaner,
		logger:  logger,
	}, nil
}

// Start sweeps once immediately and then every CheckInterval
func (s *RetentionSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Retention sweeper started",
		zap.Duration("max_age", s.config.MaxAge),
		zap.Duration("check_interval", s.config.CheckInterval),
	)
	return nil
}

// Stop stops the sweeper and waits for a running sweep to finish
func (s *RetentionSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Retention sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the sweeper loop is active
func (s *RetentionSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// Stats returns the time of the last completed sweep and the total number
// of PDFs removed so far
func (s *RetentionSweeper) Stats() (lastSweep time.Time, removed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSweep, s.removed
}

func (s *RetentionSweeper) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one cleanup pass. Failures are logged; the next tick retries.
func (s *RetentionSweeper) Sweep(ctx context.Context) {
	removed, err := s.cleaner.CleanupOlderThan(ctx, s.config.MaxAge)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("PDF retention sweep failed", zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	s.lastSweep = time.Now()
	s.removed += removed
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Info("PDF retention sweep", zap.Int("removed", removed))
	}
}
