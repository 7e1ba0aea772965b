package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"jojo-client/internal/domain/audiosession"
	"jojo-client/internal/infrastructure/metrics"
)

// Janitor evicts ledger entries once their ephemeral credential has expired.
type Janitor struct {
	store     audiosession.Store
	interval  time.Duration
	now       func() time.Time
	log       zerolog.Logger
	done      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewJanitor creates a new ledger janitor.
func NewJanitor(store audiosession.Store, interval time.Duration, log zerolog.Logger) *Janitor {
	return &Janitor{
		store:    store,
		interval: interval,
		now:      time.Now,
		log:      log.With().Str("component", "session-janitor").Logger(),
		done:     make(chan struct{}),
	}
}

// Start begins the cleanup loop in background.
// Safe to call multiple times - only the first call starts the janitor.
func (j *Janitor) Start(ctx context.Context) {
	j.startOnce.Do(func() {
		j.wg.Add(1)
		go j.run(ctx)
		j.log.Info().Dur("interval", j.interval).Msg("session janitor started")
	})
}

// Stop gracefully shuts down the janitor.
// Safe to call multiple times - only the first call stops the janitor.
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() {
		close(j.done)
		j.wg.Wait()
		j.log.Info().Msg("session janitor stopped")
	})
}

// Run blocks running the cleanup loop until ctx is cancelled or Stop is called.
func (j *Janitor) Run(ctx context.Context) error {
	j.Start(ctx)
	select {
	case <-ctx.Done():
	case <-j.done:
	}
	j.Stop()
	return nil
}

func (j *Janitor) run(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Debug().Msg("context cancelled, shutting down janitor")
			return
		case <-j.done:
			j.log.Debug().Msg("done signal received, shutting down janitor")
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep runs one cleanup pass.
func (j *Janitor) Sweep(ctx context.Context) int {
	start := time.Now()
	defer func() {
		metrics.JanitorSweepDuration.Observe(time.Since(start).Seconds())
	}()

	removed, err := j.store.DeleteExpired(ctx, j.now())
	if err != nil {
		j.log.Error().Err(err).Msg("failed to evict expired sessions")
		return 0
	}

	if removed > 0 {
		j.log.Info().
			Int("evicted", removed).
			Msg("expired sessions evicted")
	}
	return removed
}
