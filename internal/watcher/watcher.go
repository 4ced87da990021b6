package watcher

import (
	"context"
	"fmt"
	"time"

	"pantry/internal/metrics"
	"pantry/internal/model"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// scanTimeout bounds a single inventory scan.
const scanTimeout = 30 * time.Second

// Lister lists the current inventory.
type Lister interface {
	List(ctx context.Context) ([]model.Product, error)
}

// Watcher periodically scans the inventory for expired and expiring
// products, logs what it finds and publishes the counts as metrics.
type Watcher struct {
	products Lister
	cron     *cron.Cron
	now      func() time.Time
	logger   zerolog.Logger
}

// New creates a watcher running on the given cron schedule. Schedules accept
// the standard five-field syntax and descriptors such as "@every 1h".
// A panicking scan is logged and does not stop the scheduler.
func New(products Lister, schedule string, logger zerolog.Logger) (*Watcher, error) {
	logger = logger.With().Str("component", "watcher").Logger()
	w := &Watcher{
		products: products,
		cron:     cron.New(cron.WithChain(cron.Recover(cronLogger{logger: logger}))),
		now:      time.Now,
		logger:   logger,
	}

	if _, err := w.cron.AddFunc(schedule, w.scan); err != nil {
		return nil, fmt.Errorf("invalid watcher schedule %q: %w", schedule, err)
	}

	return w, nil
}

// Start begins running scans in the background.
func (w *Watcher) Start() {
	w.logger.Info().Msg("expiry watcher started")
	w.cron.Start()
}

// Stop stops the scheduler and waits for a running scan to finish or ctx to end.
func (w *Watcher) Stop(ctx context.Context) {
	done := w.cron.Stop()
	select {
	case <-done.Done():
		w.logger.Info().Msg("expiry watcher stopped")
	case <-ctx.Done():
		w.logger.Warn().Msg("expiry watcher stop timed out")
	}
}

func (w *Watcher) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	if _, err := w.RunOnce(ctx); err != nil {
		w.logger.Error().Err(err).Msg("inventory scan failed")
	}
}

// RunOnce performs a single scan and returns the resulting snapshot.
func (w *Watcher) RunOnce(ctx context.Context) (metrics.Inventory, error) {
	products, err := w.products.List(ctx)
	if err != nil {
		metrics.RecordScan(false)
		return metrics.Inventory{}, fmt.Errorf("failed to list products: %w", err)
	}

	now := w.now()
	inv := metrics.Inventory{Total: len(products)}
	for _, p := range products {
		switch {
		case p.IsExpired(now):
			inv.Expired++
		case p.WillExpireSoon(now):
			inv.Expiring++
		}
	}

	metrics.RecordInventory(inv)
	metrics.RecordScan(true)

	event := w.logger.Info()
	if inv.Expired > 0 {
		event = w.logger.Warn()
	}
	event.
		Int("total", inv.Total).
		Int("expired", inv.Expired).
		Int("expiring", inv.Expiring).
		Msg("inventory scan completed")

	return inv, nil
}

// cronLogger routes scheduler output through zerolog.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
