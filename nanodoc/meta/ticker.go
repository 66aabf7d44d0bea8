package meta

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/arthur-debert/nanodoc/nanodoc/storage"
	"github.com/arthur-debert/nanodoc/types"
)

// Ticker periodically adds its interval to the uptime held in the runtime
// collection.
type Ticker struct {
	store    *storage.Store
	interval time.Duration
	logger   *slog.Logger
}

// NewTicker returns a ticker firing every interval. A non-positive interval
// falls back to DefaultTickInterval.
func NewTicker(store *storage.Store, interval time.Duration, logger *slog.Logger) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Ticker{store: store, interval: interval, logger: logger}
}

// Interval returns the tick period.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Run ticks until ctx is done. A failed tick is logged and the ticker keeps
// going.
func (t *Ticker) Run(ctx context.Context) error {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	t.logger.Debug("ticker started", "interval", t.interval)
	for {
		select {
		case <-ctx.Done():
			t.logger.Debug("ticker stopped")
			return ctx.Err()
		case <-tk.C:
			if err := t.Tick(); err != nil {
				t.logger.Warn("tick failed", "error", err)
			}
		}
	}
}

// Tick performs a single read-increment-write of the uptime counter. The
// runtime collection must already exist.
func (t *Ticker) Tick() error {
	docs, err := t.store.LoadExisting(storage.RuntimeCollection)
	if err != nil {
		return err
	}
	uptime := readUptime(docs) + t.interval.Seconds()
	return t.store.Save(storage.RuntimeCollection, []types.Document{{"uptime": uptime}})
}

// Uptime returns the seconds recorded in the runtime collection.
func Uptime(store *storage.Store) (float64, error) {
	docs, err := store.LoadExisting(storage.RuntimeCollection)
	if err != nil {
		return 0, err
	}
	return readUptime(docs), nil
}

func readUptime(docs []types.Document) float64 {
	if len(docs) == 0 {
		return 0
	}
	n, _ := number(docs[0]["uptime"])
	return n
}
