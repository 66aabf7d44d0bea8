package meta

import (
	"io"
	"log/slog"
	"sync"

	"github.com/arthur-debert/nanodoc/nanodoc/storage"
	"github.com/arthur-debert/nanodoc/types"
)

// Interactions is a snapshot of the interaction counters.
type Interactions struct {
	Session int64 `json:"session" yaml:"session"`
	Total   int64 `json:"total" yaml:"total"`
}

// Counters counts model operations in the interactions collection. It
// implements model.Recorder.
type Counters struct {
	store   *storage.Store
	enabled bool
	logger  *slog.Logger

	// serialises this process's own read-modify-write of the counters
	mu sync.Mutex
}

// NewCounters returns counters backed by store. When enabled is false,
// RecordInteraction does nothing.
func NewCounters(store *storage.Store, enabled bool, logger *slog.Logger) *Counters {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Counters{store: store, enabled: enabled, logger: logger}
}

// Enabled reports whether interactions are being counted.
func (c *Counters) Enabled() bool {
	return c.enabled
}

// RecordInteraction increments the session and total counters. Failures are
// logged and dropped.
func (c *Counters) RecordInteraction() {
	if !c.enabled {
		return
	}
	if err := c.update(func(in *Interactions) {
		in.Session++
		in.Total++
	}); err != nil {
		c.logger.Warn("failed to record interaction", "error", err)
	}
}

// ResetSession sets the session counter to zero, keeping the total.
func (c *Counters) ResetSession() error {
	return c.update(func(in *Interactions) {
		in.Session = 0
	})
}

// Snapshot reads the counters. It fails with types.ErrMissingCollection when
// the interactions collection does not exist.
func (c *Counters) Snapshot() (Interactions, error) {
	docs, err := c.store.LoadExisting(storage.InteractionsCollection)
	if err != nil {
		return Interactions{}, err
	}
	return readInteractions(docs), nil
}

func (c *Counters) update(fn func(*Interactions)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	docs, err := c.store.LoadExisting(storage.InteractionsCollection)
	if err != nil {
		return err
	}
	in := readInteractions(docs)
	fn(&in)
	return c.store.Save(storage.InteractionsCollection, []types.Document{interactionsDocument(in)})
}

func readInteractions(docs []types.Document) Interactions {
	var in Interactions
	if len(docs) == 0 {
		return in
	}
	if n, ok := number(docs[0]["session"]); ok {
		in.Session = int64(n)
	}
	if n, ok := number(docs[0]["total"]); ok {
		in.Total = int64(n)
	}
	return in
}

func interactionsDocument(in Interactions) types.Document {
	return types.Document{"session": in.Session, "total": in.Total}
}
