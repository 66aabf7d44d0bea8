package meta

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/arthur-debert/nanodoc/nanodoc/schema"
	"github.com/arthur-debert/nanodoc/nanodoc/storage"
	"github.com/arthur-debert/nanodoc/types"
)

// Default settings values.
const (
	DefaultCountInteractions = true
	DefaultTickInterval      = time.Second
)

// Settings holds the store-wide switches read from the settings collection.
type Settings struct {
	// CountInteractions enables the interaction counters.
	CountInteractions bool
	// TickInterval is the period of the runtime ticker.
	TickInterval time.Duration
}

// DefaultSettings returns the settings used when the settings collection is
// absent or empty.
func DefaultSettings() Settings {
	return Settings{
		CountInteractions: DefaultCountInteractions,
		TickInterval:      DefaultTickInterval,
	}
}

var settingsSchema = schema.MustNew([]schema.Field{
	schema.F("countInteractions", schema.Desc(schema.Boolean, schema.Default(DefaultCountInteractions))),
	schema.F("tickSeconds", schema.Desc(schema.Number, schema.Default(DefaultTickInterval.Seconds()))),
}, schema.WithoutID())

// LoadSettings reads the settings document. A missing or empty settings
// collection yields DefaultSettings; missing fields take their defaults.
func LoadSettings(store *storage.Store) (Settings, error) {
	docs, err := store.LoadExisting(storage.SettingsCollection)
	if errors.Is(err, types.ErrMissingCollection) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	if len(docs) == 0 {
		return DefaultSettings(), nil
	}

	doc := settingsSchema.ApplyDefaults(docs[0])
	if err := settingsSchema.Validate(doc); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}

	s := DefaultSettings()
	if v, ok := doc["countInteractions"].(bool); ok {
		s.CountInteractions = v
	}
	if secs, ok := number(doc["tickSeconds"]); ok && secs > 0 {
		s.TickInterval = time.Duration(secs * float64(time.Second))
	}
	return s, nil
}

// SaveSettings replaces the settings document.
func SaveSettings(store *storage.Store, s Settings) error {
	return store.Save(storage.SettingsCollection, []types.Document{settingsDocument(s)})
}

func settingsDocument(s Settings) types.Document {
	return types.Document{
		"countInteractions": s.CountInteractions,
		"tickSeconds":       s.TickInterval.Seconds(),
	}
}

// number reads a numeric document value. Decoded documents hold float64;
// documents built in code may hold any integer type.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
