package nanodoc

import (
	"fmt"
	"time"

	"github.com/arthur-debert/nanodoc/nanodoc/ids"
)

// Config configures a DB. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// DataDir holds the user collections.
	DataDir string `mapstructure:"data" json:"data" yaml:"data"`
	// MetaDir holds the built-in metadata collections. Empty means
	// <DataDir>/.meta.
	MetaDir string `mapstructure:"meta" json:"meta" yaml:"meta"`
	// IDPrefix is the identifier prefix of schemas built through the DB.
	IDPrefix string `mapstructure:"id-prefix" json:"id-prefix" yaml:"id-prefix"`
	// AtomicWrites makes every collection write go through a temp file and
	// a rename.
	AtomicWrites bool `mapstructure:"atomic" json:"atomic" yaml:"atomic"`
	// StrictRequired makes schemas built through the DB reject documents
	// lacking a required field.
	StrictRequired bool `mapstructure:"strict" json:"strict" yaml:"strict"`
	// DisableCounters turns interaction counting off regardless of the
	// stored settings.
	DisableCounters bool `mapstructure:"no-counters" json:"no-counters" yaml:"no-counters"`
	// TickInterval overrides the stored tick interval when positive.
	TickInterval time.Duration `mapstructure:"tick" json:"tick" yaml:"tick"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		DataDir:  "data",
		IDPrefix: ids.DefaultPrefix,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}
	if c.IDPrefix == "" {
		return fmt.Errorf("identifier prefix cannot be empty")
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("tick interval cannot be negative: %s", c.TickInterval)
	}
	return nil
}
