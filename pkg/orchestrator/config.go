package orchestrator

import (
	"time"

	"dario.cat/mergo"
)

// Config is the plain-data configuration of an Orchestrator. Zero
// fields are filled from DefaultConfig when the orchestrator is built;
// pass memory.Unlimited to disable history trimming.
type Config struct {
	// MaxRetries is the total attempt budget for a chain run
	MaxRetries int

	// InitialDelay is the backoff delay before the first retry
	InitialDelay time.Duration

	// BackoffMultiplier grows the delay after every failed attempt
	BackoffMultiplier float64

	// MaxDelay caps the pre-jitter backoff delay
	MaxDelay time.Duration

	// UseJitter randomizes backoff delays on [0.5x, 1.5x]
	UseJitter bool

	// MaxHistory bounds the non-system messages kept in memory
	MaxHistory int

	// StreamingEnabled forwards per-step chunks to streaming callbacks
	StreamingEnabled bool
}

// DefaultConfig returns the configuration used for unset fields
func DefaultConfig() Config {
	return Config{
		MaxRetries:        3,
		InitialDelay:      time.Second,
		BackoffMultiplier: 2.0,
		MaxDelay:          30 * time.Second,
		UseJitter:         false,
		MaxHistory:        50,
		StreamingEnabled:  false,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig
func (c Config) withDefaults() (Config, error) {
	if err := mergo.Merge(&c, DefaultConfig()); err != nil {
		return Config{}, err
	}
	return c, nil
}
