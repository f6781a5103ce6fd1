package prover

import (
	"runtime"
	"time"
)

// Config for proof generation.
type Config struct {
	// Endpoint of the remote prover. Ignored in standalone mode.
	Endpoint string `mapstructure:"endpoint"`
	// Parallelism limits concurrent proof requests. Zero means GOMAXPROCS.
	Parallelism int `mapstructure:"parallelism"`
	// Timeout of a single proof request. Zero waits until the prover answers.
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max-retries"`
	RetryDelay time.Duration `mapstructure:"retry-delay"`
}

// DefaultConfig returns the default prover configuration.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "http://127.0.0.1:38172",
		MaxRetries: 3,
		RetryDelay: time.Second,
	}
}

func (c Config) parallelism() int {
	if c.Parallelism > 0 {
		return c.Parallelism
	}
	return runtime.GOMAXPROCS(0)
}
