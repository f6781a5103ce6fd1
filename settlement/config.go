package settlement

import "time"

// TokenEnv is read when no token is configured.
const TokenEnv = "TROLLUP_SETTLEMENT_TOKEN"

// Config of the settlement layer client.
type Config struct {
	Endpoint string `mapstructure:"endpoint"`
	// Contract is the address of the rollup contract on the settlement chain.
	Contract string `mapstructure:"contract"`
	// Token authenticates the sequencer with the settlement gateway.
	Token      string        `mapstructure:"token"`
	MaxRetries int           `mapstructure:"max-retries"`
	RetryDelay time.Duration `mapstructure:"retry-delay"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the default settlement configuration.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "http://127.0.0.1:8545",
		MaxRetries: 5,
		RetryDelay: time.Second,
		Timeout:    time.Minute,
	}
}
