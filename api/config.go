package api

import (
	"time"

	"golang.org/x/time/rate"
)

// Config of the HTTP intake.
type Config struct {
	Listen string `mapstructure:"listen"`
	// RateLimit is the number of requests per second accepted by the server. Zero disables the limit.
	RateLimit float64 `mapstructure:"rate-limit"`
	RateBurst int     `mapstructure:"rate-burst"`
	// RequestTimeout bounds the time a submission may wait for room in the intake queue.
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	// CORSOrigins are the origins allowed to call the API from a browser. Empty disables CORS.
	CORSOrigins []string `mapstructure:"cors-origins"`
}

// DefaultConfig returns the default API configuration.
func DefaultConfig() Config {
	return Config{
		Listen:         "127.0.0.1:38171",
		RateLimit:      500,
		RateBurst:      100,
		RequestTimeout: 10 * time.Second,
	}
}

func (c Config) limiter() *rate.Limiter {
	if c.RateLimit <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(c.RateLimit), max(c.RateBurst, 1))
}
