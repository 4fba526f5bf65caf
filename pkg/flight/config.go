package flight

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds coordinator defaults loadable from the environment.
type Config struct {
	// Timeout bounds every flight; zero disables it.
	Timeout time.Duration `env:"FLIGHT_TIMEOUT" envDefault:"0"`
	// IdleRelease is the reuse window after a flight settles; zero releases immediately.
	IdleRelease time.Duration `env:"FLIGHT_IDLE_RELEASE" envDefault:"0"`
	// IdleOnError extends the idle window to failed flights.
	IdleOnError bool `env:"FLIGHT_IDLE_ON_ERROR" envDefault:"false"`
	// KeepOnRelease leaves the flight token uncancelled on release.
	KeepOnRelease bool `env:"FLIGHT_KEEP_ON_RELEASE" envDefault:"false"`
}

var loadEnvOnce sync.Once

// LoadConfig reads Config from environment variables, loading the default
// .env file first if one exists.
func LoadConfig() (Config, error) {
	loadEnvOnce.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// FromConfig applies cfg to a Coordinator. Zero values leave the
// corresponding defaults in place, so FromConfig composes with the other
// options.
func FromConfig[T any](cfg Config) Option[T] {
	return func(c *Coordinator[T]) {
		if cfg.Timeout > 0 {
			c.timeout = cfg.Timeout
		}
		if cfg.IdleRelease > 0 {
			c.idleRelease = cfg.IdleRelease
		}
		if cfg.IdleOnError {
			c.idleOnError = true
		}
		if cfg.KeepOnRelease {
			c.keepOnRelease = true
		}
	}
}
