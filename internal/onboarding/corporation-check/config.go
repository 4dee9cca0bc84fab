package corporationcheck

import (
	"fmt"
	"time"

	"corp-onboarding/internal/common/config"
)

type Config struct {
	// Debounce is the quiet period a complete number must stay unchanged before the check fires.
	Debounce time.Duration `mapstructure:"debounce"`
	// Timeout bounds a single registry call.
	Timeout time.Duration `mapstructure:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Debounce: 650 * time.Millisecond,
		Timeout:  12 * time.Second,
	}
}

// ConfigFromAppConfig reads the debounce and request timeout from the application config.
func ConfigFromAppConfig(appConfig *config.Config) *Config {
	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}
	if d := appConfig.DebounceDelay(); d > 0 {
		cfg.Debounce = d
	}
	if t := appConfig.RequestTimeout(); t > 0 {
		cfg.Timeout = t
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
