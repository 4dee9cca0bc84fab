package profilesubmit

import (
	"fmt"
	"time"

	"corp-onboarding/internal/common/config"
)

type Config struct {
	// Timeout bounds a whole run, both backend calls included.
	Timeout time.Duration `mapstructure:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

// createConfigFromAppConfig lets a custom config win over the application config.
func createConfigFromAppConfig(appConfig *config.Config, custom *Config) *Config {
	if custom != nil {
		return custom
	}
	cfg := DefaultConfig()
	if appConfig != nil {
		if t := appConfig.RequestTimeout(); t > 0 {
			cfg.Timeout = 2*t + time.Second
		}
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
