// internal/common/config/loader.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "corp-onboarding/internal/common/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL    = "https://fe-hometask-api.qa.vault.tryvault.com"
	DefaultTimeoutMs  = 12000
	DefaultDebounceMs = 650
)

// Load reads .env, configs/config.yaml and configs/config.<APP_ENVIRONMENT>.yaml.
// Missing files are not an error; defaults cover every setting.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	bindEnv(v)

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	return finalize(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finalize(v)
}

func finalize(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// bindEnv enables overrides like API_BASE_URL or VALIDATION_DEBOUNCE_MS.
func bindEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"app.environment",
		"api.base_url", "api.timeout",
		"validation.debounce_ms",
		"database.redis.address", "database.redis.password", "database.redis.db",
		"stub_api.addr", "stub_api.store",
		"stub_api.events.sns_topic_arn", "stub_api.events.region",
		"logging.level", "logging.format", "logging.output",
		"metrics.enabled", "metrics.addr",
	} {
		_ = v.BindEnv(key)
	}
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			// unset variables expand to "" so defaults and overrides still apply
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDR"); val != "" {
			cfg.Database.Redis.Address = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "corp-onboarding"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = DefaultTimeoutMs
	}

	if cfg.Validation.DebounceMs == 0 {
		cfg.Validation.DebounceMs = DefaultDebounceMs
	}

	if cfg.StubAPI.Addr == "" {
		cfg.StubAPI.Addr = ":8080"
	}
	if cfg.StubAPI.Store == "" {
		cfg.StubAPI.Store = "memory"
	}
	if cfg.StubAPI.Events.Region == "" {
		cfg.StubAPI.Events.Region = "ca-central-1"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return apperrors.NewConfigInvalidError(fmt.Sprintf("api.base_url must be an absolute URL, got %q", cfg.API.BaseURL))
	}
	if cfg.API.Timeout < 0 {
		return apperrors.NewConfigInvalidError("api.timeout must be positive")
	}
	if cfg.Validation.DebounceMs < 0 {
		return apperrors.NewConfigInvalidError("validation.debounce_ms must be positive")
	}

	switch cfg.StubAPI.Store {
	case "memory":
	case "redis":
		if cfg.Database.Redis.Address == "" {
			return apperrors.NewConfigInvalidError("database.redis.address is required when stub_api.store is redis")
		}
	default:
		return apperrors.NewConfigInvalidError(fmt.Sprintf("stub_api.store must be memory or redis, got %q", cfg.StubAPI.Store))
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// RequestTimeout returns the shared timeout of both backend calls.
func (c *Config) RequestTimeout() time.Duration {
	return GetDuration(c.API.Timeout)
}

// DebounceDelay returns the quiet period of the corporation check.
func (c *Config) DebounceDelay() time.Duration {
	return GetDuration(c.Validation.DebounceMs)
}
