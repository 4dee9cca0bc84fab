// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	API        APIConfig        `mapstructure:"api"`
	Validation ValidationConfig `mapstructure:"validation"`
	Database   DatabaseConfig   `mapstructure:"database"`
	StubAPI    StubAPIConfig    `mapstructure:"stub_api"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig points the client at the onboarding backend.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// ValidationConfig tunes the debounced corporation check.
type ValidationConfig struct {
	DebounceMs int `mapstructure:"debounce_ms"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StubAPIConfig configures the development backend.
type StubAPIConfig struct {
	Addr                    string       `mapstructure:"addr"`
	Store                   string       `mapstructure:"store"`       // memory | redis
	ProfileTTL              int          `mapstructure:"profile_ttl"` // seconds, 0 keeps forever
	ValidCorporationNumbers []string     `mapstructure:"valid_corporation_numbers"`
	Events                  EventsConfig `mapstructure:"events"`
}

// EventsConfig enables profile-created events. An empty topic disables them.
type EventsConfig struct {
	SNSTopicARN string `mapstructure:"sns_topic_arn"`
	Region      string `mapstructure:"region"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}
