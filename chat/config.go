package chat

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL is the public apifreellm.com endpoint.
	DefaultBaseURL = "https://apifreellm.com"

	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 30 * time.Second
)

// Config carries client settings. The zero value is usable; New fills in
// defaults for anything left unset.
type Config struct {
	// BaseURL is the API origin, without the /api/chat path.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each request attempt. Exceeding it yields a
	// *TimeoutError.
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the number of additional attempts after a
	// *ConnectionError or *TimeoutError, with exponential backoff between
	// attempts. 0 disables retries; API and validation errors are never
	// retried.
	MaxRetries int `yaml:"max_retries"`

	// DefaultModel is sent when a call does not specify a model. Empty
	// means the key is omitted and the server picks.
	DefaultModel string `yaml:"default_model"`

	// DefaultTemperature is sent when a call does not specify a
	// temperature. Nil means the key is omitted.
	DefaultTemperature *float64 `yaml:"default_temperature"`

	// DefaultMaxTokens is sent when a call does not specify max_tokens.
	// Nil means the key is omitted.
	DefaultMaxTokens *int `yaml:"default_max_tokens"`

	// MaxHistory bounds the conversation window. Non-positive falls back
	// to DefaultMaxHistory.
	MaxHistory int `yaml:"max_history"`

	// Headers are added to every request on top of Content-Type.
	Headers map[string]string `yaml:"headers,omitempty"`
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.MaxHistory <= 0 {
		c.MaxHistory = DefaultMaxHistory
	}
	return c
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

// ConfigFromViper reads the FREELLM_* environment surface through viper.
// Keys: base_url, timeout, max_retries, default_model, default_temperature,
// default_max_tokens, max_history. The caller is expected to have set the
// env prefix and called AutomaticEnv (the CLI root command does both).
func ConfigFromViper(v *viper.Viper) Config {
	cfg := Config{
		BaseURL:    v.GetString("base_url"),
		MaxRetries: v.GetInt("max_retries"),
		MaxHistory: v.GetInt("max_history"),
	}
	// FREELLM_TIMEOUT is seconds, matching the original surface
	// (FREELLM_TIMEOUT=30).
	if secs := v.GetFloat64("timeout"); secs > 0 {
		cfg.Timeout = time.Duration(secs * float64(time.Second))
	}
	cfg.DefaultModel = v.GetString("default_model")
	if v.IsSet("default_temperature") {
		t := v.GetFloat64("default_temperature")
		cfg.DefaultTemperature = &t
	}
	if v.IsSet("default_max_tokens") {
		n := v.GetInt("default_max_tokens")
		cfg.DefaultMaxTokens = &n
	}
	return cfg.withDefaults()
}
