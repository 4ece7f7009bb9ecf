// Package config loads the session configuration once at startup. The result
// is passed explicitly to the api client and the UI; nothing here is global.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. SITUATION_API_URL.
const EnvPrefix = "SITUATION"

// Config holds application configuration.
type Config struct {
	API   APIConfig   `mapstructure:"api"`
	UI    UIConfig    `mapstructure:"ui"`
	Log   LogConfig   `mapstructure:"log"`
	Trace TraceConfig `mapstructure:"trace"`
}

// APIConfig holds the remote service settings.
type APIConfig struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	LogHeight   int `mapstructure:"log_height"`
	LogMaxLines int `mapstructure:"log_max_lines"`
}

// LogConfig controls the file logger. An empty File discards output.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// TraceConfig controls OTLP export. An empty Endpoint disables tracing.
type TraceConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// Error reports configuration that makes the session impossible to start.
type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config: %s: %v", e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrMissing is wrapped by Error for required keys without a value.
var ErrMissing = errors.New("required value is not set")

// IsConfigError reports whether err is, or wraps, a configuration error.
func IsConfigError(err error) bool {
	var ce *Error
	return errors.As(err, &ce)
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"api-url":   "api.url",
	"token":     "api.token",
	"timeout":   "api.timeout",
	"log-file":  "log.file",
	"log-level": "log.level",
}

// Load reads defaults, the config file, the environment and flags, in
// increasing precedence. flags may be nil.
//
// The config file is $SITUATION_CONFIG, or config.toml under
// ~/.config/situation. The legacy variables SI_API and JWT_TOKEN are
// honoured for the service URL and token.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("api.url", "")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("ui.log_height", 10)
	v.SetDefault("ui.log_max_lines", 2000)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("trace.endpoint", "")
	v.SetDefault("trace.service_name", "situation")

	v.SetConfigType("toml")
	explicit := os.Getenv(EnvPrefix + "_CONFIG")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "situation"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("api.url", EnvPrefix+"_API_URL", "SI_API")
	_ = v.BindEnv("api.token", EnvPrefix+"_API_TOKEN", "JWT_TOKEN")
	_ = v.BindEnv("trace.endpoint", EnvPrefix+"_TRACE_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, &Error{Key: key, Err: err}
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, &Error{Err: fmt.Errorf("read config file: %w", err)}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, &Error{Err: fmt.Errorf("unmarshal config: %w", err)}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the required keys and normalizes the rest.
func (c *Config) Validate() error {
	c.API.URL = strings.TrimRight(strings.TrimSpace(c.API.URL), "/")
	c.API.Token = strings.TrimSpace(c.API.Token)
	if c.API.URL == "" {
		return &Error{Key: "api.url", Err: fmt.Errorf("%w (set SI_API or %s_API_URL)", ErrMissing, EnvPrefix)}
	}
	if c.API.Token == "" {
		return &Error{Key: "api.token", Err: fmt.Errorf("%w (set JWT_TOKEN or %s_API_TOKEN)", ErrMissing, EnvPrefix)}
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.UI.LogHeight <= 0 {
		c.UI.LogHeight = 10
	}
	return nil
}
