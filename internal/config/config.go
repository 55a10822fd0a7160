// Package config loads connector configuration from an HCL file, a .env file
// and the process environment.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/namsor/namsor-connector/pkg/namsor/api"
)

// Environment variables that override file settings.
const (
	EnvAPIKey   = "NAMSOR_API_KEY"
	EnvBaseURL  = "NAMSOR_BASE_URL"
	EnvLogLevel = "NAMSOR_LOG_LEVEL"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

// Config is the root configuration.
type Config struct {
	LogLevel string  `hcl:"log_level,optional"`
	Namsor   *Namsor `hcl:"namsor,block"`
}

// Namsor configures the API transport. Durations use Go syntax ("30s").
type Namsor struct {
	APIKey        string  `hcl:"api_key,optional"`
	BaseURL       string  `hcl:"base_url,optional"`
	AccountURL    string  `hcl:"account_url,optional"`
	Timeout       string  `hcl:"timeout,optional"`
	MaxRetries    int     `hcl:"max_retries,optional"`
	RetryDelay    string  `hcl:"retry_delay,optional"`
	RateLimit     float64 `hcl:"rate_limit,optional"`
	TLSSkipVerify bool    `hcl:"tls_skip_verify,optional"`
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// Default returns the configuration used when no file is given.
func Default() *Config {
	defaults := api.DefaultConfig()
	return &Config{
		LogLevel: "info",
		Namsor: &Namsor{
			BaseURL:    defaults.BaseURL,
			AccountURL: defaults.AccountURL,
			Timeout:    defaults.Timeout.String(),
			MaxRetries: defaults.MaxRetries,
			RetryDelay: defaults.RetryDelay.String(),
		},
	}
}

// Load reads the HCL file at filename from fs. An empty filename returns
// Default. Missing settings are filled from Default.
func Load(fs afero.Fs, filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}

	src, err := afero.ReadFile(fs, filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", filename)
		}
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var fileCfg Config
	if err := hclsimple.Decode(filename, src, nil, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	cfg.merge(&fileCfg)
	return cfg, nil
}

// LoadDotEnv parses a .env file from fs. A missing file yields no values.
func LoadDotEnv(fs afero.Fs, filename string) (map[string]string, error) {
	src, err := afero.ReadFile(fs, filename)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	values, err := godotenv.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return values, nil
}

// EnvLookup resolves from the process environment first, then from dotenv.
// An empty process variable does not hide a dotenv value.
func EnvLookup(dotenv map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

// ApplyEnv overrides settings with non-empty environment values.
func (c *Config) ApplyEnv(lookup LookupFunc) {
	if c.Namsor == nil {
		c.Namsor = Default().Namsor
	}
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.Namsor.APIKey = v
	}
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.Namsor.BaseURL = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

func (c *Config) merge(other *Config) {
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.Namsor == nil {
		return
	}

	n, o := c.Namsor, other.Namsor
	if o.APIKey != "" {
		n.APIKey = o.APIKey
	}
	if o.BaseURL != "" {
		n.BaseURL = o.BaseURL
	}
	if o.AccountURL != "" {
		n.AccountURL = o.AccountURL
	}
	if o.Timeout != "" {
		n.Timeout = o.Timeout
	}
	if o.RetryDelay != "" {
		n.RetryDelay = o.RetryDelay
	}
	n.MaxRetries = o.MaxRetries
	n.RateLimit = o.RateLimit
	n.TLSSkipVerify = o.TLSSkipVerify
}

// Level returns the parsed log level. Unknown names map to NoLevel.
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}

// Validate checks settings that do not need the API key. The key itself is
// checked by the transport when one is built.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Level() == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}

	if c.Namsor != nil {
		n := c.Namsor
		if err := validation.ValidateStruct(n,
			validation.Field(&n.BaseURL, validation.Required),
			validation.Field(&n.Timeout, validation.By(duration)),
			validation.Field(&n.RetryDelay, validation.By(duration)),
			validation.Field(&n.MaxRetries, validation.Min(0)),
			validation.Field(&n.RateLimit, validation.Min(0.0)),
		); err != nil {
			result = multierror.Append(result, fmt.Errorf("namsor: %w", err))
		}
	}

	return result.ErrorOrNil()
}

// APIConfig converts the namsor block into a transport configuration.
func (c *Config) APIConfig() (*api.Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n := c.Namsor
	if n == nil {
		n = Default().Namsor
	}

	cfg := api.DefaultConfig()
	cfg.APIKey = n.APIKey
	cfg.BaseURL = n.BaseURL
	if n.AccountURL != "" {
		cfg.AccountURL = n.AccountURL
	}
	cfg.MaxRetries = n.MaxRetries
	cfg.RateLimit = n.RateLimit
	if n.TLSSkipVerify {
		verify := false
		cfg.TLSVerify = &verify
	}

	var err error
	if n.Timeout != "" {
		if cfg.Timeout, err = time.ParseDuration(n.Timeout); err != nil {
			return nil, fmt.Errorf("namsor.timeout: %w", err)
		}
	}
	if n.RetryDelay != "" {
		if cfg.RetryDelay, err = time.ParseDuration(n.RetryDelay); err != nil {
			return nil, fmt.Errorf("namsor.retry_delay: %w", err)
		}
	}

	return cfg, nil
}

func duration(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.ParseDuration(s); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	return nil
}
