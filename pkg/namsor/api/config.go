package api

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultBaseURL is the Namsor v2 API root. Endpoint paths are appended to it.
	DefaultBaseURL = "https://v2.namsor.com/NamSorAPIv2"

	// DefaultAccountURL hosts the account endpoints used to verify an API key.
	DefaultAccountURL = "https://namsor.app"

	// HeaderAPIKey carries the static API key on every request.
	HeaderAPIKey = "X-API-KEY"

	idleConnTimeout = 60 * time.Second
)

// Config contains configuration for the Namsor HTTP transport.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	// Example: "https://v2.namsor.com/NamSorAPIv2"
	BaseURL string `json:"baseUrl"`

	// AccountURL is the root of the account service used by VerifyCredentials.
	AccountURL string `json:"accountUrl"`

	// APIKey is sent as X-API-KEY. Keep it in the environment.
	APIKey string `json:"-"`

	// TLSVerify controls TLS certificate verification.
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `json:"tlsVerify,omitempty"`

	// Timeout for a single HTTP attempt.
	// Default: 30 seconds
	Timeout time.Duration `json:"timeout,omitempty"`

	// MaxRetries for requests that failed with a network error, 429 or 5xx.
	// Default: 0, so one batch call is exactly one request.
	MaxRetries int `json:"maxRetries,omitempty"`

	// RetryDelay is the initial backoff interval between retries.
	// Default: 1 second
	RetryDelay time.Duration `json:"retryDelay,omitempty"`

	// RateLimit caps outgoing requests per second. Zero disables limiting.
	RateLimit float64 `json:"rateLimit,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `json:"userAgent,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		BaseURL:    DefaultBaseURL,
		AccountURL: DefaultAccountURL,
		TLSVerify:  &tlsVerify,
		Timeout:    30 * time.Second,
		RetryDelay: 1 * time.Second,
	}
}

// applyDefaults fills unset fields from DefaultConfig.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.AccountURL == "" {
		c.AccountURL = defaults.AccountURL
	}
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = defaults.RetryDelay
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.AccountURL, validation.By(httpURL)),
		validation.Field(&c.APIKey, validation.Required),
	); err != nil {
		return err
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative, got: %d", c.MaxRetries)
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must be non-negative, got: %v", c.RetryDelay)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be non-negative, got: %v", c.RateLimit)
	}

	return nil
}

// httpURL is an ozzo rule accepting absolute http(s) URLs.
func httpURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	parsedURL, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got: %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return errors.New("must include a host")
	}

	return nil
}

// NewHTTPClient returns a pooled client bounded by Timeout. Batch calls go to
// a single host, so the idle pool is kept small.
func (c *Config) NewHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 4
	transport.IdleConnTimeout = idleConnTimeout

	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &http.Client{Timeout: c.Timeout, Transport: transport}
}
