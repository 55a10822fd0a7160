package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"

	"github.com/namsor/namsor-connector/internal/version"
	"github.com/namsor/namsor-connector/pkg/namsor"
)

// AccountPath is the account endpoint used to verify an API key.
const AccountPath = "/api/add-on/get-user-data-and-features"

// Provider implements namsor.Transport against the Namsor REST API.
type Provider struct {
	config  *Config
	client  *http.Client
	limiter *rate.Limiter
	logger  hclog.Logger
}

// Compile-time check
var _ namsor.Transport = (*Provider)(nil)

// StatusError is returned for a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth another attempt.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// NewProvider creates a new Namsor API provider.
func NewProvider(cfg *Config, logger hclog.Logger) (*Provider, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid API provider config: %w", err)
	}

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	p := &Provider{
		config: cfg,
		client: cfg.NewHTTPClient(),
		logger: logger.Named("api"),
	}
	if cfg.RateLimit > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return p, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "api"
}

// Do sends req and decodes the JSON object response.
func (p *Provider) Do(ctx context.Context, req *namsor.Request) (map[string]any, error) {
	body, err := req.MarshalBody()
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := p.doRequest(ctx, http.MethodPost, p.config.BaseURL+req.Path, body, req.Headers, &result); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("empty response from %s", req.Path)
	}
	return result, nil
}

// VerifyCredentials checks the configured API key against the account service
// and returns the account data.
func (p *Provider) VerifyCredentials(ctx context.Context) (map[string]any, error) {
	endpoint := strings.TrimRight(p.config.AccountURL, "/") + AccountPath

	var account map[string]any
	if err := p.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &account); err != nil {
		return nil, fmt.Errorf("credential check failed: %w", err)
	}
	return account, nil
}

// doRequest performs an HTTP request with retry logic.
func (p *Provider) doRequest(ctx context.Context, method, endpoint string, body []byte, headers map[string]string, result interface{}) error {
	attempt := 0
	operation := func() error {
		attempt++

		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(err)
			}
		}

		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		req.Header.Set(HeaderAPIKey, p.config.APIKey)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("User-Agent", p.userAgent())
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		p.logger.Trace("sending request",
			"method", method,
			"endpoint", endpoint,
			"attempt", attempt,
		)

		resp, err := p.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			p.logger.Warn("request failed", "endpoint", endpoint, "attempt", attempt, "error", err)
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := newStatusError(resp.StatusCode, respBody)
			if statusErr.Retryable() {
				p.logger.Warn("retryable status",
					"endpoint", endpoint,
					"status", resp.StatusCode,
					"attempt", attempt,
				)
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		if result != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, result); err != nil {
				return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
			}
		}

		return nil
	}

	return backoff.Retry(operation, p.newBackOff(ctx))
}

func (p *Provider) newBackOff(ctx context.Context) backoff.BackOff {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = p.config.RetryDelay
	expo.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(expo, uint64(p.config.MaxRetries)), ctx)
}

func (p *Provider) userAgent() string {
	if p.config.UserAgent != "" {
		return p.config.UserAgent
	}
	return "namsor-connector/" + version.Version
}

// newStatusError parses an upstream error payload when one is present.
func newStatusError(status int, body []byte) *StatusError {
	e := &StatusError{
		StatusCode: status,
		Body:       strings.TrimSpace(string(body)),
	}

	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil {
		switch {
		case apiErr.Message != "":
			e.Message = apiErr.Message
		case apiErr.Error != "":
			e.Message = apiErr.Error
		}
	}

	return e
}
