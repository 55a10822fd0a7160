package config

import (
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "namsor.hcl", []byte(`
log_level = "debug"

namsor {
  api_key     = "file-key"
  base_url    = "https://proxy.example.com/NamSorAPIv2"
  timeout     = "10s"
  max_retries = 2
  retry_delay = "250ms"
  rate_limit  = 5
}
`), 0o644))

	cfg, err := Load(fs, "namsor.hcl")
	require.NoError(t, err)

	assert.Equal(t, hclog.Debug, cfg.Level())
	assert.Equal(t, "file-key", cfg.Namsor.APIKey)
	assert.Equal(t, "https://namsor.app", cfg.Namsor.AccountURL)

	apiCfg, err := cfg.APIConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://proxy.example.com/NamSorAPIv2", apiCfg.BaseURL)
	assert.Equal(t, 10*time.Second, apiCfg.Timeout)
	assert.Equal(t, 250*time.Millisecond, apiCfg.RetryDelay)
	assert.Equal(t, 2, apiCfg.MaxRetries)
	assert.Equal(t, 5.0, apiCfg.RateLimit)
	assert.NoError(t, apiCfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)

	apiCfg, err := cfg.APIConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://v2.namsor.com/NamSorAPIv2", apiCfg.BaseURL)
	assert.Equal(t, 30*time.Second, apiCfg.Timeout)
	assert.Equal(t, 0, apiCfg.MaxRetries)
	assert.Equal(t, hclog.Info, cfg.Level())
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "broken.hcl", []byte(`namsor {`), 0o644))

	_, err := Load(fs, "missing.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = Load(fs, "broken.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.Namsor.APIKey = "file-key"

	cfg.ApplyEnv(lookupFrom(map[string]string{
		EnvAPIKey:   "env-key",
		EnvLogLevel: "warn",
		EnvBaseURL:  "",
	}))

	assert.Equal(t, "env-key", cfg.Namsor.APIKey)
	assert.Equal(t, hclog.Warn, cfg.Level())
	assert.Equal(t, "https://v2.namsor.com/NamSorAPIv2", cfg.Namsor.BaseURL)
}

func TestLoadDotEnv(t *testing.T) {
	fs := afero.NewMemMapFs()

	values, err := LoadDotEnv(fs, ".env")
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, afero.WriteFile(fs, ".env", []byte("# local\nNAMSOR_API_KEY=dotenv-key\nOTHER=1\n"), 0o600))
	values, err = LoadDotEnv(fs, ".env")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", values[EnvAPIKey])

	cfg := Default()
	cfg.ApplyEnv(lookupFrom(values))
	assert.Equal(t, "dotenv-key", cfg.Namsor.APIKey)
}

func TestEnvLookup_ProcessWins(t *testing.T) {
	t.Setenv(EnvAPIKey, "process-key")
	t.Setenv(EnvBaseURL, "")

	lookup := EnvLookup(map[string]string{EnvAPIKey: "dotenv-key", EnvBaseURL: "http://dotenv"})

	v, ok := lookup(EnvAPIKey)
	assert.True(t, ok)
	assert.Equal(t, "process-key", v)

	v, ok = lookup(EnvBaseURL)
	assert.True(t, ok)
	assert.Equal(t, "http://dotenv", v)

	t.Setenv(EnvAPIKey, "")
	v, _ = lookup(EnvAPIKey)
	assert.Equal(t, "dotenv-key", v)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "chatty"
	cfg.Namsor.Timeout = "soon"
	cfg.Namsor.MaxRetries = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "invalid duration")

	_, err = cfg.APIConfig()
	assert.Error(t, err)
}
