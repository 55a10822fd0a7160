package credentials

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namsor/namsor-connector/internal/cmd/base"
)

func newTestCommand(t *testing.T, accountURL string) (*TestCommand, *cli.MockUi) {
	t.Helper()

	t.Setenv("NAMSOR_API_KEY", "")
	t.Setenv("NAMSOR_BASE_URL", "")
	t.Setenv("NAMSOR_LOG_LEVEL", "")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "namsor.hcl", []byte(fmt.Sprintf(`
namsor {
  account_url = %q
}
`, accountURL)), 0o644))
	require.NoError(t, afero.WriteFile(fs, ".env", []byte("NAMSOR_API_KEY=dotenv-key\n"), 0o600))

	ui := cli.NewMockUi()
	c := &TestCommand{Command: &base.Command{Log: hclog.NewNullLogger(), UI: ui, Fs: fs}}
	return c, ui
}

func TestCredentialsTest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != "dotenv-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"apiKey":{"userId":"u-1"}}`))
	}))
	defer server.Close()

	c, ui := newTestCommand(t, server.URL)

	code := c.Run([]string{"-config", "namsor.hcl"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "API key accepted")
}

func TestCredentialsTest_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer server.Close()

	c, ui := newTestCommand(t, server.URL)

	code := c.Run([]string{"-config", "namsor.hcl"})
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "invalid key")
}

func TestCredentials_Group(t *testing.T) {
	c := &Command{Command: base.NewCommand(hclog.NewNullLogger(), cli.NewMockUi())}
	assert.Equal(t, cli.RunResultHelp, c.Run(nil))
	assert.Contains(t, c.Help(), "namsor credentials")
}
