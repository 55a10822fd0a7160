package operations

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namsor/namsor-connector/internal/cmd/base"
)

func newCommand() (*Command, *cli.MockUi) {
	ui := cli.NewMockUi()
	return &Command{Command: base.NewCommand(hclog.NewNullLogger(), ui)}, ui
}

func TestOperations_Text(t *testing.T) {
	c, ui := newCommand()

	require.Equal(t, 0, c.Run(nil))

	out := ui.OutputWriter.String()
	assert.Contains(t, out, "indian-caste")
	assert.Contains(t, out, "by-full-name")
	assert.Contains(t, out, "/api2/json/genderBatch, /api2/json/genderGeoBatch (personalNames)")
	assert.Contains(t, out, "/api2/json/nameTypeBatch, /api2/json/nameTypeGeoBatch (properNouns)")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 28)
}

func TestOperations_JSONFiltered(t *testing.T) {
	c, ui := newCommand()

	require.Equal(t, 0, c.Run([]string{"-format", "json", "-resource", "us-race-ethnicity"}))

	var infos []operationInfo
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "us-race-ethnicity", infos[0].Resource)
	assert.Equal(t, "by-name", infos[0].Operation)
	assert.Equal(t, "/api2/json/usRaceEthnicityBatch", infos[0].Endpoint)
	assert.Empty(t, infos[0].GeoEndpoint)
}

func TestOperations_Errors(t *testing.T) {
	c, ui := newCommand()
	assert.Equal(t, 1, c.Run([]string{"-resource", "horoscope"}))
	assert.Contains(t, ui.ErrorWriter.String(), "valid: country, ethnicity, gender")

	c, ui = newCommand()
	assert.Equal(t, 1, c.Run([]string{"-format", "csv"}))
	assert.Contains(t, ui.ErrorWriter.String(), "unsupported format")

	c, ui = newCommand()
	assert.Equal(t, 1, c.Run([]string{"-bogus"}))
	assert.Contains(t, ui.ErrorWriter.String(), "error parsing flags")
}
