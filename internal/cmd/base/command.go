package base

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/namsor/namsor-connector/internal/config"
)

// Command is embedded by every CLI command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs is used for config, .env and input files.
	Fs afero.Fs

	// Stdin is read when input is "-".
	Stdin io.Reader
}

// NewCommand returns a Command backed by the OS filesystem.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log:   log,
		UI:    ui,
		Fs:    afero.NewOsFs(),
		Stdin: os.Stdin,
	}
}

// LoadConfig reads the optional config file, then applies .env and process
// environment overrides, and sets the log level.
func (c *Command) LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(c.Fs, path)
	if err != nil {
		return nil, err
	}

	dotenv, err := config.LoadDotEnv(c.Fs, config.DefaultEnvFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(config.EnvLookup(dotenv))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c.Log.SetLevel(cfg.Level())
	return cfg, nil
}
