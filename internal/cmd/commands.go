package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/namsor/namsor-connector/internal/cmd/base"
	"github.com/namsor/namsor-connector/internal/cmd/commands/credentials"
	"github.com/namsor/namsor-connector/internal/cmd/commands/operations"
	"github.com/namsor/namsor-connector/internal/cmd/commands/predict"
	"github.com/namsor/namsor-connector/internal/cmd/commands/version"
)

// Commands is the mapping of all available commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"credentials": func() (cli.Command, error) {
			return &credentials.Command{Command: b}, nil
		},
		"credentials test": func() (cli.Command, error) {
			return &credentials.TestCommand{Command: b}, nil
		},
		"operations": func() (cli.Command, error) {
			return &operations.Command{Command: b}, nil
		},
		"predict": func() (cli.Command, error) {
			return &predict.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
