package credentials

import (
	"github.com/mitchellh/cli"

	"github.com/namsor/namsor-connector/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage Namsor API credentials"
}

func (c *Command) Help() string {
	return `Usage: namsor credentials <subcommand> [options] [args]

  This command groups subcommands for working with the Namsor API key.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
