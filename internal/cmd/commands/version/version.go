package version

import (
	"github.com/namsor/namsor-connector/internal/cmd/base"
	"github.com/namsor/namsor-connector/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: namsor version

  Prints the connector version.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("namsor-connector v" + version.Version)
	return 0
}
