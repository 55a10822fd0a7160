package credentials

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/namsor/namsor-connector/internal/cmd/base"
	"github.com/namsor/namsor-connector/pkg/namsor/api"
)

type TestCommand struct {
	*base.Command

	flagConfig  string
	flagTimeout time.Duration
}

func (c *TestCommand) Synopsis() string {
	return "Verify the configured API key"
}

func (c *TestCommand) Help() string {
	return `Usage: namsor credentials test [options]

  Calls the Namsor account service with the configured API key
  (NAMSOR_API_KEY or api_key in the config file) and reports whether it is
  accepted.` + c.Flags().Help()
}

func (c *TestCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("credentials test", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", os.Getenv("NAMSOR_CONFIG"),
		"[NAMSOR_CONFIG] Path to an HCL config file.",
	)
	f.DurationVar(
		&c.flagTimeout, "timeout", 15*time.Second,
		"Time to wait for the account service.",
	)

	return f
}

func (c *TestCommand) Run(args []string) int {
	logger, ui := c.Log, c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	apiCfg, err := cfg.APIConfig()
	if err != nil {
		ui.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	provider, err := api.NewProvider(apiCfg, logger)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing API client: %v", err))
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.flagTimeout)
	defer cancel()

	if _, err := provider.VerifyCredentials(ctx); err != nil {
		ui.Error(err.Error())
		return 1
	}

	ui.Info(fmt.Sprintf("API key accepted by %s", apiCfg.AccountURL))
	return 0
}
