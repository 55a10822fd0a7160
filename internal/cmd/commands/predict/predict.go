package predict

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/namsor/namsor-connector/internal/cmd/base"
	"github.com/namsor/namsor-connector/pkg/namsor"
	"github.com/namsor/namsor-connector/pkg/namsor/api"
	"github.com/namsor/namsor-connector/pkg/namsor/mock"
)

type Command struct {
	*base.Command

	flagConfig    string
	flagResource  string
	flagOperation string
	flagInput     string
	flagFormat    string
	flagSimplify  bool
	flagDryRun    bool
	flagMock      bool
}

func (c *Command) Synopsis() string {
	return "Run a batch prediction"
}

func (c *Command) Help() string {
	return `Usage: namsor predict -resource <resource> -operation <operation> [options]

  Reads a list of names (JSON or YAML) and sends them to the Namsor API as a
  single batch of at most 200 entries. Each entry may carry firstName,
  lastName, name, countryIso2 and subdivisionIso. A {"nameValues": [...]}
  object is accepted as well.

  Resource and operation names may be given in camelCase or kebab-case:

      $ echo '[{"firstName":"John","lastName":"Smith"}]' | \
          namsor predict -resource gender -operation by-name` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("predict", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", os.Getenv("NAMSOR_CONFIG"),
		"[NAMSOR_CONFIG] Path to an HCL config file.",
	)
	f.StringVar(
		&c.flagResource, "resource", "",
		"(Required) Resource, e.g. gender, origin, indian-caste.",
	)
	f.StringVar(
		&c.flagOperation, "operation", "",
		"(Required) Operation, e.g. by-name, by-full-name.",
	)
	f.StringVar(
		&c.flagInput, "input", "-",
		"Input file, or - for stdin.",
	)
	f.StringVar(
		&c.flagFormat, "format", "json",
		"Output format: json or yaml.",
	)
	f.BoolVar(
		&c.flagSimplify, "simplify", true,
		"Flatten each prediction into a record. Set to false for the raw response.",
	)
	f.BoolVar(
		&c.flagDryRun, "dry-run", false,
		"Print the request that would be sent without calling the API.",
	)
	f.BoolVar(
		&c.flagMock, "mock", false,
		"Answer with canned predictions instead of calling the API.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	logger, ui := c.Log, c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagResource == "" || c.flagOperation == "" {
		ui.Error("resource and operation flags are required")
		return 1
	}
	if c.flagFormat != "json" && c.flagFormat != "yaml" {
		ui.Error(fmt.Sprintf("unsupported format %q (valid: json, yaml)", c.flagFormat))
		return 1
	}

	params, err := c.readInput()
	if err != nil {
		ui.Error(fmt.Sprintf("error reading input: %v", err))
		return 1
	}
	entries, err := namsor.DecodeParams(params)
	if err != nil {
		ui.Error(fmt.Sprintf("error decoding input: %v", err))
		return 1
	}

	if c.flagDryRun {
		op, err := namsor.DefaultRegistry().Lookup(c.flagResource, c.flagOperation)
		if err != nil {
			ui.Error(err.Error())
			return 1
		}
		req, err := namsor.NewRequest(op, entries)
		if err != nil {
			ui.Error(err.Error())
			return 1
		}
		return c.write(map[string]any{
			"method":  "POST",
			"path":    req.Path,
			"headers": req.Headers,
			"body":    req.Body,
		})
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	var transport namsor.Transport
	if c.flagMock {
		transport = mock.NewProvider()
	} else {
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
		transport = provider
	}

	connector, err := namsor.NewConnector(namsor.ConnectorConfig{
		Transport: transport,
		Logger:    logger,
	})
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing connector: %v", err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := connector.Execute(ctx, namsor.Invocation{
		Resource:  c.flagResource,
		Operation: c.flagOperation,
		Entries:   entries,
		Simplify:  c.flagSimplify,
	})
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	return c.write(result.Records)
}

// readInput decodes the input as YAML, which also accepts JSON.
func (c *Command) readInput() (any, error) {
	var (
		src []byte
		err error
	)
	if c.flagInput == "-" {
		src, err = io.ReadAll(c.Stdin)
	} else {
		src, err = afero.ReadFile(c.Fs, c.flagInput)
	}
	if err != nil {
		return nil, err
	}

	var params any
	if err := yaml.Unmarshal(src, &params); err != nil {
		return nil, err
	}
	return params, nil
}

func (c *Command) write(v any) int {
	var (
		out []byte
		err error
	)
	switch c.flagFormat {
	case "yaml":
		out, err = yaml.Marshal(v)
	default:
		out, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		c.UI.Error(fmt.Sprintf("error encoding output: %v", err))
		return 1
	}

	c.UI.Output(string(out))
	return 0
}
