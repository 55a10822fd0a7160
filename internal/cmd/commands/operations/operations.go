package operations

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/namsor/namsor-connector/internal/cmd/base"
	"github.com/namsor/namsor-connector/pkg/namsor"
)

type Command struct {
	*base.Command

	flagFormat   string
	flagResource string
}

// operationInfo is the listing form of a registry row.
type operationInfo struct {
	Resource    string `json:"resource" yaml:"resource"`
	Operation   string `json:"operation" yaml:"operation"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Action      string `json:"action" yaml:"action"`
	Endpoint    string `json:"endpoint" yaml:"endpoint"`
	GeoEndpoint string `json:"geoEndpoint,omitempty" yaml:"geoEndpoint,omitempty"`
	BodyKey     string `json:"bodyKey" yaml:"bodyKey"`
}

func (c *Command) Synopsis() string {
	return "List the supported resources and operations"
}

func (c *Command) Help() string {
	return `Usage: namsor operations [options]

  Lists every resource and operation accepted by "namsor predict", with the
  API endpoints they call.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("operations", flag.ContinueOnError))

	f.StringVar(
		&c.flagFormat, "format", "text",
		"Output format: text, json or yaml.",
	)
	f.StringVar(
		&c.flagResource, "resource", "",
		"Only list operations of this resource.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	registry := namsor.DefaultRegistry()
	var ops []*namsor.Operation
	if c.flagResource != "" {
		ops = registry.ForResource(namsor.Resource(strcase.ToLowerCamel(c.flagResource)))
		if len(ops) == 0 {
			ui.Error(fmt.Sprintf("unknown resource %q (valid: %s)", c.flagResource, resourceNames(registry)))
			return 1
		}
	} else {
		ops = registry.Operations()
	}

	infos := make([]operationInfo, 0, len(ops))
	for _, op := range ops {
		info := operationInfo{
			Resource:    strcase.ToKebab(string(op.Resource)),
			Operation:   strcase.ToKebab(op.Name),
			DisplayName: op.DisplayName,
			Action:      op.Action,
			Endpoint:    namsor.PathPrefix + op.Endpoint,
			BodyKey:     op.BodyKey,
		}
		if op.GeoEndpoint != "" {
			info.GeoEndpoint = namsor.PathPrefix + op.GeoEndpoint
		}
		infos = append(infos, info)
	}

	switch c.flagFormat {
	case "json":
		out, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			ui.Error(fmt.Sprintf("error encoding output: %v", err))
			return 1
		}
		ui.Output(string(out))
	case "yaml":
		out, err := yaml.Marshal(infos)
		if err != nil {
			ui.Error(fmt.Sprintf("error encoding output: %v", err))
			return 1
		}
		ui.Output(string(out))
	case "text":
		for _, info := range infos {
			endpoints := info.Endpoint
			if info.GeoEndpoint != "" {
				endpoints += ", " + info.GeoEndpoint
			}
			ui.Output(fmt.Sprintf("%-18s %-18s %s", info.Resource, info.Operation, info.Action))
			ui.Output(fmt.Sprintf("%-37s %s (%s)", "", endpoints, info.BodyKey))
		}
	default:
		ui.Error(fmt.Sprintf("unsupported format %q (valid: text, json, yaml)", c.flagFormat))
		return 1
	}

	return 0
}

func resourceNames(r *namsor.Registry) string {
	var names []string
	for _, res := range r.Resources() {
		names = append(names, strcase.ToKebab(string(res)))
	}
	return strings.Join(names, ", ")
}
