package namsor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Transport executes a prepared request and returns the decoded JSON response.
type Transport interface {
	Do(ctx context.Context, req *Request) (map[string]any, error)
}

// Connector runs operations: validate, build, send once, normalize.
// It holds no per-call state and is safe for concurrent use.
type Connector struct {
	registry  *Registry
	transport Transport
	logger    hclog.Logger
}

// ConnectorConfig holds configuration for the connector.
type ConnectorConfig struct {
	Registry  *Registry // Defaults to DefaultRegistry()
	Transport Transport // Required
	Logger    hclog.Logger
}

// Invocation is one caller request.
type Invocation struct {
	Resource  string
	Operation string
	Entries   []NameEntry
	Simplify  bool
}

// Result is the outcome of an invocation.
type Result struct {
	// ID correlates log lines of one invocation.
	ID      string
	Request *Request
	// Raw is the upstream response as decoded.
	Raw     map[string]any
	Records []Record
}

// NewConnector creates a new connector.
func NewConnector(cfg ConnectorConfig) (*Connector, error) {
	if cfg.Transport == nil {
		return nil, fmt.Errorf("transport is required")
	}
	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	return &Connector{
		registry:  cfg.Registry,
		transport: cfg.Transport,
		logger:    cfg.Logger.Named("connector"),
	}, nil
}

// Registry returns the operation registry in use.
func (c *Connector) Registry() *Registry {
	return c.registry
}

// Prepare resolves the operation and builds the outbound request without
// sending it.
func (c *Connector) Prepare(resource, operation string, entries []NameEntry) (*Request, error) {
	op, err := c.registry.Lookup(resource, operation)
	if err != nil {
		return nil, err
	}
	return NewRequest(op, entries)
}

// Execute runs one invocation. Validation failures are returned before any
// network call; transport errors are returned wrapped.
func (c *Connector) Execute(ctx context.Context, inv Invocation) (*Result, error) {
	id := uuid.NewString()
	logger := c.logger.With("invocation_id", id)

	req, err := c.Prepare(inv.Resource, inv.Operation, inv.Entries)
	if err != nil {
		logger.Debug("invocation rejected",
			"resource", inv.Resource,
			"operation", inv.Operation,
			"entries", len(inv.Entries),
			"error", err,
		)
		return nil, err
	}

	logger.Debug("sending batch",
		"operation", req.Operation.Key(),
		"endpoint", req.Path,
		"geo", req.Geo,
		"entries", len(req.Entries),
		"dropped", len(inv.Entries)-len(req.Entries),
	)

	start := time.Now()
	raw, err := c.transport.Do(ctx, req)
	if err != nil {
		logger.Error("batch request failed",
			"operation", req.Operation.Key(),
			"endpoint", req.Path,
			"error", err,
		)
		return nil, fmt.Errorf("%s: %w", req.Operation.Key(), err)
	}

	records := Normalize(req.Operation, raw, inv.Simplify)

	logger.Info("batch completed",
		"operation", req.Operation.Key(),
		"endpoint", req.Path,
		"entries", len(req.Entries),
		"records", len(records),
		"simplify", inv.Simplify,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Result{
		ID:      id,
		Request: req,
		Raw:     raw,
		Records: records,
	}, nil
}

// ExecuteParams decodes host parameters (see DecodeParams) and executes.
func (c *Connector) ExecuteParams(ctx context.Context, resource, operation string, params any, simplify bool) (*Result, error) {
	entries, err := DecodeParams(params)
	if err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}

	return c.Execute(ctx, Invocation{
		Resource:  resource,
		Operation: operation,
		Entries:   entries,
		Simplify:  simplify,
	})
}
