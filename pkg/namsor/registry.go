package namsor

import (
	"fmt"
	"sort"

	"github.com/iancoleman/strcase"
)

// Registry maps (resource, operation) pairs to their table rows.
type Registry struct {
	ops   map[string]*Operation
	order []*Operation
}

// NewRegistry builds a registry from the given operations. Duplicate keys and
// rows without an endpoint or body key are rejected.
func NewRegistry(ops []Operation) (*Registry, error) {
	r := &Registry{
		ops:   make(map[string]*Operation, len(ops)),
		order: make([]*Operation, 0, len(ops)),
	}

	for i := range ops {
		op := &ops[i]
		if op.Endpoint == "" {
			return nil, fmt.Errorf("operation %s: endpoint is required", op.Key())
		}
		if op.BodyKey == "" {
			return nil, fmt.Errorf("operation %s: body key is required", op.Key())
		}
		if op.Country == CountryGeoSwitch && op.GeoEndpoint == "" {
			return nil, fmt.Errorf("operation %s: geo endpoint is required", op.Key())
		}
		if _, exists := r.ops[op.Key()]; exists {
			return nil, fmt.Errorf("operation %s already registered", op.Key())
		}
		r.ops[op.Key()] = op
		r.order = append(r.order, op)
	}

	return r, nil
}

// DefaultRegistry returns a registry over the package operation table.
func DefaultRegistry() *Registry {
	ops := make([]Operation, len(Operations))
	copy(ops, Operations)

	r, err := NewRegistry(ops)
	if err != nil {
		// The table is static; a failure here is a programming error.
		panic(err)
	}
	return r
}

// Lookup returns the operation for resource and operation. Names may be given
// in camelCase, kebab-case or snake_case ("indian-caste", "by-full-name").
func (r *Registry) Lookup(resource, operation string) (*Operation, error) {
	if op, ok := r.ops[resource+"/"+operation]; ok {
		return op, nil
	}

	key := strcase.ToLowerCamel(resource) + "/" + strcase.ToLowerCamel(operation)
	if op, ok := r.ops[key]; ok {
		return op, nil
	}

	return nil, fmt.Errorf("%w: resource %q, operation %q", ErrUnknownOperation, resource, operation)
}

// Operations returns all operations in registration order.
func (r *Registry) Operations() []*Operation {
	out := make([]*Operation, len(r.order))
	copy(out, r.order)
	return out
}

// Resources returns the distinct resources, sorted.
func (r *Registry) Resources() []Resource {
	seen := make(map[Resource]bool)
	var out []Resource
	for _, op := range r.order {
		if !seen[op.Resource] {
			seen[op.Resource] = true
			out = append(out, op.Resource)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ForResource returns the operations registered under resource.
func (r *Registry) ForResource(resource Resource) []*Operation {
	var out []*Operation
	for _, op := range r.order {
		if op.Resource == resource {
			out = append(out, op)
		}
	}
	return out
}
