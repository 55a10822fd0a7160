package namsor

import (
	"encoding/json"
	"fmt"
)

// Request is a validated outbound batch call.
type Request struct {
	Operation *Operation

	// Path is the endpoint path relative to the API base URL.
	Path string

	// Geo is true when the batch was routed to the geo endpoint.
	Geo bool

	// Headers are operation-specific headers. Content negotiation and
	// authentication headers are added by the transport.
	Headers map[string]string

	// Body holds the entries under the operation's body key.
	Body map[string][]map[string]string

	// Entries are the transmitted entries, position-aligned with the response.
	Entries []NameEntry
}

// NewRequest validates entries for op and builds the outbound request.
//
// Endpoint selection is a batch-wide decision made before any filtering: for
// operations with a geo endpoint, a single raw entry carrying countryIso2 routes
// the entire batch to the geo endpoint. Entries without the field are still sent,
// without a countryIso2 key. A whitespace-only countryIso2 counts as absent.
func NewRequest(op *Operation, entries []NameEntry) (*Request, error) {
	geo := op.Country == CountryGeoSwitch && anyHas(entries, FieldCountryIso2)

	kept, err := Validate(op, entries)
	if err != nil {
		return nil, err
	}

	endpoint := op.Endpoint
	if geo {
		endpoint = op.GeoEndpoint
	}

	items := make([]map[string]string, 0, len(kept))
	for _, e := range kept {
		items = append(items, serializeEntry(op, e, geo))
	}

	headers := make(map[string]string, len(op.Headers))
	for k, v := range op.Headers {
		headers[k] = v
	}

	return &Request{
		Operation: op,
		Path:      PathPrefix + endpoint,
		Geo:       geo,
		Headers:   headers,
		Body:      map[string][]map[string]string{op.BodyKey: items},
		Entries:   kept,
	}, nil
}

// MarshalBody encodes the request body as JSON.
func (r *Request) MarshalBody() ([]byte, error) {
	b, err := json.Marshal(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return b, nil
}

// serializeEntry emits only the fields that carry a value.
func serializeEntry(op *Operation, e NameEntry, geo bool) map[string]string {
	out := make(map[string]string, len(op.Fields)+1)
	for _, f := range op.Fields {
		if e.Has(f) {
			out[string(f)] = e.Value(f)
		}
	}

	switch op.Country {
	case CountryGeoSwitch:
		if geo && e.Has(FieldCountryIso2) {
			out[string(FieldCountryIso2)] = e.Value(FieldCountryIso2)
		}
	case CountryOptional:
		if e.Has(FieldCountryIso2) {
			out[string(FieldCountryIso2)] = e.Value(FieldCountryIso2)
		}
	}

	return out
}

func anyHas(entries []NameEntry, f Field) bool {
	for _, e := range entries {
		if e.Has(f) {
			return true
		}
	}
	return false
}
