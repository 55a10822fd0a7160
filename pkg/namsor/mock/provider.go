package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/namsor/namsor-connector/pkg/namsor"
)

// Provider is a mock Namsor transport for testing and dry runs.
// It generates predictable responses without calling the API.
type Provider struct {
	name           string
	simulateErrors bool
	delayMS        int
	responses      map[string]map[string]any

	mu       sync.Mutex
	requests []*namsor.Request
}

// Compile-time check
var _ namsor.Transport = (*Provider)(nil)

// NewProvider creates a new mock provider.
func NewProvider() *Provider {
	return &Provider{
		name:      "mock",
		responses: make(map[string]map[string]any),
	}
}

// WithName sets a custom name for the provider.
func (p *Provider) WithName(name string) *Provider {
	p.name = name
	return p
}

// WithSimulateErrors enables error simulation for testing error handling.
func (p *Provider) WithSimulateErrors(enable bool) *Provider {
	p.simulateErrors = enable
	return p
}

// WithDelay adds artificial delay to simulate API latency.
func (p *Provider) WithDelay(ms int) *Provider {
	p.delayMS = ms
	return p
}

// WithResponse returns resp verbatim for requests to path (e.g.
// "/api2/json/genderBatch").
func (p *Provider) WithResponse(path string, resp map[string]any) *Provider {
	p.responses[path] = resp
	return p
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return p.name
}

// Requests returns the requests received so far.
func (p *Provider) Requests() []*namsor.Request {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*namsor.Request, len(p.requests))
	copy(out, p.requests)
	return out
}

// Do records req and returns a canned response with one item per entry.
func (p *Provider) Do(ctx context.Context, req *namsor.Request) (map[string]any, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()

	if p.simulateErrors {
		return nil, fmt.Errorf("mock error: %s failed", req.Path)
	}

	if p.delayMS > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(p.delayMS) * time.Millisecond):
		}
	}

	if resp, ok := p.responses[req.Path]; ok {
		return resp, nil
	}

	key := req.Operation.ArrayKey()
	items := make([]any, 0, len(req.Body[key]))
	for i, in := range req.Body[key] {
		item := map[string]any{
			"id":     fmt.Sprintf("%d", i+1),
			"script": "LATIN",
		}
		for k, v := range in {
			item[k] = v
		}
		predictFor(req.Operation.Resource, item)
		items = append(items, item)
	}

	return map[string]any{key: items}, nil
}

// predictFor fills item with deterministic values for resource.
func predictFor(resource namsor.Resource, item map[string]any) {
	item["probabilityCalibrated"] = 0.85

	switch resource {
	case namsor.ResourceCountry:
		item["country"] = "US"
		item["countriesTop"] = []any{"US", "GB", "CA"}
		item["region"] = "Americas"
		item["subRegion"] = "Northern America"

	case namsor.ResourceEthnicity:
		item["ethnicity"] = "British"
		item["ethnicitiesTop"] = []any{"British", "Irish", "German"}

	case namsor.ResourceGender:
		item["likelyGender"] = mockGender(firstNameOf(item))

	case namsor.ResourceIndianCaste:
		item["castegroup"] = "General"
		item["castegroupTop"] = []any{"General", "OBC", "SC", "ST", "Muslim", "Christian"}

	case namsor.ResourceNameParsing:
		first, last := splitName(stringOf(item, "name"))
		item["firstLastName"] = map[string]any{"firstName": first, "lastName": last}

	case namsor.ResourceNameType:
		item["commonType"] = "anthroponym"
		item["commonTypeAlt"] = "toponym"

	case namsor.ResourceOrigin:
		item["countryOrigin"] = "GB"
		item["countriesOriginTop"] = []any{"GB", "IE", "US"}
		item["regionOrigin"] = "Europe"
		item["subRegionOrigin"] = "Northern Europe"

	case namsor.ResourceUSRaceEthnicity:
		item["raceEthnicity"] = "W_NL"
		item["raceEthnicitiesTop"] = []any{"W_NL", "HL", "B_NL", "A", "AI_AN", "PI"}
	}
}

func mockGender(firstName string) string {
	name := strings.ToLower(strings.TrimSpace(firstName))
	if strings.HasSuffix(name, "a") || strings.HasSuffix(name, "e") {
		return "female"
	}
	return "male"
}

func firstNameOf(item map[string]any) string {
	if s := stringOf(item, "firstName"); s != "" {
		return s
	}
	first, _ := splitName(stringOf(item, "name"))
	return first
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func stringOf(item map[string]any, key string) string {
	s, _ := item[key].(string)
	return s
}
