package mock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namsor/namsor-connector/pkg/namsor"
)

func request(t *testing.T, resource, operation string, entries ...namsor.NameEntry) *namsor.Request {
	t.Helper()

	op, err := namsor.DefaultRegistry().Lookup(resource, operation)
	require.NoError(t, err)
	req, err := namsor.NewRequest(op, entries)
	require.NoError(t, err)
	return req
}

func TestProvider_Do(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	req := request(t, "gender", "byName",
		namsor.NameEntry{FirstName: "John", LastName: "Smith"},
		namsor.NameEntry{FirstName: "Maria", LastName: "Rossi"},
	)

	resp, err := p.Do(ctx, req)
	require.NoError(t, err)

	items, ok := resp["personalNames"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)
	assert.Equal(t, "1", first["id"])
	assert.Equal(t, "John", first["firstName"])
	assert.Equal(t, "male", first["likelyGender"])
	assert.Equal(t, "female", items[1].(map[string]any)["likelyGender"])

	assert.Len(t, p.Requests(), 1)
	assert.Equal(t, "mock", p.Name())
}

func TestProvider_Do_EveryOperation(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	for _, op := range namsor.DefaultRegistry().Operations() {
		op := op
		t.Run(op.Key(), func(t *testing.T) {
			entry := namsor.NameEntry{
				FirstName:      "Priya",
				LastName:       "Sharma",
				Name:           "Priya Sharma",
				SubdivisionIso: "IN-KA",
			}
			req, err := namsor.NewRequest(op, []namsor.NameEntry{entry})
			require.NoError(t, err)

			resp, err := p.Do(ctx, req)
			require.NoError(t, err)

			records := namsor.Normalize(op, resp, true)
			require.Len(t, records, 1)
			assert.NotEmpty(t, records[0])
		})
	}
}

func TestProvider_NameParsing(t *testing.T) {
	p := NewProvider()

	resp, err := p.Do(context.Background(), request(t, "nameParsing", "splitFullNames",
		namsor.NameEntry{Name: "Jean Claude Van Damme"}))
	require.NoError(t, err)

	item := resp["personalNames"].([]any)[0].(map[string]any)
	parsed := item["firstLastName"].(map[string]any)
	assert.Equal(t, "Jean", parsed["firstName"])
	assert.Equal(t, "Claude Van Damme", parsed["lastName"])
}

func TestProvider_WithResponse(t *testing.T) {
	canned := map[string]any{"personalNames": []any{}}
	p := NewProvider().WithResponse("/api2/json/genderBatch", canned)

	resp, err := p.Do(context.Background(), request(t, "gender", "byName", namsor.NameEntry{FirstName: "John"}))
	require.NoError(t, err)
	assert.Equal(t, canned, resp)
}

func TestProvider_WithSimulateErrors(t *testing.T) {
	p := NewProvider().WithName("failing").WithSimulateErrors(true)

	_, err := p.Do(context.Background(), request(t, "gender", "byName", namsor.NameEntry{FirstName: "John"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "genderBatch")
	assert.Equal(t, "failing", p.Name())
}

func TestProvider_WithDelay(t *testing.T) {
	p := NewProvider().WithDelay(1000)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Do(ctx, request(t, "gender", "byName", namsor.NameEntry{FirstName: "John"}))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
