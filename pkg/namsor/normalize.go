package namsor

import (
	"strconv"
)

// Record is one output item: either a flattened prediction or the untouched
// upstream response.
type Record map[string]any

// Normalize reshapes an upstream batch response for op.
//
// With simplify unset the raw response is returned as the single record. The
// same passthrough applies when the expected array is missing or is not an
// array, so upstream schema drift never fails the call.
func Normalize(op *Operation, raw map[string]any, simplify bool) []Record {
	if !simplify {
		return []Record{raw}
	}

	items, ok := raw[op.ArrayKey()].([]any)
	if !ok {
		return []Record{raw}
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		src, _ := item.(map[string]any)
		records = append(records, simplifyRecord(op.Output, src))
	}
	return records
}

// simplifyRecord builds the fixed field set of shape from src. Absent or null
// upstream values produce no key.
func simplifyRecord(shape OutputShape, src map[string]any) Record {
	rec := make(Record, len(shape.Fields)+2)

	for _, f := range shape.Fields {
		if v, ok := lookup(src, f.Path); ok {
			rec[f.Key] = v
		}
	}

	if shape.Ranked != nil {
		expandRanked(rec, src, shape.Ranked)
	}

	return rec
}

// expandRanked flattens a TopN array. Index 0 becomes r.Key, index i becomes
// r.Key followed by i+1, so there is never a "1" suffix.
func expandRanked(rec Record, src map[string]any, r *Ranked) {
	top := getStringSliceValue(src, r.Source)

	var primary string
	if r.Primary != "" {
		primary = getStringValue(src, r.Primary)
	}
	if primary == "" && len(top) > 0 {
		primary = top[0]
	}
	if primary == "" && r.Fallback != "" {
		primary = getStringValue(src, r.Fallback)
	}
	if primary != "" {
		rec[r.Key] = primary
	}

	n := len(top)
	if r.Limit > 0 && n > r.Limit {
		n = r.Limit
	}
	// Index 0 is covered by the primary value above.
	for i := 1; i < n; i++ {
		if top[i] != "" {
			rec[RankedKey(r.Key, i)] = top[i]
		}
	}
}

// RankedKey returns the output key for position i of a ranked array.
func RankedKey(key string, i int) string {
	if i == 0 {
		return key
	}
	return key + strconv.Itoa(i+1)
}

// lookup walks path through nested objects.
func lookup(src map[string]any, path []string) (any, bool) {
	var cur any = src
	for _, p := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

func getStringValue(in map[string]any, key string) string {
	if v, ok := in[key]; ok {
		if vv, ok := v.(string); ok {
			return vv
		}
	}
	return ""
}

// getStringSliceValue returns the elements of the array at key. Non-string
// elements become empty strings so positions are preserved.
func getStringSliceValue(in map[string]any, key string) []string {
	v, ok := in[key]
	if !ok || v == nil {
		return nil
	}

	sliceVal, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return ss
		}
		return nil
	}

	result := make([]string, len(sliceVal))
	for i, vv := range sliceVal {
		if s, ok := vv.(string); ok {
			result[i] = s
		}
	}
	return result
}
