package namsor

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Field is the wire name of a per-entry field.
type Field string

const (
	FieldFirstName      Field = "firstName"
	FieldLastName       Field = "lastName"
	FieldName           Field = "name"
	FieldCountryIso2    Field = "countryIso2"
	FieldSubdivisionIso Field = "subdivisionIso"
)

// fieldAliases maps alternative input keys onto wire field names.
var fieldAliases = map[string]Field{
	"fullName":        FieldName,
	"properNoun":      FieldName,
	"countryCode":     FieldCountryIso2,
	"subdivisionCode": FieldSubdivisionIso,
}

// NameEntry is one batch item as entered by the user.
type NameEntry struct {
	FirstName      string `mapstructure:"firstName" json:"firstName,omitempty"`
	LastName       string `mapstructure:"lastName" json:"lastName,omitempty"`
	Name           string `mapstructure:"name" json:"name,omitempty"`
	CountryIso2    string `mapstructure:"countryIso2" json:"countryIso2,omitempty"`
	SubdivisionIso string `mapstructure:"subdivisionIso" json:"subdivisionIso,omitempty"`
}

// Value returns the trimmed value of field f.
func (e NameEntry) Value(f Field) string {
	switch f {
	case FieldFirstName:
		return strings.TrimSpace(e.FirstName)
	case FieldLastName:
		return strings.TrimSpace(e.LastName)
	case FieldName:
		return strings.TrimSpace(e.Name)
	case FieldCountryIso2:
		return strings.ToUpper(strings.TrimSpace(e.CountryIso2))
	case FieldSubdivisionIso:
		return strings.ToUpper(strings.TrimSpace(e.SubdivisionIso))
	}
	return ""
}

// Has reports whether field f carries a non-blank value.
func (e NameEntry) Has(f Field) bool {
	return e.Value(f) != ""
}

// DecodeEntries converts raw host rows into entries. Unknown keys are ignored and
// scalar values of other types (numbers, booleans) are converted to strings.
func DecodeEntries(rows []map[string]any) ([]NameEntry, error) {
	entries := make([]NameEntry, 0, len(rows))
	for i, row := range rows {
		var entry NameEntry
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &entry,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create decoder: %w", err)
		}
		if err := decoder.Decode(canonicalKeys(row)); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DecodeParams accepts the shapes a host may pass for a name collection: a list of
// rows, or a fixed collection object of the form {"nameValues": [...]}. A nil
// value decodes to an empty batch.
func DecodeParams(params any) ([]NameEntry, error) {
	switch v := params.(type) {
	case nil:
		return []NameEntry{}, nil
	case []NameEntry:
		return v, nil
	case []map[string]any:
		return DecodeEntries(v)
	case []any:
		rows := make([]map[string]any, 0, len(v))
		for i, item := range v {
			row, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("entry %d: expected an object, got %T", i+1, item)
			}
			rows = append(rows, row)
		}
		return DecodeEntries(rows)
	case map[string]any:
		values, ok := v["nameValues"]
		if !ok {
			return []NameEntry{}, nil
		}
		return DecodeParams(values)
	default:
		return nil, fmt.Errorf("unsupported parameter type %T", params)
	}
}

// canonicalKeys rewrites aliased keys. An explicit wire key wins over its alias.
func canonicalKeys(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		if alias, ok := fieldAliases[k]; ok {
			if _, explicit := row[string(alias)]; explicit {
				continue
			}
			out[string(alias)] = v
			continue
		}
		out[k] = v
	}
	return out
}
