package namsor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Len(t, r.Operations(), 14)
	assert.Equal(t, []Resource{
		ResourceCountry,
		ResourceEthnicity,
		ResourceGender,
		ResourceIndianCaste,
		ResourceNameParsing,
		ResourceNameType,
		ResourceOrigin,
		ResourceUSRaceEthnicity,
	}, r.Resources())

	gender := r.ForResource(ResourceGender)
	require.Len(t, gender, 2)
	assert.Equal(t, "byName", gender[0].Name)
	assert.Equal(t, "byFullName", gender[1].Name)
}

func TestRegistry_Lookup(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		resource  string
		operation string
		want      string
	}{
		{"gender", "byName", "gender/byName"},
		{"indian-caste", "by-full-name", "indianCaste/byFullName"},
		{"us_race_ethnicity", "by_name", "usRaceEthnicity/byName"},
		{"name-parsing", "split-full-names", "nameParsing/splitFullNames"},
		{"name-type", "proper-noun-type", "nameType/properNounType"},
	}

	for _, tt := range tests {
		t.Run(tt.resource+"/"+tt.operation, func(t *testing.T) {
			op, err := r.Lookup(tt.resource, tt.operation)
			require.NoError(t, err)
			assert.Equal(t, tt.want, op.Key())
		})
	}

	_, err := r.Lookup("gender", "byShoeSize")
	assert.True(t, errors.Is(err, ErrUnknownOperation))
}

func TestNewRegistry_Rejects(t *testing.T) {
	base := Operation{Resource: ResourceGender, Name: "byName", Endpoint: "genderBatch", BodyKey: BodyKeyPersonalNames}

	t.Run("duplicate", func(t *testing.T) {
		_, err := NewRegistry([]Operation{base, base})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("missing endpoint", func(t *testing.T) {
		op := base
		op.Endpoint = ""
		_, err := NewRegistry([]Operation{op})
		assert.Error(t, err)
	})

	t.Run("geo switch without geo endpoint", func(t *testing.T) {
		op := base
		op.Country = CountryGeoSwitch
		_, err := NewRegistry([]Operation{op})
		assert.Error(t, err)
	})
}

func TestOperations_Invariants(t *testing.T) {
	for _, op := range DefaultRegistry().Operations() {
		assert.NotEmpty(t, op.DisplayName, op.Key())
		assert.NotContains(t, op.Fields, FieldCountryIso2, op.Key())
		if op.Resource == ResourceNameType {
			assert.Equal(t, BodyKeyProperNouns, op.BodyKey)
		} else {
			assert.Equal(t, BodyKeyPersonalNames, op.BodyKey, op.Key())
		}
	}
}
