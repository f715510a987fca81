package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCityNames(t *testing.T) {
	names := GetCityNames()

	require.Len(t, names, len(SupportedCities))
	assert.Contains(t, names, "amsterdam")
	assert.Contains(t, names, "the hague")

	seen := make(map[string]bool)
	for _, name := range names {
		assert.False(t, seen[name], "duplicate city name: %s", name)
		seen[name] = true
	}
}

func TestGetCityByName(t *testing.T) {
	tests := []struct {
		name     string
		city     string
		expected bool
	}{
		{
			name:     "Known city",
			city:     "utrecht",
			expected: true,
		},
		{
			name:     "Unknown city",
			city:     "atlantis",
			expected: false,
		},
		{
			name:     "Lookup is case sensitive",
			city:     "Utrecht",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city := GetCityByName(tt.city)
			if !tt.expected {
				assert.Nil(t, city)
				return
			}
			require.NotNil(t, city)
			assert.Equal(t, tt.city, city.Name)
			assert.Len(t, city.Center, 2)
		})
	}
}
