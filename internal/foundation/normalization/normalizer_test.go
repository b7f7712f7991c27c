package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnum string

const (
	testAlpha testEnum = "alpha"
	testBeta  testEnum = "beta"
)

func newTestNormalizer() *Normalizer[testEnum] {
	return NewNormalizer("test enum", map[string]testEnum{
		"alpha": testAlpha,
		"Beta":  testBeta,
	}, testAlpha)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name     string
		input    string
		expected testEnum
	}{
		{"exact match", "alpha", testAlpha},
		{"case insensitive", "BETA", testBeta},
		{"with spaces", "  beta  ", testBeta},
		{"invalid input", "gamma", testAlpha},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_Parse(t *testing.T) {
	n := newTestNormalizer()

	v, err := n.Parse("")
	require.NoError(t, err)
	assert.Equal(t, testAlpha, v)

	v, err = n.Parse(" Beta")
	require.NoError(t, err)
	assert.Equal(t, testBeta, v)

	_, err = n.Parse("gamma")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid test enum")
	assert.Contains(t, err.Error(), "[alpha beta]")
}

func TestNormalizer_ValidKeysIsCopy(t *testing.T) {
	n := newTestNormalizer()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"alpha", "beta"}, n.ValidKeys())
}
