package apikey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	first, err := Generate(Prefix)
	require.NoError(t, err)
	second, err := Generate(Prefix)
	require.NoError(t, err)

	assert.True(t, HasPrefix(first, Prefix))
	assert.True(t, HasPrefix(second, Prefix))
	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "=")
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix("hh_ABC123", "hh"))
	assert.False(t, HasPrefix("hhABC123", "hh"))
	assert.False(t, HasPrefix("sk_ABC123", "hh"))
	assert.False(t, HasPrefix("", "hh"))
}
