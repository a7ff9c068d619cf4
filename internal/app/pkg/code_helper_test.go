package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVoucherCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		code, err := GenerateVoucherCode()
		require.NoError(t, err)

		assert.Len(t, code, VoucherCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(voucherCharset, r), "unexpected character %q in code %s", r, code)
		}

		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestVoucherCharsetHasNoLookalikes(t *testing.T) {
	for _, r := range "0O1IL" {
		assert.False(t, strings.ContainsRune(voucherCharset, r))
	}
}
