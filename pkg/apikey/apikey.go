// Package apikey generates and checks the opaque API keys that identify
// accounts on every request.
package apikey

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// Prefix is the key prefix for this service. Keys look like
// "hh_MFRGG...": the prefix makes leaked keys greppable.
const Prefix = "hh"

// Generate generates a new API key with the given prefix
func Generate(prefix string) (string, error) {
	// Generate 20 random bytes
	bytes := make([]byte, 20)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	// Encode to base32 and remove padding
	encoded := base32.StdEncoding.EncodeToString(bytes)
	encoded = strings.ReplaceAll(encoded, "=", "")

	// Format as prefix_encoded
	return prefix + "_" + encoded, nil
}

// HasPrefix reports whether a presented credential looks like one of our
// keys, letting the auth middleware reject junk before touching storage.
func HasPrefix(key, prefix string) bool {
	return strings.HasPrefix(key, prefix+"_")
}
