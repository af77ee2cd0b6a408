package beacon

import (
	"crypto/rand"
	"encoding/hex"
)

// NewNonce is the default TokenSource: 16 hex characters of OS randomness.
func NewNonce() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
