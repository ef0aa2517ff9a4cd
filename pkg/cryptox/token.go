package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RandomString returns size bytes from crypto/rand, base64url encoded
// without padding.
func RandomString(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
