// Package keygen mints station secret keys.
package keygen

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the length of keys minted for new stations.
const DefaultLength = 24

// Bytes >= maxUnbiased are rejected so every alphabet symbol is equally likely.
const maxUnbiased = 256 - (256 % len(alphabet))

// Generate returns n characters drawn uniformly from [A-Za-z0-9] using crypto/rand.
func Generate(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("keygen: invalid key length %d", n)
	}

	out := make([]byte, 0, n)
	buf := make([]byte, n+n/4)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("keygen: reading random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

// Valid reports whether key is at least minLen characters, all from [A-Za-z0-9].
func Valid(key string, minLen int) bool {
	if len(key) < minLen || key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if strings.IndexByte(alphabet, key[i]) < 0 {
			return false
		}
	}
	return true
}
