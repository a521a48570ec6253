package helpers

import (
	"crypto/rand"
	"encoding/base64"
)

// GenToken returns n random bytes base64 RawURL encoded, safe to embed
// in a verification link. n must be at least 16 to keep 128 bits of
// entropy in the token.
func GenToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
