package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenBytes is the entropy of an access token. Tokens are hex encoded,
// so the wire form is twice as long.
const TokenBytes = 128

// TokenIssuer creates opaque bearer tokens.
type TokenIssuer interface {
	Issue() (string, error)
}

// RandomTokenIssuer reads tokens from crypto/rand.
type RandomTokenIssuer struct{}

func (RandomTokenIssuer) Issue() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// WellFormed reports whether token has the shape RandomTokenIssuer produces.
func WellFormed(token string) bool {
	if len(token) != 2*TokenBytes {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}
