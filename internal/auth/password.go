package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/ayush/food-ratings/internal/models"
)

// Hasher turns a plaintext password into a self-contained salted hash
// and checks plaintexts against it.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) bool
}

// BcryptHasher is a Hasher backed by bcrypt. Every Hash call draws a
// fresh salt, which bcrypt stores inside the returned string.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches hashed. A malformed hash is a
// mismatch, and so is a plaintext longer than bcrypt reads: only its first
// 72 bytes would be compared.
func (h *BcryptHasher) Verify(plain, hashed string) bool {
	if len(plain) > models.MaxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
