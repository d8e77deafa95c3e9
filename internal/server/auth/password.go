package auth

import (
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for newly stored hashes.
const PasswordCost = 12

// PasswordHasher turns plaintext passwords into self-salted bcrypt hashes
// and checks candidates against them.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: PasswordCost}
}

// NewPasswordHasherWithCost is for tests that cannot afford PasswordCost.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

// Hash returns an encoded hash carrying algorithm, cost and salt. Any
// failure, including passwords over bcrypt's 72 byte limit, wraps
// common.ErrHashing.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrHashing, err)
	}
	return string(b), nil
}

// Verify reports whether plaintext matches stored. A malformed stored hash
// is a mismatch, never an error.
func (h *PasswordHasher) Verify(plaintext, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
}
