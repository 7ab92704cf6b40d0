package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tirgei/questioner/internal/apperror"
)

// defaultCost is the bcrypt work factor. Cost 12 takes roughly ~250ms on a
// modern server — negligible for login, expensive for brute force.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// It's a struct (not free functions) so the cost can be injected in tests:
// cost 4 makes tests run in milliseconds without changing the logic.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost (12).
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceWithCost creates a PasswordService with a custom cost.
// Use bcrypt.MinCost in tests; do not lower the cost in production.
func NewPasswordServiceWithCost(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes the plaintext password with bcrypt. The output embeds the
// salt and cost, so it can be stored as a single string.
//
// Returns an error for plaintext longer than 72 bytes — bcrypt would
// silently truncate it otherwise.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks a plaintext candidate against a stored bcrypt hash.
//
// A mismatch fails with an explicit apperror.ErrUnauthorized — never a
// silent false — so callers cannot accidentally ignore a failed check.
// The comparison is constant-time inside bcrypt.
func (p *PasswordService) Verify(hash, candidate string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperror.Unauthorized("Invalid credentials")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
