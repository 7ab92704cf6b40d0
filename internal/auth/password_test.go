package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/tirgei/questioner/internal/apperror"
)

// newTestPasswordService uses bcrypt's minimum cost so tests run in
// milliseconds instead of ~250ms per hash.
func newTestPasswordService() *PasswordService {
	return NewPasswordServiceWithCost(bcrypt.MinCost)
}

func TestHash_ReturnsBcryptDigest(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("asfD3#sdg")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "" {
		t.Fatal("Hash() returned empty string")
	}
	// bcrypt hashes always start with $2a$ or $2b$
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash() does not look like a bcrypt hash: %q", hash)
	}
	if hash == "asfD3#sdg" {
		t.Error("Hash() returned the plaintext")
	}
}

func TestHash_SamePasswordDifferentHashes(t *testing.T) {
	ps := newTestPasswordService()

	h1, err := ps.Hash("asfD3#sdg")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := ps.Hash("asfD3#sdg")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// Each hash embeds a random salt
	if h1 == h2 {
		t.Error("two hashes of the same password are identical — salt missing?")
	}
}

func TestHash_RejectsOverlongPassword(t *testing.T) {
	ps := newTestPasswordService()

	if _, err := ps.Hash(strings.Repeat("x", 73)); err == nil {
		t.Error("Hash() accepted a 73-byte password; bcrypt would truncate it")
	}
}

func TestVerify_Match(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("asfD3#sdg")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := ps.Verify(hash, "asfD3#sdg"); err != nil {
		t.Errorf("Verify() with correct password error = %v", err)
	}
}

func TestVerify_MismatchFailsExplicitly(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("asfD3#sdg")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	err = ps.Verify(hash, "wrong-password")
	if err == nil {
		t.Fatal("Verify() with wrong password returned nil; mismatch must be an explicit error")
	}
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("Verify() mismatch error = %v, want ErrUnauthorized", err)
	}
}
