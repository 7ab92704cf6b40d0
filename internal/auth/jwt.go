// Package auth provides token minting and validation, password hashing and
// the revocation ledger for logged-out tokens.
//
// TOKEN MODEL:
// Two token kinds are issued, both HS256-signed JWTs:
//
//   - Access tokens (15 min): authorize protected requests. Tokens minted
//     directly by register/login carry fresh=true; tokens minted via the
//     refresh endpoint carry fresh=false.
//   - Refresh tokens (30 days): exchanged at /token/refresh for a new,
//     non-fresh access token.
//
// Every token carries a jti (unique token id). Logout records the jti in
// the RevocationList; the middleware rejects revoked jtis on every
// protected request, so a logged-out token stops working before it expires.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"

	"github.com/tirgei/questioner/internal/apperror"
)

const (
	issuer     = "questioner"
	accessTTL  = 15 * time.Minute
	refreshTTL = 30 * 24 * time.Hour

	useAccess  = "access"
	useRefresh = "refresh"
)

// TokenService signs and validates JWTs with a shared HMAC secret.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// tokenClaims is the JWT payload. Subject holds the user id, ID (jti) the
// unique token identifier used for revocation, TokenUse distinguishes
// access from refresh tokens so one cannot be replayed as the other.
type tokenClaims struct {
	jwt.RegisteredClaims
	TokenUse string `json:"token_use"`
	Fresh    bool   `json:"fresh"`
}

// Claims is the validated identity extracted from a token.
type Claims struct {
	UserID int
	JTI    string
	Fresh  bool
}

// GenerateAccess mints a signed access token bound to userID.
//
// fresh should be true only when the user just proved their credentials
// (register/login); the refresh flow mints non-fresh tokens.
func (s *TokenService) GenerateAccess(userID int, fresh bool) (string, error) {
	return s.generate(userID, useAccess, fresh, accessTTL)
}

// GenerateRefresh mints a signed refresh token bound to userID.
func (s *TokenService) GenerateRefresh(userID int) (string, error) {
	return s.generate(userID, useRefresh, false, refreshTTL)
}

func (s *TokenService) generate(userID int, use string, fresh bool, ttl time.Duration) (string, error) {
	now := time.Now()

	c := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
		TokenUse: use,
		Fresh:    fresh,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// ValidateAccess parses and verifies an access token.
// Fails with apperror.ErrUnauthorized if the token is expired, tampered,
// signed with the wrong algorithm, or is not an access token.
func (s *TokenService) ValidateAccess(tokenStr string) (*Claims, error) {
	return s.validate(tokenStr, useAccess)
}

// ValidateRefresh parses and verifies a refresh token.
func (s *TokenService) ValidateRefresh(tokenStr string) (*Claims, error) {
	return s.validate(tokenStr, useRefresh)
}

func (s *TokenService) validate(tokenStr, use string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&tokenClaims{},
		func(token *jwt.Token) (any, error) {
			// Reject tokens that aren't signed with HMAC — prevents
			// algorithm confusion attacks.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Unauthorized("Token has expired")
		}
		return nil, apperror.Unauthorized("Invalid token")
	}

	c, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, apperror.Unauthorized("Invalid token")
	}
	if c.TokenUse != use {
		return nil, apperror.Unauthorized("Invalid token")
	}

	userID, err := strconv.Atoi(c.Subject)
	if err != nil || userID <= 0 {
		return nil, apperror.Unauthorized("Invalid token")
	}
	if c.ID == "" {
		return nil, apperror.Unauthorized("Invalid token")
	}

	return &Claims{UserID: userID, JTI: c.ID, Fresh: c.Fresh}, nil
}
