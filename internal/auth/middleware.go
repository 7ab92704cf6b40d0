package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the claims stored in a request context.
type contextKey string

const claimsKey contextKey = "authClaims"

// RequireAuth enforces access-token authentication on protected routes.
//
// It reads the bearer token from the Authorization header, validates it,
// rejects revoked jtis against the ledger and stores the claims in the
// request context. Missing, invalid, expired or revoked tokens end the
// request with 401.
func RequireAuth(tokens *TokenService, ledger *RevocationList) func(http.Handler) http.Handler {
	return middleware(ledger, tokens.ValidateAccess)
}

// RequireRefresh is RequireAuth for the refresh endpoint: it accepts only
// refresh tokens.
func RequireRefresh(tokens *TokenService, ledger *RevocationList) func(http.Handler) http.Handler {
	return middleware(ledger, tokens.ValidateRefresh)
}

func middleware(ledger *RevocationList, validate func(string) (*Claims, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w, "Missing authorization token")
				return
			}

			claims, err := validate(tokenStr)
			if err != nil {
				writeUnauthorized(w, err.Error())
				return
			}

			// A logged-out token is rejected even though its signature and
			// expiry still check out.
			if ledger.IsRevoked(claims.JTI) {
				writeUnauthorized(w, "Token has been revoked")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retrieves the authenticated claims set by the
// middleware. ok is false on unauthenticated requests.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok && claims != nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

// writeUnauthorized ends the request with the standard 401 envelope.
// The middleware cannot import the handler package (it would be a cycle),
// so it encodes the envelope itself.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  http.StatusUnauthorized,
		"message": message,
	})
}
