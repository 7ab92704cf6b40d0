package auth

import "sync"

// RevocationList tracks the jtis of logged-out tokens.
//
// A token is implicitly active while its jti is absent; Revoke moves it to
// the revoked state, which is terminal — there is no un-revoke. The set is
// append-only and consulted by the middleware on every protected request.
type RevocationList struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

// NewRevocationList creates an empty ledger.
func NewRevocationList() *RevocationList {
	return &RevocationList{revoked: make(map[string]struct{})}
}

// Revoke records the jti as invalid. Revoking an already revoked jti is a
// no-op, so logout is idempotent.
func (l *RevocationList) Revoke(jti string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revoked[jti] = struct{}{}
}

// IsRevoked reports whether the jti has been revoked.
func (l *RevocationList) IsRevoked(jti string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.revoked[jti]
	return ok
}
