package auth

import "testing"

func TestRevocationList_ActiveByDefault(t *testing.T) {
	ledger := NewRevocationList()

	if ledger.IsRevoked("some-jti") {
		t.Error("jti revoked before Revoke was called")
	}
}

func TestRevocationList_RevokeIsTerminal(t *testing.T) {
	ledger := NewRevocationList()

	ledger.Revoke("jti-1")

	if !ledger.IsRevoked("jti-1") {
		t.Error("jti not revoked after Revoke")
	}
	if ledger.IsRevoked("jti-2") {
		t.Error("revoking one jti affected another")
	}
}

func TestRevocationList_RevokeIsIdempotent(t *testing.T) {
	ledger := NewRevocationList()

	ledger.Revoke("jti-1")
	ledger.Revoke("jti-1")

	if !ledger.IsRevoked("jti-1") {
		t.Error("double Revoke cleared the revocation")
	}
}
