package lifecycle

import (
	"time"

	"github.com/casalivre/casalivre-backend/internal/types"
)

// Signature request statuses. signed, refused and expired are terminal.
const (
	SignaturePending = "pending"
	SignatureSigned  = "signed"
	SignatureRefused = "refused"
	SignatureExpired = "expired"
)

// SignRequest moves pending -> signed, stamping time, origin IP and the
// access token used.
func SignRequest(sig *types.DocumentSignature, ip, token string, now time.Time) error {
	if sig.Status != SignaturePending {
		return &InvalidTransitionError{Operation: "sign request", From: sig.Status}
	}
	sig.Status = SignatureSigned
	sig.SignedAt = &now
	sig.SignatureIP = ip
	sig.SignatureToken = token
	return nil
}

// RefuseRequest moves pending -> refused with the signer's stated reason.
func RefuseRequest(sig *types.DocumentSignature, reason string, now time.Time) error {
	if sig.Status != SignaturePending {
		return &InvalidTransitionError{Operation: "refuse request", From: sig.Status}
	}
	sig.Status = SignatureRefused
	sig.RefusedAt = &now
	sig.RefusalReason = reason
	return nil
}

// ExpireRequest marks a still-pending request expired alongside its document.
// Non-pending requests are left alone; already-signed requests remain
// historical fact.
func ExpireRequest(sig *types.DocumentSignature) bool {
	if sig.Status != SignaturePending {
		return false
	}
	sig.Status = SignatureExpired
	return true
}

// AllSigned reports whether every request in a non-empty set is signed. An
// empty set is never "fully signed".
func AllSigned(sigs []*types.DocumentSignature) bool {
	if len(sigs) == 0 {
		return false
	}
	for _, sig := range sigs {
		if sig.Status != SignatureSigned {
			return false
		}
	}
	return true
}
