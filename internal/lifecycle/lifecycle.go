package lifecycle

import (
	"fmt"
	"time"

	"github.com/casalivre/casalivre-backend/internal/types"
)

// Document statuses.
const (
	StatusDraft           = "draft"
	StatusGenerated       = "generated"
	StatusSent            = "sent"
	StatusPartiallySigned = "partially_signed"
	StatusSigned          = "signed"
	StatusCancelled       = "cancelled"
	StatusExpired         = "expired"
)

// InvalidTransitionError is returned whenever a lifecycle operation is
// attempted from a status that forbids it. Status never changes through
// direct field writes; these functions are the only legal mutation points.
type InvalidTransitionError struct {
	Operation string
	From      string
	Reason    string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s document in status %q: %s", e.Operation, e.From, e.Reason)
	}
	return fmt.Sprintf("cannot %s document in status %q", e.Operation, e.From)
}

// Finalize moves draft -> generated, assigning the document number exactly
// once. The number must already have been issued atomically by the caller's
// transaction.
func Finalize(doc *types.Document, number string, now time.Time) error {
	if doc.Status != StatusDraft {
		return &InvalidTransitionError{Operation: "finalize", From: doc.Status}
	}
	if doc.DocumentNumber != nil {
		return &InvalidTransitionError{Operation: "finalize", From: doc.Status, Reason: "document number already assigned"}
	}
	doc.DocumentNumber = &number
	doc.Status = StatusGenerated
	doc.GeneratedAt = now
	return nil
}

// Send moves generated -> sent. Signature requests are created by the caller
// alongside this transition.
func Send(doc *types.Document, now time.Time) error {
	if doc.Status != StatusGenerated {
		return &InvalidTransitionError{Operation: "send", From: doc.Status, Reason: "document must be generated to be sent"}
	}
	doc.Status = StatusSent
	doc.SentAt = &now
	return nil
}

// ApplySignatureProgress recomputes the document status from its signature
// set after a signature event: sent -> partially_signed once at least one is
// signed, and -> signed (stamping SignedAt) once all are.
func ApplySignatureProgress(doc *types.Document, sigs []*types.DocumentSignature, now time.Time) error {
	switch doc.Status {
	case StatusSent, StatusPartiallySigned:
	default:
		return &InvalidTransitionError{Operation: "apply signature", From: doc.Status}
	}
	if AllSigned(sigs) {
		doc.Status = StatusSigned
		doc.SignedAt = &now
		return nil
	}
	for _, sig := range sigs {
		if sig.Status == SignatureSigned {
			doc.Status = StatusPartiallySigned
			return nil
		}
	}
	return nil
}

// Cancel is legal from any non-terminal status; a signed document is
// historical fact and stays signed.
func Cancel(doc *types.Document, cancelledBy, reason string, now time.Time) error {
	switch doc.Status {
	case StatusSigned:
		return &InvalidTransitionError{Operation: "cancel", From: doc.Status, Reason: "cannot cancel a signed document"}
	case StatusCancelled, StatusExpired:
		return &InvalidTransitionError{Operation: "cancel", From: doc.Status}
	}
	doc.Status = StatusCancelled
	doc.CancelledAt = &now
	doc.CancelledBy = cancelledBy
	doc.CancellationReason = reason
	return nil
}

// Expire fires only on sent/partially_signed documents past their signature
// deadline. It is an idempotent no-op on terminal statuses so the sweep can
// run repeatedly.
func Expire(doc *types.Document, now time.Time) (bool, error) {
	switch doc.Status {
	case StatusSigned, StatusCancelled, StatusExpired:
		return false, nil
	case StatusSent, StatusPartiallySigned:
	default:
		return false, nil
	}
	if doc.SignatureDeadlineAt == nil || !now.After(*doc.SignatureDeadlineAt) {
		return false, nil
	}
	doc.Status = StatusExpired
	return true, nil
}
