// Package domain defines the core domain models for license issuance and
// validation. A license record binds one buyer email to one issued key and is
// append-only: after creation this core never mutates or deletes it.
package domain

import (
	"strings"
	"time"
)

// Status is the lifecycle state stored on a license record.
type Status string

const (
	// StatusActive is the only status issuance ever writes.
	StatusActive Status = "ACTIVE"
	// StatusRevoked is reserved for an out-of-band transition; no code path
	// here produces it, but validation honors it by excluding any
	// non-active value.
	StatusRevoked Status = "REVOKED"
)

// Active reports whether the status grants a valid license. Stored values are
// compared case-insensitively since external stores may normalize casing.
func (s Status) Active() bool {
	return strings.EqualFold(string(s), string(StatusActive))
}

// License is the stored record for one issuance.
type License struct {
	// CustomerEmail is the buyer's address and the store's lookup key.
	CustomerEmail string
	// Key is the license key: uppercase hyphenated hex (canonical UUID text),
	// generated once at issuance and immutable thereafter.
	Key string
	// IssuedAt is the UTC timestamp set once at creation.
	IssuedAt time.Time
	// Status is ACTIVE at creation; validation treats it as authoritative.
	Status Status
}

// KeyMatches compares a supplied key against the stored one, ignoring case.
func (l *License) KeyMatches(key string) bool {
	return strings.EqualFold(l.Key, key)
}

// PurchaseEvent carries the two fields this core needs from a payment
// provider notification. The provider delivers many status transitions
// (pending, refunded, chargeback); only the approved-sale code is actionable.
type PurchaseEvent struct {
	// TransStatus is the provider-defined completion status code, already
	// stringified.
	TransStatus string
	// CustomerEmail is the buyer's address; may be absent in the payload.
	CustomerEmail string
}

// Approved reports whether the event represents a completed sale.
func (e *PurchaseEvent) Approved(approvedCode string) bool {
	return e.TransStatus == approvedCode
}

// IssuanceOutcome is the result of handling a purchase event.
type IssuanceOutcome struct {
	// Issued is false when the event was filtered out as not an approved sale.
	Issued bool
	// LicenseKey is the freshly minted key; empty when Issued is false.
	LicenseKey string
}

// Verdict is the result of checking a supplied key+email pair.
type Verdict string

const (
	// VerdictActive means the stored key matched and the record is active.
	VerdictActive Verdict = "ACTIVE"
	// VerdictInvalid covers every non-active outcome, including unknown email.
	VerdictInvalid Verdict = "INVALID"
)

// ValidationResult pairs a verdict with a human-readable reason. The reason
// for an invalid verdict deliberately does not distinguish a wrong key from
// an inactive record.
type ValidationResult struct {
	Verdict Verdict
	Reason  string
}
