// Package usecase implements the business logic for license issuance and
// validation. It owns the contracts its collaborators must satisfy: the
// license store and the notifier are external capabilities injected here,
// never concrete clients.
package usecase

import (
	"context"

	licensesDomain "github.com/allisson/licenses/internal/licenses/domain"
)

// LicenseRepository defines the license store capability. The store is an
// external, eventually-available table keyed by buyer email.
type LicenseRepository interface {
	// Append adds one record. It must not silently deduplicate: repeated
	// approved events for the same buyer produce multiple records.
	Append(ctx context.Context, license *licensesDomain.License) error
	// FindByEmail returns the first record for the email by the store's own
	// ordering, or the base not-found error when no record exists.
	FindByEmail(ctx context.Context, email string) (*licensesDomain.License, error)
}

// Mailer defines the notifier capability: fire-and-confirm email dispatch.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// LicenseUseCase defines the license lifecycle operations.
type LicenseUseCase interface {
	// HandlePurchase consumes one purchase-completion event. Non-approved
	// events yield an ignored outcome, not an error. Approved events mint a
	// key, append a record and email the buyer.
	HandlePurchase(ctx context.Context, event *licensesDomain.PurchaseEvent) (*licensesDomain.IssuanceOutcome, error)
	// Validate checks a (key, email) pair against the stored record and
	// returns the current verdict. Read-only.
	Validate(ctx context.Context, key, email string) (*licensesDomain.ValidationResult, error)
}
