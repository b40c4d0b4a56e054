package domain

import (
	"github.com/allisson/licenses/internal/errors"
)

// License-specific error definitions.
var (
	// ErrLicenseNotFound indicates no record exists for the looked-up email.
	ErrLicenseNotFound = errors.Wrap(errors.ErrNotFound, "license not found")

	// ErrMissingCustomerEmail indicates an approved event arrived without a
	// buyer email.
	ErrMissingCustomerEmail = errors.Wrap(errors.ErrInvalidInput, "customer email missing")

	// ErrMissingParameters indicates a validation request without key or email.
	ErrMissingParameters = errors.Wrap(errors.ErrInvalidInput, "key and email are required")

	// ErrStoreWrite indicates the license store rejected or failed an append.
	ErrStoreWrite = errors.Wrap(errors.ErrUnavailable, "license store write failed")

	// ErrStoreRead indicates a store lookup failed for a reason other than
	// the record being absent.
	ErrStoreRead = errors.Wrap(errors.ErrUnavailable, "license store read failed")

	// ErrNotification indicates the record was appended but the key email
	// could not be delivered; the system needs manual reconciliation.
	ErrNotification = errors.Wrap(errors.ErrUnavailable, "license key notification failed")

	// ErrUpstreamTimeout indicates a collaborator call exceeded the caller's
	// deadline.
	ErrUpstreamTimeout = errors.Wrap(errors.ErrTimeout, "upstream call timed out")
)
