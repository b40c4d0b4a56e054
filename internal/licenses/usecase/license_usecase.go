package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/allisson/licenses/internal/errors"
	licensesDomain "github.com/allisson/licenses/internal/licenses/domain"
	licensesService "github.com/allisson/licenses/internal/licenses/service"
)

const (
	// mailSubject is the fixed subject line on license key emails.
	mailSubject = "Your Activation Key Has Arrived!"

	// mailBodyTemplate embeds the literal key value; the single %s is the key.
	mailBodyTemplate = `<html><body><h2>Hello!</h2>` +
		`<p>Thank you for your purchase. Here is your activation key:</p>` +
		`<p style='font-size: 20px; font-weight: bold; background-color: #f0f0f0; ` +
		`padding: 10px; border-radius: 5px; text-align: center;'>%s</p>` +
		`<p>Keep this key somewhere safe.</p>` +
		`<p>Best regards,<br>The Team</p></body></html>`

	// invalidReason deliberately does not reveal whether the key mismatched
	// or the record is inactive.
	invalidReason  = "key mismatch or inactive"
	notFoundReason = "email not found"
	activeReason   = "key is valid and active"
)

// licenseUseCase implements LicenseUseCase.
type licenseUseCase struct {
	repo         LicenseRepository
	mailer       Mailer
	keyGenerator licensesService.KeyGenerator
	// approvedCode is the provider's completed-sale status code.
	approvedCode string
	logger       *slog.Logger
}

// NewLicenseUseCase creates a license use case with the provided collaborators.
func NewLicenseUseCase(
	repo LicenseRepository,
	mailer Mailer,
	keyGenerator licensesService.KeyGenerator,
	approvedCode string,
	logger *slog.Logger,
) LicenseUseCase {
	return &licenseUseCase{
		repo:         repo,
		mailer:       mailer,
		keyGenerator: keyGenerator,
		approvedCode: approvedCode,
		logger:       logger,
	}
}

// HandlePurchase drives one issuance: filter, mint, append, notify.
//
// The append is intentionally blind: no lookup for an existing record
// precedes it, so repeated approved events for one buyer append additional
// rows. No collaborator call is retried; retrying a non-idempotent append
// risks duplicate records.
func (u *licenseUseCase) HandlePurchase(
	ctx context.Context,
	event *licensesDomain.PurchaseEvent,
) (*licensesDomain.IssuanceOutcome, error) {
	if !event.Approved(u.approvedCode) {
		u.logger.Info("ignoring purchase event",
			slog.String("trans_status", event.TransStatus),
		)
		return &licensesDomain.IssuanceOutcome{Issued: false}, nil
	}

	if event.CustomerEmail == "" {
		return nil, licensesDomain.ErrMissingCustomerEmail
	}

	license := &licensesDomain.License{
		CustomerEmail: event.CustomerEmail,
		Key:           u.keyGenerator.Generate(),
		IssuedAt:      time.Now().UTC(),
		Status:        licensesDomain.StatusActive,
	}

	if err := u.repo.Append(ctx, license); err != nil {
		u.logger.Error("license store append failed",
			slog.String("customer_email", event.CustomerEmail),
			slog.String("trans_status", event.TransStatus),
			slog.Any("error", err),
		)
		return nil, wrapCollaboratorError(ctx, licensesDomain.ErrStoreWrite, err)
	}

	body := fmt.Sprintf(mailBodyTemplate, license.Key)
	if err := u.mailer.Send(ctx, license.CustomerEmail, mailSubject, body); err != nil {
		// The record exists but the buyer was not informed. Surface this
		// distinctly so the state can be reconciled manually.
		u.logger.Error("license key notification failed after store append",
			slog.String("customer_email", license.CustomerEmail),
			slog.String("license_key", license.Key),
			slog.Any("error", err),
		)
		return nil, wrapCollaboratorError(ctx, licensesDomain.ErrNotification, err)
	}

	u.logger.Info("license issued",
		slog.String("customer_email", license.CustomerEmail),
	)
	return &licensesDomain.IssuanceOutcome{Issued: true, LicenseKey: license.Key}, nil
}

// Validate checks the stored record for the email against the supplied key.
func (u *licenseUseCase) Validate(
	ctx context.Context,
	key, email string,
) (*licensesDomain.ValidationResult, error) {
	if key == "" || email == "" {
		return nil, licensesDomain.ErrMissingParameters
	}

	license, err := u.repo.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return &licensesDomain.ValidationResult{
				Verdict: licensesDomain.VerdictInvalid,
				Reason:  notFoundReason,
			}, nil
		}
		u.logger.Error("license store lookup failed",
			slog.String("customer_email", email),
			slog.Any("error", err),
		)
		return nil, wrapCollaboratorError(ctx, licensesDomain.ErrStoreRead, err)
	}

	if license.KeyMatches(key) && license.Status.Active() {
		return &licensesDomain.ValidationResult{
			Verdict: licensesDomain.VerdictActive,
			Reason:  activeReason,
		}, nil
	}

	return &licensesDomain.ValidationResult{
		Verdict: licensesDomain.VerdictInvalid,
		Reason:  invalidReason,
	}, nil
}

// wrapCollaboratorError maps a collaborator failure to the matching domain
// sentinel, preferring the timeout sentinel when the caller's deadline was
// the cause.
func wrapCollaboratorError(ctx context.Context, sentinel, err error) error {
	if ctx.Err() == context.DeadlineExceeded || apperrors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(licensesDomain.ErrUpstreamTimeout, err.Error())
	}
	return apperrors.Wrap(sentinel, err.Error())
}
