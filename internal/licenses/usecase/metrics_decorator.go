package usecase

import (
	"context"
	"time"

	licensesDomain "github.com/allisson/licenses/internal/licenses/domain"
	"github.com/allisson/licenses/internal/metrics"
)

// licenseUseCaseWithMetrics decorates LicenseUseCase with metrics instrumentation.
type licenseUseCaseWithMetrics struct {
	next    LicenseUseCase
	metrics metrics.BusinessMetrics
}

// NewLicenseUseCaseWithMetrics wraps a LicenseUseCase with metrics recording.
func NewLicenseUseCaseWithMetrics(useCase LicenseUseCase, m metrics.BusinessMetrics) LicenseUseCase {
	return &licenseUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// HandlePurchase records metrics for issuance operations. Filtered events are
// labeled "ignored" so approval-rate dashboards stay honest.
func (l *licenseUseCaseWithMetrics) HandlePurchase(
	ctx context.Context,
	event *licensesDomain.PurchaseEvent,
) (*licensesDomain.IssuanceOutcome, error) {
	start := time.Now()
	outcome, err := l.next.HandlePurchase(ctx, event)

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case !outcome.Issued:
		status = "ignored"
	}

	l.metrics.RecordOperation(ctx, "licenses", "license_issue", status)
	l.metrics.RecordDuration(ctx, "licenses", "license_issue", time.Since(start), status)

	return outcome, err
}

// Validate records metrics for validation operations.
func (l *licenseUseCaseWithMetrics) Validate(
	ctx context.Context,
	key, email string,
) (*licensesDomain.ValidationResult, error) {
	start := time.Now()
	result, err := l.next.Validate(ctx, key, email)

	status := "success"
	if err != nil {
		status = "error"
	}

	l.metrics.RecordOperation(ctx, "licenses", "license_validate", status)
	l.metrics.RecordDuration(ctx, "licenses", "license_validate", time.Since(start), status)

	return result, err
}
