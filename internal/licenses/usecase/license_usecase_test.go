package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/allisson/licenses/internal/errors"
	licensesDomain "github.com/allisson/licenses/internal/licenses/domain"
	"github.com/allisson/licenses/internal/licenses/usecase/mocks"
)

const testApprovedCode = "3"

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLicenseUseCase_HandlePurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ApprovedEventIssuesKeyAndNotifies", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		mockMailer := &mocks.MockMailer{}
		mockKeyGen := &mocks.MockKeyGenerator{}

		mintedKey := "A1B2C3D4-E5F6-4A7B-8C9D-E0F1A2B3C4D5"
		mockKeyGen.On("Generate").Return(mintedKey)
		mockRepo.On("Append", ctx, mock.MatchedBy(func(l *licensesDomain.License) bool {
			return l.CustomerEmail == "buyer@example.com" &&
				l.Key == mintedKey &&
				l.Status == licensesDomain.StatusActive &&
				!l.IssuedAt.IsZero()
		})).Return(nil)
		mockMailer.On("Send", ctx, "buyer@example.com", mailSubject, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, mintedKey)
		})).Return(nil)

		useCase := NewLicenseUseCase(mockRepo, mockMailer, mockKeyGen, testApprovedCode, newTestLogger())

		outcome, err := useCase.HandlePurchase(ctx, &licensesDomain.PurchaseEvent{
			TransStatus:   "3",
			CustomerEmail: "buyer@example.com",
		})

		assert.NoError(t, err)
		assert.True(t, outcome.Issued)
		assert.Equal(t, mintedKey, outcome.LicenseKey)
		mockRepo.AssertExpectations(t)
		mockMailer.AssertExpectations(t)
		mockKeyGen.AssertExpectations(t)
	})

	t.Run("Success_NonApprovedEventIsIgnored", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		mockMailer := &mocks.MockMailer{}
		mockKeyGen := &mocks.MockKeyGenerator{}

		useCase := NewLicenseUseCase(mockRepo, mockMailer, mockKeyGen, testApprovedCode, newTestLogger())

		outcome, err := useCase.HandlePurchase(ctx, &licensesDomain.PurchaseEvent{
			TransStatus:   "4",
			CustomerEmail: "buyer@example.com",
		})

		assert.NoError(t, err)
		assert.False(t, outcome.Issued)
		assert.Empty(t, outcome.LicenseKey)
		mockRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockKeyGen.AssertNotCalled(t, "Generate")
	})

	t.Run("Success_IgnoredEventWithoutEmailIsNotAnError", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		mockMailer := &mocks.MockMailer{}
		mockKeyGen := &mocks.MockKeyGenerator{}

		useCase := NewLicenseUseCase(mockRepo, mockMailer, mockKeyGen, testApprovedCode, newTestLogger())

		// Non-approved status wins over the missing email: the event is
		// filtered before the email is even inspected.
		outcome, err := useCase.HandlePurchase(ctx, &licensesDomain.PurchaseEvent{
			TransStatus: "7",
		})

		assert.NoError(t, err)
		assert.False(t, outcome.Issued)
	})

	t.Run("Error_ApprovedEventWithoutEmail", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		mockMailer := &mocks.MockMailer{}
		mockKeyGen := &mocks.MockKeyGenerator{}

		useCase := NewLicenseUseCase(mockRepo, mockMailer, mockKeyGen, testApprovedCode, newTestLogger())

		outcome, err := useCase.HandlePurchase(ctx, &licensesDomain.PurchaseEvent{
			TransStatus: "3",
		})

		assert.Error(t, err)
		assert.Nil(t, outcome)
		assert.ErrorIs(t, err, licensesDomain.ErrMissingCustomerEmail)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_StoreAppendFailsBeforeAnyMail", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		mockMailer := &mocks.MockMailer{}
		mockKeyGen := &mocks.MockKeyGenerator{}

		mockKeyGen.On("Generate").Return("11111111-2222-4333-8444-555555555555")
		mockRepo.On("Append", ctx, mock.Anything).Return(errors.New("connection refused"))

		useCase := NewLicenseUseCase(mockRepo, mockMailer, mockKeyGen, testApprovedCode, newTestLogger())

		outcome, err := useCase.HandlePurchase(ctx, &licensesDomain.PurchaseEvent{
			TransStatus:   "3",
			CustomerEmail: "buyer@example.com",
		})

		assert.Error(t, err)
		assert.Nil(t, outcome)
		assert.ErrorIs(t, err, licensesDomain.ErrStoreWrite)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		// No key email may leave the building when the record was not stored.
		mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_MailFailureAfterSuccessfulAppend", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		mockMailer := &mocks.MockMailer{}
		mockKeyGen := &mocks.MockKeyGenerator{}

		mockKeyGen.On("Generate").Return("11111111-2222-4333-8444-555555555555")
		mockRepo.On("Append", ctx, mock.Anything).Return(nil)
		mockMailer.On("Send", ctx, "buyer@example.com", mailSubject, mock.Anything).
			Return(errors.New("smtp 421 service not available"))

		useCase := NewLicenseUseCase(mockRepo, mockMailer, mockKeyGen, testApprovedCode, newTestLogger())

		outcome, err := useCase.HandlePurchase(ctx, &licensesDomain.PurchaseEvent{
			TransStatus:   "3",
			CustomerEmail: "buyer@example.com",
		})

		assert.Error(t, err)
		assert.Nil(t, outcome)
		assert.ErrorIs(t, err, licensesDomain.ErrNotification)
		mockRepo.AssertNumberOfCalls(t, "Append", 1)
		mockMailer.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("Error_StoreTimeoutMapsToTimeoutSentinel", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		mockMailer := &mocks.MockMailer{}
		mockKeyGen := &mocks.MockKeyGenerator{}

		expiredCtx, cancel := context.WithDeadline(ctx, time.Now().Add(-time.Second))
		defer cancel()

		mockKeyGen.On("Generate").Return("11111111-2222-4333-8444-555555555555")
		mockRepo.On("Append", expiredCtx, mock.Anything).Return(context.DeadlineExceeded)

		useCase := NewLicenseUseCase(mockRepo, mockMailer, mockKeyGen, testApprovedCode, newTestLogger())

		outcome, err := useCase.HandlePurchase(expiredCtx, &licensesDomain.PurchaseEvent{
			TransStatus:   "3",
			CustomerEmail: "buyer@example.com",
		})

		assert.Error(t, err)
		assert.Nil(t, outcome)
		assert.ErrorIs(t, err, licensesDomain.ErrUpstreamTimeout)
		assert.ErrorIs(t, err, apperrors.ErrTimeout)
	})

	t.Run("Success_RepeatedApprovedEventsAppendAgain", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		mockMailer := &mocks.MockMailer{}
		mockKeyGen := &mocks.MockKeyGenerator{}

		mockKeyGen.On("Generate").Return("AAAAAAAA-BBBB-4CCC-8DDD-EEEEEEEEEEEE").Once()
		mockKeyGen.On("Generate").Return("FFFFFFFF-0000-4111-9222-333333333333").Once()
		mockRepo.On("Append", ctx, mock.Anything).Return(nil).Twice()
		mockMailer.On("Send", ctx, "repeat@example.com", mailSubject, mock.Anything).Return(nil).Twice()

		useCase := NewLicenseUseCase(mockRepo, mockMailer, mockKeyGen, testApprovedCode, newTestLogger())

		event := &licensesDomain.PurchaseEvent{
			TransStatus:   "3",
			CustomerEmail: "repeat@example.com",
		}

		first, err := useCase.HandlePurchase(ctx, event)
		assert.NoError(t, err)
		second, err := useCase.HandlePurchase(ctx, event)
		assert.NoError(t, err)

		assert.NotEqual(t, first.LicenseKey, second.LicenseKey)
		mockRepo.AssertNumberOfCalls(t, "Append", 2)
	})
}

func TestLicenseUseCase_Validate(t *testing.T) {
	ctx := context.Background()

	storedLicense := &licensesDomain.License{
		CustomerEmail: "buyer@example.com",
		Key:           "A1B2C3D4-E5F6-4A7B-8C9D-E0F1A2B3C4D5",
		IssuedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Status:        licensesDomain.StatusActive,
	}

	t.Run("Success_ExactKeyIsActive", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		mockRepo.On("FindByEmail", ctx, "buyer@example.com").Return(storedLicense, nil)

		useCase := NewLicenseUseCase(mockRepo, &mocks.MockMailer{}, &mocks.MockKeyGenerator{}, testApprovedCode, newTestLogger())

		result, err := useCase.Validate(ctx, storedLicense.Key, "buyer@example.com")

		assert.NoError(t, err)
		assert.Equal(t, licensesDomain.VerdictActive, result.Verdict)
	})

	t.Run("Success_LowercaseKeyStillMatches", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		mockRepo.On("FindByEmail", ctx, "buyer@example.com").Return(storedLicense, nil)

		useCase := NewLicenseUseCase(mockRepo, &mocks.MockMailer{}, &mocks.MockKeyGenerator{}, testApprovedCode, newTestLogger())

		result, err := useCase.Validate(ctx, "a1b2c3d4-e5f6-4a7b-8c9d-e0f1a2b3c4d5", "buyer@example.com")

		assert.NoError(t, err)
		assert.Equal(t, licensesDomain.VerdictActive, result.Verdict)
	})

	t.Run("Success_WrongKeyIsInvalid", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		mockRepo.On("FindByEmail", ctx, "buyer@example.com").Return(storedLicense, nil)

		useCase := NewLicenseUseCase(mockRepo, &mocks.MockMailer{}, &mocks.MockKeyGenerator{}, testApprovedCode, newTestLogger())

		result, err := useCase.Validate(ctx, "00000000-0000-4000-8000-000000000000", "buyer@example.com")

		assert.NoError(t, err)
		assert.Equal(t, licensesDomain.VerdictInvalid, result.Verdict)
		assert.Equal(t, invalidReason, result.Reason)
	})

	t.Run("Success_RevokedRecordIsInvalidEvenWithRightKey", func(t *testing.T) {
		revoked := *storedLicense
		revoked.Status = licensesDomain.StatusRevoked

		mockRepo := &mocks.MockLicenseRepository{}
		mockRepo.On("FindByEmail", ctx, "buyer@example.com").Return(&revoked, nil)

		useCase := NewLicenseUseCase(mockRepo, &mocks.MockMailer{}, &mocks.MockKeyGenerator{}, testApprovedCode, newTestLogger())

		result, err := useCase.Validate(ctx, storedLicense.Key, "buyer@example.com")

		assert.NoError(t, err)
		assert.Equal(t, licensesDomain.VerdictInvalid, result.Verdict)
	})

	t.Run("Success_UnknownEmailIsInvalidNotError", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		mockRepo.On("FindByEmail", ctx, "nobody@example.com").
			Return(nil, licensesDomain.ErrLicenseNotFound)

		useCase := NewLicenseUseCase(mockRepo, &mocks.MockMailer{}, &mocks.MockKeyGenerator{}, testApprovedCode, newTestLogger())

		result, err := useCase.Validate(ctx, storedLicense.Key, "nobody@example.com")

		assert.NoError(t, err)
		assert.Equal(t, licensesDomain.VerdictInvalid, result.Verdict)
		assert.Equal(t, notFoundReason, result.Reason)
	})

	t.Run("Error_MissingParameters", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		useCase := NewLicenseUseCase(mockRepo, &mocks.MockMailer{}, &mocks.MockKeyGenerator{}, testApprovedCode, newTestLogger())

		for _, tc := range []struct{ key, email string }{
			{key: "", email: "buyer@example.com"},
			{key: storedLicense.Key, email: ""},
			{key: "", email: ""},
		} {
			result, err := useCase.Validate(ctx, tc.key, tc.email)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, licensesDomain.ErrMissingParameters)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		}
		mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Error_StoreReadFailure", func(t *testing.T) {
		mockRepo := &mocks.MockLicenseRepository{}
		mockRepo.On("FindByEmail", ctx, "buyer@example.com").
			Return(nil, errors.New("driver: bad connection"))

		useCase := NewLicenseUseCase(mockRepo, &mocks.MockMailer{}, &mocks.MockKeyGenerator{}, testApprovedCode, newTestLogger())

		result, err := useCase.Validate(ctx, storedLicense.Key, "buyer@example.com")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, licensesDomain.ErrStoreRead)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})
}
