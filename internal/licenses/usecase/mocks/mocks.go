// Package mocks provides mock implementations for testing license use cases
// and HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	licensesDomain "github.com/allisson/licenses/internal/licenses/domain"
)

// MockLicenseRepository is a mock implementation of LicenseRepository.
type MockLicenseRepository struct {
	mock.Mock
}

// Append mocks the Append method of LicenseRepository.
func (m *MockLicenseRepository) Append(ctx context.Context, license *licensesDomain.License) error {
	args := m.Called(ctx, license)
	return args.Error(0)
}

// FindByEmail mocks the FindByEmail method of LicenseRepository.
func (m *MockLicenseRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*licensesDomain.License, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licensesDomain.License), args.Error(1)
}

// MockMailer is a mock implementation of Mailer.
type MockMailer struct {
	mock.Mock
}

// Send mocks the Send method of Mailer.
func (m *MockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

// MockKeyGenerator is a mock implementation of service.KeyGenerator.
type MockKeyGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method of KeyGenerator.
func (m *MockKeyGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

// Validate mocks the Validate method of KeyGenerator.
func (m *MockKeyGenerator) Validate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// MockLicenseUseCase is a mock implementation of LicenseUseCase.
type MockLicenseUseCase struct {
	mock.Mock
}

// HandlePurchase mocks the HandlePurchase method of LicenseUseCase.
func (m *MockLicenseUseCase) HandlePurchase(
	ctx context.Context,
	event *licensesDomain.PurchaseEvent,
) (*licensesDomain.IssuanceOutcome, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licensesDomain.IssuanceOutcome), args.Error(1)
}

// Validate mocks the Validate method of LicenseUseCase.
func (m *MockLicenseUseCase) Validate(
	ctx context.Context,
	key, email string,
) (*licensesDomain.ValidationResult, error) {
	args := m.Called(ctx, key, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licensesDomain.ValidationResult), args.Error(1)
}
