package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/allisson/licenses/internal/licenses/domain"
)

// MemoryLicenseRepository is an in-memory license store for tests and local
// development. Records accumulate in insertion order, matching the append
// semantics of the persistent stores.
type MemoryLicenseRepository struct {
	mu       sync.RWMutex
	licenses []domain.License
}

// NewMemoryLicenseRepository creates an empty in-memory store.
func NewMemoryLicenseRepository() *MemoryLicenseRepository {
	return &MemoryLicenseRepository{}
}

// Append adds one record. Duplicate emails are allowed.
func (r *MemoryLicenseRepository) Append(_ context.Context, license *domain.License) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.licenses = append(r.licenses, *license)
	return nil
}

// FindByEmail returns the first record appended for the email, ignoring case.
func (r *MemoryLicenseRepository) FindByEmail(
	_ context.Context,
	email string,
) (*domain.License, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.licenses {
		if strings.EqualFold(r.licenses[i].CustomerEmail, email) {
			license := r.licenses[i]
			return &license, nil
		}
	}
	return nil, domain.ErrLicenseNotFound
}
