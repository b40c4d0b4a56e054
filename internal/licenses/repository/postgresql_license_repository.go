// Package repository provides license store implementations. Every
// implementation satisfies the same append/find contract: appends never
// deduplicate, and lookups return the store's first record for an email.
package repository

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/allisson/licenses/internal/errors"
	"github.com/allisson/licenses/internal/licenses/domain"
)

// PostgreSQLLicenseRepository handles license persistence for PostgreSQL.
type PostgreSQLLicenseRepository struct {
	db *sql.DB
}

// NewPostgreSQLLicenseRepository creates a new PostgreSQLLicenseRepository.
func NewPostgreSQLLicenseRepository(db *sql.DB) *PostgreSQLLicenseRepository {
	return &PostgreSQLLicenseRepository{
		db: db,
	}
}

// Append inserts a new license record. There is no uniqueness constraint on
// customer_email: repeated purchases append additional rows.
func (r *PostgreSQLLicenseRepository) Append(ctx context.Context, license *domain.License) error {
	query := `INSERT INTO licenses (customer_email, license_key, issued_at, status)
			  VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query,
		license.CustomerEmail, license.Key, license.IssuedAt, license.Status,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to append license")
	}
	return nil
}

// FindByEmail retrieves the earliest license record for the email. Earliest
// by issued_at mirrors the first-match semantics of an append-only sheet.
func (r *PostgreSQLLicenseRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*domain.License, error) {
	var license domain.License

	query := `SELECT customer_email, license_key, issued_at, status
			  FROM licenses WHERE customer_email = $1
			  ORDER BY issued_at ASC LIMIT 1`

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&license.CustomerEmail, &license.Key, &license.IssuedAt, &license.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLicenseNotFound
		}
		return nil, apperrors.Wrap(err, "failed to find license by email")
	}

	return &license, nil
}
