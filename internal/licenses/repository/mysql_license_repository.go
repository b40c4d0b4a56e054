package repository

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/allisson/licenses/internal/errors"
	"github.com/allisson/licenses/internal/licenses/domain"
)

// MySQLLicenseRepository handles license persistence for MySQL.
type MySQLLicenseRepository struct {
	db *sql.DB
}

// NewMySQLLicenseRepository creates a new MySQLLicenseRepository.
func NewMySQLLicenseRepository(db *sql.DB) *MySQLLicenseRepository {
	return &MySQLLicenseRepository{
		db: db,
	}
}

// Append inserts a new license record.
func (r *MySQLLicenseRepository) Append(ctx context.Context, license *domain.License) error {
	query := `INSERT INTO licenses (customer_email, license_key, issued_at, status)
			  VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		license.CustomerEmail, license.Key, license.IssuedAt, license.Status,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to append license")
	}
	return nil
}

// FindByEmail retrieves the earliest license record for the email.
func (r *MySQLLicenseRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*domain.License, error) {
	var license domain.License

	query := `SELECT customer_email, license_key, issued_at, status
			  FROM licenses WHERE customer_email = ?
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
