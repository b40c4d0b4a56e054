package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/licenses/internal/errors"
)

func TestMySQLLicenseRepository_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		license := newTestLicense()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO licenses (customer_email, license_key, issued_at, status)`)).
			WithArgs(license.CustomerEmail, license.Key, license.IssuedAt, license.Status).
			WillReturnResult(sqlmock.NewResult(1, 1))

		repo := NewMySQLLicenseRepository(db)
		err = repo.Append(ctx, license)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_ExecFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO licenses`)).
			WillReturnError(errors.New("connection reset"))

		repo := NewMySQLLicenseRepository(db)
		err = repo.Append(ctx, newTestLicense())

		assert.Error(t, err)
	})
}

func TestMySQLLicenseRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		license := newTestLicense()
		rows := sqlmock.NewRows([]string{"customer_email", "license_key", "issued_at", "status"}).
			AddRow(license.CustomerEmail, license.Key, license.IssuedAt, string(license.Status))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT customer_email, license_key, issued_at, status`)).
			WithArgs(license.CustomerEmail).
			WillReturnRows(rows)

		repo := NewMySQLLicenseRepository(db)
		found, err := repo.FindByEmail(ctx, license.CustomerEmail)

		require.NoError(t, err)
		assert.Equal(t, license.Key, found.Key)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT customer_email, license_key, issued_at, status`)).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"customer_email", "license_key", "issued_at", "status"}))

		repo := NewMySQLLicenseRepository(db)
		found, err := repo.FindByEmail(ctx, "nobody@example.com")

		assert.Nil(t, found)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
