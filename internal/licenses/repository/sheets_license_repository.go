package repository

import (
	"context"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	apperrors "github.com/allisson/licenses/internal/errors"
	"github.com/allisson/licenses/internal/licenses/domain"
)

// sheetsTimeLayout is the cell format for the issued_at column. The sheet
// stores timestamps as text, so this layout is both the write format and the
// parse format.
const sheetsTimeLayout = "2006-01-02 15:04:05"

// SheetsLicenseRepository persists licenses as rows of a Google Sheets
// spreadsheet: one row per license, columns [email, key, issued_at, status].
type SheetsLicenseRepository struct {
	service       *sheets.Service
	spreadsheetID string
	// readRange is the A1-notation range holding license rows, e.g. "Sheet1!A:D".
	readRange string
}

// NewSheetsLicenseRepository creates a repository backed by the Google Sheets
// API, authenticating with the provided service account credentials JSON.
func NewSheetsLicenseRepository(
	ctx context.Context,
	credentialsJSON []byte,
	spreadsheetID string,
	readRange string,
) (*SheetsLicenseRepository, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create sheets service")
	}

	return &SheetsLicenseRepository{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}, nil
}

// Append adds one license row at the bottom of the sheet.
func (r *SheetsLicenseRepository) Append(ctx context.Context, license *domain.License) error {
	valueRange := &sheets.ValueRange{
		Values: [][]any{encodeLicenseRow(license)},
	}

	_, err := r.service.Spreadsheets.Values.
		Append(r.spreadsheetID, r.readRange, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return apperrors.Wrap(err, "failed to append license row")
	}
	return nil
}

// FindByEmail scans rows top to bottom and returns the first one whose email
// column matches, ignoring case. Top-down order means the earliest issuance
// wins when a buyer has several rows.
func (r *SheetsLicenseRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*domain.License, error) {
	resp, err := r.service.Spreadsheets.Values.
		Get(r.spreadsheetID, r.readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read license rows")
	}

	for _, row := range resp.Values {
		license, ok := decodeLicenseRow(row)
		if !ok {
			continue
		}
		if strings.EqualFold(license.CustomerEmail, email) {
			return license, nil
		}
	}

	return nil, domain.ErrLicenseNotFound
}

// encodeLicenseRow maps a license to the sheet's column order.
func encodeLicenseRow(license *domain.License) []any {
	return []any{
		license.CustomerEmail,
		license.Key,
		license.IssuedAt.UTC().Format(sheetsTimeLayout),
		string(license.Status),
	}
}

// decodeLicenseRow maps a sheet row back to a license. Rows that are too
// short or hold non-string cells are skipped rather than failing the scan:
// spreadsheets accumulate header rows and stray edits.
func decodeLicenseRow(row []any) (*domain.License, bool) {
	if len(row) < 4 {
		return nil, false
	}

	cells := make([]string, 4)
	for i := range cells {
		cell, ok := row[i].(string)
		if !ok {
			return nil, false
		}
		cells[i] = cell
	}

	issuedAt, err := time.Parse(sheetsTimeLayout, cells[2])
	if err != nil {
		// Keep the row: a malformed timestamp should not hide a real
		// license from validation.
		issuedAt = time.Time{}
	}

	return &domain.License{
		CustomerEmail: cells[0],
		Key:           cells[1],
		IssuedAt:      issuedAt,
		Status:        domain.Status(cells[3]),
	}, true
}
