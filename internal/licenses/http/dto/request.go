// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/licenses/internal/validation"
)

// FlexibleString accepts a JSON string or number and normalizes it to its
// string form. Payment providers are not consistent about whether status
// codes arrive quoted.
type FlexibleString string

// UnmarshalJSON decodes a string, number, or null into the string form.
func (s *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = FlexibleString(value)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*s = FlexibleString(number.String())
	return nil
}

// WebhookRequest is the purchase notification payload. Only the two fields
// this service acts on are bound; the provider sends many more.
type WebhookRequest struct {
	TransStatus   FlexibleString `json:"trans_status"`
	CustomerEmail string         `json:"cus_email"`
}

// Validate checks structural limits on the webhook payload. Field presence
// is deliberately not required here: a missing email only matters for
// approved sales, which the business layer decides.
func (r *WebhookRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TransStatus, validation.Length(0, 32)),
		validation.Field(&r.CustomerEmail, validation.Length(0, 254)),
	)
}

// CheckKeyRequest carries the query parameters of a validation request.
type CheckKeyRequest struct {
	Key   string `form:"key"`
	Email string `form:"email"`
}

// Validate requires both parameters to be present. Whitespace-only values
// count as missing, keys must not carry stray whitespace and the email must
// be well formed before any store lookup happens.
func (r *CheckKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Key, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
		validation.Field(&r.Email, validation.Required, customValidation.NotBlank, customValidation.Email),
	)
}
