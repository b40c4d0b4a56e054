package dto

import (
	"github.com/allisson/licenses/internal/licenses/domain"
)

// WebhookResponse acknowledges a processed purchase notification.
type WebhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewWebhookSuccessResponse acknowledges an issued license.
func NewWebhookSuccessResponse() *WebhookResponse {
	return &WebhookResponse{Status: "success"}
}

// NewWebhookIgnoredResponse acknowledges a filtered, non-approved event.
func NewWebhookIgnoredResponse() *WebhookResponse {
	return &WebhookResponse{Status: "ignored"}
}

// NewWebhookPingResponse answers provider endpoint probes.
func NewWebhookPingResponse() *WebhookResponse {
	return &WebhookResponse{
		Status:  "success",
		Message: "webhook endpoint is active",
	}
}

// CheckKeyResponse reports a validation verdict. Status is the verdict
// itself, not a transport-level ok/error marker.
type CheckKeyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewCheckKeyResponse maps a validation result to the response body.
func NewCheckKeyResponse(result *domain.ValidationResult) *CheckKeyResponse {
	return &CheckKeyResponse{
		Status:  string(result.Verdict),
		Message: result.Reason,
	}
}
