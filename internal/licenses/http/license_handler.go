// Package http provides HTTP handlers for license issuance and validation.
// The webhook endpoint receives payment provider notifications; the check
// endpoint answers key validation queries from activation clients.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/licenses/internal/httputil"
	licensesDomain "github.com/allisson/licenses/internal/licenses/domain"
	"github.com/allisson/licenses/internal/licenses/http/dto"
	licensesUseCase "github.com/allisson/licenses/internal/licenses/usecase"
	customValidation "github.com/allisson/licenses/internal/validation"
)

// LicenseHandler handles HTTP requests for license operations.
type LicenseHandler struct {
	licenseUseCase licensesUseCase.LicenseUseCase
	logger         *slog.Logger
}

// NewLicenseHandler creates a new license handler with required dependencies.
func NewLicenseHandler(
	licenseUseCase licensesUseCase.LicenseUseCase,
	logger *slog.Logger,
) *LicenseHandler {
	return &LicenseHandler{
		licenseUseCase: licenseUseCase,
		logger:         logger,
	}
}

// WebhookPingHandler answers provider endpoint probes.
// GET /webhook - Returns 200 unconditionally and never touches the store.
func (h *LicenseHandler) WebhookPingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewWebhookPingResponse())
}

// WebhookHandler processes one purchase notification.
// POST /webhook - Returns 200 success for an issued license, 200 ignored for
// a non-approved event, 400 for malformed or incomplete input, 500 when a
// collaborator fails, and 504 when one times out.
func (h *LicenseHandler) WebhookHandler(c *gin.Context) {
	var req dto.WebhookRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	event := &licensesDomain.PurchaseEvent{
		TransStatus:   string(req.TransStatus),
		CustomerEmail: req.CustomerEmail,
	}

	outcome, err := h.licenseUseCase.HandlePurchase(c.Request.Context(), event)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if !outcome.Issued {
		c.JSON(http.StatusOK, dto.NewWebhookIgnoredResponse())
		return
	}

	c.JSON(http.StatusOK, dto.NewWebhookSuccessResponse())
}

// CheckKeyHandler answers one validation query.
// GET /check_key?key=...&email=... - Returns 200 with the verdict, 400 when
// either parameter is missing, and 500 when the store fails. An unknown email
// is a 200 INVALID verdict, not an error.
func (h *LicenseHandler) CheckKeyHandler(c *gin.Context) {
	req := dto.CheckKeyRequest{
		Key:   c.Query("key"),
		Email: c.Query("email"),
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.licenseUseCase.Validate(c.Request.Context(), req.Key, req.Email)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewCheckKeyResponse(result))
}
