package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
	"github.com/artisanscorner/storefront/internal/server/http/dto"
)

const webhookSignatureHeader = "X-Razorpay-Signature"

// WebhookHandler receives asynchronous gateway notifications. The signature
// is computed over the raw body, so the body must be read before any JSON
// decoding happens.
type WebhookHandler struct {
	webhooks WebhookFacade
}

func NewWebhookHandler(webhooks WebhookFacade) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

// Receive validates and processes a webhook delivery.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	signature := c.GetHeader(webhookSignatureHeader)
	if _, err := h.webhooks.HandleWebhook(c.Request.Context(), body, signature); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrVerificationFailed):
			c.AbortWithStatus(http.StatusBadRequest)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.WebhookAck{Received: true})
}
