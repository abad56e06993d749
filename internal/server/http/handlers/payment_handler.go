package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
	"github.com/artisanscorner/storefront/internal/server/http/dto"
)

// PaymentHandler serves gateway checkout and verification endpoints.
type PaymentHandler struct {
	payments PaymentFacade
}

func NewPaymentHandler(payments PaymentFacade) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateOrder registers an order with the payment gateway and returns the
// handoff data the client SDK needs. The charged amount is read from the
// stored order, never from the request.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateGatewayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if req.OrderID == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	checkout, err := h.payments.CreateGatewayOrder(c.Request.Context(), CurrentUserID(c), req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrForbidden):
			c.AbortWithStatus(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrAlreadyPaid):
			c.AbortWithStatus(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrNotConfigured),
			errors.Is(err, domainErrors.ErrGatewayUnavailable):
			c.AbortWithStatus(http.StatusServiceUnavailable)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.GatewayOrderResponse{
		GatewayOrderID: checkout.GatewayOrderID,
		Amount:         checkout.Amount,
		Currency:       checkout.Currency,
		KeyID:          checkout.KeyID,
	})
}

// Verify checks a completion callback signature without touching order state.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if !h.payments.VerifyPayment(req.GatewayOrderID, req.PaymentID, req.Signature) {
		c.JSON(http.StatusBadRequest, dto.VerifyPaymentResponse{Verified: false})
		return
	}
	c.JSON(http.StatusOK, dto.VerifyPaymentResponse{Verified: true})
}

// Pay finalizes an order after a verified completion callback.
func (h *PaymentHandler) Pay(c *gin.Context) {
	var req dto.PayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	order, err := h.payments.ConfirmPayment(
		c.Request.Context(),
		CurrentUserID(c),
		c.Param("id"),
		req.GatewayOrderID,
		req.PaymentID,
		req.Signature,
		req.Email,
	)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrForbidden):
			c.AbortWithStatus(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrVerificationFailed):
			c.AbortWithStatus(http.StatusBadRequest)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}
