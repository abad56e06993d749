package dto

// CreateGatewayOrderRequest names the local order to charge. The amount is
// always derived server side from the stored order.
type CreateGatewayOrderRequest struct {
	OrderID string `json:"order_id"`
}

// GatewayOrderResponse is the handoff data for the gateway's client SDK.
type GatewayOrderResponse struct {
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
}

// VerifyPaymentRequest carries the client-side completion callback data.
type VerifyPaymentRequest struct {
	GatewayOrderID string `json:"gateway_order_id"`
	PaymentID      string `json:"payment_id"`
	Signature      string `json:"signature"`
}

// VerifyPaymentResponse reports the verification outcome.
type VerifyPaymentResponse struct {
	Verified bool `json:"verified"`
}

// PayOrderRequest finalizes an order after the gateway callback.
type PayOrderRequest struct {
	GatewayOrderID string `json:"gateway_order_id"`
	PaymentID      string `json:"payment_id"`
	Signature      string `json:"signature"`
	Email          string `json:"email"`
}

// WebhookAck acknowledges a processed webhook delivery.
type WebhookAck struct {
	Received bool `json:"received"`
}
