package model

// GatewayCheckout is everything the client SDK needs to collect a payment:
// the gateway's own order id, the charge in paise, and the publishable key.
type GatewayCheckout struct {
	GatewayOrderID string
	Amount         int64
	Currency       string
	KeyID          string
}
