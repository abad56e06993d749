package dto

import "time"

// OrderItemPayload is a product snapshot inside an order. Unit price in paise.
type OrderItemPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// ShippingAddressPayload carries the free-text delivery fields.
type ShippingAddressPayload struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CreateOrderRequest is the checkout submission. All amounts in paise; the
// server recomputes and cross-checks them before persisting.
type CreateOrderRequest struct {
	OrderItems      []OrderItemPayload     `json:"order_items"`
	ShippingAddress ShippingAddressPayload `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	ItemsPrice      int64                  `json:"items_price"`
	TaxPrice        int64                  `json:"tax_price"`
	ShippingPrice   int64                  `json:"shipping_price"`
	TotalPrice      int64                  `json:"total_price"`
}

// PaymentResultResponse mirrors a verified gateway payment.
type PaymentResultResponse struct {
	PaymentID  string    `json:"payment_id"`
	Status     string    `json:"status"`
	Email      string    `json:"email,omitempty"`
	UpdateTime time.Time `json:"update_time"`
}

// OrderResponse is the stored order as returned to clients.
type OrderResponse struct {
	ID              string                 `json:"id"`
	OrderItems      []OrderItemPayload     `json:"order_items"`
	ShippingAddress ShippingAddressPayload `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	ItemsPrice      int64                  `json:"items_price"`
	TaxPrice        int64                  `json:"tax_price"`
	ShippingPrice   int64                  `json:"shipping_price"`
	TotalPrice      int64                  `json:"total_price"`
	TotalDisplay    string                 `json:"total_display"`
	PaymentResult   *PaymentResultResponse `json:"payment_result,omitempty"`
	IsPaid          bool                   `json:"is_paid"`
	PaidAt          *time.Time             `json:"paid_at,omitempty"`
	IsDelivered     bool                   `json:"is_delivered"`
	DeliveredAt     *time.Time             `json:"delivered_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}
