package model

import "time"

// OrderItem is a denormalized snapshot of a product taken at order time,
// so later catalog edits never change historical orders.
type OrderItem struct {
	ProductID string
	Name      string
	Image     string
	UnitPrice int64
	Quantity  int
}

// ShippingAddress holds free-text delivery fields.
type ShippingAddress struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

// PaymentResult records a verified gateway payment. Its presence together
// with IsPaid is the only authoritative signal that money changed hands.
type PaymentResult struct {
	PaymentID  string
	Status     string
	Email      string
	UpdateTime time.Time
}

// Order describes a purchase. All money fields are in paise.
type Order struct {
	ID              string
	UserID          int64
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   string
	ItemsPrice      int64
	TaxPrice        int64
	ShippingPrice   int64
	TotalPrice      int64
	GatewayOrderID  string
	PaymentResult   *PaymentResult
	IsPaid          bool
	PaidAt          *time.Time
	IsDelivered     bool
	DeliveredAt     *time.Time
	CreatedAt       time.Time
}
