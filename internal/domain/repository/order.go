package repository

import (
	"context"
	"time"

	"github.com/artisanscorner/storefront/internal/domain/model"
)

// OrderDraft carries everything needed to persist an unpaid order.
type OrderDraft struct {
	UserID          int64
	Items           []model.OrderItem
	ShippingAddress model.ShippingAddress
	PaymentMethod   string
	ItemsPrice      int64
	TaxPrice        int64
	ShippingPrice   int64
	TotalPrice      int64
}

// OrderRepository describes persistence operations with orders.
//
// MarkPaid is the only entry point that may flip IsPaid and must be an
// atomic conditional update: a call against an already paid order reports
// changed=false and leaves the stored PaymentResult/PaidAt untouched.
type OrderRepository interface {
	Create(ctx context.Context, draft OrderDraft) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	GetByGatewayOrder(ctx context.Context, gatewayOrderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	ListUnpaidWithGatewayOrder(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error)
	SetGatewayOrder(ctx context.Context, orderID, gatewayOrderID string) error
	MarkPaid(ctx context.Context, orderID string, result model.PaymentResult) (*model.Order, bool, error)
	MarkDelivered(ctx context.Context, orderID string) (*model.Order, bool, error)
}
