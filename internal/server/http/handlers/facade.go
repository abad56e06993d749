package handlers

import (
	"context"

	"github.com/artisanscorner/storefront/internal/domain/model"
	"github.com/artisanscorner/storefront/internal/domain/repository"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

// CatalogFacade exposes product catalog operations over HTTP.
type CatalogFacade interface {
	Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID int64, draft repository.OrderDraft) (*model.Order, error)
	Order(ctx context.Context, orderID string, requester *model.User) (*model.Order, error)
	MyOrders(ctx context.Context, userID int64) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	MarkDelivered(ctx context.Context, orderID string) (*model.Order, error)
}

// PaymentFacade drives gateway order creation and payment confirmation.
type PaymentFacade interface {
	CreateGatewayOrder(ctx context.Context, userID int64, orderID string) (*model.GatewayCheckout, error)
	VerifyPayment(gatewayOrderID, paymentID, signature string) bool
	ConfirmPayment(ctx context.Context, userID int64, orderID, gatewayOrderID, paymentID, signature, payerEmail string) (*model.Order, error)
}

// WebhookFacade processes asynchronous gateway notifications.
type WebhookFacade interface {
	HandleWebhook(ctx context.Context, body []byte, signature string) (*model.WebhookEvent, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	PaymentFacade
	WebhookFacade
}
