package app

import (
	"context"
	"time"

	"github.com/artisanscorner/storefront/internal/adapter/razorpay"
	"github.com/artisanscorner/storefront/internal/domain/model"
	"github.com/artisanscorner/storefront/internal/domain/repository"
	"github.com/artisanscorner/storefront/internal/usecase"
)

// StorefrontFacade aggregates the application use cases behind one surface
// consumed by the HTTP layer and the background reconciler.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	checkout *usecase.CheckoutUseCase
	payments *usecase.PaymentUseCase
	webhooks *usecase.WebhookUseCase
}

func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	checkout *usecase.CheckoutUseCase,
	payments *usecase.PaymentUseCase,
	webhooks *usecase.WebhookUseCase,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:     auth,
		catalog:  catalog,
		checkout: checkout,
		payments: payments,
		webhooks: webhooks,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, name, email, password)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *StorefrontFacade) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return f.catalog.List(ctx, filter)
}

func (f *StorefrontFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return f.catalog.Create(ctx, product)
}

func (f *StorefrontFacade) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return f.catalog.Update(ctx, product)
}

func (f *StorefrontFacade) DeleteProduct(ctx context.Context, id string) error {
	return f.catalog.Delete(ctx, id)
}

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, userID int64, draft repository.OrderDraft) (*model.Order, error) {
	return f.checkout.PlaceOrder(ctx, userID, draft)
}

func (f *StorefrontFacade) Order(ctx context.Context, orderID string, requester *model.User) (*model.Order, error) {
	return f.checkout.GetOrder(ctx, orderID, requester)
}

func (f *StorefrontFacade) MyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.checkout.ListByUser(ctx, userID)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.checkout.ListAll(ctx)
}

func (f *StorefrontFacade) MarkDelivered(ctx context.Context, orderID string) (*model.Order, error) {
	return f.checkout.MarkDelivered(ctx, orderID)
}

func (f *StorefrontFacade) CreateGatewayOrder(ctx context.Context, userID int64, orderID string) (*model.GatewayCheckout, error) {
	return f.payments.CreateGatewayOrder(ctx, userID, orderID)
}

func (f *StorefrontFacade) VerifyPayment(gatewayOrderID, paymentID, signature string) bool {
	return f.payments.Verify(gatewayOrderID, paymentID, signature)
}

func (f *StorefrontFacade) ConfirmPayment(ctx context.Context, userID int64, orderID, gatewayOrderID, paymentID, signature, payerEmail string) (*model.Order, error) {
	return f.payments.ConfirmPayment(ctx, userID, orderID, gatewayOrderID, paymentID, signature, payerEmail)
}

func (f *StorefrontFacade) HandleWebhook(ctx context.Context, body []byte, signature string) (*model.WebhookEvent, error) {
	return f.webhooks.Handle(ctx, body, signature)
}

func (f *StorefrontFacade) UnpaidOrders(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error) {
	return f.payments.UnpaidOrders(ctx, olderThan, limit)
}

func (f *StorefrontFacade) OrderPayments(ctx context.Context, gatewayOrderID string) ([]razorpay.Payment, error) {
	return f.payments.OrderPayments(ctx, gatewayOrderID)
}

func (f *StorefrontFacade) SettlePayment(ctx context.Context, orderID string, result model.PaymentResult) (*model.Order, bool, error) {
	return f.payments.SettlePayment(ctx, orderID, result)
}
