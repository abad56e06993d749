package test

import (
	"context"
	"sync"
	"time"

	"github.com/artisanscorner/storefront/internal/adapter/razorpay"
	"github.com/artisanscorner/storefront/internal/domain/model"
	"github.com/artisanscorner/storefront/internal/domain/repository"
)

// GatewayClientStub simulates the payment gateway client.
type GatewayClientStub struct {
	CreateOrderFn   func(context.Context, int64, string, string) (*razorpay.GatewayOrder, error)
	OrderPaymentsFn func(context.Context, string) ([]razorpay.Payment, error)
	Key             string

	CreatedAmounts []int64
}

// CreateOrder returns a deterministic gateway order and records the amount.
func (s *GatewayClientStub) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*razorpay.GatewayOrder, error) {
	s.CreatedAmounts = append(s.CreatedAmounts, amount)
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, amount, currency, receipt)
	}
	return &razorpay.GatewayOrder{ID: "order_stub", Amount: amount, Currency: currency}, nil
}

// OrderPayments returns configured payment attempts.
func (s *GatewayClientStub) OrderPayments(ctx context.Context, gatewayOrderID string) ([]razorpay.Payment, error) {
	if s.OrderPaymentsFn != nil {
		return s.OrderPaymentsFn(ctx, gatewayOrderID)
	}
	return nil, nil
}

// KeyID returns the configured publishable key.
func (s *GatewayClientStub) KeyID() string {
	if s.Key != "" {
		return s.Key
	}
	return "rzp_test_stub"
}

var _ razorpay.Client = (*GatewayClientStub)(nil)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (int64, error)
	UserByIDFn     func(context.Context, int64) (*model.User, error)
}

// Register returns a user and token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, password)
	}
	return &model.User{ID: 1, Name: name, Email: email}, "token", nil
}

// Authenticate returns a user and token for successful login scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email}, "token", nil
}

// ParseToken returns stored identifier for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// UserByID loads a user record for authorization checks.
func (s AuthFacadeStub) UserByID(ctx context.Context, id int64) (*model.User, error) {
	if s.UserByIDFn != nil {
		return s.UserByIDFn(ctx, id)
	}
	return &model.User{ID: id, Name: "user", Email: "user@example.com"}, nil
}

// CatalogFacadeStub simulates catalog operations for HTTP tests.
type CatalogFacadeStub struct {
	ProductsFn      func(context.Context, model.ProductFilter) ([]model.Product, error)
	ProductFn       func(context.Context, string) (*model.Product, error)
	CreateProductFn func(context.Context, model.Product) (*model.Product, error)
	UpdateProductFn func(context.Context, model.Product) (*model.Product, error)
	DeleteProductFn func(context.Context, string) error
}

func (s CatalogFacadeStub) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return []model.Product{{ID: "p1", Name: "Vase", Price: 10000}}, nil
}

func (s CatalogFacadeStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Vase", Price: 10000}, nil
}

func (s CatalogFacadeStub) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, product)
	}
	product.ID = "p1"
	return &product, nil
}

func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, product)
	}
	return &product, nil
}

func (s CatalogFacadeStub) DeleteProduct(ctx context.Context, id string) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, id)
	}
	return nil
}

// OrderFacadeStub simulates order operations for HTTP tests.
type OrderFacadeStub struct {
	PlaceOrderFn    func(context.Context, int64, repository.OrderDraft) (*model.Order, error)
	OrderFn         func(context.Context, string, *model.User) (*model.Order, error)
	MyOrdersFn      func(context.Context, int64) ([]model.Order, error)
	AllOrdersFn     func(context.Context) ([]model.Order, error)
	MarkDeliveredFn func(context.Context, string) (*model.Order, error)
}

func (s OrderFacadeStub) PlaceOrder(ctx context.Context, userID int64, draft repository.OrderDraft) (*model.Order, error) {
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, userID, draft)
	}
	return &model.Order{ID: "o1", UserID: userID, TotalPrice: draft.TotalPrice}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, orderID string, requester *model.User) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID, requester)
	}
	return &model.Order{ID: orderID, UserID: requester.ID}, nil
}

func (s OrderFacadeStub) MyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.MyOrdersFn != nil {
		return s.MyOrdersFn(ctx, userID)
	}
	return []model.Order{{ID: "o1", UserID: userID}}, nil
}

func (s OrderFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return []model.Order{{ID: "o1"}}, nil
}

func (s OrderFacadeStub) MarkDelivered(ctx context.Context, orderID string) (*model.Order, error) {
	if s.MarkDeliveredFn != nil {
		return s.MarkDeliveredFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, IsDelivered: true}, nil
}

// PaymentFacadeStub simulates gateway checkout operations for HTTP tests.
type PaymentFacadeStub struct {
	CreateGatewayOrderFn func(context.Context, int64, string) (*model.GatewayCheckout, error)
	VerifyFn             func(string, string, string) bool
	ConfirmFn            func(context.Context, int64, string, string, string, string, string) (*model.Order, error)
}

func (s PaymentFacadeStub) CreateGatewayOrder(ctx context.Context, userID int64, orderID string) (*model.GatewayCheckout, error) {
	if s.CreateGatewayOrderFn != nil {
		return s.CreateGatewayOrderFn(ctx, userID, orderID)
	}
	return &model.GatewayCheckout{GatewayOrderID: "order_stub", Amount: 1000, Currency: "INR", KeyID: "rzp_test_stub"}, nil
}

func (s PaymentFacadeStub) VerifyPayment(gatewayOrderID, paymentID, signature string) bool {
	if s.VerifyFn != nil {
		return s.VerifyFn(gatewayOrderID, paymentID, signature)
	}
	return true
}

func (s PaymentFacadeStub) ConfirmPayment(ctx context.Context, userID int64, orderID, gatewayOrderID, paymentID, signature, payerEmail string) (*model.Order, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, userID, orderID, gatewayOrderID, paymentID, signature, payerEmail)
	}
	return &model.Order{ID: orderID, IsPaid: true}, nil
}

// WebhookFacadeStub simulates webhook processing for HTTP tests.
type WebhookFacadeStub struct {
	HandleFn func(context.Context, []byte, string) (*model.WebhookEvent, error)
}

func (s WebhookFacadeStub) HandleWebhook(ctx context.Context, body []byte, signature string) (*model.WebhookEvent, error) {
	if s.HandleFn != nil {
		return s.HandleFn(ctx, body, signature)
	}
	return &model.WebhookEvent{Kind: model.EventPaymentCaptured}, nil
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
	WebhookFacadeStub
}

// SettleCall stores information about SettlePayment invocations.
type SettleCall struct {
	OrderID string
	Result  model.PaymentResult
}

// ReconcilerFacadeStub mimics worker interactions with the payment facade.
type ReconcilerFacadeStub struct {
	UnpaidFn   func(context.Context, time.Time, int) ([]model.Order, error)
	PaymentsFn func(context.Context, string) ([]razorpay.Payment, error)
	SettleFn   func(context.Context, string, model.PaymentResult) (*model.Order, bool, error)

	Batches [][]model.Order

	mu          sync.Mutex
	Settled     []SettleCall
	batchCursor int
}

// Lock exposes internal mutex for external synchronization.
func (s *ReconcilerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReconcilerFacadeStub) Unlock() { s.mu.Unlock() }

// UnpaidOrders returns batches from the configured queue.
func (s *ReconcilerFacadeStub) UnpaidOrders(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error) {
	if s.UnpaidFn != nil {
		return s.UnpaidFn(ctx, olderThan, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batchCursor < len(s.Batches) {
		batch := s.Batches[s.batchCursor]
		s.batchCursor++
		return batch, nil
	}
	return nil, nil
}

// OrderPayments returns configured payment attempts.
func (s *ReconcilerFacadeStub) OrderPayments(ctx context.Context, gatewayOrderID string) ([]razorpay.Payment, error) {
	if s.PaymentsFn != nil {
		return s.PaymentsFn(ctx, gatewayOrderID)
	}
	return []razorpay.Payment{{
		ID:             "pay_stub",
		GatewayOrderID: gatewayOrderID,
		Status:         razorpay.PaymentStatusCaptured,
	}}, nil
}

// SettlePayment records settle requests.
func (s *ReconcilerFacadeStub) SettlePayment(ctx context.Context, orderID string, result model.PaymentResult) (*model.Order, bool, error) {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, orderID, result)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Settled = append(s.Settled, SettleCall{OrderID: orderID, Result: result})
	return &model.Order{ID: orderID, IsPaid: true}, true, nil
}
