package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
	"github.com/artisanscorner/storefront/internal/domain/model"
	"github.com/artisanscorner/storefront/internal/domain/repository"
	"github.com/artisanscorner/storefront/internal/pkg/signature"
	testhelpers "github.com/artisanscorner/storefront/internal/test"
	"github.com/artisanscorner/storefront/internal/usecase"
)

const facadeKeySecret = "facade-key-secret"

func newFacade() (*StorefrontFacade, *testhelpers.UserRepositoryStub, *testhelpers.OrderRepositoryStub, *testhelpers.GatewayClientStub) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	userRepo := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	authUC := usecase.NewAuthUseCase(userRepo, testhelpers.HasherStub{}, strategy)

	catalogUC := usecase.NewCatalogUseCase(testhelpers.NewProductRepositoryStub())

	orderRepo := testhelpers.NewOrderRepositoryStub()
	checkoutUC := usecase.NewCheckoutUseCase(orderRepo)

	gateway := &testhelpers.GatewayClientStub{}
	paymentUC := usecase.NewPaymentUseCase(orderRepo, gateway, facadeKeySecret, "INR", logger)
	webhookUC := usecase.NewWebhookUseCase(orderRepo, "facade-webhook-secret", logger)

	facade := NewStorefrontFacade(authUC, catalogUC, checkoutUC, paymentUC, webhookUC)
	return facade, userRepo, orderRepo, gateway
}

func facadeDraft() repository.OrderDraft {
	return repository.OrderDraft{
		Items: []model.OrderItem{
			{ProductID: "p1", Name: "Ceramic Vase", UnitPrice: 49900, Quantity: 2},
			{ProductID: "p2", Name: "Woven Basket", UnitPrice: 19900, Quantity: 1},
		},
		ShippingAddress: model.ShippingAddress{Address: "1 Potter Lane", City: "Jaipur", PostalCode: "302001", Country: "India"},
		PaymentMethod:   "razorpay",
		ItemsPrice:      119700,
		TaxPrice:        10000,
		ShippingPrice:   0,
		TotalPrice:      129700,
	}
}

func TestStorefrontFacadeAuth(t *testing.T) {
	facade, users, _, _ := newFacade()

	user, token, err := facade.Register(context.Background(), "Asha", "asha@example.com", "secret")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" || user.Email != "asha@example.com" {
		t.Fatalf("unexpected register result: user=%+v token=%q", user, token)
	}

	stored, err := users.GetByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}

	if _, _, err := facade.Authenticate(context.Background(), "asha@example.com", "secret"); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}

	id, err := facade.ParseToken("anything")
	if err != nil || id != 99 {
		t.Fatalf("unexpected parse result: id=%d err=%v", id, err)
	}

	loaded, err := facade.UserByID(context.Background(), stored.ID)
	if err != nil || loaded.Email != "asha@example.com" {
		t.Fatalf("unexpected lookup result: user=%+v err=%v", loaded, err)
	}
}

func TestStorefrontFacadeCatalog(t *testing.T) {
	facade, _, _, _ := newFacade()

	created, err := facade.CreateProduct(context.Background(), model.Product{Name: "Vase", Price: 49900, CountInStock: 3})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	listed, err := facade.Products(context.Background(), model.ProductFilter{})
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one product, got %v err=%v", listed, err)
	}

	created.Price = 52900
	if _, err := facade.UpdateProduct(context.Background(), *created); err != nil {
		t.Fatalf("update returned error: %v", err)
	}

	loaded, err := facade.Product(context.Background(), created.ID)
	if err != nil || loaded.Price != 52900 {
		t.Fatalf("unexpected product: %+v err=%v", loaded, err)
	}

	if err := facade.DeleteProduct(context.Background(), created.ID); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if _, err := facade.Product(context.Background(), created.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStorefrontFacadeCheckoutAndPayment(t *testing.T) {
	facade, _, _, gateway := newFacade()

	order, err := facade.PlaceOrder(context.Background(), 7, facadeDraft())
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if order.IsPaid || order.TotalPrice != 129700 {
		t.Fatalf("unexpected order: %+v", order)
	}

	checkout, err := facade.CreateGatewayOrder(context.Background(), 7, order.ID)
	if err != nil {
		t.Fatalf("create gateway order returned error: %v", err)
	}
	if checkout.GatewayOrderID != "order_stub" || checkout.Amount != 129700 {
		t.Fatalf("unexpected checkout: %+v", checkout)
	}
	if len(gateway.CreatedAmounts) != 1 || gateway.CreatedAmounts[0] != 129700 {
		t.Fatalf("gateway must be charged the stored total, got %v", gateway.CreatedAmounts)
	}

	sig := signature.Sign([]byte(facadeKeySecret), []byte(checkout.GatewayOrderID+"|pay_1"))
	if !facade.VerifyPayment(checkout.GatewayOrderID, "pay_1", sig) {
		t.Fatalf("expected genuine signature to verify")
	}
	if facade.VerifyPayment(checkout.GatewayOrderID, "pay_1", signature.Sign([]byte("other"), []byte("x"))) {
		t.Fatalf("expected foreign signature to fail")
	}

	paid, err := facade.ConfirmPayment(context.Background(), 7, order.ID, checkout.GatewayOrderID, "pay_1", sig, "asha@example.com")
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if !paid.IsPaid || paid.PaymentResult == nil || paid.PaymentResult.PaymentID != "pay_1" {
		t.Fatalf("unexpected paid order: %+v", paid)
	}

	mine, err := facade.MyOrders(context.Background(), 7)
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected one order, got %v err=%v", mine, err)
	}
	all, err := facade.AllOrders(context.Background())
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one order in admin list, got %v err=%v", all, err)
	}

	delivered, err := facade.MarkDelivered(context.Background(), order.ID)
	if err != nil || !delivered.IsDelivered {
		t.Fatalf("unexpected delivery result: %+v err=%v", delivered, err)
	}
}

func TestStorefrontFacadeReconciliationSurface(t *testing.T) {
	facade, _, orders, _ := newFacade()

	order, err := facade.PlaceOrder(context.Background(), 7, facadeDraft())
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if _, err := facade.CreateGatewayOrder(context.Background(), 7, order.ID); err != nil {
		t.Fatalf("create gateway order returned error: %v", err)
	}

	stale, err := facade.UnpaidOrders(context.Background(), time.Now().Add(time.Hour), 10)
	if err != nil || len(stale) != 1 {
		t.Fatalf("expected one stale unpaid order, got %v err=%v", stale, err)
	}

	payments, err := facade.OrderPayments(context.Background(), "order_stub")
	if err != nil || len(payments) != 0 {
		t.Fatalf("unexpected payments: %v err=%v", payments, err)
	}

	settled, changed, err := facade.SettlePayment(context.Background(), order.ID, model.PaymentResult{PaymentID: "pay_1", Status: "captured"})
	if err != nil || !changed || !settled.IsPaid {
		t.Fatalf("unexpected settle result: order=%+v changed=%v err=%v", settled, changed, err)
	}

	_, changed, err = facade.SettlePayment(context.Background(), order.ID, model.PaymentResult{PaymentID: "pay_2", Status: "captured"})
	if err != nil || changed {
		t.Fatalf("settle must be monotonic, changed=%v err=%v", changed, err)
	}
	stored, _ := orders.GetByID(context.Background(), order.ID)
	if stored.PaymentResult.PaymentID != "pay_1" {
		t.Fatalf("first settlement must win, got %q", stored.PaymentResult.PaymentID)
	}
}
