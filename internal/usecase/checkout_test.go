package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
	"github.com/artisanscorner/storefront/internal/domain/model"
	"github.com/artisanscorner/storefront/internal/domain/repository"
	"github.com/artisanscorner/storefront/internal/test"
)

func validDraft() repository.OrderDraft {
	return repository.OrderDraft{
		Items: []model.OrderItem{
			{ProductID: "p1", Name: "Ceramic Vase", UnitPrice: 49900, Quantity: 2},
			{ProductID: "p2", Name: "Woven Basket", UnitPrice: 19900, Quantity: 1},
		},
		ShippingAddress: model.ShippingAddress{Address: "1 Potter Lane", City: "Jaipur", PostalCode: "302001", Country: "India"},
		ItemsPrice:      119700,
		TaxPrice:        10000,
		ShippingPrice:   0,
		TotalPrice:      129700,
	}
}

func TestPlaceOrderPersistsUnpaidOrder(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	uc := NewCheckoutUseCase(orders)

	order, err := uc.PlaceOrder(context.Background(), 7, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.UserID != 7 {
		t.Errorf("expected owner 7, got %d", order.UserID)
	}
	if order.IsPaid {
		t.Errorf("new orders must start unpaid")
	}
	if order.TotalPrice != 129700 {
		t.Errorf("expected total 129700, got %d", order.TotalPrice)
	}
	if order.PaymentMethod != defaultPaymentMethod {
		t.Errorf("expected default payment method, got %q", order.PaymentMethod)
	}
}

func TestPlaceOrderRejectsMismatchedItemsPrice(t *testing.T) {
	uc := NewCheckoutUseCase(test.NewOrderRepositoryStub())

	draft := validDraft()
	// Client claims a cheaper cart than the snapshots add up to.
	draft.ItemsPrice = 100
	draft.TotalPrice = 10100

	if _, err := uc.PlaceOrder(context.Background(), 7, draft); !errors.Is(err, domainErrors.ErrAmountMismatch) {
		t.Fatalf("expected ErrAmountMismatch, got %v", err)
	}
}

func TestPlaceOrderRejectsNonAdditiveTotals(t *testing.T) {
	uc := NewCheckoutUseCase(test.NewOrderRepositoryStub())

	draft := validDraft()
	draft.TotalPrice = draft.TotalPrice - 5000

	if _, err := uc.PlaceOrder(context.Background(), 7, draft); !errors.Is(err, domainErrors.ErrAmountMismatch) {
		t.Fatalf("expected ErrAmountMismatch, got %v", err)
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	uc := NewCheckoutUseCase(test.NewOrderRepositoryStub())

	draft := validDraft()
	draft.Items = nil

	if _, err := uc.PlaceOrder(context.Background(), 7, draft); !errors.Is(err, domainErrors.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestGetOrderVisibility(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	orders.Put(&model.Order{ID: "order-1", UserID: 7})
	uc := NewCheckoutUseCase(orders)

	owner := &model.User{ID: 7}
	if _, err := uc.GetOrder(context.Background(), "order-1", owner); err != nil {
		t.Fatalf("owner must see own order, got %v", err)
	}

	stranger := &model.User{ID: 8}
	if _, err := uc.GetOrder(context.Background(), "order-1", stranger); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := &model.User{ID: 9, IsAdmin: true}
	if _, err := uc.GetOrder(context.Background(), "order-1", admin); err != nil {
		t.Fatalf("admin must see any order, got %v", err)
	}

	if _, err := uc.GetOrder(context.Background(), "missing", owner); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkDeliveredIsMonotonic(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	orders.Put(&model.Order{ID: "order-1", UserID: 7})
	uc := NewCheckoutUseCase(orders)

	first, err := uc.MarkDelivered(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.IsDelivered || first.DeliveredAt == nil {
		t.Fatalf("expected delivered state")
	}

	second, err := uc.MarkDelivered(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("repeated delivery must succeed, got %v", err)
	}
	if !second.DeliveredAt.Equal(*first.DeliveredAt) {
		t.Errorf("repeated delivery must not move the timestamp")
	}

	if _, err := uc.MarkDelivered(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
