package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
	"github.com/artisanscorner/storefront/internal/domain/model"
	"github.com/artisanscorner/storefront/internal/domain/repository"
	"github.com/artisanscorner/storefront/internal/pricing"
)

const defaultPaymentMethod = "razorpay"

// CheckoutUseCase turns a submitted cart into a persisted unpaid order.
type CheckoutUseCase struct {
	orders repository.OrderRepository
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(orders repository.OrderRepository) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders}
}

// PlaceOrder validates and persists an order draft in the unpaid state.
//
// The items price is recomputed from the submitted snapshots and the
// submitted totals must add up; the amount charged later derives from the
// stored total, so a client can never pay a number it made up.
func (u *CheckoutUseCase) PlaceOrder(ctx context.Context, userID int64, draft repository.OrderDraft) (*model.Order, error) {
	itemsPrice, err := pricing.ItemsTotal(draft.Items)
	if err != nil {
		return nil, err
	}
	if draft.ItemsPrice != itemsPrice {
		return nil, domainErrors.ErrAmountMismatch
	}
	if !pricing.Consistent(pricing.Totals{
		ItemsPrice:    draft.ItemsPrice,
		TaxPrice:      draft.TaxPrice,
		ShippingPrice: draft.ShippingPrice,
		TotalPrice:    draft.TotalPrice,
	}) {
		return nil, domainErrors.ErrAmountMismatch
	}

	draft.UserID = userID
	if draft.PaymentMethod == "" {
		draft.PaymentMethod = defaultPaymentMethod
	}

	return u.orders.Create(ctx, draft)
}

// GetOrder returns an order visible to the requesting user. Admins see
// every order, customers only their own.
func (u *CheckoutUseCase) GetOrder(ctx context.Context, orderID string, requester *model.User) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin && order.UserID != requester.ID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// ListByUser returns the requesting user's order history, newest first.
func (u *CheckoutUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListAll returns every order; admin dashboards only.
func (u *CheckoutUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListAll(ctx)
}

// MarkDelivered records an administrator's delivery confirmation.
// Independent of the payment lifecycle and monotonic: repeated calls are
// no-ops returning the stored state.
func (u *CheckoutUseCase) MarkDelivered(ctx context.Context, orderID string) (*model.Order, error) {
	order, _, err := u.orders.MarkDelivered(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}
