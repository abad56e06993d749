package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/artisanscorner/storefront/internal/adapter/razorpay"
	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
	"github.com/artisanscorner/storefront/internal/domain/model"
	"github.com/artisanscorner/storefront/internal/pkg/signature"
	"github.com/artisanscorner/storefront/internal/test"
)

const paymentKeySecret = "test-key-secret"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newPaymentFixture() (*PaymentUseCase, *test.OrderRepositoryStub, *test.GatewayClientStub) {
	orders := test.NewOrderRepositoryStub()
	gateway := &test.GatewayClientStub{Key: "rzp_test_key"}
	uc := NewPaymentUseCase(orders, gateway, paymentKeySecret, "INR", discardLogger())
	return uc, orders, gateway
}

func seedOrder(orders *test.OrderRepositoryStub, id string, userID int64, total int64) *model.Order {
	order := &model.Order{
		ID:         id,
		UserID:     userID,
		Items:      []model.OrderItem{{ProductID: "p1", UnitPrice: total, Quantity: 1}},
		ItemsPrice: total,
		TotalPrice: total,
	}
	orders.Put(order)
	return order
}

func paymentSignature(gatewayOrderID, paymentID string) string {
	return signature.Sign([]byte(paymentKeySecret), []byte(gatewayOrderID+"|"+paymentID))
}

func TestCreateGatewayOrderChargesStoredTotal(t *testing.T) {
	uc, orders, gateway := newPaymentFixture()
	seedOrder(orders, "order-1", 7, 129700)

	checkout, err := uc.CreateGatewayOrder(context.Background(), 7, "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if checkout.Amount != 129700 {
		t.Errorf("expected amount 129700, got %d", checkout.Amount)
	}
	if checkout.Currency != "INR" {
		t.Errorf("expected INR, got %q", checkout.Currency)
	}
	if checkout.KeyID != "rzp_test_key" {
		t.Errorf("expected publishable key in handoff, got %q", checkout.KeyID)
	}
	if len(gateway.CreatedAmounts) != 1 || gateway.CreatedAmounts[0] != 129700 {
		t.Errorf("gateway must be charged the stored total, got %v", gateway.CreatedAmounts)
	}

	stored, err := orders.GetByID(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.GatewayOrderID != checkout.GatewayOrderID {
		t.Errorf("gateway order id must be persisted, got %q", stored.GatewayOrderID)
	}
}

func TestCreateGatewayOrderForbiddenForForeignOrder(t *testing.T) {
	uc, orders, _ := newPaymentFixture()
	seedOrder(orders, "order-1", 7, 10000)

	if _, err := uc.CreateGatewayOrder(context.Background(), 8, "order-1"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateGatewayOrderRejectsPaidOrder(t *testing.T) {
	uc, orders, _ := newPaymentFixture()
	order := seedOrder(orders, "order-1", 7, 10000)
	order.IsPaid = true

	if _, err := uc.CreateGatewayOrder(context.Background(), 7, "order-1"); !errors.Is(err, domainErrors.ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestCreateGatewayOrderPropagatesGatewayFailure(t *testing.T) {
	uc, orders, gateway := newPaymentFixture()
	seedOrder(orders, "order-1", 7, 10000)
	gateway.CreateOrderFn = func(context.Context, int64, string, string) (*razorpay.GatewayOrder, error) {
		return nil, domainErrors.ErrGatewayUnavailable
	}

	if _, err := uc.CreateGatewayOrder(context.Background(), 7, "order-1"); !errors.Is(err, domainErrors.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}

	stored, _ := orders.GetByID(context.Background(), "order-1")
	if stored.GatewayOrderID != "" {
		t.Errorf("failed gateway call must not persist a gateway order id")
	}
}

func TestConfirmPaymentMarksOrderPaid(t *testing.T) {
	uc, orders, _ := newPaymentFixture()
	seedOrder(orders, "order-1", 7, 129700)
	if _, err := uc.CreateGatewayOrder(context.Background(), 7, "order-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := orders.GetByID(context.Background(), "order-1")

	sig := paymentSignature(stored.GatewayOrderID, "pay_42")
	order, err := uc.ConfirmPayment(context.Background(), 7, "order-1", stored.GatewayOrderID, "pay_42", sig, "buyer@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !order.IsPaid {
		t.Fatalf("expected order to be paid")
	}
	if order.PaidAt == nil {
		t.Errorf("expected paid timestamp")
	}
	if order.PaymentResult == nil || order.PaymentResult.PaymentID != "pay_42" {
		t.Errorf("expected payment result for pay_42, got %+v", order.PaymentResult)
	}
	if order.PaymentResult.Status != razorpay.PaymentStatusCaptured {
		t.Errorf("expected captured status, got %q", order.PaymentResult.Status)
	}
}

func TestConfirmPaymentRejectsForgedSignature(t *testing.T) {
	uc, orders, _ := newPaymentFixture()
	seedOrder(orders, "order-1", 7, 129700)
	if _, err := uc.CreateGatewayOrder(context.Background(), 7, "order-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := orders.GetByID(context.Background(), "order-1")

	forged := signature.Sign([]byte("attacker-secret"), []byte(stored.GatewayOrderID+"|pay_42"))
	if _, err := uc.ConfirmPayment(context.Background(), 7, "order-1", stored.GatewayOrderID, "pay_42", forged, ""); !errors.Is(err, domainErrors.ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}

	after, _ := orders.GetByID(context.Background(), "order-1")
	if after.IsPaid || after.PaymentResult != nil {
		t.Fatalf("forged confirmation must not change order state")
	}
	if len(orders.MarkPaidCalls) != 0 {
		t.Fatalf("forged confirmation must not reach the repository")
	}
}

func TestConfirmPaymentRejectsMismatchedGatewayOrder(t *testing.T) {
	uc, orders, _ := newPaymentFixture()
	seedOrder(orders, "order-1", 7, 129700)
	if _, err := uc.CreateGatewayOrder(context.Background(), 7, "order-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Signature is valid for the submitted pair, but the pair does not belong
	// to this order.
	sig := paymentSignature("order_other", "pay_42")
	if _, err := uc.ConfirmPayment(context.Background(), 7, "order-1", "order_other", "pay_42", sig, ""); !errors.Is(err, domainErrors.ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
}

func TestConfirmPaymentIsIdempotent(t *testing.T) {
	uc, orders, _ := newPaymentFixture()
	seedOrder(orders, "order-1", 7, 129700)
	if _, err := uc.CreateGatewayOrder(context.Background(), 7, "order-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := orders.GetByID(context.Background(), "order-1")
	sig := paymentSignature(stored.GatewayOrderID, "pay_42")

	first, err := uc.ConfirmPayment(context.Background(), 7, "order-1", stored.GatewayOrderID, "pay_42", sig, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.ConfirmPayment(context.Background(), 7, "order-1", stored.GatewayOrderID, "pay_42", sig, "")
	if err != nil {
		t.Fatalf("repeated confirmation must succeed, got %v", err)
	}
	if !second.IsPaid {
		t.Fatalf("expected order to stay paid")
	}
	if !second.PaidAt.Equal(*first.PaidAt) {
		t.Errorf("repeated confirmation must not move the paid timestamp")
	}
	if second.PaymentResult.PaymentID != first.PaymentResult.PaymentID {
		t.Errorf("repeated confirmation must not replace the payment result")
	}
}

func TestSettlePaymentIsMonotonic(t *testing.T) {
	uc, orders, _ := newPaymentFixture()
	seedOrder(orders, "order-1", 7, 129700)

	first := model.PaymentResult{PaymentID: "pay_1", Status: razorpay.PaymentStatusCaptured}
	if _, changed, err := uc.SettlePayment(context.Background(), "order-1", first); err != nil || !changed {
		t.Fatalf("expected first settle to flip paid state, changed=%v err=%v", changed, err)
	}

	second := model.PaymentResult{PaymentID: "pay_2", Status: razorpay.PaymentStatusCaptured}
	order, changed, err := uc.SettlePayment(context.Background(), "order-1", second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Fatalf("second settle must be a no-op")
	}
	if order.PaymentResult.PaymentID != "pay_1" {
		t.Errorf("stored payment result must not be overwritten, got %q", order.PaymentResult.PaymentID)
	}
}
