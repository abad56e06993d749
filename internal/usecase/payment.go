package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/artisanscorner/storefront/internal/adapter/razorpay"
	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
	"github.com/artisanscorner/storefront/internal/domain/model"
	"github.com/artisanscorner/storefront/internal/domain/repository"
	"github.com/artisanscorner/storefront/internal/pkg/signature"
)

// PaymentUseCase drives the order payment workflow: gateway order creation,
// signature verification and the paid-state transition.
type PaymentUseCase struct {
	orders    repository.OrderRepository
	gateway   razorpay.Client
	keySecret []byte
	currency  string
	logger    *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(orders repository.OrderRepository, gateway razorpay.Client, keySecret, currency string, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		orders:    orders,
		gateway:   gateway,
		keySecret: []byte(keySecret),
		currency:  currency,
		logger:    logger,
	}
}

// CreateGatewayOrder registers the order's total with the gateway and
// returns the handoff data for the client SDK. The charged amount is the
// stored server-side total; client-supplied amounts are never accepted.
func (p *PaymentUseCase) CreateGatewayOrder(ctx context.Context, userID int64, orderID string) (*model.GatewayCheckout, error) {
	order, err := p.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	if order.IsPaid {
		return nil, domainErrors.ErrAlreadyPaid
	}

	gatewayOrder, err := p.gateway.CreateOrder(ctx, order.TotalPrice, p.currency, order.ID)
	if err != nil {
		return nil, err
	}

	if err := p.orders.SetGatewayOrder(ctx, order.ID, gatewayOrder.ID); err != nil {
		return nil, err
	}

	return &model.GatewayCheckout{
		GatewayOrderID: gatewayOrder.ID,
		Amount:         gatewayOrder.Amount,
		Currency:       gatewayOrder.Currency,
		KeyID:          p.gateway.KeyID(),
	}, nil
}

// Verify recomputes the payment signature and compares it in constant time.
// Pure check, no state change.
func (p *PaymentUseCase) Verify(gatewayOrderID, paymentID, receivedSignature string) bool {
	return signature.VerifyPayment(p.keySecret, gatewayOrderID, paymentID, receivedSignature)
}

// ConfirmPayment is the client-callback path to the paid state. Verification
// happens here, server side; a client-asserted "verified" flag is never
// trusted. Confirming an already paid order is a no-op returning the stored
// state, so the callback and the webhook can race safely.
func (p *PaymentUseCase) ConfirmPayment(ctx context.Context, userID int64, orderID, gatewayOrderID, paymentID, receivedSignature, payerEmail string) (*model.Order, error) {
	order, err := p.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	if order.GatewayOrderID == "" || order.GatewayOrderID != gatewayOrderID {
		p.logger.Warn("payment confirmation for wrong gateway order",
			slog.String("order_id", order.ID),
			slog.String("payment_id", paymentID),
		)
		return nil, domainErrors.ErrVerificationFailed
	}

	if !p.Verify(gatewayOrderID, paymentID, receivedSignature) {
		// Security event: forged or altered confirmation. The signature
		// itself is never logged.
		p.logger.Warn("payment signature verification failed",
			slog.String("order_id", order.ID),
			slog.String("payment_id", paymentID),
		)
		return nil, domainErrors.ErrVerificationFailed
	}

	result := model.PaymentResult{
		PaymentID:  paymentID,
		Status:     razorpay.PaymentStatusCaptured,
		Email:      payerEmail,
		UpdateTime: time.Now(),
	}
	updated, changed, err := p.orders.MarkPaid(ctx, order.ID, result)
	if err != nil {
		return nil, err
	}
	if !changed {
		p.logger.Info("order already paid, confirmation is a no-op",
			slog.String("order_id", order.ID),
			slog.String("payment_id", paymentID),
		)
	}
	return updated, nil
}

// SettlePayment marks an order paid from gateway-sourced data: either a
// verified webhook event or a reconciler fetch. No user session involved.
func (p *PaymentUseCase) SettlePayment(ctx context.Context, orderID string, result model.PaymentResult) (*model.Order, bool, error) {
	return p.orders.MarkPaid(ctx, orderID, result)
}

// UnpaidOrders lists orders awaiting gateway settlement, oldest first.
func (p *PaymentUseCase) UnpaidOrders(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error) {
	return p.orders.ListUnpaidWithGatewayOrder(ctx, olderThan, limit)
}

// OrderPayments asks the gateway for payment attempts against a gateway order.
func (p *PaymentUseCase) OrderPayments(ctx context.Context, gatewayOrderID string) ([]razorpay.Payment, error) {
	return p.gateway.OrderPayments(ctx, gatewayOrderID)
}
