package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
	"github.com/artisanscorner/storefront/internal/domain/model"
	"github.com/artisanscorner/storefront/internal/domain/repository"
	"github.com/artisanscorner/storefront/internal/pkg/signature"
)

// WebhookUseCase reconciles asynchronous gateway notifications. It is the
// safety net for payments whose client callback never fired: a captured
// event can mark an order paid purely from gateway-pushed data.
type WebhookUseCase struct {
	orders        repository.OrderRepository
	webhookSecret []byte
	logger        *slog.Logger
}

// NewWebhookUseCase constructs WebhookUseCase.
func NewWebhookUseCase(orders repository.OrderRepository, webhookSecret string, logger *slog.Logger) *WebhookUseCase {
	return &WebhookUseCase{orders: orders, webhookSecret: []byte(webhookSecret), logger: logger}
}

// webhookEnvelope mirrors the gateway's notification payload.
type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
				Email   string `json:"email"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// Handle verifies and processes one webhook delivery. The signature covers
// the raw body, so verification runs before any decoding. Deliveries are
// at-least-once: everything past verification must stay idempotent.
func (u *WebhookUseCase) Handle(ctx context.Context, body []byte, receivedSignature string) (*model.WebhookEvent, error) {
	if !signature.VerifyWebhook(u.webhookSecret, body, receivedSignature) {
		u.logger.Warn("webhook signature verification failed")
		return nil, domainErrors.ErrVerificationFailed
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	event := &model.WebhookEvent{
		Kind:           model.ParseWebhookEventKind(envelope.Event),
		RawKind:        envelope.Event,
		PaymentID:      envelope.Payload.Payment.Entity.ID,
		GatewayOrderID: envelope.Payload.Payment.Entity.OrderID,
		Status:         envelope.Payload.Payment.Entity.Status,
		Email:          envelope.Payload.Payment.Entity.Email,
	}

	switch event.Kind {
	case model.EventPaymentCaptured:
		if err := u.reconcileCapture(ctx, event); err != nil {
			return nil, err
		}
	case model.EventPaymentFailed:
		// No money moved, so no order mutation. Recorded for follow-up.
		u.logger.Warn("payment failed",
			slog.String("payment_id", event.PaymentID),
			slog.String("gateway_order_id", event.GatewayOrderID),
		)
	default:
		u.logger.Info("ignoring unknown webhook event", slog.String("event", event.RawKind))
	}

	return event, nil
}

func (u *WebhookUseCase) reconcileCapture(ctx context.Context, event *model.WebhookEvent) error {
	order, err := u.orders.GetByGatewayOrder(ctx, event.GatewayOrderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			// Nothing to reconcile against; retries will not help, so the
			// delivery is acknowledged after logging.
			u.logger.Warn("captured payment for unknown gateway order",
				slog.String("gateway_order_id", event.GatewayOrderID),
				slog.String("payment_id", event.PaymentID),
			)
			return nil
		}
		return err
	}

	result := model.PaymentResult{
		PaymentID:  event.PaymentID,
		Status:     event.Status,
		Email:      event.Email,
		UpdateTime: time.Now(),
	}
	_, changed, err := u.orders.MarkPaid(ctx, order.ID, result)
	if err != nil {
		return err
	}
	if !changed {
		u.logger.Info("order already paid, webhook capture is a no-op",
			slog.String("order_id", order.ID),
			slog.String("payment_id", event.PaymentID),
		)
		return nil
	}

	u.logger.Info("order reconciled as paid via webhook",
		slog.String("order_id", order.ID),
		slog.String("payment_id", event.PaymentID),
	)
	return nil
}
