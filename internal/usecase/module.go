package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/artisanscorner/storefront/internal/adapter/razorpay"
	"github.com/artisanscorner/storefront/internal/config"
	"github.com/artisanscorner/storefront/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewCheckoutUseCase,
	newPaymentUseCase,
	newWebhookUseCase,
)

type paymentParams struct {
	fx.In

	Orders  repository.OrderRepository
	Gateway razorpay.Client
	Config  *config.Config
	Logger  *slog.Logger
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Orders, p.Gateway, p.Config.RazorpayKeySecret, p.Config.Currency, p.Logger)
}

type webhookParams struct {
	fx.In

	Orders repository.OrderRepository
	Config *config.Config
	Logger *slog.Logger
}

func newWebhookUseCase(p webhookParams) *WebhookUseCase {
	return NewWebhookUseCase(p.Orders, p.Config.RazorpayWebhookSecret, p.Logger)
}
