package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/artisanscorner/storefront/internal/adapter/razorpay"
	"github.com/artisanscorner/storefront/internal/app"
	"github.com/artisanscorner/storefront/internal/config"
	"github.com/artisanscorner/storefront/internal/domain/repository"
	"github.com/artisanscorner/storefront/internal/storage/postgres"
	"github.com/artisanscorner/storefront/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:           ":0",
		DatabaseURI:          "postgres://stub",
		JWTSecret:            "secret",
		Currency:             "INR",
		ReconcileInterval:    time.Millisecond,
		ReconcileGracePeriod: time.Millisecond,
		ReconcileBatch:       1,
		WorkerPoolSize:       1,
		ShutdownTimeout:      time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var facade *app.StorefrontFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(test.NewUserRepositoryStub())),
			fx.Replace(repository.ProductRepository(test.NewProductRepositoryStub())),
			fx.Replace(repository.OrderRepository(test.NewOrderRepositoryStub())),
			fx.Replace(razorpay.Client(&test.GatewayClientStub{})),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected storefront facade instance")
	}
}
