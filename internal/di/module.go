package di

import (
	"go.uber.org/fx"

	"github.com/artisanscorner/storefront/internal/adapter/razorpay"
	"github.com/artisanscorner/storefront/internal/app"
	"github.com/artisanscorner/storefront/internal/config"
	"github.com/artisanscorner/storefront/internal/logger"
	"github.com/artisanscorner/storefront/internal/pkg/auth"
	"github.com/artisanscorner/storefront/internal/server/http/router"
	"github.com/artisanscorner/storefront/internal/storage/postgres"
	"github.com/artisanscorner/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		razorpay.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
