package router

import (
	"go.uber.org/fx"

	"github.com/artisanscorner/storefront/internal/app"
	"github.com/artisanscorner/storefront/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(facade *app.StorefrontFacade) handlers.StorefrontFacade { return facade }),
	fx.Provide(Setup),
)
