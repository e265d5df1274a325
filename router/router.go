package router

import (
	"github.com/labstack/echo/v4"

	"carbonledger/pkg/middleware"
)

// New wires the API surface consumed by the field-office UI. Everything
// lives under /api/v1; verify/pool/purchase/payout and the admin panel
// routes additionally require the X-Admin-Key credential.
func New(
	e *echo.Echo,
	adminKey string,
	farmerCtrl interface {
		Create(echo.Context) error
		Wallet(echo.Context) error
	},
	plotCtrl interface{ Create(echo.Context) error },
	eventCtrl interface {
		Log(echo.Context) error
		List(echo.Context) error
		Verify(echo.Context) error
	},
	lotCtrl interface {
		List(echo.Context) error
		Pool(echo.Context) error
		Receipt(echo.Context) error
	},
	marketCtrl interface{ Purchase(echo.Context) error },
	payoutCtrl interface{ Run(echo.Context) error },
	adminCtrl interface {
		Stats(echo.Context) error
		Registry(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	api := e.Group("/api/v1")

	api.POST("/farmers", farmerCtrl.Create)
	api.GET("/farmers/:id/wallet", farmerCtrl.Wallet)

	api.POST("/plots", plotCtrl.Create)

	api.POST("/events", eventCtrl.Log)
	api.GET("/events", eventCtrl.List)

	api.GET("/lots", lotCtrl.List)
	api.GET("/lots/:id/receipt", lotCtrl.Receipt)

	gated := api.Group("", middleware.AdminKey(adminKey))
	gated.POST("/events/:id/verify", eventCtrl.Verify)
	gated.POST("/lots/pool", lotCtrl.Pool)
	gated.POST("/buyers/purchase", marketCtrl.Purchase)
	gated.POST("/payouts/run", payoutCtrl.Run)
	gated.GET("/admin/stats", adminCtrl.Stats)
	gated.GET("/admin/registry.xlsx", adminCtrl.Registry)

	return e
}
