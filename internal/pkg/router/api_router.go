package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/vendorvault/VendorVault/app/controllers"
	apiv1 "github.com/vendorvault/VendorVault/internal/api/v1"
	"github.com/vendorvault/VendorVault/internal/pkg/database"
	"github.com/vendorvault/VendorVault/internal/pkg/middleware"
	"github.com/vendorvault/VendorVault/internal/pkg/portal"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	apiServer := apiv1.NewAPIServer()
	apiv1.RegisterHandlers(v1, apiServer)

	// Vendor self-service portal, token-authenticated
	gate := portal.NewGateFromDB(database.GetDB())
	portalGroup := api.Group("/portal/:token", middleware.PortalTokenAuth(gate))
	portalGroup.Get("/", controllers.HandlePortalVendor)
	portalGroup.Get("/documents", controllers.HandlePortalListDocuments)
	portalGroup.Post("/documents/upload", controllers.HandlePortalUpload)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
