package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vendorvault/VendorVault/app/controllers"
	"github.com/vendorvault/VendorVault/internal/pkg/middleware"
)

// APIServer groups the v1 REST handlers. Handlers delegate to the controllers
// so route wiring stays in one place.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
}

// RegisterHandlers attaches all v1 routes with their guards. The billing
// webhook is the only unauthenticated route here; it authenticates through its
// signature instead of a session.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	// Session bootstrap
	router.Post("/auth/login", controllers.HandleLogin)
	router.Post("/auth/logout", controllers.HandleLogout)
	router.Get("/auth/me", controllers.HandleMe)

	// Provider webhook, signature-authenticated
	router.Post("/billing/webhook", controllers.HandleBillingWebhook)

	// Everything below requires a session
	authed := router.Group("", middleware.RequireAuth)

	vendors := authed.Group("/vendors")
	vendors.Get("/", controllers.HandleListVendors)
	vendors.Post("/", controllers.HandleCreateVendor)
	vendors.Get("/:id", controllers.HandleGetVendor)
	vendors.Patch("/:id", controllers.HandleUpdateVendor)
	vendors.Delete("/:id", controllers.HandleArchiveVendor)
	vendors.Get("/:id/compliance", controllers.HandleVendorCompliance)
	vendors.Post("/:id/portal-token", controllers.HandleIssuePortalToken)

	types := authed.Group("/document-types")
	types.Get("/", controllers.HandleListDocumentTypes)
	types.Post("/", middleware.RequireReviewer, controllers.HandleCreateDocumentType)
	types.Get("/:id", controllers.HandleGetDocumentType)
	types.Patch("/:id", middleware.RequireReviewer, controllers.HandleUpdateDocumentType)
	types.Delete("/:id", middleware.RequireReviewer, controllers.HandleDeleteDocumentType)

	docs := authed.Group("/vendor-documents")
	docs.Get("/", controllers.HandleListVendorDocuments)
	docs.Post("/upload", controllers.HandleUploadVendorDocument)
	docs.Get("/:id", controllers.HandleGetVendorDocument)
	docs.Post("/:id/approve", middleware.RequireReviewer, controllers.HandleApproveDocument)
	docs.Post("/:id/reject", middleware.RequireReviewer, controllers.HandleRejectDocument)

	stats := authed.Group("/stats")
	stats.Get("/compliance", controllers.HandleComplianceStats)
	stats.Get("/compliance-by-category", controllers.HandleComplianceByCategory)
	stats.Get("/expiring-documents", controllers.HandleExpiringDocuments)

	authed.Get("/audit-logs", controllers.HandleListAuditLogs)

	rules := authed.Group("/notification-rules", middleware.RequireReviewer)
	rules.Get("/", controllers.HandleListNotificationRules)
	rules.Post("/", controllers.HandleCreateNotificationRule)
	rules.Patch("/:id", controllers.HandleUpdateNotificationRule)
	rules.Delete("/:id", controllers.HandleDeleteNotificationRule)

	authed.Get("/organization", controllers.HandleGetOrganization)

	users := authed.Group("/users", middleware.RequireAdmin)
	users.Get("/", controllers.HandleListUsers)
	users.Post("/", controllers.HandleCreateUser)
	users.Patch("/:id", controllers.HandleUpdateUser)
	users.Delete("/:id", controllers.HandleDeleteUser)
}
