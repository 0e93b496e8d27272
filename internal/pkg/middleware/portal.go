package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/internal/pkg/portal"
	"github.com/vendorvault/VendorVault/internal/pkg/usercontext"
)

// PortalTokenAuth resolves the :token route parameter against the portal gate
// and stores the vendor in Locals. Unknown and expired tokens answer with the
// same 404 so the response never reveals whether a token once existed.
func PortalTokenAuth(gate *portal.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vendor, err := gate.Resolve(c.Params("token"))
		if err != nil {
			log.Printf("portal token lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "internal_server_error",
				"message": "token verification failed",
			})
		}
		if vendor == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "Invalid or expired portal link",
			})
		}

		c.Locals(usercontext.KeyPortalVendor, vendor)
		return c.Next()
	}
}

// PortalVendor returns the vendor authenticated by PortalTokenAuth, or nil.
func PortalVendor(c *fiber.Ctx) *models.Vendor {
	if v, ok := c.Locals(usercontext.KeyPortalVendor).(*models.Vendor); ok {
		return v
	}
	return nil
}
