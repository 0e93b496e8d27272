package controllers

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/vendorvault/VendorVault/app/repository"
	"github.com/vendorvault/VendorVault/internal/pkg/usercontext"
)

// HandleListAuditLogs returns the caller organization's audit trail,
// optionally narrowed to a vendor or a single document, newest first.
func HandleListAuditLogs(c *fiber.Ctx) error {
	filters := repository.AuditLogFilters{
		OrganizationID:   usercontext.GetOrganizationID(c),
		VendorID:         uint(c.QueryInt("vendor_id")),
		VendorDocumentID: uint(c.QueryInt("vendor_document_id")),
	}

	logs, err := repository.GetGlobalFactory().GetAuditLogRepository().List(filters)
	if err != nil {
		fiberlog.Errorf("audit log list failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to list audit logs")
	}
	return c.JSON(fiber.Map{"audit_logs": logs, "count": len(logs)})
}
