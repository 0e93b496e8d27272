package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/app/repository"
	"github.com/vendorvault/VendorVault/internal/pkg/compliance"
	"github.com/vendorvault/VendorVault/internal/pkg/database"
	"github.com/vendorvault/VendorVault/internal/pkg/middleware"
)

// HandlePortalVendor returns the token holder's own profile together with the
// requirement checklist. The portal never exposes other vendors or internal
// review metadata beyond the document statuses.
func HandlePortalVendor(c *fiber.Ctx) error {
	vendor := middleware.PortalVendor(c)
	if vendor == nil {
		return notFound(c, "Invalid or expired portal link")
	}

	svc := compliance.NewServiceFromDB(database.GetDB())
	summary, err := svc.VendorSummary(c.Context(), vendor.ID)
	if err != nil {
		return mapComplianceError(c, err)
	}

	checklist, err := vendorChecklist(vendor, time.Now())
	if err != nil {
		fiberlog.Errorf("portal checklist failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load portal data")
	}

	return c.JSON(fiber.Map{
		"vendor": fiber.Map{
			"name":       vendor.Name,
			"category":   vendor.Category,
			"status":     vendor.Status,
			"created_at": vendor.CreatedAt,
		},
		"compliance": fiber.Map{
			"approved_count": summary.ApprovedCount,
			"total_required": summary.TotalRequired,
			"percentage":     summary.Percentage,
		},
		"requirements": checklist,
	})
}

// HandlePortalListDocuments lists the token holder's documents with their
// effective statuses.
func HandlePortalListDocuments(c *fiber.Ctx) error {
	vendor := middleware.PortalVendor(c)
	if vendor == nil {
		return notFound(c, "Invalid or expired portal link")
	}

	docs, err := repository.GetGlobalFactory().GetVendorDocumentRepository().GetByVendor(vendor.ID)
	if err != nil {
		fiberlog.Errorf("portal document list failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to list documents")
	}

	now := time.Now()
	return c.JSON(fiber.Map{"documents": documentListJSON(docs, now), "count": len(docs)})
}

// HandlePortalUpload lets the vendor submit evidence for itself. The upload
// lands as pending like any other; review stays an internal action.
func HandlePortalUpload(c *fiber.Ctx) error {
	vendor := middleware.PortalVendor(c)
	if vendor == nil {
		return notFound(c, "Invalid or expired portal link")
	}

	plan := models.PLAN_FREE
	if org, err := repository.GetGlobalFactory().GetOrganizationRepository().GetByID(vendor.OrganizationID); err == nil {
		plan = org.Plan
	}

	actorID := "vendor:" + vendor.UUID
	return handleDocumentUpload(c, vendor.ID, actorID, models.ACTOR_TYPE_VENDOR, vendor.OrganizationID, plan)
}
