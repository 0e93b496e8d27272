package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/app/repository"
	"github.com/vendorvault/VendorVault/internal/pkg/audit"
	"github.com/vendorvault/VendorVault/internal/pkg/compliance"
	"github.com/vendorvault/VendorVault/internal/pkg/database"
	"github.com/vendorvault/VendorVault/internal/pkg/entitlements"
	"github.com/vendorvault/VendorVault/internal/pkg/portal"
	"github.com/vendorvault/VendorVault/internal/pkg/statistics"
	"github.com/vendorvault/VendorVault/internal/pkg/usercontext"
)

type vendorRequest struct {
	Name                string   `json:"name"`
	LegalEntityName     string   `json:"legal_entity_name"`
	Category            string   `json:"category"`
	RiskLevel           string   `json:"risk_level"`
	Status              string   `json:"status"`
	PrimaryContactName  string   `json:"primary_contact_name"`
	PrimaryContactEmail string   `json:"primary_contact_email"`
	PrimaryContactPhone string   `json:"primary_contact_phone"`
	Tags                []string `json:"tags"`
}

// HandleListVendors returns the organization's vendors, optionally filtered by
// category, status, risk level and a free-text search over name and contact
// email.
func HandleListVendors(c *fiber.Ctx) error {
	filters := repository.VendorFilters{
		OrganizationID: usercontext.GetOrganizationID(c),
		Category:       c.Query("category"),
		Status:         c.Query("status"),
		RiskLevel:      c.Query("risk_level"),
		Search:         c.Query("search"),
	}

	vendors, err := repository.GetGlobalFactory().GetVendorRepository().List(filters)
	if err != nil {
		fiberlog.Errorf("vendor list failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to list vendors")
	}
	return c.JSON(fiber.Map{"vendors": vendors, "count": len(vendors)})
}

// HandleGetVendor returns a single vendor of the caller's organization.
func HandleGetVendor(c *fiber.Ctx) error {
	vendor, err := vendorForRequest(c)
	if err != nil {
		return err
	}
	return c.JSON(vendor)
}

// HandleCreateVendor registers a vendor. Plan ceilings are enforced here at
// the boundary; the storage layer never refuses rows on its own.
func HandleCreateVendor(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)

	var req vendorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	vendorRepo := repository.GetGlobalFactory().GetVendorRepository()
	count, err := vendorRepo.CountByOrganization(user.OrganizationID)
	if err != nil {
		fiberlog.Errorf("vendor count failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to create vendor")
	}
	if !entitlements.CanAddVendor(entitlements.Plan(user.Plan), count) {
		return jsonError(c, fiber.StatusForbidden, "plan_limit_reached", "vendor limit for your plan reached")
	}

	vendor := &models.Vendor{
		OrganizationID:      user.OrganizationID,
		Name:                strings.TrimSpace(req.Name),
		LegalEntityName:     req.LegalEntityName,
		Category:            strings.TrimSpace(req.Category),
		RiskLevel:           defaultString(req.RiskLevel, models.RISK_LOW),
		Status:              defaultString(req.Status, models.VENDOR_STATUS_ACTIVE),
		PrimaryContactName:  req.PrimaryContactName,
		PrimaryContactEmail: req.PrimaryContactEmail,
		PrimaryContactPhone: req.PrimaryContactPhone,
		Tags:                req.Tags,
	}
	if err := vendor.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := vendorRepo.Create(vendor); err != nil {
		fiberlog.Errorf("vendor create failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to create vendor")
	}

	audit.NewRecorder(database.GetDB()).Record(audit.Entry{
		VendorID:    &vendor.ID,
		ActionType:  models.ACTION_CREATED,
		ActorID:     currentActorID(c),
		ActorType:   models.ACTOR_TYPE_USER,
		Description: "Vendor created: " + vendor.Name,
	})
	statistics.InvalidateOrg(user.OrganizationID)

	return c.Status(fiber.StatusCreated).JSON(vendor)
}

// HandleUpdateVendor updates vendor master data. The portal token fields are
// deliberately untouchable through this endpoint.
func HandleUpdateVendor(c *fiber.Ctx) error {
	vendor, err := vendorForRequest(c)
	if err != nil {
		return err
	}

	var req vendorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.Name != "" {
		vendor.Name = strings.TrimSpace(req.Name)
	}
	if req.LegalEntityName != "" {
		vendor.LegalEntityName = req.LegalEntityName
	}
	if req.Category != "" {
		vendor.Category = strings.TrimSpace(req.Category)
	}
	if req.RiskLevel != "" {
		vendor.RiskLevel = req.RiskLevel
	}
	if req.Status != "" {
		vendor.Status = req.Status
	}
	if req.PrimaryContactName != "" {
		vendor.PrimaryContactName = req.PrimaryContactName
	}
	if req.PrimaryContactEmail != "" {
		vendor.PrimaryContactEmail = req.PrimaryContactEmail
	}
	if req.PrimaryContactPhone != "" {
		vendor.PrimaryContactPhone = req.PrimaryContactPhone
	}
	if req.Tags != nil {
		vendor.Tags = req.Tags
	}
	if err := vendor.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetVendorRepository().Update(vendor); err != nil {
		fiberlog.Errorf("vendor update failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to update vendor")
	}

	audit.NewRecorder(database.GetDB()).Record(audit.Entry{
		VendorID:    &vendor.ID,
		ActionType:  models.ACTION_UPDATED,
		ActorID:     currentActorID(c),
		ActorType:   models.ACTOR_TYPE_USER,
		Description: "Vendor updated: " + vendor.Name,
	})
	statistics.InvalidateOrg(vendor.OrganizationID)

	return c.JSON(vendor)
}

// HandleArchiveVendor flips a vendor to inactive. Documents and audit history
// stay intact; the vendor simply leaves all compliance rollups.
func HandleArchiveVendor(c *fiber.Ctx) error {
	vendor, err := vendorForRequest(c)
	if err != nil {
		return err
	}

	if err := repository.GetGlobalFactory().GetVendorRepository().Archive(vendor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "vendor not found")
		}
		fiberlog.Errorf("vendor archive failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to archive vendor")
	}

	audit.NewRecorder(database.GetDB()).Record(audit.Entry{
		VendorID:    &vendor.ID,
		ActionType:  models.ACTION_STATUS_CHANGE,
		ActorID:     currentActorID(c),
		ActorType:   models.ACTOR_TYPE_USER,
		Description: "Vendor archived: " + vendor.Name,
	})
	statistics.InvalidateOrg(vendor.OrganizationID)

	return c.JSON(fiber.Map{"ok": true})
}

// HandleVendorCompliance returns the vendor's compliance rollup together with
// the per-requirement checklist.
func HandleVendorCompliance(c *fiber.Ctx) error {
	vendor, err := vendorForRequest(c)
	if err != nil {
		return err
	}

	svc := compliance.NewServiceFromDB(database.GetDB())
	summary, err := svc.VendorSummary(c.Context(), vendor.ID)
	if err != nil {
		return mapComplianceError(c, err)
	}

	checklist, err := vendorChecklist(vendor, time.Now())
	if err != nil {
		fiberlog.Errorf("vendor checklist failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to compute compliance")
	}

	return c.JSON(fiber.Map{
		"vendor_id":      vendor.ID,
		"approved_count": summary.ApprovedCount,
		"total_required": summary.TotalRequired,
		"percentage":     summary.Percentage,
		"requirements":   checklist,
	})
}

// HandleIssuePortalToken mints a fresh portal link for the vendor, replacing
// any previous one.
func HandleIssuePortalToken(c *fiber.Ctx) error {
	vendor, err := vendorForRequest(c)
	if err != nil {
		return err
	}

	var req struct {
		ValidityDays int `json:"validity_days"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	gate := portal.NewGateFromDB(database.GetDB())
	grant, err := gate.Issue(vendor.ID, req.ValidityDays)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "vendor not found")
		}
		fiberlog.Errorf("portal token issue failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to issue portal token")
	}

	audit.NewRecorder(database.GetDB()).Record(audit.Entry{
		VendorID:    &vendor.ID,
		ActionType:  models.ACTION_UPDATED,
		ActorID:     currentActorID(c),
		ActorType:   models.ACTOR_TYPE_USER,
		Description: "Portal link issued for vendor: " + vendor.Name,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":      grant.Token,
		"expiry":     grant.Expiry,
		"portal_url": "/api/portal/" + grant.Token,
	})
}

// vendorForRequest loads the :id vendor and enforces organization scope.
func vendorForRequest(c *fiber.Ctx) (*models.Vendor, error) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return nil, badRequest(c, "invalid vendor id")
	}

	vendor, err := repository.GetGlobalFactory().GetVendorRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(c, "vendor not found")
		}
		fiberlog.Errorf("vendor lookup failed: %v", err)
		return nil, jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "vendor lookup failed")
	}
	if !vendor.BelongsToOrganization(usercontext.GetOrganizationID(c)) {
		// Cross-organization lookups look like missing vendors.
		return nil, notFound(c, "vendor not found")
	}
	return vendor, nil
}

// vendorChecklist lists each applicable document type with the effective
// status of the vendor's newest document for it.
func vendorChecklist(vendor *models.Vendor, now time.Time) ([]fiber.Map, error) {
	repos := repository.GetGlobalRepositories()
	types, err := repos.DocumentType.GetAll()
	if err != nil {
		return nil, err
	}
	docs, err := repos.VendorDocument.GetByVendor(vendor.ID)
	if err != nil {
		return nil, err
	}

	newest := make(map[uint]*models.VendorDocument, len(docs))
	for i := range docs {
		doc := &docs[i]
		if existing, ok := newest[doc.DocumentTypeID]; !ok || doc.CreatedAt.After(existing.CreatedAt) {
			newest[doc.DocumentTypeID] = doc
		}
	}

	checklist := make([]fiber.Map, 0, len(types))
	for _, dt := range types {
		if !dt.AppliesTo(vendor.Category) {
			continue
		}
		entry := fiber.Map{
			"document_type_id": dt.ID,
			"name":             dt.Name,
			"is_required":      dt.IsRequired,
			"effective_status": compliance.EffectiveStatus(newest[dt.ID], now),
		}
		if doc := newest[dt.ID]; doc != nil {
			entry["document_id"] = doc.ID
			entry["expiry_date"] = doc.ExpiryDate
		}
		checklist = append(checklist, entry)
	}
	return checklist, nil
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
