package controllers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/app/repository"
	"github.com/vendorvault/VendorVault/internal/pkg/compliance"
	"github.com/vendorvault/VendorVault/internal/pkg/database"
	"github.com/vendorvault/VendorVault/internal/pkg/entitlements"
	"github.com/vendorvault/VendorVault/internal/pkg/statistics"
	"github.com/vendorvault/VendorVault/internal/pkg/storage"
	"github.com/vendorvault/VendorVault/internal/pkg/usercontext"
)

var documentStore storage.FileStore

// InitializeDocumentStorage wires the blob backend used by document uploads.
func InitializeDocumentStorage(store storage.FileStore) {
	documentStore = store
}

// HandleListVendorDocuments lists documents, optionally filtered by vendor,
// type and stored status. status=expired is answered from the derived view
// since expiry is never written to the status column.
func HandleListVendorDocuments(c *fiber.Ctx) error {
	now := time.Now()

	if c.Query("status") == models.DOC_STATUS_EXPIRED {
		docs, err := expiredDocuments(c, now)
		if err != nil {
			fiberlog.Errorf("expired document list failed: %v", err)
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to list documents")
		}
		return c.JSON(fiber.Map{"documents": documentListJSON(docs, now), "count": len(docs)})
	}

	filters := repository.DocumentFilters{
		OrganizationID: usercontext.GetOrganizationID(c),
		VendorID:       uint(c.QueryInt("vendor_id")),
		DocumentTypeID: uint(c.QueryInt("document_type_id")),
		Status:         c.Query("status"),
	}
	docs, err := repository.GetGlobalFactory().GetVendorDocumentRepository().List(filters)
	if err != nil {
		fiberlog.Errorf("document list failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to list documents")
	}
	return c.JSON(fiber.Map{"documents": documentListJSON(docs, now), "count": len(docs)})
}

// HandleGetVendorDocument returns one document with its effective status.
func HandleGetVendorDocument(c *fiber.Ctx) error {
	doc, err := documentForRequest(c)
	if err != nil {
		return err
	}
	return c.JSON(documentJSON(doc, time.Now()))
}

// HandleUploadVendorDocument accepts a multipart upload and registers the
// evidence as pending. The blob goes to the configured store first; only a
// successful write reaches the lifecycle engine.
func HandleUploadVendorDocument(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)

	vendorID, err := strconv.ParseUint(c.FormValue("vendor_id"), 10, 32)
	if err != nil || vendorID == 0 {
		return badRequest(c, "vendor_id is required")
	}

	vendor, err := repository.GetGlobalFactory().GetVendorRepository().GetByID(uint(vendorID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "vendor not found")
		}
		fiberlog.Errorf("vendor lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "vendor lookup failed")
	}
	if !vendor.BelongsToOrganization(user.OrganizationID) {
		// Cross-organization lookups look like missing vendors.
		return notFound(c, "vendor not found")
	}
	return handleDocumentUpload(c, vendor.ID, currentActorID(c), models.ACTOR_TYPE_USER, vendor.OrganizationID, user.Plan)
}

// HandleApproveDocument moves a pending document to approved. Exactly one
// reviewer wins a race; the loser gets a 409.
func HandleApproveDocument(c *fiber.Ctx) error {
	doc, err := documentForRequest(c)
	if err != nil {
		return err
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	svc := compliance.NewServiceFromDB(database.GetDB())
	updated, err := svc.Approve(c.Context(), doc.ID, currentActorID(c), req.Notes)
	if err != nil {
		return mapComplianceError(c, err)
	}

	statistics.InvalidateOrg(usercontext.GetOrganizationID(c))
	return c.JSON(documentJSON(updated, time.Now()))
}

// HandleRejectDocument moves a pending document to rejected with a mandatory
// reason.
func HandleRejectDocument(c *fiber.Ctx) error {
	doc, err := documentForRequest(c)
	if err != nil {
		return err
	}

	var req struct {
		RejectionReason string `json:"rejection_reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	svc := compliance.NewServiceFromDB(database.GetDB())
	updated, err := svc.Reject(c.Context(), doc.ID, req.RejectionReason, currentActorID(c))
	if err != nil {
		return mapComplianceError(c, err)
	}

	statistics.InvalidateOrg(usercontext.GetOrganizationID(c))
	return c.JSON(documentJSON(updated, time.Now()))
}

// HandleExpiringDocuments reports approved documents whose expiry falls within
// the next N days (default 90), soonest first.
func HandleExpiringDocuments(c *fiber.Ctx) error {
	days := c.QueryInt("days", 90)
	if days <= 0 {
		return badRequest(c, "days must be positive")
	}

	now := time.Now()
	orgID := usercontext.GetOrganizationID(c)
	docs, err := repository.GetGlobalFactory().GetVendorDocumentRepository().GetExpiring(orgID, now, days)
	if err != nil {
		fiberlog.Errorf("expiring document list failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to list expiring documents")
	}
	return c.JSON(fiber.Map{"documents": documentListJSON(docs, now), "count": len(docs), "days": days})
}

// handleDocumentUpload is shared by the staff endpoint and the vendor portal.
func handleDocumentUpload(c *fiber.Ctx, vendorID uint, actorID, actorType string, orgID uint, plan string) error {
	docTypeID, err := strconv.ParseUint(c.FormValue("document_type_id"), 10, 32)
	if err != nil || docTypeID == 0 {
		return badRequest(c, "document_type_id is required")
	}

	issueDate, err := parseDateField(c.FormValue("issue_date"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	expiryDate, err := parseDateField(c.FormValue("expiry_date"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	if orgID != 0 {
		count, err := repository.GetGlobalFactory().GetVendorDocumentRepository().CountByOrganization(orgID)
		if err != nil {
			fiberlog.Errorf("document count failed: %v", err)
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "upload failed")
		}
		if !entitlements.CanAddDocument(entitlements.Plan(plan), count) {
			return jsonError(c, fiber.StatusForbidden, "plan_limit_reached", "document limit for your plan reached")
		}
	}

	if documentStore == nil {
		fiberlog.Error("document storage not initialized")
		return jsonError(c, fiber.StatusServiceUnavailable, "storage_unavailable", "document storage not available")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "could not read uploaded file")
	}
	defer file.Close()

	key := fmt.Sprintf("vendors/%d/%s%s", vendorID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	ref, err := documentStore.Save(c.Context(), key, file, fileHeader.Size)
	if err != nil {
		fiberlog.Errorf("blob save failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to store file")
	}

	svc := compliance.NewServiceFromDB(database.GetDB())
	doc, err := svc.Upload(c.Context(), compliance.UploadInput{
		VendorID:       vendorID,
		DocumentTypeID: uint(docTypeID),
		FileName:       fileHeader.Filename,
		FilePath:       ref,
		FileSize:       fileHeader.Size,
		IssueDate:      issueDate,
		ExpiryDate:     expiryDate,
		Notes:          c.FormValue("notes"),
		ActorID:        actorID,
		ActorType:      actorType,
	})
	if err != nil {
		// The row never existed; drop the orphaned blob.
		if delErr := documentStore.Delete(c.Context(), ref); delErr != nil {
			fiberlog.Warnf("failed to remove orphaned blob %s: %v", ref, delErr)
		}
		return mapComplianceError(c, err)
	}

	if orgID != 0 {
		statistics.InvalidateOrg(orgID)
	}
	return c.Status(fiber.StatusCreated).JSON(documentJSON(doc, time.Now()))
}

// expiredDocuments computes the derived expired view for list filtering.
func expiredDocuments(c *fiber.Ctx, now time.Time) ([]models.VendorDocument, error) {
	filters := repository.DocumentFilters{
		OrganizationID: usercontext.GetOrganizationID(c),
		VendorID:       uint(c.QueryInt("vendor_id")),
		DocumentTypeID: uint(c.QueryInt("document_type_id")),
		Status:         models.DOC_STATUS_APPROVED,
	}
	docs, err := repository.GetGlobalFactory().GetVendorDocumentRepository().List(filters)
	if err != nil {
		return nil, err
	}

	expired := docs[:0]
	for _, doc := range docs {
		if doc.HasExpired(now) {
			expired = append(expired, doc)
		}
	}
	return expired, nil
}

func documentForRequest(c *fiber.Ctx) (*models.VendorDocument, error) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return nil, badRequest(c, "invalid document id")
	}

	doc, err := repository.GetGlobalFactory().GetVendorDocumentRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(c, "document not found")
		}
		fiberlog.Errorf("document lookup failed: %v", err)
		return nil, jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "document lookup failed")
	}

	if orgID := usercontext.GetOrganizationID(c); orgID != 0 {
		vendor, err := repository.GetGlobalFactory().GetVendorRepository().GetByID(doc.VendorID)
		if err == nil && !vendor.BelongsToOrganization(orgID) {
			return nil, notFound(c, "document not found")
		}
	}
	return doc, nil
}
