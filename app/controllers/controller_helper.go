package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/internal/pkg/compliance"
	"github.com/vendorvault/VendorVault/internal/pkg/usercontext"
)

// parseIDParam reads a numeric route parameter. Returns 0 when missing or not
// a number; callers answer 400 in that case.
func parseIDParam(c *fiber.Ctx, name string) uint {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusBadRequest, "bad_request", message)
}

func notFound(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusNotFound, "not_found", message)
}

// mapComplianceError translates engine errors into their HTTP shape: input
// problems are 400, unknown entities 404 and lost review races 409.
func mapComplianceError(c *fiber.Ctx, err error) error {
	var ve *compliance.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"field":   ve.Field,
			"message": ve.Message,
		})
	case errors.Is(err, compliance.ErrNotFound):
		return notFound(c, "resource not found")
	case errors.Is(err, compliance.ErrInvalidState):
		return jsonError(c, fiber.StatusConflict, "invalid_state", "document is not pending review")
	}
	return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "unexpected error")
}

// currentActorID identifies the logged-in user for audit entries. Email when
// known, otherwise a stable synthetic identifier.
func currentActorID(c *fiber.Ctx) string {
	user := usercontext.GetUserContext(c)
	if user.Email != "" {
		return user.Email
	}
	return fmt.Sprintf("user-%d", user.UserID)
}

// parseDateField accepts ISO dates (2006-01-02) and full RFC3339 timestamps.
func parseDateField(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return &t, nil
}

// documentJSON augments the stored row with its effective status at time now.
// Expired is never persisted, so clients must always read this field instead
// of the raw status column.
func documentJSON(doc *models.VendorDocument, now time.Time) fiber.Map {
	return fiber.Map{
		"id":               doc.ID,
		"uuid":             doc.UUID,
		"vendor_id":        doc.VendorID,
		"document_type_id": doc.DocumentTypeID,
		"document_type":    doc.DocumentType,
		"status":           doc.Status,
		"effective_status": compliance.EffectiveStatus(doc, now),
		"file_name":        doc.FileName,
		"file_size":        doc.FileSize,
		"issue_date":       doc.IssueDate,
		"expiry_date":      doc.ExpiryDate,
		"uploaded_by":      doc.UploadedBy,
		"uploaded_at":      doc.UploadedAt,
		"approved_by":      doc.ApprovedBy,
		"approved_at":      doc.ApprovedAt,
		"rejection_reason": doc.RejectionReason,
		"notes":            doc.Notes,
		"created_at":       doc.CreatedAt,
		"updated_at":       doc.UpdatedAt,
	}
}

func documentListJSON(docs []models.VendorDocument, now time.Time) []fiber.Map {
	out := make([]fiber.Map, 0, len(docs))
	for i := range docs {
		out = append(out, documentJSON(&docs[i], now))
	}
	return out
}
