package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/app/repository"
)

type documentTypeRequest struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	ApplicableCategories []string `json:"applicable_categories"`
	IsRequired           *bool    `json:"is_required"`
	ExpiryRequired       *bool    `json:"expiry_required"`
	DefaultValidityDays  *int     `json:"default_validity_days"`
}

// HandleListDocumentTypes returns the whole requirement registry.
func HandleListDocumentTypes(c *fiber.Ctx) error {
	types, err := repository.GetGlobalFactory().GetDocumentTypeRepository().GetAll()
	if err != nil {
		fiberlog.Errorf("document type list failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to list document types")
	}
	return c.JSON(fiber.Map{"document_types": types, "count": len(types)})
}

// HandleGetDocumentType returns a single requirement definition.
func HandleGetDocumentType(c *fiber.Ctx) error {
	dt, err := documentTypeForRequest(c)
	if err != nil {
		return err
	}
	return c.JSON(dt)
}

// HandleCreateDocumentType defines a new requirement. New required types make
// affected vendors less compliant on the next read; no stored data changes.
func HandleCreateDocumentType(c *fiber.Ctx) error {
	var req documentTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	dt := &models.DocumentType{
		Name:                 strings.TrimSpace(req.Name),
		Description:          req.Description,
		ApplicableCategories: req.ApplicableCategories,
		IsRequired:           true,
		ExpiryRequired:       true,
		DefaultValidityDays:  req.DefaultValidityDays,
	}
	if req.IsRequired != nil {
		dt.IsRequired = *req.IsRequired
	}
	if req.ExpiryRequired != nil {
		dt.ExpiryRequired = *req.ExpiryRequired
	}
	if err := dt.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetDocumentTypeRepository().Create(dt); err != nil {
		fiberlog.Errorf("document type create failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to create document type")
	}
	return c.Status(fiber.StatusCreated).JSON(dt)
}

// HandleUpdateDocumentType updates a requirement definition.
func HandleUpdateDocumentType(c *fiber.Ctx) error {
	dt, err := documentTypeForRequest(c)
	if err != nil {
		return err
	}

	var req documentTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.Name != "" {
		dt.Name = strings.TrimSpace(req.Name)
	}
	if req.Description != "" {
		dt.Description = req.Description
	}
	if req.ApplicableCategories != nil {
		dt.ApplicableCategories = req.ApplicableCategories
	}
	if req.IsRequired != nil {
		dt.IsRequired = *req.IsRequired
	}
	if req.ExpiryRequired != nil {
		dt.ExpiryRequired = *req.ExpiryRequired
	}
	if req.DefaultValidityDays != nil {
		dt.DefaultValidityDays = req.DefaultValidityDays
	}
	if err := dt.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetDocumentTypeRepository().Update(dt); err != nil {
		fiberlog.Errorf("document type update failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to update document type")
	}
	return c.JSON(dt)
}

// HandleDeleteDocumentType removes a requirement definition. Existing
// documents of that type keep their rows; they simply stop counting.
func HandleDeleteDocumentType(c *fiber.Ctx) error {
	dt, err := documentTypeForRequest(c)
	if err != nil {
		return err
	}

	if err := repository.GetGlobalFactory().GetDocumentTypeRepository().Delete(dt.ID); err != nil {
		fiberlog.Errorf("document type delete failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to delete document type")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func documentTypeForRequest(c *fiber.Ctx) (*models.DocumentType, error) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return nil, badRequest(c, "invalid document type id")
	}

	dt, err := repository.GetGlobalFactory().GetDocumentTypeRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(c, "document type not found")
		}
		fiberlog.Errorf("document type lookup failed: %v", err)
		return nil, jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "document type lookup failed")
	}
	return dt, nil
}
