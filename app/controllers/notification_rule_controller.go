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

type notificationRuleRequest struct {
	Name               string   `json:"name"`
	IsActive           *bool    `json:"is_active"`
	DaysBefore         int      `json:"days_before"`
	NotifyVendor       *bool    `json:"notify_vendor"`
	NotifyInternal     *bool    `json:"notify_internal"`
	InternalRecipients []string `json:"internal_recipients"`
}

// HandleListNotificationRules returns all expiry reminder rules, smallest
// threshold first.
func HandleListNotificationRules(c *fiber.Ctx) error {
	rules, err := repository.GetGlobalFactory().GetNotificationRuleRepository().GetAll()
	if err != nil {
		fiberlog.Errorf("notification rule list failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to list notification rules")
	}
	return c.JSON(fiber.Map{"notification_rules": rules, "count": len(rules)})
}

// HandleCreateNotificationRule defines a reminder threshold.
func HandleCreateNotificationRule(c *fiber.Ctx) error {
	var req notificationRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	rule := &models.NotificationRule{
		Name:               strings.TrimSpace(req.Name),
		IsActive:           true,
		DaysBefore:         req.DaysBefore,
		NotifyVendor:       true,
		NotifyInternal:     true,
		InternalRecipients: req.InternalRecipients,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if req.NotifyVendor != nil {
		rule.NotifyVendor = *req.NotifyVendor
	}
	if req.NotifyInternal != nil {
		rule.NotifyInternal = *req.NotifyInternal
	}
	if err := rule.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetNotificationRuleRepository().Create(rule); err != nil {
		fiberlog.Errorf("notification rule create failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to create notification rule")
	}
	return c.Status(fiber.StatusCreated).JSON(rule)
}

// HandleUpdateNotificationRule updates a reminder rule.
func HandleUpdateNotificationRule(c *fiber.Ctx) error {
	rule, err := notificationRuleForRequest(c)
	if err != nil {
		return err
	}

	var req notificationRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.Name != "" {
		rule.Name = strings.TrimSpace(req.Name)
	}
	if req.DaysBefore != 0 {
		rule.DaysBefore = req.DaysBefore
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if req.NotifyVendor != nil {
		rule.NotifyVendor = *req.NotifyVendor
	}
	if req.NotifyInternal != nil {
		rule.NotifyInternal = *req.NotifyInternal
	}
	if req.InternalRecipients != nil {
		rule.InternalRecipients = req.InternalRecipients
	}
	if err := rule.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetNotificationRuleRepository().Update(rule); err != nil {
		fiberlog.Errorf("notification rule update failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to update notification rule")
	}
	return c.JSON(rule)
}

// HandleDeleteNotificationRule removes a reminder rule.
func HandleDeleteNotificationRule(c *fiber.Ctx) error {
	rule, err := notificationRuleForRequest(c)
	if err != nil {
		return err
	}

	if err := repository.GetGlobalFactory().GetNotificationRuleRepository().Delete(rule.ID); err != nil {
		fiberlog.Errorf("notification rule delete failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to delete notification rule")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func notificationRuleForRequest(c *fiber.Ctx) (*models.NotificationRule, error) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return nil, badRequest(c, "invalid notification rule id")
	}

	rule, err := repository.GetGlobalFactory().GetNotificationRuleRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(c, "notification rule not found")
		}
		fiberlog.Errorf("notification rule lookup failed: %v", err)
		return nil, jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "notification rule lookup failed")
	}
	return rule, nil
}
