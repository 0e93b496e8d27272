package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/app/repository"
	"github.com/vendorvault/VendorVault/internal/pkg/entitlements"
	"github.com/vendorvault/VendorVault/internal/pkg/usercontext"
)

// HandleListUsers returns the organization's members.
func HandleListUsers(c *fiber.Ctx) error {
	orgID := usercontext.GetOrganizationID(c)
	users, err := repository.GetGlobalFactory().GetUserRepository().ListByOrganization(orgID)
	if err != nil {
		fiberlog.Errorf("user list failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to list users")
	}
	return c.JSON(fiber.Map{"users": users, "count": len(users)})
}

// HandleCreateUser adds a member to the caller's organization, subject to the
// plan's user ceiling.
func HandleCreateUser(c *fiber.Ctx) error {
	caller := usercontext.GetUserContext(c)

	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	count, err := userRepo.CountByOrganization(caller.OrganizationID)
	if err != nil {
		fiberlog.Errorf("user count failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to create user")
	}
	if !entitlements.CanAddUser(entitlements.Plan(caller.Plan), count) {
		return jsonError(c, fiber.StatusForbidden, "plan_limit_reached", "user limit for your plan reached")
	}

	user, err := models.CreateUser(caller.OrganizationID, strings.TrimSpace(req.Email), req.Password,
		defaultString(req.Role, models.ROLE_READ_ONLY))
	if err != nil {
		return badRequest(c, err.Error())
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName

	if err := userRepo.Create(user); err != nil {
		fiberlog.Errorf("user create failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to create user")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleUpdateUser updates role, names or status of an organization member.
func HandleUpdateUser(c *fiber.Ctx) error {
	user, err := userForRequest(c)
	if err != nil {
		return err
	}

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
		Status    string `json:"status"`
		Password  string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to update password")
		}
	}
	if err := user.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetUserRepository().Update(user); err != nil {
		fiberlog.Errorf("user update failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to update user")
	}
	return c.JSON(user)
}

// HandleDeleteUser soft-deletes an organization member.
func HandleDeleteUser(c *fiber.Ctx) error {
	user, err := userForRequest(c)
	if err != nil {
		return err
	}
	if user.ID == usercontext.GetUserID(c) {
		return badRequest(c, "cannot delete your own account")
	}

	if err := repository.GetGlobalFactory().GetUserRepository().Delete(user.ID); err != nil {
		fiberlog.Errorf("user delete failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to delete user")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleGetOrganization returns the caller's organization including its plan
// ceilings.
func HandleGetOrganization(c *fiber.Ctx) error {
	orgID := usercontext.GetOrganizationID(c)
	org, err := repository.GetGlobalFactory().GetOrganizationRepository().GetByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "organization not found")
		}
		fiberlog.Errorf("organization lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "organization lookup failed")
	}

	limits := entitlements.PlanLimits(entitlements.Plan(org.Plan))
	return c.JSON(fiber.Map{
		"organization": org,
		"limits": fiber.Map{
			"max_users":     limits.MaxUsers,
			"max_vendors":   limits.MaxVendors,
			"max_documents": limits.MaxDocuments,
		},
	})
}

func userForRequest(c *fiber.Ctx) (*models.User, error) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return nil, badRequest(c, "invalid user id")
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(c, "user not found")
		}
		fiberlog.Errorf("user lookup failed: %v", err)
		return nil, jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "user lookup failed")
	}
	if orgID := usercontext.GetOrganizationID(c); orgID != 0 && user.OrganizationID != orgID {
		return nil, notFound(c, "user not found")
	}
	return user, nil
}
