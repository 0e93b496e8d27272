package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/repository"
	"github.com/vendorvault/VendorVault/internal/pkg/session"
	"github.com/vendorvault/VendorVault/internal/pkg/usercontext"
)

// HandleLogin authenticates against email and password and establishes a
// session. Wrong email and wrong password answer identically.
func HandleLogin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email and password are required")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "invalid credentials")
		}
		fiberlog.Errorf("login lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "login failed")
	}
	if !user.IsActive() || !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "invalid credentials")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fiberlog.Errorf("session create failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "login failed")
	}
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUserEmail, user.Email)
	sess.Set(usercontext.KeyOrgID, user.OrganizationID)
	sess.Set(usercontext.KeyRole, user.Role)
	if err := sess.Save(); err != nil {
		fiberlog.Errorf("session save failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "login failed")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := userRepo.Update(user); err != nil {
		fiberlog.Warnf("failed to record last login for user %d: %v", user.ID, err)
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":              user.ID,
			"email":           user.Email,
			"first_name":      user.FirstName,
			"last_name":       user.LastName,
			"role":            user.Role,
			"organization_id": user.OrganizationID,
		},
	})
}

// HandleLogout destroys the caller's session.
func HandleLogout(c *fiber.Ctx) error {
	if err := session.DestroySession(c); err != nil {
		fiberlog.Warnf("logout failed: %v", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleMe returns the authenticated user's context.
func HandleMe(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)
	if !user.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}
	return c.JSON(user)
}
