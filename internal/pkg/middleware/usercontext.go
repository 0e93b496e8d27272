package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/internal/pkg/database"
	"github.com/vendorvault/VendorVault/internal/pkg/session"
	"github.com/vendorvault/VendorVault/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a complete user context for
// every request. Anonymous requests get an empty context rather than an error;
// route guards decide what anonymous may reach.
func UserContextMiddleware(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return setAnonymous(c)
	}

	userID, ok := sess.Get(usercontext.KeyUserID).(uint)
	if !ok || userID == 0 {
		return setAnonymous(c)
	}

	userCtx := usercontext.UserContext{
		UserID:     userID,
		Email:      session.GetSessionValue(c, usercontext.KeyUserEmail),
		IsLoggedIn: true,
	}
	if orgID, ok := sess.Get(usercontext.KeyOrgID).(uint); ok {
		userCtx.OrganizationID = orgID
	}
	if role, ok := sess.Get(usercontext.KeyRole).(string); ok {
		userCtx.Role = role
	}

	// Plan with session-first strategy; fall back to the organization record.
	plan := session.GetSessionValue(c, "org_plan")
	if plan == "" {
		plan = models.PLAN_FREE
		if db := database.GetDB(); db != nil && userCtx.OrganizationID != 0 {
			var org models.Organization
			if err := db.First(&org, userCtx.OrganizationID).Error; err == nil && org.Plan != "" {
				plan = org.Plan
			}
		}
		_ = session.SetSessionValue(c, "org_plan", plan)
	}
	userCtx.Plan = plan

	c.Locals(usercontext.KeyUserContext, userCtx)
	c.Locals(usercontext.KeyFromProtected, true)

	return c.Next()
}

func setAnonymous(c *fiber.Ctx) error {
	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{IsLoggedIn: false})
	c.Locals(usercontext.KeyFromProtected, false)
	return c.Next()
}
