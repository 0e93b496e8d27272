package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/vendorvault/VendorVault/app/repository"
	"github.com/vendorvault/VendorVault/internal/pkg/statistics"
	"github.com/vendorvault/VendorVault/internal/pkg/usercontext"
)

// HandleComplianceStats returns the organization-wide dashboard numbers.
func HandleComplianceStats(c *fiber.Ctx) error {
	orgID := usercontext.GetOrganizationID(c)
	stats, err := statistics.GetComplianceStats(repository.GetGlobalRepositories(), orgID, time.Now())
	if err != nil {
		fiberlog.Errorf("compliance stats failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to compute statistics")
	}
	return c.JSON(stats)
}

// HandleComplianceByCategory returns average vendor compliance per category.
func HandleComplianceByCategory(c *fiber.Ctx) error {
	orgID := usercontext.GetOrganizationID(c)
	stats, err := statistics.GetComplianceByCategory(repository.GetGlobalRepositories(), orgID, time.Now())
	if err != nil {
		fiberlog.Errorf("category stats failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to compute statistics")
	}
	return c.JSON(fiber.Map{"categories": stats})
}
