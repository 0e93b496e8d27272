package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/internal/pkg/compliance"
)

func TestCategoryStatsOrderedByName(t *testing.T) {
	entries := []vendorSummary{
		{vendor: models.Vendor{Category: "Packaging"}, summary: compliance.Summary{Percentage: 50}},
		{vendor: models.Vendor{Category: "Logistics"}, summary: compliance.Summary{Percentage: 100}},
		{vendor: models.Vendor{Category: "Manufacturing"}, summary: compliance.Summary{Percentage: 75}},
		{vendor: models.Vendor{Category: "Logistics"}, summary: compliance.Summary{Percentage: 50}},
	}

	stats := categoryStats(entries)

	assert.Equal(t, []CategoryStat{
		{Category: "Logistics", Percentage: 75},
		{Category: "Manufacturing", Percentage: 75},
		{Category: "Packaging", Percentage: 50},
	}, stats)
}

func TestCategoryStatsEmpty(t *testing.T) {
	assert.Empty(t, categoryStats(nil))
}
