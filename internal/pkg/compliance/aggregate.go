package compliance

import (
	"math"
	"time"

	"github.com/vendorvault/VendorVault/app/models"
)

// Summary is the compliance rollup for a single vendor.
type Summary struct {
	ApprovedCount int `json:"approved_count"`
	TotalRequired int `json:"total_required"`
	Percentage    int `json:"percentage"`
}

// VendorCompliance counts, per required document type, whether the vendor's
// document for that type is effectively approved right now. Optional types
// never enter the denominator. A vendor with no required types is 100%
// compliant by convention.
func VendorCompliance(requiredTypes []models.DocumentType, documents []models.VendorDocument, now time.Time) Summary {
	byType := make(map[uint]*models.VendorDocument, len(documents))
	for i := range documents {
		doc := &documents[i]
		// Keep the newest upload per type; older rows stay for history.
		if existing, ok := byType[doc.DocumentTypeID]; !ok || doc.CreatedAt.After(existing.CreatedAt) {
			byType[doc.DocumentTypeID] = doc
		}
	}

	summary := Summary{TotalRequired: len(requiredTypes)}
	for _, dt := range requiredTypes {
		if EffectiveStatus(byType[dt.ID], now) == models.DOC_STATUS_APPROVED {
			summary.ApprovedCount++
		}
	}
	summary.Percentage = percentage(summary.ApprovedCount, summary.TotalRequired)
	return summary
}

// CategoryCompliance averages vendor percentages per category. Vendors are
// grouped by their category field; categories with no vendors are absent.
func CategoryCompliance(summaries map[string][]Summary) map[string]int {
	result := make(map[string]int, len(summaries))
	for category, list := range summaries {
		if len(list) == 0 {
			continue
		}
		total := 0
		for _, s := range list {
			total += s.Percentage
		}
		result[category] = roundHalfUp(float64(total) / float64(len(list)))
	}
	return result
}

// OverallCompliance averages the percentages of all given vendor summaries.
// No vendors means nothing to violate, so 100 by the same convention as an
// empty requirement set.
func OverallCompliance(summaries []Summary) int {
	if len(summaries) == 0 {
		return 100
	}
	total := 0
	for _, s := range summaries {
		total += s.Percentage
	}
	return roundHalfUp(float64(total) / float64(len(summaries)))
}

func percentage(approved, required int) int {
	if required == 0 {
		return 100
	}
	return roundHalfUp(100 * float64(approved) / float64(required))
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
