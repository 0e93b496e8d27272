package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vendorvault/VendorVault/app/models"
)

func TestVendorCompliance(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(1, 0, 0)

	required := []models.DocumentType{
		{ID: 1, Name: "ISO 9001"},
		{ID: 2, Name: "Insurance Certificate"},
		{ID: 3, Name: "Safety Data Sheet"},
	}

	t.Run("mixed statuses", func(t *testing.T) {
		docs := []models.VendorDocument{
			{DocumentTypeID: 1, Status: models.DOC_STATUS_APPROVED, ExpiryDate: &future},
			{DocumentTypeID: 2, Status: models.DOC_STATUS_PENDING},
			// type 3 missing entirely
		}
		s := VendorCompliance(required, docs, now)
		assert.Equal(t, 1, s.ApprovedCount)
		assert.Equal(t, 3, s.TotalRequired)
		assert.Equal(t, 33, s.Percentage)
	})

	t.Run("expired approval does not count", func(t *testing.T) {
		docs := []models.VendorDocument{
			{DocumentTypeID: 1, Status: models.DOC_STATUS_APPROVED, ExpiryDate: &past},
			{DocumentTypeID: 2, Status: models.DOC_STATUS_APPROVED, ExpiryDate: &future},
			{DocumentTypeID: 3, Status: models.DOC_STATUS_APPROVED},
		}
		s := VendorCompliance(required, docs, now)
		assert.Equal(t, 2, s.ApprovedCount)
		assert.Equal(t, 67, s.Percentage)
	})

	t.Run("no requirements means fully compliant", func(t *testing.T) {
		s := VendorCompliance(nil, nil, now)
		assert.Equal(t, 0, s.TotalRequired)
		assert.Equal(t, 100, s.Percentage)
	})

	t.Run("newest document per type wins", func(t *testing.T) {
		docs := []models.VendorDocument{
			{DocumentTypeID: 1, Status: models.DOC_STATUS_REJECTED, CreatedAt: now.AddDate(0, -2, 0)},
			{DocumentTypeID: 1, Status: models.DOC_STATUS_APPROVED, ExpiryDate: &future, CreatedAt: now.AddDate(0, -1, 0)},
		}
		s := VendorCompliance(required[:1], docs, now)
		assert.Equal(t, 1, s.ApprovedCount)
		assert.Equal(t, 100, s.Percentage)
	})

	t.Run("documents for unrelated types are ignored", func(t *testing.T) {
		docs := []models.VendorDocument{
			{DocumentTypeID: 99, Status: models.DOC_STATUS_APPROVED, ExpiryDate: &future},
		}
		s := VendorCompliance(required, docs, now)
		assert.Equal(t, 0, s.ApprovedCount)
		assert.Equal(t, 0, s.Percentage)
	})
}

func TestVendorComplianceRounding(t *testing.T) {
	now := time.Now()
	future := now.AddDate(1, 0, 0)

	// 1 of 6 approved: 16.67 rounds half-up to 17.
	required := make([]models.DocumentType, 6)
	for i := range required {
		required[i] = models.DocumentType{ID: uint(i + 1)}
	}
	docs := []models.VendorDocument{
		{DocumentTypeID: 1, Status: models.DOC_STATUS_APPROVED, ExpiryDate: &future},
	}
	s := VendorCompliance(required, docs, now)
	assert.Equal(t, 17, s.Percentage)

	// 1 of 8 approved: 12.5 rounds half-up to 13.
	required = make([]models.DocumentType, 8)
	for i := range required {
		required[i] = models.DocumentType{ID: uint(i + 1)}
	}
	s = VendorCompliance(required, docs, now)
	assert.Equal(t, 13, s.Percentage)
}

func TestCategoryCompliance(t *testing.T) {
	summaries := map[string][]Summary{
		"Manufacturing": {{Percentage: 50}, {Percentage: 100}},
		"Packaging":     {{Percentage: 33}},
		"Empty":         {},
	}
	got := CategoryCompliance(summaries)
	assert.Equal(t, 75, got["Manufacturing"])
	assert.Equal(t, 33, got["Packaging"])
	assert.NotContains(t, got, "Empty")
}

func TestOverallCompliance(t *testing.T) {
	assert.Equal(t, 100, OverallCompliance(nil))
	assert.Equal(t, 50, OverallCompliance([]Summary{{Percentage: 0}, {Percentage: 100}}))
	// 100 + 33 + 33 = 166 / 3 = 55.33 -> 55
	assert.Equal(t, 55, OverallCompliance([]Summary{{Percentage: 100}, {Percentage: 33}, {Percentage: 33}}))
}
