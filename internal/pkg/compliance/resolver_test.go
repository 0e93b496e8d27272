package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vendorvault/VendorVault/app/models"
)

func TestRequiredDocumentTypes(t *testing.T) {
	types := []models.DocumentType{
		{ID: 1, Name: "ISO 9001", IsRequired: true, ApplicableCategories: models.StringArray{"Manufacturing", "Packaging"}},
		{ID: 2, Name: "Insurance Certificate", IsRequired: true, ApplicableCategories: models.StringArray{"Manufacturing"}},
		{ID: 3, Name: "Sustainability Report", IsRequired: false, ApplicableCategories: models.StringArray{"Manufacturing", "Packaging"}},
	}

	tests := []struct {
		name     string
		category string
		wantIDs  []uint
	}{
		{name: "category with two required types", category: "Manufacturing", wantIDs: []uint{1, 2}},
		{name: "optional types are excluded", category: "Packaging", wantIDs: []uint{1}},
		{name: "category with no requirements", category: "Logistics", wantIDs: []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequiredDocumentTypes(tt.category, types)
			ids := make([]uint, 0, len(got))
			for _, dt := range got {
				ids = append(ids, dt.ID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestRequiredDocumentTypesEmptyRegistry(t *testing.T) {
	assert.Empty(t, RequiredDocumentTypes("Manufacturing", nil))
}
