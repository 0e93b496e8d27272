package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vendorvault/VendorVault/app/models"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	tests := []struct {
		name string
		doc  *models.VendorDocument
		want string
	}{
		{name: "nil document reads as missing", doc: nil, want: models.DOC_STATUS_MISSING},
		{name: "pending stays pending", doc: &models.VendorDocument{Status: models.DOC_STATUS_PENDING}, want: models.DOC_STATUS_PENDING},
		{name: "rejected stays rejected", doc: &models.VendorDocument{Status: models.DOC_STATUS_REJECTED}, want: models.DOC_STATUS_REJECTED},
		{
			name: "approved with future expiry is approved",
			doc:  &models.VendorDocument{Status: models.DOC_STATUS_APPROVED, ExpiryDate: &future},
			want: models.DOC_STATUS_APPROVED,
		},
		{
			name: "approved with past expiry reads as expired",
			doc:  &models.VendorDocument{Status: models.DOC_STATUS_APPROVED, ExpiryDate: &past},
			want: models.DOC_STATUS_EXPIRED,
		},
		{
			name: "approved without expiry never expires",
			doc:  &models.VendorDocument{Status: models.DOC_STATUS_APPROVED},
			want: models.DOC_STATUS_APPROVED,
		},
		{
			name: "pending with past expiry is still pending",
			doc:  &models.VendorDocument{Status: models.DOC_STATUS_PENDING, ExpiryDate: &past},
			want: models.DOC_STATUS_PENDING,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveStatus(tt.doc, now))
		})
	}
}

func TestEffectiveStatusDoesNotMutate(t *testing.T) {
	now := time.Now()
	past := now.AddDate(0, 0, -1)
	doc := &models.VendorDocument{Status: models.DOC_STATUS_APPROVED, ExpiryDate: &past}

	// Deriving expired twice gives the same answer and leaves the row alone.
	assert.Equal(t, models.DOC_STATUS_EXPIRED, EffectiveStatus(doc, now))
	assert.Equal(t, models.DOC_STATUS_EXPIRED, EffectiveStatus(doc, now))
	assert.Equal(t, models.DOC_STATUS_APPROVED, doc.Status)
}
