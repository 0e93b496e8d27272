package compliance

import (
	"time"

	"github.com/vendorvault/VendorVault/app/models"
)

// EffectiveStatus derives the status of a document as observed now. A nil
// document stands for a required type with no uploaded evidence and reads as
// missing. An approved document whose expiry date lies in the past reads as
// expired; the stored row keeps its approved status. The stored status is
// never mutated here.
func EffectiveStatus(doc *models.VendorDocument, now time.Time) string {
	if doc == nil {
		return models.DOC_STATUS_MISSING
	}
	if doc.Status == models.DOC_STATUS_APPROVED && doc.HasExpired(now) {
		return models.DOC_STATUS_EXPIRED
	}
	return doc.Status
}
