package compliance

import "github.com/vendorvault/VendorVault/app/models"

// RequiredDocumentTypes filters the registry down to the types a vendor of
// the given category must satisfy: required types whose applicable categories
// include the category. Order-independent, no side effects. An empty result
// means the vendor carries no compliance burden.
func RequiredDocumentTypes(category string, types []models.DocumentType) []models.DocumentType {
	required := make([]models.DocumentType, 0, len(types))
	for _, dt := range types {
		if dt.IsRequired && dt.AppliesTo(category) {
			required = append(required, dt)
		}
	}
	return required
}
