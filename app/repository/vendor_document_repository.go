package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
)

// vendorDocumentRepository implements the VendorDocumentRepository interface
type vendorDocumentRepository struct {
	db *gorm.DB
}

// NewVendorDocumentRepository creates a new vendor document repository instance
func NewVendorDocumentRepository(db *gorm.DB) VendorDocumentRepository {
	return &vendorDocumentRepository{db: db}
}

// Create creates a new vendor document
func (r *vendorDocumentRepository) Create(doc *models.VendorDocument) error {
	return r.db.Create(doc).Error
}

// GetByID retrieves a document by its ID
func (r *vendorDocumentRepository) GetByID(id uint) (*models.VendorDocument, error) {
	var doc models.VendorDocument
	if err := r.db.Preload("DocumentType").First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetByUUID retrieves a document by its public UUID
func (r *vendorDocumentRepository) GetByUUID(uuid string) (*models.VendorDocument, error) {
	var doc models.VendorDocument
	if err := r.db.Preload("DocumentType").Where("uuid = ?", uuid).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetByVendor retrieves all documents of a vendor, newest change first
func (r *vendorDocumentRepository) GetByVendor(vendorID uint) ([]models.VendorDocument, error) {
	var docs []models.VendorDocument
	err := r.db.Preload("DocumentType").
		Where("vendor_id = ?", vendorID).
		Order("updated_at DESC").
		Find(&docs).Error
	return docs, err
}

// List retrieves documents matching the given filters
func (r *vendorDocumentRepository) List(filters DocumentFilters) ([]models.VendorDocument, error) {
	query := r.db.Model(&models.VendorDocument{}).Preload("DocumentType")

	if filters.OrganizationID != 0 {
		query = query.
			Joins("JOIN vendors ON vendors.id = vendor_documents.vendor_id").
			Where("vendors.organization_id = ?", filters.OrganizationID)
	}
	if filters.VendorID != 0 {
		query = query.Where("vendor_documents.vendor_id = ?", filters.VendorID)
	}
	if filters.DocumentTypeID != 0 {
		query = query.Where("vendor_documents.document_type_id = ?", filters.DocumentTypeID)
	}
	if filters.Status != "" {
		query = query.Where("vendor_documents.status = ?", filters.Status)
	}

	var docs []models.VendorDocument
	err := query.Order("vendor_documents.updated_at DESC").Find(&docs).Error
	return docs, err
}

// Delete removes a document row
func (r *vendorDocumentRepository) Delete(id uint) error {
	return r.db.Delete(&models.VendorDocument{}, id).Error
}

// CountByOrganization counts documents across all vendors of an organization
func (r *vendorDocumentRepository) CountByOrganization(orgID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.VendorDocument{}).
		Joins("JOIN vendors ON vendors.id = vendor_documents.vendor_id").
		Where("vendors.organization_id = ?", orgID).
		Count(&count).Error
	return count, err
}

// GetExpiring returns the organization's approved documents whose expiry date
// falls within the next N days, soonest first. Documents already past expiry
// are not part of the report; they read as expired through the effective
// status.
func (r *vendorDocumentRepository) GetExpiring(orgID uint, now time.Time, days int) ([]models.VendorDocument, error) {
	until := now.AddDate(0, 0, days)

	var docs []models.VendorDocument
	err := r.db.Preload("DocumentType").
		Joins("JOIN vendors ON vendors.id = vendor_documents.vendor_id").
		Where("vendors.organization_id = ?", orgID).
		Where("vendor_documents.status = ? AND vendor_documents.expiry_date >= ? AND vendor_documents.expiry_date <= ?",
			models.DOC_STATUS_APPROVED, now, until).
		Order("vendor_documents.expiry_date ASC").
		Find(&docs).Error
	return docs, err
}
