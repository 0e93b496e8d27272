package compliance

import (
	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
)

// Repository provides the DB operations used by the compliance service.
type Repository interface {
	GetVendor(id uint) (*models.Vendor, error)
	GetDocumentType(id uint) (*models.DocumentType, error)
	ListDocumentTypes() ([]models.DocumentType, error)
	GetDocument(id uint) (*models.VendorDocument, error)
	ListDocumentsByVendor(vendorID uint) ([]models.VendorDocument, error)
	CreateDocument(doc *models.VendorDocument) error
	// UpdateDocumentIfPending applies updates only while the stored status is
	// still pending and returns the number of matched rows. Zero rows means
	// another transition won the race or the document left pending earlier.
	UpdateDocumentIfPending(id uint, updates map[string]interface{}) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a compliance repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetVendor(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *gormRepository) GetDocumentType(id uint) (*models.DocumentType, error) {
	var dt models.DocumentType
	if err := r.db.First(&dt, id).Error; err != nil {
		return nil, err
	}
	return &dt, nil
}

func (r *gormRepository) ListDocumentTypes() ([]models.DocumentType, error) {
	var types []models.DocumentType
	err := r.db.Order("name").Find(&types).Error
	return types, err
}

func (r *gormRepository) GetDocument(id uint) (*models.VendorDocument, error) {
	var doc models.VendorDocument
	if err := r.db.First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *gormRepository) ListDocumentsByVendor(vendorID uint) ([]models.VendorDocument, error) {
	var docs []models.VendorDocument
	err := r.db.Where("vendor_id = ?", vendorID).Order("updated_at DESC").Find(&docs).Error
	return docs, err
}

func (r *gormRepository) CreateDocument(doc *models.VendorDocument) error {
	return r.db.Create(doc).Error
}

func (r *gormRepository) UpdateDocumentIfPending(id uint, updates map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.VendorDocument{}).
		Where("id = ? AND status = ?", id, models.DOC_STATUS_PENDING).
		Updates(updates)
	return result.RowsAffected, result.Error
}
