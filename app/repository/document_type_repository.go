package repository

import (
	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
)

// documentTypeRepository implements the DocumentTypeRepository interface
type documentTypeRepository struct {
	db *gorm.DB
}

// NewDocumentTypeRepository creates a new document type repository instance
func NewDocumentTypeRepository(db *gorm.DB) DocumentTypeRepository {
	return &documentTypeRepository{db: db}
}

// Create creates a new document type
func (r *documentTypeRepository) Create(dt *models.DocumentType) error {
	return r.db.Create(dt).Error
}

// GetByID retrieves a document type by its ID
func (r *documentTypeRepository) GetByID(id uint) (*models.DocumentType, error) {
	var dt models.DocumentType
	if err := r.db.First(&dt, id).Error; err != nil {
		return nil, err
	}
	return &dt, nil
}

// GetAll retrieves all document types ordered by name
func (r *documentTypeRepository) GetAll() ([]models.DocumentType, error) {
	var types []models.DocumentType
	err := r.db.Order("name").Find(&types).Error
	return types, err
}

// Update updates an existing document type
func (r *documentTypeRepository) Update(dt *models.DocumentType) error {
	return r.db.Save(dt).Error
}

// Delete removes a document type
func (r *documentTypeRepository) Delete(id uint) error {
	return r.db.Delete(&models.DocumentType{}, id).Error
}
