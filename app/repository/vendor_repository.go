package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
)

// vendorRepository implements the VendorRepository interface
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository instance
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

// Create creates a new vendor in the database
func (r *vendorRepository) Create(vendor *models.Vendor) error {
	return r.db.Create(vendor).Error
}

// GetByID retrieves a vendor by its ID
func (r *vendorRepository) GetByID(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetByUUID retrieves a vendor by its public UUID
func (r *vendorRepository) GetByUUID(uuid string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.Where("uuid = ?", uuid).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Update updates an existing vendor
func (r *vendorRepository) Update(vendor *models.Vendor) error {
	return r.db.Save(vendor).Error
}

// List retrieves vendors matching the given filters
func (r *vendorRepository) List(filters VendorFilters) ([]models.Vendor, error) {
	query := r.db.Model(&models.Vendor{})

	if filters.OrganizationID != 0 {
		query = query.Where("organization_id = ?", filters.OrganizationID)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.RiskLevel != "" {
		query = query.Where("risk_level = ?", filters.RiskLevel)
	}
	if filters.Search != "" {
		pattern := "%" + strings.TrimSpace(filters.Search) + "%"
		query = query.Where("name LIKE ? OR primary_contact_email LIKE ?", pattern, pattern)
	}

	var vendors []models.Vendor
	err := query.Order("created_at DESC").Find(&vendors).Error
	return vendors, err
}

// ListActiveByOrganization retrieves the active vendors of an organization
func (r *vendorRepository) ListActiveByOrganization(orgID uint) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.
		Where("organization_id = ? AND status = ?", orgID, models.VENDOR_STATUS_ACTIVE).
		Find(&vendors).Error
	return vendors, err
}

// CountByOrganization returns the number of vendors owned by an organization
func (r *vendorRepository) CountByOrganization(orgID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Vendor{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error
	return count, err
}

// Archive soft-archives a vendor by flipping its status to inactive
func (r *vendorRepository) Archive(id uint) error {
	result := r.db.Model(&models.Vendor{}).
		Where("id = ?", id).
		Update("status", models.VENDOR_STATUS_INACTIVE)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
