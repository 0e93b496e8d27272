package repository

import (
	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
)

// auditLogRepository implements the AuditLogRepository interface
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository instance
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Create appends an audit entry. Entries are never updated or deleted.
func (r *auditLogRepository) Create(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

// List retrieves audit entries matching the given filters, newest first
func (r *auditLogRepository) List(filters AuditLogFilters) ([]models.AuditLog, error) {
	query := r.db.Model(&models.AuditLog{})

	if filters.OrganizationID != 0 {
		query = query.
			Joins("JOIN vendors ON vendors.id = audit_logs.vendor_id").
			Where("vendors.organization_id = ?", filters.OrganizationID)
	}
	if filters.VendorID != 0 {
		query = query.Where("audit_logs.vendor_id = ?", filters.VendorID)
	}
	if filters.VendorDocumentID != 0 {
		query = query.Where("audit_logs.vendor_document_id = ?", filters.VendorDocumentID)
	}

	var logs []models.AuditLog
	err := query.Order("audit_logs.created_at DESC").Find(&logs).Error
	return logs, err
}
