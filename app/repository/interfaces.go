package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
)

// VendorFilters narrows vendor listings.
type VendorFilters struct {
	OrganizationID uint
	Category       string
	Status         string
	RiskLevel      string
	Search         string
}

// DocumentFilters narrows vendor document listings. Status filters on the
// stored status column; expired documents are found through GetExpiring since
// expiry is a derived state.
type DocumentFilters struct {
	OrganizationID uint
	VendorID       uint
	DocumentTypeID uint
	Status         string
}

// AuditLogFilters narrows audit log listings. OrganizationID scopes the trail
// to entries attached to that organization's vendors.
type AuditLogFilters struct {
	OrganizationID   uint
	VendorID         uint
	VendorDocumentID uint
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	ListByOrganization(orgID uint) ([]models.User, error)
	CountByOrganization(orgID uint) (int64, error)
}

// OrganizationRepository defines the interface for organization operations
type OrganizationRepository interface {
	Create(org *models.Organization) error
	GetByID(id uint) (*models.Organization, error)
	Update(org *models.Organization) error
}

// VendorRepository defines the interface for vendor-related database operations
type VendorRepository interface {
	Create(vendor *models.Vendor) error
	GetByID(id uint) (*models.Vendor, error)
	GetByUUID(uuid string) (*models.Vendor, error)
	Update(vendor *models.Vendor) error
	List(filters VendorFilters) ([]models.Vendor, error)
	ListActiveByOrganization(orgID uint) ([]models.Vendor, error)
	CountByOrganization(orgID uint) (int64, error)
	// Archive flips the vendor to inactive; vendors are never hard-deleted in
	// the normal flow.
	Archive(id uint) error
}

// DocumentTypeRepository defines the interface for the requirement registry
type DocumentTypeRepository interface {
	Create(dt *models.DocumentType) error
	GetByID(id uint) (*models.DocumentType, error)
	GetAll() ([]models.DocumentType, error)
	Update(dt *models.DocumentType) error
	Delete(id uint) error
}

// VendorDocumentRepository defines the interface for document evidence rows
type VendorDocumentRepository interface {
	Create(doc *models.VendorDocument) error
	GetByID(id uint) (*models.VendorDocument, error)
	GetByUUID(uuid string) (*models.VendorDocument, error)
	GetByVendor(vendorID uint) ([]models.VendorDocument, error)
	List(filters DocumentFilters) ([]models.VendorDocument, error)
	Delete(id uint) error
	CountByOrganization(orgID uint) (int64, error)
	// GetExpiring returns the organization's approved documents whose expiry
	// date falls within the next N days, ordered soonest first.
	GetExpiring(orgID uint, now time.Time, days int) ([]models.VendorDocument, error)
}

// AuditLogRepository defines the interface for the append-only audit trail
type AuditLogRepository interface {
	Create(entry *models.AuditLog) error
	List(filters AuditLogFilters) ([]models.AuditLog, error)
}

// NotificationRuleRepository defines the interface for reminder rules
type NotificationRuleRepository interface {
	Create(rule *models.NotificationRule) error
	GetByID(id uint) (*models.NotificationRule, error)
	GetAll() ([]models.NotificationRule, error)
	Update(rule *models.NotificationRule) error
	Delete(id uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User             UserRepository
	Organization     OrganizationRepository
	Vendor           VendorRepository
	DocumentType     DocumentTypeRepository
	VendorDocument   VendorDocumentRepository
	AuditLog         AuditLogRepository
	NotificationRule NotificationRuleRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:             NewUserRepository(db),
		Organization:     NewOrganizationRepository(db),
		Vendor:           NewVendorRepository(db),
		DocumentType:     NewDocumentTypeRepository(db),
		VendorDocument:   NewVendorDocumentRepository(db),
		AuditLog:         NewAuditLogRepository(db),
		NotificationRule: NewNotificationRuleRepository(db),
	}
}
