package billing

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vendorvault/VendorVault/app/models"
)

// Repository provides DB operations used by the billing service.
type Repository interface {
	GetOrganization(id uint) (*models.Organization, error)
	FindOrganizationByCustomerID(customerID string) (*models.Organization, error)
	SaveOrganization(org *models.Organization) error
	CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetOrganization(id uint) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *gormRepository) FindOrganizationByCustomerID(customerID string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.Where("stripe_customer_id = ?", customerID).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *gormRepository) SaveOrganization(org *models.Organization) error {
	return r.db.Save(org).Error
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if result.Error != nil {
		return false, nil, result.Error
	}

	var stored models.BillingWebhookEvent
	err := r.db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error
	if err != nil {
		return false, nil, err
	}
	return result.RowsAffected > 0, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	return r.db.Model(&models.BillingWebhookEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processed_at":     now,
			"processing_error": processingError,
		}).Error
}
