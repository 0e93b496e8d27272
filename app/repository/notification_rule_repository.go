package repository

import (
	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
)

// notificationRuleRepository implements the NotificationRuleRepository interface
type notificationRuleRepository struct {
	db *gorm.DB
}

// NewNotificationRuleRepository creates a new notification rule repository instance
func NewNotificationRuleRepository(db *gorm.DB) NotificationRuleRepository {
	return &notificationRuleRepository{db: db}
}

// Create creates a new notification rule
func (r *notificationRuleRepository) Create(rule *models.NotificationRule) error {
	return r.db.Create(rule).Error
}

// GetByID retrieves a notification rule by its ID
func (r *notificationRuleRepository) GetByID(id uint) (*models.NotificationRule, error) {
	var rule models.NotificationRule
	if err := r.db.First(&rule, id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

// GetAll retrieves all notification rules ordered by their threshold
func (r *notificationRuleRepository) GetAll() ([]models.NotificationRule, error) {
	var rules []models.NotificationRule
	err := r.db.Order("days_before").Find(&rules).Error
	return rules, err
}

// Update updates an existing notification rule
func (r *notificationRuleRepository) Update(rule *models.NotificationRule) error {
	return r.db.Save(rule).Error
}

// Delete removes a notification rule
func (r *notificationRuleRepository) Delete(id uint) error {
	return r.db.Delete(&models.NotificationRule{}, id).Error
}
