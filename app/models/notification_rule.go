package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// NotificationRule configures an expiry reminder threshold. Delivery is
// handled by an external mailer; the rule only records who gets notified and
// how many days before expiry.
type NotificationRule struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	Name               string      `gorm:"type:varchar(200);not null" json:"name" validate:"required,max=200"`
	IsActive           bool        `gorm:"default:true" json:"is_active"`
	DaysBefore         int         `gorm:"not null" json:"days_before" validate:"required,gt=0"`
	NotifyVendor       bool        `gorm:"default:true" json:"notify_vendor"`
	NotifyInternal     bool        `gorm:"default:true" json:"notify_internal"`
	InternalRecipients StringArray `gorm:"type:json" json:"internal_recipients"`
	CreatedAt          time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (r *NotificationRule) Validate() error {
	return validator.New().Struct(r)
}
