package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	PLAN_FREE     = "free"
	PLAN_PRO      = "pro"
	PLAN_PRO_PLUS = "pro_plus"
)

// Subscription statuses as reported by the payment provider.
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusTrialing = "trialing"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

// Organization is the billing and tenancy boundary. Every user belongs to
// exactly one organization, and vendors are owned through their creator's org.
type Organization struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	Name                 string         `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=2,max=200"`
	Plan                 string         `gorm:"type:varchar(50);default:'free'" json:"plan" validate:"oneof=free pro pro_plus"`
	StripeCustomerID     string         `gorm:"type:varchar(100);index" json:"-"`
	StripeSubscriptionID string         `gorm:"type:varchar(100);index" json:"-"`
	SubscriptionStatus   string         `gorm:"type:varchar(50)" json:"subscription_status"`
	CurrentPeriodEnd     *time.Time     `gorm:"type:timestamp;default:null" json:"current_period_end"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Organization) Validate() error {
	v := validator.New()

	return v.Struct(o)
}
