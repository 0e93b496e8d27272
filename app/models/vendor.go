package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VENDOR_STATUS_ACTIVE     = "active"
	VENDOR_STATUS_INACTIVE   = "inactive"
	VENDOR_STATUS_ONBOARDING = "onboarding"

	RISK_LOW    = "low"
	RISK_MEDIUM = "medium"
	RISK_HIGH   = "high"
)

type Vendor struct {
	ID                  uint         `gorm:"primaryKey" json:"id"`
	UUID                string       `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	OrganizationID      uint         `gorm:"index;not null" json:"organization_id"`
	Organization        Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	Name                string       `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=2,max=200"`
	LegalEntityName     string       `gorm:"type:varchar(200)" json:"legal_entity_name" validate:"max=200"`
	Category            string       `gorm:"type:varchar(100);index;not null" json:"category" validate:"required,max=100"`
	RiskLevel           string       `gorm:"type:varchar(20);default:'low'" json:"risk_level" validate:"oneof=low medium high"`
	Status              string       `gorm:"type:varchar(20);default:'active'" json:"status" validate:"oneof=active inactive onboarding"`
	PrimaryContactName  string       `gorm:"type:varchar(200)" json:"primary_contact_name" validate:"max=200"`
	PrimaryContactEmail string       `gorm:"type:varchar(200)" json:"primary_contact_email" validate:"omitempty,email,max=200"`
	PrimaryContactPhone string       `gorm:"type:varchar(50)" json:"primary_contact_phone" validate:"max=50"`
	Tags                StringArray  `gorm:"type:json" json:"tags"`
	// At most one valid portal token per vendor. Issuing a new one overwrites
	// both fields in a single update.
	PortalToken       string         `gorm:"type:varchar(100);index" json:"-"`
	PortalTokenExpiry *time.Time     `gorm:"type:timestamp;default:null" json:"-"`
	Documents         []VendorDocument `gorm:"foreignKey:VendorID" json:"documents,omitempty"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (v *Vendor) Validate() error {
	return validator.New().Struct(v)
}

// BeforeCreate assigns a public UUID when none is set.
func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.UUID == "" {
		v.UUID = uuid.New().String()
	}
	return nil
}

// IsActive reports whether the vendor participates in compliance rollups.
func (v *Vendor) IsActive() bool {
	return v.Status == VENDOR_STATUS_ACTIVE
}

// BelongsToOrganization reports whether the vendor is visible inside the
// given organization scope. Scope 0 means unscoped.
func (v *Vendor) BelongsToOrganization(orgID uint) bool {
	return orgID == 0 || v.OrganizationID == orgID
}

// HasValidPortalToken reports whether the stored portal token is usable at the
// given time.
func (v *Vendor) HasValidPortalToken(now time.Time) bool {
	return v.PortalToken != "" && v.PortalTokenExpiry != nil && !v.PortalTokenExpiry.Before(now)
}
