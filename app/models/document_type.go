package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DocumentType is a named requirement template: which vendor categories it
// applies to, whether it is required for compliance, and whether uploads of
// this type carry an expiry date.
type DocumentType struct {
	ID                   uint        `gorm:"primaryKey" json:"id"`
	Name                 string      `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=2,max=200"`
	Description          string      `gorm:"type:text" json:"description"`
	ApplicableCategories StringArray `gorm:"type:json;not null" json:"applicable_categories" validate:"required,min=1"`
	IsRequired           bool        `gorm:"default:true" json:"is_required"`
	ExpiryRequired       bool        `gorm:"default:true" json:"expiry_required"`
	DefaultValidityDays  *int        `gorm:"type:int" json:"default_validity_days"`
	CreatedAt            time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (dt *DocumentType) Validate() error {
	return validator.New().Struct(dt)
}

// AppliesTo reports whether vendors of the given category fall under this type.
func (dt *DocumentType) AppliesTo(category string) bool {
	return dt.ApplicableCategories.Contains(category)
}
