package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stored document statuses. "missing" and "expired" also exist as derived
// read-time states: missing means a required type with no row at all, and
// expired is computed from (status, expiry_date, now) without ever being
// written back by a transition.
const (
	DOC_STATUS_MISSING  = "missing"
	DOC_STATUS_PENDING  = "pending"
	DOC_STATUS_APPROVED = "approved"
	DOC_STATUS_REJECTED = "rejected"
	DOC_STATUS_EXPIRED  = "expired"
)

// VendorDocument is the evidence artifact for one (vendor, document type)
// pairing.
type VendorDocument struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	UUID            string       `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	VendorID        uint         `gorm:"index;not null" json:"vendor_id"`
	Vendor          Vendor       `gorm:"foreignKey:VendorID" json:"-"`
	DocumentTypeID  uint         `gorm:"index;not null" json:"document_type_id"`
	DocumentType    DocumentType `gorm:"foreignKey:DocumentTypeID" json:"document_type,omitempty"`
	Status          string       `gorm:"type:varchar(20);default:'pending';index" json:"status" validate:"oneof=pending approved rejected"`
	FileName        string       `gorm:"type:varchar(255)" json:"file_name"`
	FilePath        string       `gorm:"type:varchar(255)" json:"file_path"`
	FileSize        int64        `gorm:"type:bigint" json:"file_size"`
	IssueDate       *time.Time   `gorm:"type:timestamp;default:null" json:"issue_date"`
	ExpiryDate      *time.Time   `gorm:"type:timestamp;default:null;index" json:"expiry_date"`
	UploadedBy      string       `gorm:"type:varchar(100)" json:"uploaded_by"`
	UploadedAt      *time.Time   `gorm:"type:timestamp;default:null" json:"uploaded_at"`
	ApprovedBy      string       `gorm:"type:varchar(100)" json:"approved_by"`
	ApprovedAt      *time.Time   `gorm:"type:timestamp;default:null" json:"approved_at"`
	RejectionReason string       `gorm:"type:text" json:"rejection_reason"`
	Notes           string       `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (d *VendorDocument) Validate() error {
	return validator.New().Struct(d)
}

// BeforeCreate assigns a public UUID when none is set.
func (d *VendorDocument) BeforeCreate(tx *gorm.DB) error {
	if d.UUID == "" {
		d.UUID = uuid.New().String()
	}
	return nil
}

// IsPending reports whether the document still awaits review.
func (d *VendorDocument) IsPending() bool {
	return d.Status == DOC_STATUS_PENDING
}

// HasExpired reports whether the stored expiry date lies before now.
func (d *VendorDocument) HasExpired(now time.Time) bool {
	return d.ExpiryDate != nil && d.ExpiryDate.Before(now)
}
