package models

import "time"

// Audit action types.
const (
	ACTION_CREATED       = "created"
	ACTION_UPDATED       = "updated"
	ACTION_UPLOADED      = "uploaded"
	ACTION_APPROVED      = "approved"
	ACTION_REJECTED      = "rejected"
	ACTION_STATUS_CHANGE = "status_change"
	ACTION_REMINDER_SENT = "reminder_sent"

	ACTOR_TYPE_USER   = "user"
	ACTOR_TYPE_VENDOR = "vendor"
	ACTOR_TYPE_SYSTEM = "system"
)

// AuditLog is an append-only record of a state-changing action. Rows are only
// ever created, never updated.
type AuditLog struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	VendorID         *uint     `gorm:"index" json:"vendor_id"`
	VendorDocumentID *uint     `gorm:"index" json:"vendor_document_id"`
	ActionType       string    `gorm:"type:varchar(50);not null" json:"action_type"`
	ActorID          string    `gorm:"type:varchar(100)" json:"actor_id"`
	ActorType        string    `gorm:"type:varchar(20);not null;default:'user'" json:"actor_type"`
	Description      string    `gorm:"type:text;not null" json:"description"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
