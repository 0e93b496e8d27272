package models

import "time"

// BillingWebhookEvent stores every webhook payload received from the payment
// provider exactly once, keyed by the provider event id.
type BillingWebhookEvent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Provider        string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_provider_event" json:"provider"`
	ProviderEventID string     `gorm:"type:varchar(150);not null;uniqueIndex:idx_provider_event" json:"provider_event_id"`
	EventType       string     `gorm:"type:varchar(100)" json:"event_type"`
	PayloadJSON     string     `gorm:"type:longtext" json:"-"`
	SignatureValid  bool       `gorm:"default:false" json:"signature_valid"`
	ProcessedAt     *time.Time `gorm:"type:timestamp;default:null" json:"processed_at"`
	ProcessingError string     `gorm:"type:text" json:"-"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
