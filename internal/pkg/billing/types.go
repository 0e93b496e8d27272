package billing

import "time"

// NormalizedSubscription is the provider-agnostic shape used when syncing
// external subscription state into the organization record.
type NormalizedSubscription struct {
	OrganizationID         uint
	ProviderCustomerID     string
	ProviderSubscriptionID string
	ProviderPriceRef       string
	Status                 string
	CurrentPeriodEnd       *time.Time
	RawPayloadJSON         string
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}
