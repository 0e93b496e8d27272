package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/internal/pkg/entitlements"
)

// Service synchronizes external payment-provider subscription state into the
// organization's plan tier. Checkout itself happens at the provider; only the
// resulting webhooks flow through here.
type Service struct {
	repo Repository
	// priceRef (provider price/plan identifier) -> internal plan name
	priceMap map[string]string
}

// NewService creates a billing service from an injected repository and a
// provider-price to internal-plan mapping.
func NewService(repo Repository, priceMap map[string]string) *Service {
	return &Service{repo: repo, priceMap: priceMap}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, priceMap map[string]string) *Service {
	return NewService(NewRepository(db), priceMap)
}

// ResolveMappedPlan maps a provider price reference to an internal plan.
// Unmapped references fall back to free.
func (s *Service) ResolveMappedPlan(priceRef string) string {
	if plan, ok := s.priceMap[strings.TrimSpace(priceRef)]; ok {
		return normalizePlan(plan)
	}
	return string(entitlements.PlanFree)
}

// SyncSubscription upserts provider subscription data onto the organization
// and reconciles its effective plan. Non-entitling statuses drop the
// organization back to free while keeping the provider identifiers for later
// reactivation.
func (s *Service) SyncSubscription(ctx context.Context, in NormalizedSubscription) (*models.Organization, error) {
	_ = ctx
	if strings.TrimSpace(in.ProviderSubscriptionID) == "" {
		return nil, errors.New("provider_subscription_id is required")
	}

	var org *models.Organization
	var err error
	if in.OrganizationID != 0 {
		org, err = s.repo.GetOrganization(in.OrganizationID)
	} else {
		org, err = s.repo.FindOrganizationByCustomerID(in.ProviderCustomerID)
	}
	if err != nil {
		return nil, err
	}

	status := strings.ToLower(strings.TrimSpace(in.Status))
	org.StripeCustomerID = strings.TrimSpace(in.ProviderCustomerID)
	org.StripeSubscriptionID = strings.TrimSpace(in.ProviderSubscriptionID)
	org.SubscriptionStatus = status
	org.CurrentPeriodEnd = in.CurrentPeriodEnd

	if isEntitlingStatus(status) {
		org.Plan = s.ResolveMappedPlan(in.ProviderPriceRef)
	} else {
		org.Plan = string(entitlements.PlanFree)
	}

	if err := s.repo.SaveOrganization(org); err != nil {
		return nil, err
	}
	return org, nil
}

// RecordWebhookEvent persists webhook payloads idempotently. The bool result
// reports whether the event was new.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.BillingWebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.BillingWebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}
