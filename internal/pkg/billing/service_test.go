package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
)

type fakeBillingRepository struct {
	orgs   map[uint]*models.Organization
	events map[string]*models.BillingWebhookEvent
	nextID uint
}

func newFakeBillingRepository() *fakeBillingRepository {
	return &fakeBillingRepository{
		orgs:   map[uint]*models.Organization{},
		events: map[string]*models.BillingWebhookEvent{},
		nextID: 1,
	}
}

func (f *fakeBillingRepository) GetOrganization(id uint) (*models.Organization, error) {
	if org, ok := f.orgs[id]; ok {
		return org, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBillingRepository) FindOrganizationByCustomerID(customerID string) (*models.Organization, error) {
	for _, org := range f.orgs {
		if org.StripeCustomerID == customerID {
			return org, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBillingRepository) SaveOrganization(org *models.Organization) error {
	f.orgs[org.ID] = org
	return nil
}

func (f *fakeBillingRepository) CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	key := event.Provider + "/" + event.ProviderEventID
	if stored, ok := f.events[key]; ok {
		return false, stored, nil
	}
	event.ID = f.nextID
	f.nextID++
	f.events[key] = event
	return true, event, nil
}

func (f *fakeBillingRepository) MarkWebhookProcessed(id uint, processingError string) error {
	for _, e := range f.events {
		if e.ID == id {
			now := time.Now()
			e.ProcessedAt = &now
			e.ProcessingError = processingError
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func testPriceMap() map[string]string {
	return map[string]string{
		"price_pro":      "pro",
		"price_pro_plus": "pro_plus",
	}
}

func TestResolveMappedPlan(t *testing.T) {
	svc := NewService(newFakeBillingRepository(), testPriceMap())

	assert.Equal(t, "pro", svc.ResolveMappedPlan("price_pro"))
	assert.Equal(t, "pro_plus", svc.ResolveMappedPlan(" price_pro_plus"))
	assert.Equal(t, "free", svc.ResolveMappedPlan("price_unknown"))
	assert.Equal(t, "free", svc.ResolveMappedPlan(""))
}

func TestSyncSubscriptionUpgradesPlan(t *testing.T) {
	repo := newFakeBillingRepository()
	repo.orgs[1] = &models.Organization{ID: 1, Name: "Acme", Plan: models.PLAN_FREE}
	svc := NewService(repo, testPriceMap())

	periodEnd := time.Now().AddDate(0, 1, 0)
	org, err := svc.SyncSubscription(context.Background(), NormalizedSubscription{
		OrganizationID:         1,
		ProviderCustomerID:     "cus_123",
		ProviderSubscriptionID: "sub_123",
		ProviderPriceRef:       "price_pro",
		Status:                 "active",
		CurrentPeriodEnd:       &periodEnd,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PLAN_PRO, org.Plan)
	assert.Equal(t, "cus_123", org.StripeCustomerID)
	assert.Equal(t, "active", org.SubscriptionStatus)
	require.NotNil(t, org.CurrentPeriodEnd)
}

func TestSyncSubscriptionNonEntitlingStatusDropsToFree(t *testing.T) {
	repo := newFakeBillingRepository()
	repo.orgs[1] = &models.Organization{ID: 1, Name: "Acme", Plan: models.PLAN_PRO, StripeCustomerID: "cus_123"}
	svc := NewService(repo, testPriceMap())

	org, err := svc.SyncSubscription(context.Background(), NormalizedSubscription{
		ProviderCustomerID:     "cus_123",
		ProviderSubscriptionID: "sub_123",
		ProviderPriceRef:       "price_pro",
		Status:                 "canceled",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PLAN_FREE, org.Plan)
	// Provider identifiers stay for later reactivation.
	assert.Equal(t, "cus_123", org.StripeCustomerID)
	assert.Equal(t, "sub_123", org.StripeSubscriptionID)
}

func TestSyncSubscriptionFindsOrgByCustomerID(t *testing.T) {
	repo := newFakeBillingRepository()
	repo.orgs[7] = &models.Organization{ID: 7, Name: "Acme", StripeCustomerID: "cus_777"}
	svc := NewService(repo, testPriceMap())

	org, err := svc.SyncSubscription(context.Background(), NormalizedSubscription{
		ProviderCustomerID:     "cus_777",
		ProviderSubscriptionID: "sub_777",
		ProviderPriceRef:       "price_pro_plus",
		Status:                 "trialing",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), org.ID)
	assert.Equal(t, models.PLAN_PRO_PLUS, org.Plan)
}

func TestSyncSubscriptionRequiresSubscriptionID(t *testing.T) {
	svc := NewService(newFakeBillingRepository(), testPriceMap())
	_, err := svc.SyncSubscription(context.Background(), NormalizedSubscription{OrganizationID: 1})
	assert.Error(t, err)
}

func TestRecordWebhookEventIsIdempotent(t *testing.T) {
	svc := NewService(newFakeBillingRepository(), testPriceMap())

	created, first, err := svc.RecordWebhookEvent(context.Background(), WebhookEventInput{
		Provider:        "stripe",
		ProviderEventID: "evt_1",
		EventType:       "customer.subscription.updated",
		PayloadJSON:     "{}",
		SignatureValid:  true,
	})
	require.NoError(t, err)
	assert.True(t, created)

	createdAgain, second, err := svc.RecordWebhookEvent(context.Background(), WebhookEventInput{
		Provider:        "stripe",
		ProviderEventID: "evt_1",
		EventType:       "customer.subscription.updated",
		PayloadJSON:     "{}",
	})
	require.NoError(t, err)
	assert.False(t, createdAgain)
	assert.Equal(t, first.ID, second.ID)
}

func TestRecordWebhookEventDerivesIDFromPayload(t *testing.T) {
	svc := NewService(newFakeBillingRepository(), testPriceMap())

	created, stored, err := svc.RecordWebhookEvent(context.Background(), WebhookEventInput{
		Provider:    "stripe",
		PayloadJSON: `{"no":"id"}`,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Contains(t, stored.ProviderEventID, "hash:")

	createdAgain, _, err := svc.RecordWebhookEvent(context.Background(), WebhookEventInput{
		Provider:    "stripe",
		PayloadJSON: `{"no":"id"}`,
	})
	require.NoError(t, err)
	assert.False(t, createdAgain)
}
