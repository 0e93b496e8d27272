package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/vendorvault/VendorVault/internal/pkg/billing"
	"github.com/vendorvault/VendorVault/internal/pkg/database"
	"github.com/vendorvault/VendorVault/internal/pkg/env"
	"github.com/vendorvault/VendorVault/internal/pkg/statistics"
)

// stripeWebhookPayload is the subset of the provider event we act on.
type stripeWebhookPayload struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID               string `json:"id"`
			Customer         string `json:"customer"`
			Status           string `json:"status"`
			CurrentPeriodEnd int64  `json:"current_period_end"`
			Items            struct {
				Data []struct {
					Price struct {
						ID string `json:"id"`
					} `json:"price"`
				} `json:"data"`
			} `json:"items"`
			Metadata struct {
				OrganizationID uint `json:"organization_id,string"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// HandleBillingWebhook ingests provider subscription events. Events are
// persisted idempotently before any processing; replays answer 200 without
// re-syncing.
func HandleBillingWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := c.Get("Webhook-Signature", c.Get("Stripe-Signature"))
	secret := env.GetEnv("BILLING_WEBHOOK_SECRET", "")

	svc := billingServiceFromEnv()
	ctx := c.Context()

	signatureValid := billing.VerifyWebhookSignature(rawBody, signature, secret, time.Now())

	var payload stripeWebhookPayload
	parseErr := json.Unmarshal(rawBody, &payload)

	created, stored, err := svc.RecordWebhookEvent(ctx, billing.WebhookEventInput{
		Provider:        "stripe",
		ProviderEventID: payload.ID,
		EventType:       payload.Type,
		PayloadJSON:     string(rawBody),
		SignatureValid:  signatureValid,
	})
	if err != nil {
		fiberlog.Errorf("webhook persist failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "webhook_persist_failed", "could not store webhook event")
	}
	if !created {
		return c.JSON(fiber.Map{"ok": true, "duplicate": true})
	}
	if !signatureValid {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, errors.New("invalid webhook signature"))
		return jsonError(c, fiber.StatusUnauthorized, "invalid_signature", "webhook signature verification failed")
	}
	if parseErr != nil {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, parseErr)
		return badRequest(c, "invalid payload")
	}
	if !isSubscriptionEvent(payload.Type) {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, nil)
		return c.JSON(fiber.Map{"ok": true, "ignored": true})
	}

	priceRef := ""
	if len(payload.Data.Object.Items.Data) > 0 {
		priceRef = payload.Data.Object.Items.Data[0].Price.ID
	}
	var periodEnd *time.Time
	if payload.Data.Object.CurrentPeriodEnd > 0 {
		t := time.Unix(payload.Data.Object.CurrentPeriodEnd, 0)
		periodEnd = &t
	}

	org, syncErr := svc.SyncSubscription(ctx, billing.NormalizedSubscription{
		OrganizationID:         payload.Data.Object.Metadata.OrganizationID,
		ProviderCustomerID:     payload.Data.Object.Customer,
		ProviderSubscriptionID: payload.Data.Object.ID,
		ProviderPriceRef:       priceRef,
		Status:                 payload.Data.Object.Status,
		CurrentPeriodEnd:       periodEnd,
		RawPayloadJSON:         string(rawBody),
	})
	_ = svc.MarkWebhookProcessed(ctx, stored.ID, syncErr)
	if syncErr != nil {
		fiberlog.Errorf("subscription sync failed: %v", syncErr)
		return jsonError(c, fiber.StatusInternalServerError, "subscription_sync_failed", "could not sync subscription")
	}

	statistics.InvalidateOrg(org.ID)
	return c.JSON(fiber.Map{"ok": true, "plan": org.Plan})
}

func isSubscriptionEvent(eventType string) bool {
	switch eventType {
	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":
		return true
	default:
		return false
	}
}

// billingServiceFromEnv builds the billing service with the price-to-plan
// mapping taken from the environment.
func billingServiceFromEnv() *billing.Service {
	priceMap := map[string]string{}
	if ref := env.GetEnv("BILLING_PRICE_PRO", ""); ref != "" {
		priceMap[ref] = "pro"
	}
	if ref := env.GetEnv("BILLING_PRICE_PRO_PLUS", ""); ref != "" {
		priceMap[ref] = "pro_plus"
	}
	return billing.NewServiceFromDB(database.GetDB(), priceMap)
}
