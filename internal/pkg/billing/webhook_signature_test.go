package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"
)

func signPayload(payload []byte, secret string, ts int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"customer.subscription.updated"}`)
	secret := "whsec_test"
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	header := signPayload(payload, secret, now.Unix())
	if !VerifyWebhookSignature(payload, header, secret, now) {
		t.Fatalf("expected valid signature to verify")
	}
}

func TestVerifyWebhookSignatureRejectsTampering(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"
	now := time.Now()

	header := signPayload(payload, secret, now.Unix())
	if VerifyWebhookSignature([]byte(`{"id":"evt_2"}`), header, secret, now) {
		t.Fatalf("expected modified payload to fail verification")
	}
	if VerifyWebhookSignature(payload, header, "other_secret", now) {
		t.Fatalf("expected wrong secret to fail verification")
	}
}

func TestVerifyWebhookSignatureTolerance(t *testing.T) {
	payload := []byte(`{}`)
	secret := "whsec_test"
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	within := signPayload(payload, secret, now.Add(-4*time.Minute).Unix())
	if !VerifyWebhookSignature(payload, within, secret, now) {
		t.Fatalf("expected signature within tolerance to verify")
	}

	stale := signPayload(payload, secret, now.Add(-6*time.Minute).Unix())
	if VerifyWebhookSignature(payload, stale, secret, now) {
		t.Fatalf("expected stale signature to fail")
	}

	future := signPayload(payload, secret, now.Add(6*time.Minute).Unix())
	if VerifyWebhookSignature(payload, future, secret, now) {
		t.Fatalf("expected far-future signature to fail")
	}
}

func TestVerifyWebhookSignatureMalformedHeaders(t *testing.T) {
	payload := []byte(`{}`)
	secret := "whsec_test"
	now := time.Now()

	for _, header := range []string{
		"",
		"t=abc,v1=00",
		"v1=00",
		fmt.Sprintf("t=%d", now.Unix()),
		fmt.Sprintf("t=%d,v1=not-hex", now.Unix()),
	} {
		if VerifyWebhookSignature(payload, header, secret, now) {
			t.Fatalf("expected malformed header %q to fail", header)
		}
	}
}
