package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsphere/clubsphere-api/internal/config"
	"github.com/clubsphere/clubsphere-api/internal/domain"
)

const testWebhookSecret = "whsec_test_secret"

func newTestClient() *StripeClient {
	return NewStripeClient(config.PaymentConfig{
		SecretKey:     "sk_test_123",
		WebhookSecret: testWebhookSecret,
		SuccessURL:    "https://app.example.com/success",
		CancelURL:     "https://app.example.com/cancel",
	})
}

// signPayload produces a Stripe-Signature header value for the payload:
// an HMAC-SHA256 of "<timestamp>.<payload>" keyed with the endpoint secret.
func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)

	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func checkoutEventPayload(eventType, sessionID, sponsorshipID string, amountTotal int64) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"object": "event",
		"api_version": "2020-08-27",
		"type": %q,
		"data": {
			"object": {
				"id": %q,
				"object": "checkout.session",
				"amount_total": %d,
				"metadata": {"sponsorship_id": %q, "event_id": "42", "tier": "silver"}
			}
		}
	}`, eventType, sessionID, amountTotal, sponsorshipID))
}

func TestStripeClient_ParseWebhook(t *testing.T) {
	c := newTestClient()

	t.Run("completed session yields COMPLETED signal", func(t *testing.T) {
		payload := checkoutEventPayload("checkout.session.completed", "cs_test_123", "17", 75000)
		sig := signPayload(payload, testWebhookSecret, time.Now())

		signal, ok, err := c.ParseWebhook(payload, sig)

		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, uint(17), signal.SponsorshipID)
		assert.Equal(t, domain.SponsorshipCompleted, signal.Status)
		assert.Equal(t, "cs_test_123", signal.ProviderRef)
		assert.Equal(t, float64(750), signal.Amount)
	})

	t.Run("expired session yields FAILED signal", func(t *testing.T) {
		payload := checkoutEventPayload("checkout.session.expired", "cs_test_456", "17", 75000)
		sig := signPayload(payload, testWebhookSecret, time.Now())

		signal, ok, err := c.ParseWebhook(payload, sig)

		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, domain.SponsorshipFailed, signal.Status)
	})

	t.Run("unhandled event type is ignored without error", func(t *testing.T) {
		payload := checkoutEventPayload("payment_intent.created", "pi_test_1", "17", 75000)
		sig := signPayload(payload, testWebhookSecret, time.Now())

		_, ok, err := c.ParseWebhook(payload, sig)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		payload := checkoutEventPayload("checkout.session.completed", "cs_test_123", "17", 75000)
		sig := signPayload(payload, "whsec_other_secret", time.Now())

		_, _, err := c.ParseWebhook(payload, sig)

		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("tampered payload is rejected", func(t *testing.T) {
		payload := checkoutEventPayload("checkout.session.completed", "cs_test_123", "17", 75000)
		sig := signPayload(payload, testWebhookSecret, time.Now())
		tampered := checkoutEventPayload("checkout.session.completed", "cs_test_123", "17", 1)

		_, _, err := c.ParseWebhook(tampered, sig)

		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("stale timestamp is rejected", func(t *testing.T) {
		payload := checkoutEventPayload("checkout.session.completed", "cs_test_123", "17", 75000)
		sig := signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour))

		_, _, err := c.ParseWebhook(payload, sig)

		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("missing signature header is rejected", func(t *testing.T) {
		payload := checkoutEventPayload("checkout.session.completed", "cs_test_123", "17", 75000)

		_, _, err := c.ParseWebhook(payload, "")

		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("missing sponsorship metadata is ignored", func(t *testing.T) {
		payload := []byte(`{
			"id": "evt_test_2",
			"object": "event",
			"type": "checkout.session.completed",
			"data": {"object": {"id": "cs_test_789", "object": "checkout.session", "metadata": {}}}
		}`)
		sig := signPayload(payload, testWebhookSecret, time.Now())

		_, ok, err := c.ParseWebhook(payload, sig)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-numeric sponsorship metadata is malformed", func(t *testing.T) {
		payload := checkoutEventPayload("checkout.session.completed", "cs_test_123", "abc", 75000)
		sig := signPayload(payload, testWebhookSecret, time.Now())

		_, _, err := c.ParseWebhook(payload, sig)

		assert.ErrorIs(t, err, ErrMalformedEvent)
	})
}
