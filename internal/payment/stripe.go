// Package payment adapts the Stripe API to the sponsorship checkout flow:
// opening hosted checkout sessions and verifying signed webhook events.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"github.com/stripe/stripe-go/v72/webhook"

	"github.com/clubsphere/clubsphere-api/internal/config"
	"github.com/clubsphere/clubsphere-api/internal/domain"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedEvent   = errors.New("malformed webhook event")
)

// CompletionSignal is a verified provider notification about one
// sponsorship's checkout outcome.
type CompletionSignal struct {
	SponsorshipID uint
	Status        domain.SponsorshipStatus
	ProviderRef   string
	Amount        float64
}

type StripeClient struct {
	api  *client.API
	conf config.PaymentConfig
}

func NewStripeClient(conf config.PaymentConfig) *StripeClient {
	api := &client.API{}
	api.Init(conf.SecretKey, nil)

	return &StripeClient{
		api:  api,
		conf: conf,
	}
}

// OpenCheckout creates a hosted checkout session for the given amount.
// The metadata round-trips through the provider and comes back on the
// webhook event, which is how completions are matched to sponsorships.
func (c *StripeClient) OpenCheckout(ctx context.Context, amount float64, currency string, metadata map[string]string) (domain.Checkout, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Event sponsorship"),
					},
					UnitAmount: stripe.Int64(int64(math.Round(amount * 100))),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.conf.SuccessURL),
		CancelURL:  stripe.String(c.conf.CancelURL),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return domain.Checkout{}, fmt.Errorf("stripe checkout session -> %w", err)
	}

	return domain.Checkout{
		ProviderRef: session.ID,
		URL:         session.URL,
	}, nil
}

// ParseWebhook verifies the payload against the Stripe-Signature header and
// extracts a completion signal. The second return is false for events the
// service does not act on; such deliveries must still be acknowledged with
// a 2xx so the provider stops retrying them.
func (c *StripeClient) ParseWebhook(payload []byte, signature string) (CompletionSignal, bool, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.conf.WebhookSecret)
	if err != nil {
		return CompletionSignal{}, false, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	var target domain.SponsorshipStatus
	switch event.Type {
	case "checkout.session.completed":
		target = domain.SponsorshipCompleted
	case "checkout.session.expired":
		target = domain.SponsorshipFailed
	default:
		return CompletionSignal{}, false, nil
	}

	var session stripe.CheckoutSession
	if err = json.Unmarshal(event.Data.Raw, &session); err != nil {
		return CompletionSignal{}, false, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	raw, ok := session.Metadata["sponsorship_id"]
	if !ok {
		return CompletionSignal{}, false, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return CompletionSignal{}, false, fmt.Errorf("%w: bad sponsorship_id %q", ErrMalformedEvent, raw)
	}

	return CompletionSignal{
		SponsorshipID: uint(id),
		Status:        target,
		ProviderRef:   session.ID,
		Amount:        float64(session.AmountTotal) / 100,
	}, true, nil
}
