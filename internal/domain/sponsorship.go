package domain

import "time"

// SponsorshipStatus is the closed set of sponsorship lifecycle states.
// PENDING is the only non-terminal state; COMPLETED and FAILED are sticky.
type SponsorshipStatus string

const (
	SponsorshipPending   SponsorshipStatus = "PENDING"
	SponsorshipCompleted SponsorshipStatus = "COMPLETED"
	SponsorshipFailed    SponsorshipStatus = "FAILED"
)

func (s SponsorshipStatus) IsTerminal() bool {
	return s == SponsorshipCompleted || s == SponsorshipFailed
}

// CanTransitionTo reports whether the transition s -> target is legal.
// The only legal transitions are PENDING -> COMPLETED and PENDING -> FAILED.
func (s SponsorshipStatus) CanTransitionTo(target SponsorshipStatus) bool {
	return s == SponsorshipPending && target.IsTerminal()
}

type PaymentMethod string

const (
	PaymentMethodCard    PaymentMethod = "CARD"
	PaymentMethodSandbox PaymentMethod = "SANDBOX"
)

// Sponsorship is one sponsor's pledge toward one event. Records are never
// deleted; terminal transitions keep the financial audit trail intact.
type Sponsorship struct {
	ID               uint              `json:"id"`
	EventID          uint              `json:"event_id"`
	SponsorProfileID uint              `json:"sponsor_profile_id"`
	UserID           uint              `json:"user_id"`
	Amount           float64           `json:"amount"`
	Tier             string            `json:"tier,omitempty"`
	Status           SponsorshipStatus `json:"status"`
	CheckoutRef      string            `json:"checkout_ref,omitempty"`
	CheckoutURL      string            `json:"checkout_url,omitempty"`
	Payment          *Payment          `json:"payment,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// Payment records one captured funds transfer backing a COMPLETED
// sponsorship. Immutable after creation; at most one per sponsorship.
type Payment struct {
	ID            uint          `json:"id"`
	SponsorshipID uint          `json:"sponsorship_id"`
	Method        PaymentMethod `json:"method"`
	Amount        float64       `json:"amount"`
	ProviderRef   string        `json:"provider_ref,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// PaymentDetails is the completion signal's payment section. Its Amount is
// reported by an untrusted caller and is never copied into a Payment row.
type PaymentDetails struct {
	Method      PaymentMethod
	Amount      float64
	ProviderRef string
}

// Checkout is a hosted checkout session opened with the payment processor.
type Checkout struct {
	ProviderRef string
	URL         string
}
