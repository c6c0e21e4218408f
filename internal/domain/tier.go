package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MinSponsorshipAmount is the floor for any sponsorship, in USD.
const MinSponsorshipAmount = 100

var (
	ErrInvalidAmount      = errors.New("minimum sponsorship amount is $100")
	ErrTierAmountMismatch = errors.New("amount does not match the selected tier")
)

// Tier is a named sponsorship amount bracket. MaxAmount zero means
// open-ended (the top tier).
type Tier struct {
	Name      string  `json:"name"`
	MinAmount float64 `json:"min_amount"`
	MaxAmount float64 `json:"max_amount,omitempty"`
}

var tiers = []Tier{
	{Name: "bronze", MinAmount: 100, MaxAmount: 499},
	{Name: "silver", MinAmount: 500, MaxAmount: 999},
	{Name: "gold", MinAmount: 1000, MaxAmount: 2499},
	{Name: "platinum", MinAmount: 2500},
}

func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)

	return out
}

func TierByName(name string) (Tier, bool) {
	for _, t := range tiers {
		if t.Name == strings.ToLower(name) {
			return t, true
		}
	}

	return Tier{}, false
}

func (t Tier) Contains(amount float64) bool {
	if amount < t.MinAmount {
		return false
	}
	if t.MaxAmount > 0 && amount > t.MaxAmount {
		return false
	}

	return true
}

// ValidateAmount is the authoritative amount/tier policy check. The tier is
// optional; when supplied, the amount must fall inside the tier's bracket.
// Returned errors wrap ErrInvalidAmount or ErrTierAmountMismatch and carry a
// human-readable reason with the computed bounds.
func ValidateAmount(amount float64, tierName string) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < MinSponsorshipAmount {
		return ErrInvalidAmount
	}

	if tierName == "" {
		return nil
	}

	tier, ok := TierByName(tierName)
	if !ok {
		return fmt.Errorf("%w: unknown tier %q", ErrTierAmountMismatch, tierName)
	}

	if !tier.Contains(amount) {
		if tier.MaxAmount > 0 {
			return fmt.Errorf("%w: %v requires an amount between $%.0f and $%.0f",
				ErrTierAmountMismatch, tier.Name, tier.MinAmount, tier.MaxAmount)
		}

		return fmt.Errorf("%w: %v requires an amount of at least $%.0f",
			ErrTierAmountMismatch, tier.Name, tier.MinAmount)
	}

	return nil
}
