package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/clubsphere/clubsphere-api/internal/domain"
)

var errUnknownTier = errors.New("must be a valid tier")

type SponsorEventRequest struct {
	Amount       float64 `json:"amount"`
	Tier         string  `json:"tier"`
	Sandbox      bool    `json:"sandbox"`
	AutoComplete bool    `json:"auto_complete"`
}

// Validate checks shape only; amount bounds and tier policy are enforced
// by the sponsorship service against the persisted tier table.
func (req *SponsorEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required),
		validation.Field(&req.Tier, validation.By(validateTierName)),
	)
}

// validateTierName accepts any casing the tier table knows, matching the
// case-insensitive lookup the tier policy itself uses.
func validateTierName(value interface{}) error {
	name, _ := value.(string)
	if name == "" {
		return nil
	}

	if _, ok := domain.TierByName(name); !ok {
		return errUnknownTier
	}

	return nil
}

type PaymentDataRequest struct {
	Method      string  `json:"method"`
	Amount      float64 `json:"amount"`
	ProviderRef string  `json:"provider_ref"`
}

type UpdateSponsorshipStatusRequest struct {
	Status      string              `json:"status"`
	PaymentData *PaymentDataRequest `json:"payment_data"`
}

func (req *UpdateSponsorshipStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("COMPLETED", "FAILED")),
	)
}
