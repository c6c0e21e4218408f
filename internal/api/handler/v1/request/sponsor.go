package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type UpsertSponsorProfileRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Logo        string `json:"logo"`
}

func (req *UpsertSponsorProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Website, is.URL),
		validation.Field(&req.Logo, is.URL),
	)
}
