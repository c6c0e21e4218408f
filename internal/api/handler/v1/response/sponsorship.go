package response

import "github.com/clubsphere/clubsphere-api/internal/domain"

type SponsorshipResponse struct {
	Success bool               `json:"success"`
	Sandbox bool               `json:"sandbox,omitempty"`
	Message string             `json:"message,omitempty"`
	Data    domain.Sponsorship `json:"data"`
}
