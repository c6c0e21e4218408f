package domain

import "time"

const (
	RoleMember    = "member"
	RoleOrganizer = "organizer"
	RoleSponsor   = "sponsor"
)

type User struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SponsorProfile is a sponsor's public-facing organization info. It must
// exist before the user may create sponsorships.
type SponsorProfile struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	Logo        string    `json:"logo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
