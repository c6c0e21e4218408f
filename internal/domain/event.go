package domain

import "time"

type Event struct {
	ID           uint          `json:"id"`
	OrganizerID  uint          `json:"organizer_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Location     string        `json:"location"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Sponsorships []Sponsorship `json:"sponsorships,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
