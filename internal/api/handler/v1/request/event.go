package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errEndBeforeStart = errors.New("end_date must not be before start_date")

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date" format:"RFC 3339"`
	EndDate     string `json:"end_date" format:"RFC 3339"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.StartDate, validation.Required, validation.Date(time.RFC3339)),
		validation.Field(&req.EndDate, validation.Required, validation.Date(time.RFC3339)),
	)
}

// ParseDates returns the parsed start and end dates. Validate must pass first.
func (req *CreateEventRequest) ParseDates() (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, errEndBeforeStart
	}

	return start, end, nil
}
