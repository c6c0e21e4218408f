package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clubsphere/clubsphere-api/internal/domain"
	"github.com/clubsphere/clubsphere-api/internal/repository"
)

var ErrEventNotFound = repository.ErrEventNotFound

// Listings look back this far so recently finished events still show up.
const eventListingWindow = 3 * 30 * 24 * time.Hour

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	GetByID(ctx context.Context, id uint) (domain.Event, error)
	ListStartingSince(ctx context.Context, since time.Time) ([]domain.Event, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event, organizerID uint) (domain.Event, error) {
	event.OrganizerID = organizerID

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) GetEvents(ctx context.Context) ([]domain.Event, error) {
	since := time.Now().Add(-eventListingWindow)

	events, err := s.repo.ListStartingSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListStartingSince -> %w", err)
	}

	return events, nil
}
