package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clubsphere/clubsphere-api/internal/domain"
	"github.com/clubsphere/clubsphere-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindStartingSince(ctx context.Context, since time.Time) ([]dao.Event, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) ListStartingSince(ctx context.Context, since time.Time) ([]domain.Event, error) {
	found, err := r.dao.FindStartingSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindStartingSince -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = r.daoToDomain(e)
	}

	return events, nil
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:          e.ID,
		OrganizerID: e.OrganizerID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:          e.ID,
		OrganizerID: e.OrganizerID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	if len(e.Sponsorships) > 0 {
		event.Sponsorships = make([]domain.Sponsorship, len(e.Sponsorships))
		for i, s := range e.Sponsorships {
			event.Sponsorships[i] = sponsorshipDaoToDomain(s)
		}
	}

	return event
}
