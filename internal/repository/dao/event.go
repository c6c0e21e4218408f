package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID          uint `gorm:"primaryKey"`
	OrganizerID uint `gorm:"not null;index"`

	Title       string `gorm:"not null"`
	Description string
	Location    string
	StartDate   time.Time `gorm:"not null;index"`
	EndDate     time.Time

	Sponsorships []Sponsorship `gorm:"foreignKey:EventID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Preload("Sponsorships").
		Preload("Sponsorships.Payment").
		First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindStartingSince returns events whose start date is on or after the
// given time, newest first.
func (d *EventDAO) FindStartingSince(ctx context.Context, since time.Time) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Where("start_date >= ?", since).
		Order("start_date DESC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}
