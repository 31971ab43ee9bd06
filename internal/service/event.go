package service

import (
	"context"
	"fmt"

	"github.com/eventsplanner/events-api/internal/domain"
)

// EventService creates and lists events.
type EventService struct {
	events domain.EventRepository
}

// NewEventService creates a new EventService.
func NewEventService(events domain.EventRepository) *EventService {
	return &EventService{events: events}
}

// Create coerces the input and stores a new event.
func (s *EventService) Create(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	event, err := in.Event()
	if err != nil {
		return nil, err
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// List returns every stored event.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
