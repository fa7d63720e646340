package service

import (
	"context"

	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/repository"
	"github.com/iliyamo/laiff-festival/internal/utils"
)

type EventService struct {
	store *repository.Store
	clock Clock
}

func NewEventService(store *repository.Store, clock Clock) *EventService {
	return &EventService{store: store, clock: clock}
}

func (s *EventService) List(ctx context.Context, q string) ([]model.Event, error) {
	return s.store.Events.List(ctx, q)
}

// Cards lists events in date order with display labels.
func (s *EventService) Cards(ctx context.Context, q string) ([]EventCard, error) {
	items, err := s.store.Events.List(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]EventCard, 0, len(items))
	for _, e := range items {
		out = append(out, eventCard(e))
	}
	return out, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	return s.store.Events.GetByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, e *model.Event) (*model.Event, error) {
	if e.Status == "" {
		e.Status = model.EventUpcoming
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	now := s.clock.now()
	e.ID = utils.NewID()
	e.CreatedAt, e.UpdatedAt = now.Unix(), now.Unix()
	if err := s.store.Events.Create(ctx, e); err != nil {
		return nil, err
	}
	recordActivity(ctx, s.store.Activity, "Event created", e.Title, model.ActivityEvent, now)
	return e, nil
}

func (s *EventService) Update(ctx context.Context, id string, e *model.Event) (*model.Event, error) {
	cur, err := s.store.Events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.ID = cur.ID
	e.CreatedAt = cur.CreatedAt
	e.UpdatedAt = s.clock.now().Unix()
	if err := s.store.Events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.store.Events.Delete(ctx, id)
}
