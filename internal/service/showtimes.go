package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/laiff-festival/internal/config"
	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/repository"
	"github.com/iliyamo/laiff-festival/internal/utils"
)

// ShowtimeService schedules screenings at the configured venues.
type ShowtimeService struct {
	store    *repository.Store
	festival *config.Festival
	clock    Clock
}

func NewShowtimeService(store *repository.Store, f *config.Festival, clock Clock) *ShowtimeService {
	return &ShowtimeService{store: store, festival: f, clock: clock}
}

func (s *ShowtimeService) List(ctx context.Context, f repository.ShowtimeFilter) ([]model.Showtime, error) {
	return s.store.Showtimes.List(ctx, f)
}

func (s *ShowtimeService) Get(ctx context.Context, id string) (*model.Showtime, error) {
	return s.store.Showtimes.GetByID(ctx, id)
}

func (s *ShowtimeService) Create(ctx context.Context, st *model.Showtime) (*model.Showtime, error) {
	if st.Status == "" {
		st.Status = model.ShowtimeScheduled
	}
	if st.PriceCategory == "" {
		st.PriceCategory = model.PriceStandard
	}
	if err := s.prepare(ctx, st); err != nil {
		return nil, err
	}
	now := s.clock.now()
	st.ID = utils.NewID()
	st.CreatedAt, st.UpdatedAt = now.Unix(), now.Unix()
	if err := s.store.Showtimes.Create(ctx, st); err != nil {
		return nil, err
	}
	recordActivity(ctx, s.store.Activity, "Showtime scheduled",
		fmt.Sprintf("%s - %s %s", st.MovieTitle, model.DateLabel(st.Date), st.Time), model.ActivitySchedule, now)
	return st, nil
}

func (s *ShowtimeService) Update(ctx context.Context, id string, st *model.Showtime) (*model.Showtime, error) {
	cur, err := s.store.Showtimes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.prepare(ctx, st); err != nil {
		return nil, err
	}
	st.ID = cur.ID
	st.CreatedAt = cur.CreatedAt
	st.UpdatedAt = s.clock.now().Unix()
	if err := s.store.Showtimes.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *ShowtimeService) Delete(ctx context.Context, id string) error {
	return s.store.Showtimes.Delete(ctx, id)
}

// Duplicate copies a screening with a fresh id and no seats sold.
func (s *ShowtimeService) Duplicate(ctx context.Context, id string) (*model.Showtime, error) {
	cur, err := s.store.Showtimes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := cur.Duplicate(utils.NewID(), s.clock.now().Unix())
	if err := s.store.Showtimes.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ShowtimeService) Stats(ctx context.Context) (model.ShowtimeStats, error) {
	items, err := s.store.Showtimes.List(ctx, repository.ShowtimeFilter{})
	if err != nil {
		return model.ShowtimeStats{}, err
	}
	return model.ComputeShowtimeStats(items), nil
}

// prepare fills the title from the linked movie and checks the record
// against the venue config.
func (s *ShowtimeService) prepare(ctx context.Context, st *model.Showtime) error {
	st.MovieTitle = strings.TrimSpace(st.MovieTitle)
	if st.MovieTitle == "" && st.MovieID != "" {
		m, err := s.store.Movies.GetByID(ctx, st.MovieID)
		switch {
		case err == nil:
			st.MovieTitle = m.Title
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}
	}
	if err := st.Validate(); err != nil {
		return err
	}
	v, ok := s.festival.VenueByName(st.Venue)
	if !ok {
		return fmt.Errorf("%w: unknown venue %q", model.ErrInvalid, st.Venue)
	}
	if !v.HasScreen(st.Screen) {
		return fmt.Errorf("%w: %s has no screen %q", model.ErrInvalid, v.Name, st.Screen)
	}
	return nil
}
