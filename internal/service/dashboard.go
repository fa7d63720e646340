package service

import (
	"context"

	"github.com/iliyamo/laiff-festival/internal/config"
	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/repository"
)

const dashboardActivity = 5

type DashboardStats struct {
	Films          int `json:"films"`
	Members        int `json:"members"`
	Events         int `json:"events"`
	UpcomingEvents int `json:"upcoming_events"`
	TicketsSold    int `json:"tickets_sold"`
}

type ActivityView struct {
	model.Activity
	TimeLabel string `json:"time_label"`
}

type Dashboard struct {
	Stats          DashboardStats `json:"stats"`
	DaysUntil      int            `json:"days_until"`
	RecentActivity []ActivityView `json:"recent_activity"`
}

// DashboardService aggregates the admin overview.
type DashboardService struct {
	store    *repository.Store
	festival *config.Festival
	clock    Clock
}

func NewDashboardService(store *repository.Store, f *config.Festival, clock Clock) *DashboardService {
	return &DashboardService{store: store, festival: f, clock: clock}
}

// Load computes the stats.  Tickets sold counts showtime sales plus the
// tickets on confirmed checkout orders.
func (s *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	now := s.clock.now()
	out := &Dashboard{DaysUntil: s.festival.DaysUntil(now)}

	var err error
	if out.Stats.Films, err = s.store.Movies.Count(ctx); err != nil {
		return nil, err
	}
	if out.Stats.Events, out.Stats.UpcomingEvents, err = s.store.Events.Counts(ctx); err != nil {
		return nil, err
	}
	sold, err := s.store.Showtimes.TotalSold(ctx)
	if err != nil {
		return nil, err
	}
	ordered, err := s.store.Orders.ConfirmedTicketCount(ctx)
	if err != nil {
		return nil, err
	}
	out.Stats.TicketsSold = sold + ordered
	if all, ok := s.festival.Audience("all"); ok {
		out.Stats.Members = all.Count
	}

	items, err := s.store.Activity.Recent(ctx, dashboardActivity)
	if err != nil {
		return nil, err
	}
	out.RecentActivity = make([]ActivityView, 0, len(items))
	for _, a := range items {
		out.RecentActivity = append(out.RecentActivity, ActivityView{Activity: a, TimeLabel: sinceLabel(a.CreatedAt, now)})
	}
	return out, nil
}
