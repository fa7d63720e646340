package handler

import (
	"context"

	"github.com/iliyamo/laiff-festival/internal/catalog"
	"github.com/iliyamo/laiff-festival/internal/config"
	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/repository"
	"github.com/iliyamo/laiff-festival/internal/service"
)

// The interfaces below are what the handlers need from the service layer.
// The service types satisfy them; tests substitute mocks.

type FilmReader interface {
	List(ctx context.Context, q service.FilmQuery) (*service.FilmPage, error)
	Search(ctx context.Context, query string, fallback service.FilmQuery) (*service.FilmPage, error)
	Details(ctx context.Context, id int64) (*service.FilmDetails, error)
	Genres() []catalog.Genre
}

type HomeReader interface {
	Feed(ctx context.Context) (*service.HomeFeed, error)
}

type ScheduleReader interface {
	Build(ctx context.Context, day int, venueID string) (*service.Schedule, error)
}

type FestivalReader interface {
	Info() service.FestivalInfo
	Venues() []service.VenueInfo
	Membership() []config.MembershipTier
	Map() service.VenueMap
}

type EventCardReader interface {
	Cards(ctx context.Context, q string) ([]service.EventCard, error)
}

type CheckoutFlow interface {
	Start(ctx context.Context, clientID string, in service.StartInput) (*service.OrderView, error)
	Get(ctx context.Context, clientID, orderID string) (*service.OrderView, error)
	AdjustTickets(ctx context.Context, clientID, orderID string, kind model.TicketKind, delta int) (*service.OrderView, error)
	SetTickets(ctx context.Context, clientID, orderID string, counts map[model.TicketKind]int) (*service.OrderView, error)
	Proceed(ctx context.Context, clientID, orderID string) (*service.OrderView, error)
	Back(ctx context.Context, clientID, orderID string) (*service.OrderView, error)
	Reset(ctx context.Context, clientID, orderID string) (*service.OrderView, error)
	Complete(ctx context.Context, clientID, orderID string, in service.CompleteInput) (*service.OrderView, error)
}

type NotificationCenter interface {
	List(ctx context.Context) (*service.NotificationList, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int64, error)
}

type AdminModeStore interface {
	Load(ctx context.Context, clientID string) (bool, error)
	Save(ctx context.Context, clientID string, on bool) error
	Toggle(ctx context.Context, clientID string) (bool, error)
}

type SettingsStore interface {
	Load(ctx context.Context, clientID string) (model.UserSettings, error)
	Save(ctx context.Context, clientID string, us model.UserSettings) (model.UserSettings, error)
}

type MovieManager interface {
	List(ctx context.Context, q string) ([]model.FestivalMovie, error)
	Get(ctx context.Context, id string) (*model.FestivalMovie, error)
	Create(ctx context.Context, m *model.FestivalMovie) (*model.FestivalMovie, error)
	Update(ctx context.Context, id string, m *model.FestivalMovie) (*model.FestivalMovie, error)
	Delete(ctx context.Context, id string) error
	SearchCatalog(ctx context.Context, q string) ([]service.FilmCard, error)
	Import(ctx context.Context, tmdbID int64) (*model.FestivalMovie, error)
}

type ShowtimeManager interface {
	List(ctx context.Context, f repository.ShowtimeFilter) ([]model.Showtime, error)
	Get(ctx context.Context, id string) (*model.Showtime, error)
	Create(ctx context.Context, st *model.Showtime) (*model.Showtime, error)
	Update(ctx context.Context, id string, st *model.Showtime) (*model.Showtime, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (*model.Showtime, error)
	Stats(ctx context.Context) (model.ShowtimeStats, error)
}

type TicketManager interface {
	ListTypes(ctx context.Context) ([]model.TicketType, error)
	GetType(ctx context.Context, id string) (*model.TicketType, error)
	CreateType(ctx context.Context, t *model.TicketType) (*model.TicketType, error)
	UpdateType(ctx context.Context, id string, t *model.TicketType) (*model.TicketType, error)
	DeleteType(ctx context.Context, id string) error

	ListPromos(ctx context.Context) ([]service.PromoView, error)
	GetPromo(ctx context.Context, id string) (*service.PromoView, error)
	CreatePromo(ctx context.Context, p *model.PromoCode) (*service.PromoView, error)
	UpdatePromo(ctx context.Context, id string, p *model.PromoCode) (*service.PromoView, error)
	DeletePromo(ctx context.Context, id string) error
	ValidatePromo(ctx context.Context, code string, subtotalCents int) (*service.PromoCheck, error)
}

type EventManager interface {
	List(ctx context.Context, q string) ([]model.Event, error)
	Get(ctx context.Context, id string) (*model.Event, error)
	Create(ctx context.Context, e *model.Event) (*model.Event, error)
	Update(ctx context.Context, id string, e *model.Event) (*model.Event, error)
	Delete(ctx context.Context, id string) error
}

type Broadcaster interface {
	Audiences() []config.Audience
	Send(ctx context.Context, in service.BroadcastInput) (*service.BroadcastView, error)
	Recent(ctx context.Context) ([]service.BroadcastView, error)
}

type DashboardLoader interface {
	Load(ctx context.Context) (*service.Dashboard, error)
}
