package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/laiff-festival/internal/catalog"
	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/queue"
	"github.com/iliyamo/laiff-festival/internal/repository"
)

func TestMovieService_CreateAppliesDefaults(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	store := newTestStore(t)
	s := NewMovieService(store, &fakeCatalog{}, clk.Now)
	ctx := context.Background()

	m, err := s.Create(ctx, &model.FestivalMovie{Title: "  Deadly Vows ", Director: "Jared Cohn"})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Deadly Vows", m.Title)
	assert.Equal(t, 1500, m.PriceCents)
	assert.Equal(t, 90, m.Runtime)
	assert.Equal(t, "Main Competition", m.FestivalCategory)
	assert.Equal(t, model.MovieActive, m.Status)

	_, err = s.Create(ctx, &model.FestivalMovie{Title: "X", FestivalCategory: "Westerns"})
	assert.ErrorIs(t, err, model.ErrInvalid)

	m.Notes = "Q&A after"
	updated, err := s.Update(ctx, m.ID, m)
	require.NoError(t, err)
	assert.Equal(t, "Q&A after", updated.Notes)

	_, err = s.Update(ctx, "missing", &model.FestivalMovie{Title: "Y"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, s.Delete(ctx, m.ID))
	assert.ErrorIs(t, s.Delete(ctx, m.ID), repository.ErrNotFound)
}

func TestMovieService_Import(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	store := newTestStore(t)
	d := &catalog.MovieDetails{
		Movie:  catalog.Movie{ID: 603, Title: "The Matrix", Overview: "A hacker learns the truth.", PosterPath: "/m.jpg", VoteAverage: 8.2},
		Genres: []catalog.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
	}
	d.Credits.Crew = []catalog.CrewMember{{Name: "Lana Wachowski", Job: "Director"}}
	s := NewMovieService(store, &fakeCatalog{details: d}, clk.Now)
	ctx := context.Background()

	m, err := s.Import(ctx, 603)
	require.NoError(t, err)
	assert.EqualValues(t, 603, m.TMDBID)
	assert.Equal(t, "Lana Wachowski", m.Director)
	assert.Equal(t, "Action", m.Genre)
	assert.Equal(t, 90, m.Runtime, "missing runtime falls back")
	assert.Equal(t, 2025, m.Year, "missing release date uses the current year")
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/m.jpg", m.PosterURL)
	assert.InDelta(t, 8.2, m.Rating, 0.001)
	assert.Equal(t, "A hacker learns the truth.", m.Synopsis)
	assert.Equal(t, 1500, m.PriceCents)

	acts, err := store.Activity.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "Film added", acts[0].Action)
	assert.Equal(t, "The Matrix", acts[0].Detail)
}

func TestMovieService_ImportNoGenreAndCatalogDown(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	store := newTestStore(t)
	d := &catalog.MovieDetails{Movie: catalog.Movie{ID: 7, Title: "Quiet", ReleaseDate: "1999-05-01", Runtime: 104}}
	ctx := context.Background()

	m, err := NewMovieService(store, &fakeCatalog{details: d}, clk.Now).Import(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Drama", m.Genre)
	assert.Equal(t, "Unknown", m.Director)
	assert.Equal(t, 1999, m.Year)
	assert.Equal(t, 104, m.Runtime)

	_, err = NewMovieService(store, &fakeCatalog{err: errCatalogDown}, clk.Now).Import(ctx, 7)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)

	_, err = NewMovieService(store, &fakeCatalog{}, clk.Now).Import(ctx, 0)
	assert.ErrorIs(t, err, model.ErrInvalid)
}

func TestMovieService_SearchCatalog(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	cat := &fakeCatalog{page: samplePage()}
	s := NewMovieService(newTestStore(t), cat, clk.Now)

	got, err := s.SearchCatalog(context.Background(), " film ")
	require.NoError(t, err)
	assert.Len(t, got, 10)
	assert.Equal(t, "film", cat.query)

	got, err = NewMovieService(newTestStore(t), &fakeCatalog{err: errCatalogDown}, clk.Now).SearchCatalog(context.Background(), "film")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestShowtimeService_Validation(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	store := newTestStore(t)
	ctx := context.Background()
	movies := NewMovieService(store, &fakeCatalog{}, clk.Now)
	s := NewShowtimeService(store, f, clk.Now)

	m, err := movies.Create(ctx, &model.FestivalMovie{Title: "Deadly Vows"})
	require.NoError(t, err)

	st, err := s.Create(ctx, &model.Showtime{MovieID: m.ID, Date: "2025-11-14", Time: "19:30",
		Venue: "Million Dollar Theatre", Screen: "Balcony", Capacity: 120})
	require.NoError(t, err)
	assert.Equal(t, "Deadly Vows", st.MovieTitle, "title filled from the linked movie")
	assert.Equal(t, model.ShowtimeScheduled, st.Status)
	assert.Equal(t, model.PriceStandard, st.PriceCategory)

	bad := []*model.Showtime{
		{MovieTitle: "X", Date: "2025-11-14", Time: "19:30", Venue: "Nowhere", Screen: "Main Theatre", Capacity: 10},
		{MovieTitle: "X", Date: "2025-11-14", Time: "19:30", Venue: "Million Dollar Theatre", Screen: "Main Screen", Capacity: 10},
		{MovieTitle: "X", Date: "2025-11-14", Time: "19:30", Venue: "Million Dollar Theatre", Screen: "Main Theatre", Capacity: 0},
		{MovieTitle: "X", Date: "2025-11-14", Time: "19:30", Venue: "Million Dollar Theatre", Screen: "Main Theatre", Capacity: 10, Sold: 11},
		{MovieID: "missing", Date: "2025-11-14", Time: "19:30", Venue: "Million Dollar Theatre", Screen: "Main Theatre", Capacity: 10},
		{MovieTitle: "X", Date: "2025-11-14", Time: "9:00", Venue: "Million Dollar Theatre", Screen: "Main Theatre", Capacity: 10},
		{MovieTitle: "X", Date: "2025-11-14", Time: "7:30 PM", Venue: "Million Dollar Theatre", Screen: "Main Theatre", Capacity: 10},
		{MovieTitle: "X", Date: "2025-11-14", Time: "25:00", Venue: "Million Dollar Theatre", Screen: "Main Theatre", Capacity: 10},
		{MovieTitle: "X", Date: "Nov 14", Time: "19:00", Venue: "Million Dollar Theatre", Screen: "Main Theatre", Capacity: 10},
		{MovieTitle: "X", Date: "", Time: "19:00", Venue: "Million Dollar Theatre", Screen: "Main Theatre", Capacity: 10},
	}
	for i, b := range bad {
		_, err := s.Create(ctx, b)
		assert.ErrorIs(t, err, model.ErrInvalid, "case %d", i)
	}

	list, err := s.List(ctx, repository.ShowtimeFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1, "rejected showtimes are not stored")
}

func TestShowtimeService_DuplicateAndStats(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	store := newTestStore(t)
	ctx := context.Background()
	s := NewShowtimeService(store, f, clk.Now)

	st, err := s.Create(ctx, &model.Showtime{MovieTitle: "Where Darkness Dwells", Date: "2025-11-15", Time: "21:00",
		Venue: "Secret Movie Club", Screen: "Main Screen", Capacity: 80, Sold: 80,
		Status: model.ShowtimeSoldOut, PriceCategory: model.PricePremium})
	require.NoError(t, err)

	cp, err := s.Duplicate(ctx, st.ID)
	require.NoError(t, err)
	assert.NotEqual(t, st.ID, cp.ID)
	assert.Zero(t, cp.Sold)
	assert.Equal(t, model.ShowtimeScheduled, cp.Status)
	assert.Equal(t, model.PricePremium, cp.PriceCategory)

	_, err = s.Duplicate(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ShowtimeStats{Showtimes: 2, TotalSold: 80, Capacity: 160, SoldOut: 1}, stats)

	list, err := s.List(ctx, repository.ShowtimeFilter{Venue: "secret"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestTicketService_TypesRecomputeFinalPrice(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	s := NewTicketService(newTestStore(t), f, clk.Now)
	ctx := context.Background()

	tt, err := s.CreateType(ctx, &model.TicketType{Name: "Student", BasePriceCents: 1500, DiscountPercent: 33, FinalPriceCents: 1})
	require.NoError(t, err)
	assert.Equal(t, 1005, tt.FinalPriceCents)
	assert.Equal(t, model.AvailableAll, tt.Availability)

	tt.DiscountPercent = 50
	tt, err = s.UpdateType(ctx, tt.ID, tt)
	require.NoError(t, err)
	assert.Equal(t, 750, tt.FinalPriceCents)

	_, err = s.CreateType(ctx, &model.TicketType{Name: "Bad", BasePriceCents: 100, DiscountPercent: 101})
	assert.ErrorIs(t, err, model.ErrInvalid)
}

func TestTicketService_Promos(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	s := NewTicketService(newTestStore(t), f, clk.Now)
	ctx := context.Background()

	p, err := s.CreatePromo(ctx, &model.PromoCode{Code: "early", DiscountType: model.DiscountFixed, DiscountValue: 2000,
		UsageLimit: 10, UsageCount: 9, ValidUntil: "2025-11-05"})
	require.NoError(t, err)
	assert.Equal(t, "EARLY", p.Code)
	assert.Zero(t, p.UsageCount, "new codes start unused")
	assert.Equal(t, model.PromoActive, p.Status)
	assert.Equal(t, model.PromoExpired, p.EffectiveStatus)

	_, err = s.CreatePromo(ctx, &model.PromoCode{Code: "EARLY", DiscountType: model.DiscountPercent, DiscountValue: 5})
	assert.ErrorIs(t, err, repository.ErrConflict)

	check, err := s.ValidatePromo(ctx, "early", 1500)
	require.NoError(t, err)
	assert.False(t, check.Valid)
	assert.Equal(t, model.ErrPromoExpired.Error(), check.Reason)

	p.ValidUntil = ""
	p2, err := s.UpdatePromo(ctx, p.ID, &p.PromoCode)
	require.NoError(t, err)
	assert.Equal(t, model.PromoActive, p2.EffectiveStatus)

	check, err = s.ValidatePromo(ctx, "EARLY", 1500)
	require.NoError(t, err)
	assert.True(t, check.Valid)
	assert.Equal(t, 1500, check.DiscountCents, "fixed discount is capped at the subtotal")
	assert.Zero(t, check.TotalCents)

	_, err = s.ValidatePromo(ctx, "GHOST", 1500)
	assert.ErrorIs(t, err, ErrPromoNotFound)

	list, err := s.ListPromos(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEventService_CardsAndValidation(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	store := newTestStore(t)
	s := NewEventService(store, clk.Now)
	ctx := context.Background()

	_, err := s.Create(ctx, &model.Event{Title: "Closing Party", Category: "Party", Date: "2025-11-16", Time: "21:00", Venue: "Grand Central Market"})
	require.NoError(t, err)
	_, err = s.Create(ctx, &model.Event{Title: "Opening Gala", Category: "Premiere", Date: "2025-11-14", Time: "19:30", Venue: "Million Dollar Theatre"})
	require.NoError(t, err)
	_, err = s.Create(ctx, &model.Event{Title: "Bad", Category: "Brunch", Date: "2025-11-14", Time: "10:00"})
	assert.ErrorIs(t, err, model.ErrInvalid)

	cards, err := s.Cards(ctx, "")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Opening Gala", cards[0].Title)
	assert.Equal(t, "Friday, Nov 14", cards[0].DateLabel)
	assert.Equal(t, "7:30 PM", cards[0].TimeLabel)
	assert.Equal(t, model.EventUpcoming, cards[0].Status)
}

func TestBroadcastService_Send(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	store := newTestStore(t)
	pub := &mockPublisher{}
	s := NewBroadcastService(store, f, pub, nil, clk.Now)
	ctx := context.Background()

	pub.On("Publish", mock.Anything, queue.TopicBroadcastSent, mock.MatchedBy(func(ev queue.BroadcastSentEvent) bool {
		return ev.Recipients == 89 && ev.Audience == "Film Club" && ev.Delivery == "both"
	})).Return(nil).Once()

	b, err := s.Send(ctx, BroadcastInput{Title: " Lineup announced ", Message: "See the full programme.", Audience: "film-club", Delivery: model.DeliveryBoth})
	require.NoError(t, err)
	pub.AssertExpectations(t)
	assert.Equal(t, "Lineup announced", b.Title)
	assert.Equal(t, 89, b.Recipients)
	assert.Zero(t, b.OpenRate)
	assert.Equal(t, "now", b.SentLabel)

	notes, err := store.Notifications.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, model.NotifySystem, notes[0].Type)

	pub.On("Publish", mock.Anything, queue.TopicBroadcastSent, mock.Anything).Return(nil).Once()
	_, err = s.Send(ctx, BroadcastInput{Title: "Email only", Message: "Hi", Audience: "all", Delivery: model.DeliveryEmail})
	require.NoError(t, err)
	notes, err = store.Notifications.List(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 1, "email delivery adds no notification")

	recent, err := s.Recent(ctx)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	for _, in := range []BroadcastInput{
		{Title: " ", Message: "m", Audience: "all", Delivery: model.DeliveryPush},
		{Title: "t", Message: "m", Audience: "nobody", Delivery: model.DeliveryPush},
		{Title: "t", Message: "m", Audience: "all", Delivery: "sms"},
	} {
		_, err := s.Send(ctx, in)
		assert.ErrorIs(t, err, model.ErrInvalid)
	}
	assert.Len(t, s.Audiences(), 5)
}

func TestDashboardService_Load(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	store := seededStore(t, clk.Now())

	d, err := NewDashboardService(store, f, clk.Now).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, d.Stats.Films)
	assert.Equal(t, 156, d.Stats.Members)
	assert.Equal(t, 6, d.Stats.Events)
	assert.Positive(t, d.Stats.TicketsSold)
	assert.Equal(t, 4, d.DaysUntil)
	require.Len(t, d.RecentActivity, 5)
	for _, a := range d.RecentActivity {
		assert.NotEmpty(t, a.TimeLabel)
	}
}

func TestNotificationService(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	store := seededStore(t, clk.Now())
	s := NewNotificationService(store.Notifications, clk.Now)
	ctx := context.Background()

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 4)
	assert.Positive(t, list.Unread)
	assert.Contains(t, list.Items[0].TimeLabel, "ago")

	require.NoError(t, s.MarkRead(ctx, list.Items[0].ID))
	assert.ErrorIs(t, s.MarkRead(ctx, "missing"), repository.ErrNotFound)

	_, err = s.MarkAllRead(ctx)
	require.NoError(t, err)
	n, err := s.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
