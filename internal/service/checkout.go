package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/laiff-festival/internal/config"
	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
	"github.com/iliyamo/laiff-festival/internal/pkg/metrics"
	"github.com/iliyamo/laiff-festival/internal/queue"
	"github.com/iliyamo/laiff-festival/internal/repository"
	"github.com/iliyamo/laiff-festival/internal/utils"
)

// StartInput picks a showtime from the schedule.
type StartInput struct {
	MovieID    int64
	MovieTitle string
	PosterPath string
	Day        int
	Time       string
	VenueID    string
}

// CompleteInput is the contact and optional promo captured at checkout.
type CompleteInput struct {
	Customer  model.Customer
	PromoCode string
}

// OrderView is the API shape of an order.
type OrderView struct {
	ID               string                   `json:"id"`
	State            model.OrderState         `json:"state"`
	Selection        *model.Selection         `json:"selection,omitempty"`
	Tickets          map[model.TicketKind]int `json:"tickets"`
	TotalTickets     int                      `json:"total_tickets"`
	Prices           map[model.TicketKind]int `json:"prices"`
	MaxPerKind       int                      `json:"max_per_kind"`
	Customer         *model.Customer          `json:"customer,omitempty"`
	PromoCode        string                   `json:"promo_code,omitempty"`
	SubtotalCents    int                      `json:"subtotal_cents"`
	DiscountCents    int                      `json:"discount_cents"`
	TotalCents       int                      `json:"total_cents"`
	ConfirmationCode string                   `json:"confirmation_code,omitempty"`
}

// CheckoutService drives the four-step checkout wizard.  Prices come from
// the festival config.
type CheckoutService struct {
	store     *repository.Store
	schedule  *ScheduleService
	pricing   model.Pricing
	prefix    string
	loc       *time.Location
	publisher queue.Publisher
	metrics   *metrics.Metrics
	clock     Clock
}

func NewCheckoutService(store *repository.Store, schedule *ScheduleService, f *config.Festival,
	pub queue.Publisher, m *metrics.Metrics, clock Clock) *CheckoutService {
	return &CheckoutService{
		store:     store,
		schedule:  schedule,
		pricing:   PricingFrom(f),
		prefix:    f.Checkout.CodePrefix,
		loc:       f.Location(),
		publisher: pub,
		metrics:   m,
		clock:     clock,
	}
}

// PricingFrom converts the festival ticket prices to model.Pricing.
func PricingFrom(f *config.Festival) model.Pricing {
	p := model.Pricing{Prices: make(map[model.TicketKind]int, len(f.Checkout.Prices)), MaxPerKind: f.Checkout.MaxPerKind}
	for k, v := range f.Checkout.Prices {
		p.Prices[model.TicketKind(k)] = v
	}
	return p
}

// Start creates an order for the chosen showtime and moves it to ticket
// selection.
func (s *CheckoutService) Start(ctx context.Context, clientID string, in StartInput) (*OrderView, error) {
	if in.MovieID <= 0 || strings.TrimSpace(in.MovieTitle) == "" {
		return nil, fmt.Errorf("%w: movie is required", model.ErrInvalid)
	}
	dates := s.schedule.Dates()
	if in.Day < 0 || in.Day >= len(dates) {
		return nil, fmt.Errorf("%w: day must be between 0 and %d", model.ErrInvalid, len(dates)-1)
	}
	if !s.schedule.hasShowTime(in.Time) {
		return nil, fmt.Errorf("%w: unknown show time %q", model.ErrInvalid, in.Time)
	}
	venue, err := s.schedule.ResolveVenue(in.VenueID)
	if err != nil {
		return nil, err
	}

	now := s.clock.now().Unix()
	o := model.NewOrder(utils.NewID(), clientID, now)
	if err := o.Select(model.Selection{
		MovieID:    in.MovieID,
		MovieTitle: strings.TrimSpace(in.MovieTitle),
		PosterPath: in.PosterPath,
		Date:       dates[in.Day].ISO,
		Time:       in.Time,
		VenueID:    venue.ID,
		VenueName:  venue.Name,
	}, now); err != nil {
		return nil, err
	}
	if err := s.store.Orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return s.view(o), nil
}

func (s *CheckoutService) Get(ctx context.Context, clientID, orderID string) (*OrderView, error) {
	o, err := s.store.Orders.Get(ctx, orderID, clientID)
	if err != nil {
		return nil, err
	}
	return s.view(o), nil
}

func (s *CheckoutService) AdjustTickets(ctx context.Context, clientID, orderID string, kind model.TicketKind, delta int) (*OrderView, error) {
	return s.mutate(ctx, clientID, orderID, func(o *model.Order, now int64) error {
		return o.Adjust(kind, delta, s.pricing, now)
	})
}

func (s *CheckoutService) SetTickets(ctx context.Context, clientID, orderID string, counts map[model.TicketKind]int) (*OrderView, error) {
	return s.mutate(ctx, clientID, orderID, func(o *model.Order, now int64) error {
		return o.SetCounts(counts, s.pricing, now)
	})
}

func (s *CheckoutService) Proceed(ctx context.Context, clientID, orderID string) (*OrderView, error) {
	return s.mutate(ctx, clientID, orderID, func(o *model.Order, now int64) error { return o.Proceed(now) })
}

func (s *CheckoutService) Back(ctx context.Context, clientID, orderID string) (*OrderView, error) {
	return s.mutate(ctx, clientID, orderID, func(o *model.Order, now int64) error { return o.Back(now) })
}

func (s *CheckoutService) Reset(ctx context.Context, clientID, orderID string) (*OrderView, error) {
	return s.mutate(ctx, clientID, orderID, func(o *model.Order, now int64) error {
		o.Reset(now)
		return nil
	})
}

// Complete confirms the order.  A promo code is checked against the
// subtotal and redeemed in the same transaction as the order update.
func (s *CheckoutService) Complete(ctx context.Context, clientID, orderID string, in CompleteInput) (*OrderView, error) {
	now := s.clock.now()
	o, err := s.store.Orders.Get(ctx, orderID, clientID)
	if err != nil {
		return nil, err
	}
	if o.State != model.StateCheckout {
		return nil, model.ErrInvalidTransition
	}

	var (
		promo    *model.PromoCode
		discount int
	)
	if code := model.NormalizeCode(in.PromoCode); code != "" {
		promo, err = s.store.Promos.GetByCode(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.CountOrder("promo_rejected")
			return nil, ErrPromoNotFound
		}
		if err != nil {
			return nil, err
		}
		discount, err = promo.Discount(o.SubtotalCents, now.In(s.loc))
		if err != nil {
			s.metrics.CountOrder("promo_rejected")
			return nil, err
		}
	}

	code, err := utils.ConfirmationCode(s.prefix)
	if err != nil {
		return nil, err
	}
	promoCode := ""
	if promo != nil {
		promoCode = promo.Code
	}
	if err := o.Complete(in.Customer, promoCode, discount, code, now.Unix()); err != nil {
		return nil, err
	}

	err = s.store.InTx(ctx, func(tx *repository.Store) error {
		if err := tx.Orders.Update(ctx, o, model.StateCheckout); err != nil {
			return err
		}
		if promo != nil {
			if err := tx.Promos.Redeem(ctx, promo.ID, now.Unix()); err != nil {
				return err
			}
		}
		tickets := o.TotalTickets()
		recordActivity(ctx, tx.Activity, "New ticket purchase",
			fmt.Sprintf("%s - %d %s", o.MovieTitle, tickets, plural(tickets, "ticket")), model.ActivityTicket, now)
		return tx.Notifications.Create(ctx, &model.Notification{
			ID:        utils.NewID(),
			Title:     "Tickets Confirmed",
			Message:   fmt.Sprintf("Your tickets for %q on %s are confirmed!", o.MovieTitle, shortDate(o.ShowDate)),
			Type:      model.NotifyTicket,
			CreatedAt: now.Unix(),
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrPromoUnavailable) {
			s.metrics.CountOrder("promo_rejected")
			return nil, model.ErrPromoDepleted
		}
		if errors.Is(err, repository.ErrStaleOrder) {
			return nil, model.ErrInvalidTransition
		}
		s.metrics.CountOrder("error")
		return nil, err
	}
	s.metrics.CountOrder("confirmed")

	ev := queue.OrderConfirmedEvent{
		OrderID:          o.ID,
		ConfirmationCode: o.ConfirmationCode,
		MovieTitle:       o.MovieTitle,
		Date:             o.ShowDate,
		Time:             o.ShowTime,
		Venue:            o.VenueName,
		Tickets:          make(map[string]int, len(model.TicketKinds)),
		TotalCents:       o.TotalCents,
		CustomerEmail:    o.CustomerEmail,
		ConfirmedAt:      now.UTC().Format(time.RFC3339),
	}
	for k, n := range o.Counts() {
		ev.Tickets[string(k)] = n
	}
	if err := s.publisher.Publish(ctx, queue.TopicOrderConfirmed, ev); err != nil {
		logger.Warn("publish order.confirmed failed", zap.String("order_id", o.ID), zap.Error(err))
	}
	return s.view(o), nil
}

// SweepStale deletes unconfirmed orders idle for longer than ttl.
func (s *CheckoutService) SweepStale(ctx context.Context, ttl time.Duration) (int64, error) {
	return s.store.Orders.DeleteStaleUnconfirmed(ctx, s.clock.now().Add(-ttl).Unix())
}

func (s *CheckoutService) mutate(ctx context.Context, clientID, orderID string, fn func(*model.Order, int64) error) (*OrderView, error) {
	o, err := s.store.Orders.Get(ctx, orderID, clientID)
	if err != nil {
		return nil, err
	}
	prev := o.State
	if err := fn(o, s.clock.now().Unix()); err != nil {
		return nil, err
	}
	if err := s.store.Orders.Update(ctx, o, prev); err != nil {
		if errors.Is(err, repository.ErrStaleOrder) {
			return nil, model.ErrInvalidTransition
		}
		return nil, err
	}
	return s.view(o), nil
}

func (s *CheckoutService) view(o *model.Order) *OrderView {
	v := &OrderView{
		ID:               o.ID,
		State:            o.State,
		Tickets:          o.Counts(),
		TotalTickets:     o.TotalTickets(),
		Prices:           s.pricing.Prices,
		MaxPerKind:       s.pricing.MaxPerKind,
		PromoCode:        o.PromoCode,
		SubtotalCents:    o.SubtotalCents,
		DiscountCents:    o.DiscountCents,
		TotalCents:       o.TotalCents,
		ConfirmationCode: o.ConfirmationCode,
	}
	if o.State != model.StateBrowse {
		sel := o.Selection()
		v.Selection = &sel
	}
	if o.State == model.StateConfirmation {
		c := o.Customer()
		v.Customer = &c
	}
	return v
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// shortDate renders 2025-11-14 as "Nov 14".
func shortDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2")
}
