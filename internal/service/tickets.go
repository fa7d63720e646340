package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/laiff-festival/internal/config"
	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/repository"
	"github.com/iliyamo/laiff-festival/internal/utils"
)

// PromoView adds the derived status to a stored promo code.
type PromoView struct {
	model.PromoCode
	EffectiveStatus model.PromoStatus `json:"effective_status"`
}

// PromoCheck is the result of previewing a code against a subtotal.
type PromoCheck struct {
	Code          string `json:"code"`
	Valid         bool   `json:"valid"`
	Reason        string `json:"reason,omitempty"`
	SubtotalCents int    `json:"subtotal_cents"`
	DiscountCents int    `json:"discount_cents"`
	TotalCents    int    `json:"total_cents"`
}

// TicketService manages ticket types and promo codes.
type TicketService struct {
	store    *repository.Store
	festival *config.Festival
	clock    Clock
}

func NewTicketService(store *repository.Store, f *config.Festival, clock Clock) *TicketService {
	return &TicketService{store: store, festival: f, clock: clock}
}

func (s *TicketService) ListTypes(ctx context.Context) ([]model.TicketType, error) {
	return s.store.Tickets.List(ctx)
}

func (s *TicketService) GetType(ctx context.Context, id string) (*model.TicketType, error) {
	return s.store.Tickets.GetByID(ctx, id)
}

func (s *TicketService) CreateType(ctx context.Context, t *model.TicketType) (*model.TicketType, error) {
	if t.Availability == "" {
		t.Availability = model.AvailableAll
	}
	if t.Status == "" {
		t.Status = model.TicketActive
	}
	if t.MaxPerOrder == 0 {
		t.MaxPerOrder = 10
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	now := s.clock.now().Unix()
	t.ID = utils.NewID()
	t.CreatedAt, t.UpdatedAt = now, now
	if err := s.store.Tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketService) UpdateType(ctx context.Context, id string, t *model.TicketType) (*model.TicketType, error) {
	cur, err := s.store.Tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.ID = cur.ID
	t.CreatedAt = cur.CreatedAt
	t.UpdatedAt = s.clock.now().Unix()
	if err := s.store.Tickets.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketService) DeleteType(ctx context.Context, id string) error {
	return s.store.Tickets.Delete(ctx, id)
}

func (s *TicketService) ListPromos(ctx context.Context) ([]PromoView, error) {
	items, err := s.store.Promos.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.now().In(s.festival.Location())
	out := make([]PromoView, 0, len(items))
	for _, p := range items {
		out = append(out, PromoView{PromoCode: p, EffectiveStatus: p.EffectiveStatus(now)})
	}
	return out, nil
}

func (s *TicketService) GetPromo(ctx context.Context, id string) (*PromoView, error) {
	p, err := s.store.Promos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.promoView(p), nil
}

// CreatePromo stores a new code.  Usage always starts at zero.
func (s *TicketService) CreatePromo(ctx context.Context, p *model.PromoCode) (*PromoView, error) {
	if p.Status == "" {
		p.Status = model.PromoActive
	}
	p.UsageCount = 0
	if err := p.Validate(); err != nil {
		return nil, err
	}
	now := s.clock.now().Unix()
	p.ID = utils.NewID()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := s.store.Promos.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.promoView(p), nil
}

// UpdatePromo replaces the editable fields.  The stored usage count is
// kept.
func (s *TicketService) UpdatePromo(ctx context.Context, id string, p *model.PromoCode) (*PromoView, error) {
	cur, err := s.store.Promos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == "" {
		p.Status = cur.Status
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.ID = cur.ID
	p.UsageCount = cur.UsageCount
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = s.clock.now().Unix()
	if err := s.store.Promos.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.promoView(p), nil
}

func (s *TicketService) DeletePromo(ctx context.Context, id string) error {
	return s.store.Promos.Delete(ctx, id)
}

// ValidatePromo previews a code against a subtotal without redeeming it.
// An unknown code returns ErrPromoNotFound; an unusable one a check with
// Valid false and the reason.
func (s *TicketService) ValidatePromo(ctx context.Context, code string, subtotalCents int) (*PromoCheck, error) {
	if subtotalCents < 0 {
		return nil, fmt.Errorf("%w: subtotal must not be negative", model.ErrInvalid)
	}
	p, err := s.store.Promos.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPromoNotFound
	}
	if err != nil {
		return nil, err
	}
	out := &PromoCheck{Code: p.Code, SubtotalCents: subtotalCents, TotalCents: subtotalCents}
	d, err := p.Discount(subtotalCents, s.clock.now().In(s.festival.Location()))
	if err != nil {
		out.Reason = err.Error()
		return out, nil
	}
	out.Valid = true
	out.DiscountCents = d
	out.TotalCents = subtotalCents - d
	return out, nil
}

func (s *TicketService) promoView(p *model.PromoCode) *PromoView {
	return &PromoView{PromoCode: *p, EffectiveStatus: p.EffectiveStatus(s.clock.now().In(s.festival.Location()))}
}
