package model

import "strings"

// OrderState is a step of the checkout wizard.  The happy path is linear:
// browse -> select -> checkout -> confirmation.
type OrderState string

const (
	StateBrowse       OrderState = "browse"
	StateSelect       OrderState = "select"
	StateCheckout     OrderState = "checkout"
	StateConfirmation OrderState = "confirmation"
)

// TicketKind is a checkout admission category.
type TicketKind string

const (
	KindAdult   TicketKind = "adult"
	KindSenior  TicketKind = "senior"
	KindStudent TicketKind = "student"
	KindChild   TicketKind = "child"
)

// TicketKinds is the display order of the checkout ticket kinds.
var TicketKinds = []TicketKind{KindAdult, KindSenior, KindStudent, KindChild}

// Pricing carries the per-kind prices in cents and the per-kind cap.
type Pricing struct {
	Prices     map[TicketKind]int
	MaxPerKind int
}

// Price returns the price for kind, or ErrInvalidTicketKind.
func (p Pricing) Price(kind TicketKind) (int, error) {
	v, ok := p.Prices[kind]
	if !ok {
		return 0, ErrInvalidTicketKind
	}
	return v, nil
}

func (p Pricing) clamp(n int) int {
	if n < 0 {
		return 0
	}
	if p.MaxPerKind > 0 && n > p.MaxPerKind {
		return p.MaxPerKind
	}
	return n
}

// Selection is the showtime a customer picked while browsing.
type Selection struct {
	MovieID    int64  `json:"movie_id"`
	MovieTitle string `json:"movie_title"`
	PosterPath string `json:"poster_path"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	VenueID    string `json:"venue_id"`
	VenueName  string `json:"venue_name"`
}

// Customer is the contact captured at checkout.  Phone is optional.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Order is one run through the checkout wizard.  It is owned by the
// client that started it.
type Order struct {
	ID       string     `db:"id"`
	ClientID string     `db:"client_id"`
	State    OrderState `db:"state"`

	MovieID    int64  `db:"movie_id"`
	MovieTitle string `db:"movie_title"`
	PosterPath string `db:"poster_path"`
	ShowDate   string `db:"show_date"`
	ShowTime   string `db:"show_time"`
	VenueID    string `db:"venue_id"`
	VenueName  string `db:"venue_name"`

	Adult   int `db:"adult"`
	Senior  int `db:"senior"`
	Student int `db:"student"`
	Child   int `db:"child"`

	CustomerName  string `db:"customer_name"`
	CustomerEmail string `db:"customer_email"`
	CustomerPhone string `db:"customer_phone"`

	PromoCode        string `db:"promo_code"`
	SubtotalCents    int    `db:"subtotal_cents"`
	DiscountCents    int    `db:"discount_cents"`
	TotalCents       int    `db:"total_cents"`
	ConfirmationCode string `db:"confirmation_code"`

	CreatedAt int64 `db:"created_at"`
	UpdatedAt int64 `db:"updated_at"`
}

// NewOrder starts an empty order in the browse state.
func NewOrder(id, clientID string, now int64) *Order {
	return &Order{ID: id, ClientID: clientID, State: StateBrowse, CreatedAt: now, UpdatedAt: now}
}

// Selection returns the chosen showtime.
func (o *Order) Selection() Selection {
	return Selection{
		MovieID:    o.MovieID,
		MovieTitle: o.MovieTitle,
		PosterPath: o.PosterPath,
		Date:       o.ShowDate,
		Time:       o.ShowTime,
		VenueID:    o.VenueID,
		VenueName:  o.VenueName,
	}
}

// Customer returns the captured contact.
func (o *Order) Customer() Customer {
	return Customer{Name: o.CustomerName, Email: o.CustomerEmail, Phone: o.CustomerPhone}
}

// Count returns the tickets of one kind.
func (o *Order) Count(kind TicketKind) int {
	switch kind {
	case KindAdult:
		return o.Adult
	case KindSenior:
		return o.Senior
	case KindStudent:
		return o.Student
	case KindChild:
		return o.Child
	}
	return 0
}

func (o *Order) setCount(kind TicketKind, n int) {
	switch kind {
	case KindAdult:
		o.Adult = n
	case KindSenior:
		o.Senior = n
	case KindStudent:
		o.Student = n
	case KindChild:
		o.Child = n
	}
}

// Counts returns the ticket counts keyed by kind.
func (o *Order) Counts() map[TicketKind]int {
	out := make(map[TicketKind]int, len(TicketKinds))
	for _, k := range TicketKinds {
		out[k] = o.Count(k)
	}
	return out
}

// TotalTickets sums all kinds.
func (o *Order) TotalTickets() int {
	return o.Adult + o.Senior + o.Student + o.Child
}

// Select records the chosen showtime and moves browse -> select.
func (o *Order) Select(sel Selection, now int64) error {
	if o.State != StateBrowse {
		return ErrInvalidTransition
	}
	o.MovieID = sel.MovieID
	o.MovieTitle = sel.MovieTitle
	o.PosterPath = sel.PosterPath
	o.ShowDate = sel.Date
	o.ShowTime = sel.Time
	o.VenueID = sel.VenueID
	o.VenueName = sel.VenueName
	o.State = StateSelect
	o.UpdatedAt = now
	return nil
}

// Adjust adds delta to one kind, clamping the result to 0..MaxPerKind.
// Only allowed while selecting tickets.
func (o *Order) Adjust(kind TicketKind, delta int, p Pricing, now int64) error {
	if o.State != StateSelect {
		return ErrInvalidTransition
	}
	if _, err := p.Price(kind); err != nil {
		return err
	}
	o.setCount(kind, p.clamp(o.Count(kind)+delta))
	o.reprice(p)
	o.UpdatedAt = now
	return nil
}

// SetCounts replaces the counts of the given kinds, clamping each.
func (o *Order) SetCounts(counts map[TicketKind]int, p Pricing, now int64) error {
	if o.State != StateSelect {
		return ErrInvalidTransition
	}
	for kind := range counts {
		if _, err := p.Price(kind); err != nil {
			return err
		}
	}
	for kind, n := range counts {
		o.setCount(kind, p.clamp(n))
	}
	o.reprice(p)
	o.UpdatedAt = now
	return nil
}

// Proceed moves select -> checkout once at least one ticket is chosen.
func (o *Order) Proceed(now int64) error {
	if o.State != StateSelect {
		return ErrInvalidTransition
	}
	if o.TotalTickets() == 0 {
		return ErrNoTickets
	}
	o.State = StateCheckout
	o.UpdatedAt = now
	return nil
}

// Back steps the wizard back one state.  Leaving select for browse drops
// the showtime and tickets.
func (o *Order) Back(now int64) error {
	switch o.State {
	case StateCheckout:
		o.State = StateSelect
	case StateSelect:
		o.clearSelection()
		o.State = StateBrowse
	default:
		return ErrInvalidTransition
	}
	o.UpdatedAt = now
	return nil
}

// Complete confirms the order: checkout -> confirmation.  The discount
// has already been checked against the promo code by the caller.
func (o *Order) Complete(c Customer, promoCode string, discountCents int, code string, now int64) error {
	if o.State != StateCheckout {
		return ErrInvalidTransition
	}
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	if c.Name == "" || c.Email == "" {
		return ErrCustomerRequired
	}
	o.CustomerName = c.Name
	o.CustomerEmail = c.Email
	o.CustomerPhone = strings.TrimSpace(c.Phone)
	o.PromoCode = promoCode
	o.DiscountCents = discountCents
	o.TotalCents = o.SubtotalCents - discountCents
	if o.TotalCents < 0 {
		o.TotalCents = 0
	}
	o.ConfirmationCode = code
	o.State = StateConfirmation
	o.UpdatedAt = now
	return nil
}

// Reset returns the order to browse from any state, clearing everything
// but its identity.
func (o *Order) Reset(now int64) {
	o.clearSelection()
	o.CustomerName, o.CustomerEmail, o.CustomerPhone = "", "", ""
	o.PromoCode = ""
	o.ConfirmationCode = ""
	o.State = StateBrowse
	o.UpdatedAt = now
}

func (o *Order) clearSelection() {
	o.MovieID = 0
	o.MovieTitle, o.PosterPath = "", ""
	o.ShowDate, o.ShowTime = "", ""
	o.VenueID, o.VenueName = "", ""
	o.Adult, o.Senior, o.Student, o.Child = 0, 0, 0, 0
	o.SubtotalCents, o.DiscountCents, o.TotalCents = 0, 0, 0
}

func (o *Order) reprice(p Pricing) {
	sub := 0
	for _, k := range TicketKinds {
		price, _ := p.Price(k)
		sub += o.Count(k) * price
	}
	o.SubtotalCents = sub
	o.DiscountCents = 0
	o.TotalCents = sub
}
