package model

import "errors"

// Checkout wizard errors.
var (
	// ErrInvalidTransition is returned when an operation is not allowed in
	// the order's current state.  Handlers map it to 409.
	ErrInvalidTransition = errors.New("invalid checkout transition")
	// ErrNoTickets is returned when proceeding to checkout with zero tickets.
	ErrNoTickets = errors.New("select at least one ticket")
	// ErrInvalidTicketKind is returned for a ticket kind that has no price.
	ErrInvalidTicketKind = errors.New("unknown ticket kind")
	// ErrCustomerRequired is returned when name or email is blank.
	ErrCustomerRequired = errors.New("name and email are required")
)

// Promo code errors.
var (
	ErrPromoExpired    = errors.New("promo code has expired")
	ErrPromoDepleted   = errors.New("promo code usage limit reached")
	ErrPromoNotStarted = errors.New("promo code is not valid yet")
)

// ErrInvalid wraps field level validation failures on domain records.
var ErrInvalid = errors.New("invalid record")
