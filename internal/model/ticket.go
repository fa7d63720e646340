package model

import (
	"fmt"
	"math"
	"strings"
)

type TicketAvailability string

const (
	AvailableAll      TicketAvailability = "all"
	AvailableMembers  TicketAvailability = "members"
	AvailableFestival TicketAvailability = "festival"
)

type TicketStatus string

const (
	TicketActive   TicketStatus = "active"
	TicketInactive TicketStatus = "inactive"
)

// TicketType is a sellable admission category such as Adult or Student.
// FinalPriceCents is derived from the base price and discount and is
// never taken from input.
type TicketType struct {
	ID              string             `db:"id" json:"id"`
	Name            string             `db:"name" json:"name"`
	Description     string             `db:"description" json:"description"`
	BasePriceCents  int                `db:"base_price_cents" json:"base_price_cents"`
	DiscountPercent int                `db:"discount_percent" json:"discount_percent"`
	FinalPriceCents int                `db:"final_price_cents" json:"final_price_cents"`
	Availability    TicketAvailability `db:"availability" json:"availability"`
	Status          TicketStatus       `db:"status" json:"status"`
	MaxPerOrder     int                `db:"max_per_order" json:"max_per_order"`
	RequiresID      bool               `db:"requires_id" json:"requires_id"`
	CreatedAt       int64              `db:"created_at" json:"created_at"`
	UpdatedAt       int64              `db:"updated_at" json:"updated_at"`
}

// FinalPrice applies a percentage discount to a base price, rounding to
// the nearest cent.
func FinalPrice(baseCents, discountPercent int) int {
	return int(math.Round(float64(baseCents) * (1 - float64(discountPercent)/100)))
}

// Recompute refreshes FinalPriceCents from the base price and discount.
func (t *TicketType) Recompute() {
	t.FinalPriceCents = FinalPrice(t.BasePriceCents, t.DiscountPercent)
}

// Validate checks ranges and enums, then recomputes the final price.
func (t *TicketType) Validate() error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if t.BasePriceCents < 0 {
		return fmt.Errorf("%w: base price must not be negative", ErrInvalid)
	}
	if t.DiscountPercent < 0 || t.DiscountPercent > 100 {
		return fmt.Errorf("%w: discount must be between 0 and 100", ErrInvalid)
	}
	if t.MaxPerOrder < 1 {
		return fmt.Errorf("%w: max per order must be at least 1", ErrInvalid)
	}
	switch t.Availability {
	case AvailableAll, AvailableMembers, AvailableFestival:
	default:
		return fmt.Errorf("%w: unknown availability %q", ErrInvalid, t.Availability)
	}
	switch t.Status {
	case TicketActive, TicketInactive:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, t.Status)
	}
	t.Recompute()
	return nil
}
