package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

type PromoStatus string

const (
	PromoActive   PromoStatus = "active"
	PromoExpired  PromoStatus = "expired"
	PromoDepleted PromoStatus = "depleted"
)

const dateLayout = "2006-01-02"

// PromoCode is a checkout discount.  DiscountValue holds percent points
// for percent codes and cents for fixed codes.  UsageLimit 0 means no
// limit.  ValidFrom and ValidUntil are inclusive calendar dates; either
// may be empty for an open range.
type PromoCode struct {
	ID            string       `db:"id" json:"id"`
	Code          string       `db:"code" json:"code"`
	DiscountType  DiscountType `db:"discount_type" json:"discount_type"`
	DiscountValue int          `db:"discount_value" json:"discount_value"`
	UsageLimit    int          `db:"usage_limit" json:"usage_limit"`
	UsageCount    int          `db:"usage_count" json:"usage_count"`
	ValidFrom     string       `db:"valid_from" json:"valid_from"`
	ValidUntil    string       `db:"valid_until" json:"valid_until"`
	Status        PromoStatus  `db:"status" json:"status"`
	CreatedAt     int64        `db:"created_at" json:"created_at"`
	UpdatedAt     int64        `db:"updated_at" json:"updated_at"`
}

// NormalizeCode upper-cases and trims a code for storage and lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks the code fields.  It does not touch UsageCount.
func (p *PromoCode) Validate() error {
	p.Code = NormalizeCode(p.Code)
	if p.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalid)
	}
	switch p.DiscountType {
	case DiscountPercent:
		if p.DiscountValue < 1 || p.DiscountValue > 100 {
			return fmt.Errorf("%w: percent discount must be between 1 and 100", ErrInvalid)
		}
	case DiscountFixed:
		if p.DiscountValue < 1 {
			return fmt.Errorf("%w: fixed discount must be positive", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown discount type %q", ErrInvalid, p.DiscountType)
	}
	if p.UsageLimit < 0 {
		return fmt.Errorf("%w: usage limit must not be negative", ErrInvalid)
	}
	for _, d := range []string{p.ValidFrom, p.ValidUntil} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrInvalid)
		}
	}
	if p.ValidFrom != "" && p.ValidUntil != "" && p.ValidFrom > p.ValidUntil {
		return fmt.Errorf("%w: valid_from is after valid_until", ErrInvalid)
	}
	switch p.Status {
	case PromoActive, PromoExpired, PromoDepleted:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, p.Status)
	}
	return nil
}

// EffectiveStatus derives the status as of now.  A stored status other
// than active wins; otherwise an exhausted limit reads as depleted and a
// passed end date as expired.
func (p PromoCode) EffectiveStatus(now time.Time) PromoStatus {
	if p.Status != PromoActive {
		return p.Status
	}
	if p.UsageLimit > 0 && p.UsageCount >= p.UsageLimit {
		return PromoDepleted
	}
	if p.ValidUntil != "" && now.Format(dateLayout) > p.ValidUntil {
		return PromoExpired
	}
	return PromoActive
}

// Discount returns the discount in cents for a subtotal, or the reason the
// code cannot be used now.  The discount never exceeds the subtotal.
func (p PromoCode) Discount(subtotalCents int, now time.Time) (int, error) {
	switch p.EffectiveStatus(now) {
	case PromoDepleted:
		return 0, ErrPromoDepleted
	case PromoExpired:
		return 0, ErrPromoExpired
	}
	if p.ValidFrom != "" && now.Format(dateLayout) < p.ValidFrom {
		return 0, ErrPromoNotStarted
	}
	var d int
	if p.DiscountType == DiscountPercent {
		d = int(math.Round(float64(subtotalCents) * float64(p.DiscountValue) / 100))
	} else {
		d = p.DiscountValue
	}
	if d > subtotalCents {
		d = subtotalCents
	}
	return d, nil
}
