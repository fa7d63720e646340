package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store groups the repositories over one connection or transaction.
type Store struct {
	db *sqlx.DB

	Movies        *MovieRepo
	Showtimes     *ShowtimeRepo
	Tickets       *TicketTypeRepo
	Promos        *PromoRepo
	Events        *EventRepo
	Notifications *NotificationRepo
	Broadcasts    *BroadcastRepo
	Activity      *ActivityRepo
	Orders        *OrderRepo
}

// NewStore builds every repository on db.
func NewStore(db *sqlx.DB) *Store {
	s := bind(db)
	s.db = db
	return s
}

func bind(q sqlx.ExtContext) *Store {
	return &Store{
		Movies:        &MovieRepo{q: q},
		Showtimes:     &ShowtimeRepo{q: q},
		Tickets:       &TicketTypeRepo{q: q},
		Promos:        &PromoRepo{q: q},
		Events:        &EventRepo{q: q},
		Notifications: &NotificationRepo{q: q},
		Broadcasts:    &BroadcastRepo{q: q},
		Activity:      &ActivityRepo{q: q},
		Orders:        &OrderRepo{q: q},
	}
}

// DB exposes the underlying handle.
func (s *Store) DB() *sqlx.DB { return s.db }

// InTx runs fn with repositories bound to one transaction.  The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.db == nil {
		// already inside a transaction
		return fn(s)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(bind(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
