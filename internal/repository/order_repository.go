package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/laiff-festival/internal/database"
	"github.com/iliyamo/laiff-festival/internal/model"
)

const orderColumns = `id, client_id, state, movie_id, movie_title, poster_path, show_date, show_time,
	venue_id, venue_name, adult, senior, student, child, customer_name, customer_email, customer_phone,
	promo_code, subtotal_cents, discount_cents, total_cents, confirmation_code, created_at, updated_at`

// OrderRepo persists checkout wizard orders.  Every read is scoped to the
// owning client.
type OrderRepo struct {
	q sqlx.ExtContext
}

func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	_, err := sqlx.NamedExecContext(ctx, r.q, database.InsertOrder, o)
	return writeErr(err)
}

// Get returns ErrNotFound when the order does not exist or belongs to a
// different client.
func (r *OrderRepo) Get(ctx context.Context, id, clientID string) (*model.Order, error) {
	var o model.Order
	err := sqlx.GetContext(ctx, r.q, &o,
		r.q.Rebind(`SELECT `+orderColumns+` FROM orders WHERE id = ? AND client_id = ?`), id, clientID)
	if err != nil {
		return nil, getErr(err)
	}
	return &o, nil
}

// Update writes the full wizard state of o, provided the stored order is
// still in state prev.  ErrStaleOrder means another request moved the
// order first.
func (r *OrderRepo) Update(ctx context.Context, o *model.Order, prev model.OrderState) error {
	const q = `UPDATE orders SET state = :state, movie_id = :movie_id, movie_title = :movie_title,
		poster_path = :poster_path, show_date = :show_date, show_time = :show_time, venue_id = :venue_id,
		venue_name = :venue_name, adult = :adult, senior = :senior, student = :student, child = :child,
		customer_name = :customer_name, customer_email = :customer_email, customer_phone = :customer_phone,
		promo_code = :promo_code, subtotal_cents = :subtotal_cents, discount_cents = :discount_cents,
		total_cents = :total_cents, confirmation_code = :confirmation_code, updated_at = :updated_at
		WHERE id = :id AND client_id = :client_id AND state = :prev_state`
	arg := struct {
		model.Order
		PrevState model.OrderState `db:"prev_state"`
	}{Order: *o, PrevState: prev}
	res, err := sqlx.NamedExecContext(ctx, r.q, q, arg)
	if err != nil {
		return writeErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	// MySQL reports zero rows when nothing changed, so look at what is stored.
	var states []model.OrderState
	err = sqlx.SelectContext(ctx, r.q, &states,
		r.q.Rebind(`SELECT state FROM orders WHERE id = ? AND client_id = ?`), o.ID, o.ClientID)
	if err != nil {
		return err
	}
	switch {
	case len(states) == 0:
		return ErrNotFound
	case states[0] != prev:
		return ErrStaleOrder
	}
	return nil
}

// DeleteStaleUnconfirmed removes orders that were abandoned before
// confirmation and last touched before the unix time `before`.
func (r *OrderRepo) DeleteStaleUnconfirmed(ctx context.Context, before int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM orders WHERE state <> ? AND updated_at < ?`),
		model.StateConfirmation, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ConfirmedTicketCount sums the tickets of every confirmed order.
func (r *OrderRepo) ConfirmedTicketCount(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.q, &n, r.q.Rebind(`SELECT COALESCE(SUM(adult + senior + student + child), 0)
		FROM orders WHERE state = ?`), model.StateConfirmation)
	return n, err
}
