package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/laiff-festival/internal/database"
	"github.com/iliyamo/laiff-festival/internal/model"
)

const ticketColumns = `id, name, description, base_price_cents, discount_percent, final_price_cents,
	availability, status, max_per_order, requires_id, created_at, updated_at`

// TicketTypeRepo manages persistence for admission categories.
type TicketTypeRepo struct {
	q sqlx.ExtContext
}

func (r *TicketTypeRepo) Create(ctx context.Context, t *model.TicketType) error {
	_, err := sqlx.NamedExecContext(ctx, r.q, database.InsertTicketType, t)
	return writeErr(err)
}

func (r *TicketTypeRepo) GetByID(ctx context.Context, id string) (*model.TicketType, error) {
	var t model.TicketType
	err := sqlx.GetContext(ctx, r.q, &t, r.q.Rebind(`SELECT `+ticketColumns+` FROM ticket_types WHERE id = ?`), id)
	if err != nil {
		return nil, getErr(err)
	}
	return &t, nil
}

// List returns every ticket type in creation order.
func (r *TicketTypeRepo) List(ctx context.Context) ([]model.TicketType, error) {
	out := []model.TicketType{}
	err := sqlx.SelectContext(ctx, r.q, &out, `SELECT `+ticketColumns+` FROM ticket_types ORDER BY created_at, name`)
	return out, err
}

func (r *TicketTypeRepo) Update(ctx context.Context, t *model.TicketType) error {
	const q = `UPDATE ticket_types SET name = :name, description = :description,
		base_price_cents = :base_price_cents, discount_percent = :discount_percent,
		final_price_cents = :final_price_cents, availability = :availability, status = :status,
		max_per_order = :max_per_order, requires_id = :requires_id, updated_at = :updated_at
		WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, r.q, q, t)
	if err != nil {
		return writeErr(err)
	}
	return checkAffected(ctx, r.q, res, "ticket_types", t.ID)
}

func (r *TicketTypeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM ticket_types WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return checkDeleted(res)
}
