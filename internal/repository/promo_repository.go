package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/laiff-festival/internal/database"
	"github.com/iliyamo/laiff-festival/internal/model"
)

const promoColumns = `id, code, discount_type, discount_value, usage_limit, usage_count, valid_from,
	valid_until, status, created_at, updated_at`

// PromoRepo manages persistence for promo codes.  Codes are unique and
// stored upper case.
type PromoRepo struct {
	q sqlx.ExtContext
}

// Create returns ErrConflict when the code already exists.
func (r *PromoRepo) Create(ctx context.Context, p *model.PromoCode) error {
	_, err := sqlx.NamedExecContext(ctx, r.q, database.InsertPromoCode, p)
	return writeErr(err)
}

func (r *PromoRepo) GetByID(ctx context.Context, id string) (*model.PromoCode, error) {
	var p model.PromoCode
	err := sqlx.GetContext(ctx, r.q, &p, r.q.Rebind(`SELECT `+promoColumns+` FROM promo_codes WHERE id = ?`), id)
	if err != nil {
		return nil, getErr(err)
	}
	return &p, nil
}

// GetByCode looks a code up case-insensitively.
func (r *PromoRepo) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	var p model.PromoCode
	err := sqlx.GetContext(ctx, r.q, &p, r.q.Rebind(`SELECT `+promoColumns+` FROM promo_codes WHERE code = ?`),
		model.NormalizeCode(code))
	if err != nil {
		return nil, getErr(err)
	}
	return &p, nil
}

func (r *PromoRepo) List(ctx context.Context) ([]model.PromoCode, error) {
	out := []model.PromoCode{}
	err := sqlx.SelectContext(ctx, r.q, &out, `SELECT `+promoColumns+` FROM promo_codes ORDER BY created_at, code`)
	return out, err
}

// Update writes every column but usage_count, which only Redeem moves.
func (r *PromoRepo) Update(ctx context.Context, p *model.PromoCode) error {
	const q = `UPDATE promo_codes SET code = :code, discount_type = :discount_type,
		discount_value = :discount_value, usage_limit = :usage_limit, valid_from = :valid_from,
		valid_until = :valid_until, status = :status, updated_at = :updated_at
		WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, r.q, q, p)
	if err != nil {
		return writeErr(err)
	}
	return checkAffected(ctx, r.q, res, "promo_codes", p.ID)
}

func (r *PromoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM promo_codes WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return checkDeleted(res)
}

// Redeem consumes one use of an active code in a single statement, so two
// checkouts racing for the last use cannot both succeed.  The code flips
// to depleted when the use reaches its limit.  The status assignment comes
// first because MySQL evaluates SET clauses left to right.
func (r *PromoRepo) Redeem(ctx context.Context, id string, now int64) error {
	const q = `UPDATE promo_codes SET
		status = CASE WHEN usage_limit > 0 AND usage_count + 1 >= usage_limit THEN 'depleted' ELSE status END,
		usage_count = usage_count + 1,
		updated_at = ?
		WHERE id = ? AND status = 'active' AND (usage_limit = 0 OR usage_count < usage_limit)`
	res, err := r.q.ExecContext(ctx, r.q.Rebind(q), now, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPromoUnavailable
	}
	return nil
}
