package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/laiff-festival/internal/database"
	"github.com/iliyamo/laiff-festival/internal/model"
)

// BroadcastRepo stores sent broadcasts.
type BroadcastRepo struct {
	q sqlx.ExtContext
}

func (r *BroadcastRepo) Create(ctx context.Context, b *model.Broadcast) error {
	_, err := sqlx.NamedExecContext(ctx, r.q, database.InsertBroadcast, b)
	return writeErr(err)
}

// Recent returns up to limit broadcasts, newest first.
func (r *BroadcastRepo) Recent(ctx context.Context, limit int) ([]model.Broadcast, error) {
	out := []model.Broadcast{}
	err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(`SELECT id, title, message, audience_id, audience_name,
		delivery, recipients, open_rate, sent_at FROM broadcasts ORDER BY sent_at DESC, id LIMIT ?`), limit)
	return out, err
}
