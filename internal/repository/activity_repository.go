package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/laiff-festival/internal/database"
	"github.com/iliyamo/laiff-festival/internal/model"
)

// ActivityRepo stores the admin dashboard feed.
type ActivityRepo struct {
	q sqlx.ExtContext
}

func (r *ActivityRepo) Create(ctx context.Context, a *model.Activity) error {
	_, err := sqlx.NamedExecContext(ctx, r.q, database.InsertActivity, a)
	return writeErr(err)
}

// Recent returns up to limit entries, newest first.
func (r *ActivityRepo) Recent(ctx context.Context, limit int) ([]model.Activity, error) {
	out := []model.Activity{}
	err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(`SELECT id, action, detail, activity_type, created_at
		FROM activity ORDER BY created_at DESC, id LIMIT ?`), limit)
	return out, err
}
