package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/laiff-festival/internal/database"
	"github.com/iliyamo/laiff-festival/internal/model"
)

// NotificationRepo manages the notification center entries.
type NotificationRepo struct {
	q sqlx.ExtContext
}

func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	_, err := sqlx.NamedExecContext(ctx, r.q, database.InsertNotification, n)
	return writeErr(err)
}

// List returns every notification, newest first.
func (r *NotificationRepo) List(ctx context.Context) ([]model.Notification, error) {
	out := []model.Notification{}
	err := sqlx.SelectContext(ctx, r.q, &out,
		`SELECT id, title, message, notif_type, is_read, created_at FROM notifications ORDER BY created_at DESC, id`)
	return out, err
}

// MarkRead flags one notification as read.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE notifications SET is_read = ? WHERE id = ?`), true, id)
	if err != nil {
		return err
	}
	return checkAffected(ctx, r.q, res, "notifications", id)
}

// MarkAllRead flags every notification as read and reports how many changed.
func (r *NotificationRepo) MarkAllRead(ctx context.Context) (int64, error) {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE notifications SET is_read = ? WHERE is_read = ?`), true, false)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *NotificationRepo) UnreadCount(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.q, &n, r.q.Rebind(`SELECT COUNT(*) FROM notifications WHERE is_read = ?`), false)
	return n, err
}
