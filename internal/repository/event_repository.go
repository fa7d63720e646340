package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/laiff-festival/internal/database"
	"github.com/iliyamo/laiff-festival/internal/model"
)

const eventColumns = `id, title, description, category, event_date, event_time, venue, status, featured,
	created_at, updated_at`

// EventRepo manages persistence for festival events.
type EventRepo struct {
	q sqlx.ExtContext
}

func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	_, err := sqlx.NamedExecContext(ctx, r.q, database.InsertEvent, e)
	return writeErr(err)
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	err := sqlx.GetContext(ctx, r.q, &e, r.q.Rebind(`SELECT `+eventColumns+` FROM events WHERE id = ?`), id)
	if err != nil {
		return nil, getErr(err)
	}
	return &e, nil
}

// List returns the events matching q on title or description, sorted by
// date then time.
func (r *EventRepo) List(ctx context.Context, q string) ([]model.Event, error) {
	var all []model.Event
	if err := sqlx.SelectContext(ctx, r.q, &all, `SELECT `+eventColumns+` FROM events ORDER BY event_date, event_time, id`); err != nil {
		return nil, err
	}
	out := make([]model.Event, 0, len(all))
	for _, e := range all {
		if e.Matches(q) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Featured returns upcoming featured events, soonest first.
func (r *EventRepo) Featured(ctx context.Context) ([]model.Event, error) {
	out := []model.Event{}
	err := sqlx.SelectContext(ctx, r.q, &out, r.q.Rebind(`SELECT `+eventColumns+` FROM events
		WHERE featured = ? AND status = ? ORDER BY event_date, event_time, id`), true, model.EventUpcoming)
	return out, err
}

func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	const q = `UPDATE events SET title = :title, description = :description, category = :category,
		event_date = :event_date, event_time = :event_time, venue = :venue, status = :status,
		featured = :featured, updated_at = :updated_at
		WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, r.q, q, e)
	if err != nil {
		return writeErr(err)
	}
	return checkAffected(ctx, r.q, res, "events", e.ID)
}

func (r *EventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM events WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return checkDeleted(res)
}

// Counts returns the total number of events and how many are upcoming.
func (r *EventRepo) Counts(ctx context.Context) (total, upcoming int, err error) {
	if err = sqlx.GetContext(ctx, r.q, &total, `SELECT COUNT(*) FROM events`); err != nil {
		return 0, 0, err
	}
	err = sqlx.GetContext(ctx, r.q, &upcoming, r.q.Rebind(`SELECT COUNT(*) FROM events WHERE status = ?`), model.EventUpcoming)
	return total, upcoming, err
}
