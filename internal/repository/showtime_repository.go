package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/laiff-festival/internal/database"
	"github.com/iliyamo/laiff-festival/internal/model"
)

const showtimeColumns = `id, movie_id, movie_title, show_date, show_time, venue, screen, capacity, sold,
	price_category, status, notes, created_at, updated_at`

// ShowtimeFilter narrows List.  Date is an exact YYYY-MM-DD match and
// Venue a case-insensitive substring of the venue name.
type ShowtimeFilter struct {
	Date  string
	Venue string
}

// ShowtimeRepo manages persistence for screenings.
type ShowtimeRepo struct {
	q sqlx.ExtContext
}

func (r *ShowtimeRepo) Create(ctx context.Context, s *model.Showtime) error {
	_, err := sqlx.NamedExecContext(ctx, r.q, database.InsertShowtime, s)
	return writeErr(err)
}

func (r *ShowtimeRepo) GetByID(ctx context.Context, id string) (*model.Showtime, error) {
	var s model.Showtime
	err := sqlx.GetContext(ctx, r.q, &s, r.q.Rebind(`SELECT `+showtimeColumns+` FROM showtimes WHERE id = ?`), id)
	if err != nil {
		return nil, getErr(err)
	}
	return &s, nil
}

// List returns the screenings matching f sorted by date then time.
func (r *ShowtimeRepo) List(ctx context.Context, f ShowtimeFilter) ([]model.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes`
	var args []any
	if f.Date != "" {
		query += ` WHERE show_date = ?`
		args = append(args, f.Date)
	}
	query += ` ORDER BY show_date, show_time, id`

	var all []model.Showtime
	if err := sqlx.SelectContext(ctx, r.q, &all, r.q.Rebind(query), args...); err != nil {
		return nil, err
	}
	venue := strings.ToLower(strings.TrimSpace(f.Venue))
	out := make([]model.Showtime, 0, len(all))
	for _, s := range all {
		if venue == "" || strings.Contains(strings.ToLower(s.Venue), venue) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *ShowtimeRepo) Update(ctx context.Context, s *model.Showtime) error {
	const q = `UPDATE showtimes SET movie_id = :movie_id, movie_title = :movie_title, show_date = :show_date,
		show_time = :show_time, venue = :venue, screen = :screen, capacity = :capacity, sold = :sold,
		price_category = :price_category, status = :status, notes = :notes, updated_at = :updated_at
		WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, r.q, q, s)
	if err != nil {
		return writeErr(err)
	}
	return checkAffected(ctx, r.q, res, "showtimes", s.ID)
}

func (r *ShowtimeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM showtimes WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return checkDeleted(res)
}

// TotalSold sums the seats sold across every screening.
func (r *ShowtimeRepo) TotalSold(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.q, &n, `SELECT COALESCE(SUM(sold), 0) FROM showtimes`)
	return n, err
}
