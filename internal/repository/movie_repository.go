package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/laiff-festival/internal/database"
	"github.com/iliyamo/laiff-festival/internal/model"
)

const movieColumns = `id, tmdb_id, title, director, release_year, genre, runtime, synopsis, poster_url,
	rating, price_cents, status, festival_category, notes, created_at, updated_at`

// MovieRepo manages persistence for festival films.
type MovieRepo struct {
	q sqlx.ExtContext
}

// Create inserts m.  The caller assigns the id and timestamps.
func (r *MovieRepo) Create(ctx context.Context, m *model.FestivalMovie) error {
	_, err := sqlx.NamedExecContext(ctx, r.q, database.InsertMovie, m)
	return writeErr(err)
}

// GetByID returns ErrNotFound when there is no such film.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (*model.FestivalMovie, error) {
	var m model.FestivalMovie
	err := sqlx.GetContext(ctx, r.q, &m, r.q.Rebind(`SELECT `+movieColumns+` FROM festival_movies WHERE id = ?`), id)
	if err != nil {
		return nil, getErr(err)
	}
	return &m, nil
}

// List returns the films whose title or director contains q, ordered by
// title.  An empty q returns every film.
func (r *MovieRepo) List(ctx context.Context, q string) ([]model.FestivalMovie, error) {
	var all []model.FestivalMovie
	if err := sqlx.SelectContext(ctx, r.q, &all, `SELECT `+movieColumns+` FROM festival_movies ORDER BY title, id`); err != nil {
		return nil, err
	}
	out := make([]model.FestivalMovie, 0, len(all))
	for _, m := range all {
		if m.Matches(q) {
			out = append(out, m)
		}
	}
	return out, nil
}

// Update overwrites every mutable column of m.
func (r *MovieRepo) Update(ctx context.Context, m *model.FestivalMovie) error {
	const q = `UPDATE festival_movies SET tmdb_id = :tmdb_id, title = :title, director = :director,
		release_year = :release_year, genre = :genre, runtime = :runtime, synopsis = :synopsis,
		poster_url = :poster_url, rating = :rating, price_cents = :price_cents, status = :status,
		festival_category = :festival_category, notes = :notes, updated_at = :updated_at
		WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, r.q, q, m)
	if err != nil {
		return writeErr(err)
	}
	return checkAffected(ctx, r.q, res, "festival_movies", m.ID)
}

// Delete removes the film.  Showtimes that reference it are kept.
func (r *MovieRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM festival_movies WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return checkDeleted(res)
}

// Count returns the number of films in the programme.
func (r *MovieRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM festival_movies`)
	return n, err
}
