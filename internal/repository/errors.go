// Package repository contains the sqlx data access layer.  Queries are
// written with ? placeholders and rebound for the active driver, so the
// same code runs on MySQL, Postgres and SQLite.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when no row matches.  Handlers should translate
// this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write violates a uniqueness constraint,
// such as creating a second promo code with the same code.  Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrStaleOrder is returned by OrderRepo.Update when the order changed
// state since it was read.
var ErrStaleOrder = errors.New("order changed concurrently")

// ErrPromoUnavailable is returned by Redeem when the code is no longer
// active or its usage limit was reached by a concurrent checkout.
var ErrPromoUnavailable = errors.New("promo code unavailable")

// isUniqueViolation recognises duplicate key errors from each driver.
func isUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		c := liteErr.Code()
		return c == sqlite3.SQLITE_CONSTRAINT_UNIQUE || c == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// writeErr maps driver errors from an insert or update.
func writeErr(err error) error {
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func getErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// checkAffected turns a zero-row update into ErrNotFound.  MySQL reports
// zero affected rows when the new values equal the old ones, so a zero
// count is confirmed with a lookup before failing.
func checkAffected(ctx context.Context, q sqlx.ExtContext, res sql.Result, table, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var found int
	err = sqlx.GetContext(ctx, q, &found, q.Rebind(`SELECT COUNT(*) FROM `+table+` WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if found == 0 {
		return ErrNotFound
	}
	return nil
}

// checkDeleted turns a zero-row delete into ErrNotFound.
func checkDeleted(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
