package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/laiff-festival/internal/config"
)

// Open connects to the configured store and verifies the connection.
func Open(cfg config.Config) (*sqlx.DB, error) {
	driver, dsn := DSN(cfg)

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	if driver == "sqlite" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// DSN returns the sql driver name and data source for cfg.  An explicit
// DB_DSN wins over the individual parts.
func DSN(cfg config.Config) (driver, dsn string) {
	switch cfg.DBDriver {
	case "mysql":
		if cfg.DBDSN != "" {
			return "mysql", cfg.DBDSN
		}
		auth := cfg.DBUser
		if cfg.DBPass != "" {
			auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
		}
		// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
		return "mysql", fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			auth, cfg.DBHost, portOr(cfg.DBPort, "3306"), cfg.DBName)
	case "postgres":
		if cfg.DBDSN != "" {
			return "postgres", cfg.DBDSN
		}
		return "postgres", fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, portOr(cfg.DBPort, "5432"), cfg.DBUser, cfg.DBPass, cfg.DBName)
	default:
		if cfg.DBDSN != "" {
			return "sqlite", cfg.DBDSN
		}
		return "sqlite", ":memory:"
	}
}

func portOr(p, def string) string {
	if p == "" {
		return def
	}
	return p
}
