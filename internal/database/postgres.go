package database

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/fx"

	"tablecrm/internal/config"
)

// PostgresDB wraps the relational store holding users, the four record
// tables and the option catalog.
type PostgresDB struct {
	DB *sql.DB
}

// NewPostgres opens the Postgres pool with lifecycle management.
func NewPostgres(lc fx.Lifecycle, cfg *config.Config) (*PostgresDB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	log.Println("Connected to Postgres!")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Closing Postgres pool...")
			return db.Close()
		},
	})

	return &PostgresDB{DB: db}, nil
}
