package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-dou-scraper/internal/scraper"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore keeps every run's table. Rows are keyed by run and
// position, so duplicate cards and repeated runs are all retained.
type PostgresStore struct {
	db *sql.DB
}

func Connect(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := NewPostgresStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgresStore wraps an already opened database.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS vacancies (
			run_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			description TEXT NOT NULL,
			city TEXT NOT NULL,
			scraped_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (run_id, position)
		);
		CREATE INDEX IF NOT EXISTS idx_vacancies_url ON vacancies(url);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveRun inserts the vacancies of one run in a single transaction.
func (s *PostgresStore) SaveRun(ctx context.Context, runID string, vacancies []scraper.Vacancy) (err error) {
	if len(vacancies) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vacancies (run_id, position, title, url, description, city)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for i, v := range vacancies {
		if _, err = stmt.ExecContext(ctx, runID, i, v.Title, v.URL, v.Description, v.City); err != nil {
			return fmt.Errorf("insert vacancy %q: %w", v.URL, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
