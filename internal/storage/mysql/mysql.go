package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"team-portal/internal/config"
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	s := &Storage{db: db}

	if err := s.bootstrap(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// bootstrap creates the schema once at startup. The original portal ran its
// CREATE TABLE statements on every request; doing it here keeps the request
// path free of DDL.
func (s *Storage) bootstrap(ctx context.Context) error {
	const op = "storage.mysql.bootstrap"

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS persons (
			id   VARCHAR(64)  PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			role VARCHAR(255) NOT NULL,
			unit VARCHAR(16)  NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			name VARCHAR(255) PRIMARY KEY,
			type VARCHAR(16)  NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS achievements (
			id        VARCHAR(64)    PRIMARY KEY,
			person_id VARCHAR(64)    NOT NULL,
			product   VARCHAR(255)   NOT NULL,
			amount    DECIMAL(18, 2) NOT NULL DEFAULT 0,
			date      DATE           NOT NULL,
			INDEX idx_achievements_person (person_id),
			INDEX idx_achievements_date (date)
		)`,
		`CREATE TABLE IF NOT EXISTS targets (
			person_id VARCHAR(64)    NOT NULL,
			product   VARCHAR(255)   NOT NULL,
			value     DECIMAL(18, 2) NOT NULL DEFAULT 0,
			PRIMARY KEY (person_id, product)
		)`,
		`CREATE TABLE IF NOT EXISTS allowed (
			person_id VARCHAR(64)  NOT NULL,
			product   VARCHAR(255) NOT NULL,
			allowed   BOOLEAN      NOT NULL DEFAULT TRUE,
			PRIMARY KEY (person_id, product)
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			person_id VARCHAR(64) PRIMARY KEY,
			category  VARCHAR(16) NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
