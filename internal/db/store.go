package db

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/analytics"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

var _ analytics.Store = (*PostgresStore)(nil)

// PostgresStore implements Store on top of database/sql with lib/pq.
type PostgresStore struct {
	db     *sql.DB
	cfg    *config.IngestConfig
	logger *logrus.Logger
}

// NewPostgresStore opens a connection pool and verifies connectivity.
func NewPostgresStore(connectionString string, cfg *config.IngestConfig, logger *logrus.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db, cfg: cfg, logger: logger}, nil
}

// Migrate runs the embedded goose migrations.
func (s *PostgresStore) Migrate() error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
