package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/models"
)

// GetCursor retrieves the pagination cursor for a repository. Returns
// (nil, nil) when the repository has never been ingested.
func (s *PostgresStore) GetCursor(ctx context.Context, repository string) (*models.RepositoryCursor, error) {
	var cursor models.RepositoryCursor

	err := s.db.QueryRowContext(ctx, `
		SELECT repository, cursor, created_at, updated_at
		FROM repository_cursors
		WHERE repository = $1
	`, repository).Scan(&cursor.Repository, &cursor.Cursor, &cursor.CreatedAt, &cursor.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get cursor: %w", err)
	}

	return &cursor, nil
}

// CreateCursor inserts an uninitialized cursor row for a repository.
// Idempotent: a second call for the same repository is a no-op.
func (s *PostgresStore) CreateCursor(ctx context.Context, repository string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO repository_cursors (repository, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (repository) DO NOTHING
	`, repository)

	if err != nil {
		return fmt.Errorf("failed to create cursor: %w", err)
	}

	return nil
}

// advanceCursorTx moves the cursor inside the apply-page transaction. It is
// never called outside of one: cursor advancement must commit together with
// the accumulator upserts it covers.
func (s *PostgresStore) advanceCursorTx(ctx context.Context, tx *sql.Tx, repository, token string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE repository_cursors
		SET cursor = $2, updated_at = NOW()
		WHERE repository = $1
	`, repository, token)

	if err != nil {
		return fmt.Errorf("failed to advance cursor: %w", err)
	}

	return nil
}
