package db

import (
	"context"
	"fmt"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/models"
)

// ListUserRepositories retrieves all repositories on a user's dashboard.
func (s *PostgresStore) ListUserRepositories(ctx context.Context, userID string) ([]*models.UserRepository, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, repository, display, created_at, updated_at
		FROM user_repositories
		WHERE user_id = $1
		ORDER BY repository
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user repositories: %w", err)
	}
	defer rows.Close()

	var repos []*models.UserRepository
	for rows.Next() {
		var repo models.UserRepository
		if err := rows.Scan(&repo.UserID, &repo.Repository, &repo.Display, &repo.CreatedAt, &repo.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user repository row: %w", err)
		}
		repos = append(repos, &repo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user repository rows: %w", err)
	}

	return repos, nil
}

// AddUserRepository adds a repository to a user's dashboard. Re-adding a
// previously hidden repository turns display back on.
func (s *PostgresStore) AddUserRepository(ctx context.Context, userID, repository string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_repositories (user_id, repository, display, created_at, updated_at)
		VALUES ($1, $2, TRUE, NOW(), NOW())
		ON CONFLICT (user_id, repository) DO UPDATE SET
			display = TRUE,
			updated_at = NOW()
	`, userID, repository)

	if err != nil {
		return fmt.Errorf("failed to add user repository: %w", err)
	}

	return nil
}

// SeedUserRepositories inserts repositories onto a user's dashboard without
// touching rows that already exist, so a repository the user hid stays
// hidden.
func (s *PostgresStore) SeedUserRepositories(ctx context.Context, userID string, repositories []string) error {
	for _, repository := range repositories {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO user_repositories (user_id, repository, display, created_at, updated_at)
			VALUES ($1, $2, TRUE, NOW(), NOW())
			ON CONFLICT (user_id, repository) DO NOTHING
		`, userID, repository)
		if err != nil {
			return fmt.Errorf("failed to seed user repository %s: %w", repository, err)
		}
	}

	return nil
}

// RemoveUserRepository removes a repository from a user's dashboard.
func (s *PostgresStore) RemoveUserRepository(ctx context.Context, userID, repository string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM user_repositories
		WHERE user_id = $1 AND repository = $2
	`, userID, repository)
	if err != nil {
		return fmt.Errorf("failed to remove user repository: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("repository %s not tracked by user %s", repository, userID)
	}

	return nil
}

// ListTrackedRepositories returns every repository tracked by at least one
// user with display enabled.
func (s *PostgresStore) ListTrackedRepositories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT repository
		FROM user_repositories
		WHERE display = TRUE
		ORDER BY repository
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked repositories: %w", err)
	}
	defer rows.Close()

	var repos []string
	for rows.Next() {
		var repo string
		if err := rows.Scan(&repo); err != nil {
			return nil, fmt.Errorf("failed to scan tracked repository row: %w", err)
		}
		repos = append(repos, repo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracked repository rows: %w", err)
	}

	return repos, nil
}
