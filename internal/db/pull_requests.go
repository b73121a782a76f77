package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/models"
)

// GetPullRequestProps retrieves the stored properties of a pull request.
// Returns (nil, nil) when no properties were ever set.
func (s *PostgresStore) GetPullRequestProps(ctx context.Context, pullRequestID string) (*models.PullRequestProps, error) {
	var props models.PullRequestProps

	err := s.db.QueryRowContext(ctx, `
		SELECT pull_request_id, priority, description, description_updated_by, created_at, updated_at
		FROM pull_requests
		WHERE pull_request_id = $1
	`, pullRequestID).Scan(
		&props.PullRequestID,
		&props.Priority,
		&props.Description,
		&props.DescriptionUpdatedBy,
		&props.CreatedAt,
		&props.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get pull request properties: %w", err)
	}

	return &props, nil
}

// SetPullRequestPriority upserts the priority of a pull request.
func (s *PostgresStore) SetPullRequestPriority(ctx context.Context, pullRequestID, priority string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pull_requests (pull_request_id, priority, description, description_updated_by, created_at, updated_at)
		VALUES ($1, $2, '', 'None', NOW(), NOW())
		ON CONFLICT (pull_request_id) DO UPDATE SET
			priority = EXCLUDED.priority,
			updated_at = NOW()
	`, pullRequestID, priority)

	if err != nil {
		return fmt.Errorf("failed to set pull request priority: %w", err)
	}

	return nil
}

// SetPullRequestDescription upserts the description of a pull request and
// records who changed it.
func (s *PostgresStore) SetPullRequestDescription(ctx context.Context, pullRequestID, description, updatedBy string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pull_requests (pull_request_id, priority, description, description_updated_by, created_at, updated_at)
		VALUES ($1, 'None', $2, $3, NOW(), NOW())
		ON CONFLICT (pull_request_id) DO UPDATE SET
			description = EXCLUDED.description,
			description_updated_by = EXCLUDED.description_updated_by,
			updated_at = NOW()
	`, pullRequestID, description, updatedBy)

	if err != nil {
		return fmt.Errorf("failed to set pull request description: %w", err)
	}

	return nil
}
