package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/analytics"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/models"
)

// serializationFailure is the SQLSTATE Postgres reports when a serializable
// transaction must be retried.
const serializationFailure = "40001"

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == serializationFailure
}

// ApplyPage folds one page's deltas into the accumulator tables and, when
// newToken is non-nil, advances the repository cursor, all inside a single
// serializable transaction. Everything commits or rolls back together, so a
// crashed or retried page can never be double-counted.
//
// Serialization conflicts (two concurrent ingestion calls for the same
// repository) are retried a bounded number of times with backoff.
func (s *PostgresStore) ApplyPage(ctx context.Context, repository string, deltas *analytics.PageDeltas, newToken *string) error {
	var lastErr error
	for attempt := 0; attempt <= s.cfg.TxMaxRetries; attempt++ {
		if attempt > 0 {
			s.logger.WithField("repository", repository).Warnf("Retrying page transaction after serialization conflict (attempt %d)", attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.cfg.TxRetryBackoff * time.Duration(attempt)):
			}
		}

		lastErr = s.applyPageOnce(ctx, repository, deltas, newToken)
		if lastErr == nil {
			return nil
		}
		if !isSerializationFailure(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("page transaction failed after %d retries: %w", s.cfg.TxMaxRetries, lastErr)
}

func (s *PostgresStore) applyPageOnce(ctx context.Context, repository string, deltas *analytics.PageDeltas, newToken *string) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stat := range deltas.Repo {
		if err := s.upsertRepoStatTx(ctx, tx, stat); err != nil {
			return err
		}
	}

	for _, stat := range deltas.User {
		if err := s.upsertUserStatTx(ctx, tx, stat); err != nil {
			return err
		}
	}

	if newToken != nil {
		if err := s.advanceCursorTx(ctx, tx, repository, *newToken); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit page transaction: %w", err)
	}

	return nil
}

// upsertRepoStatTx adds a delta to a repository's monthly accumulator row,
// creating it on first sight. The addition happens inside the statement so
// concurrent callers cannot lose increments to a read-then-write race.
func (s *PostgresStore) upsertRepoStatTx(ctx context.Context, tx *sql.Tx, stat *models.RepoMonthlyStat) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO repository_analytics (
			repository, year, month,
			total_pull_requests_merged, total_cycle_time, total_first_review_time,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (repository, year, month) DO UPDATE SET
			total_pull_requests_merged = repository_analytics.total_pull_requests_merged + EXCLUDED.total_pull_requests_merged,
			total_cycle_time = repository_analytics.total_cycle_time + EXCLUDED.total_cycle_time,
			total_first_review_time = repository_analytics.total_first_review_time + EXCLUDED.total_first_review_time,
			updated_at = NOW()
	`, stat.Repository, stat.Year, stat.Month, stat.MergedCount, stat.TotalCycleTime, stat.TotalFirstReviewTime)

	if err != nil {
		return fmt.Errorf("failed to upsert repository stats for %s %d-%02d: %w", stat.Repository, stat.Year, stat.Month, err)
	}

	return nil
}

// upsertUserStatTx adds a delta to a contributor's monthly accumulator row.
func (s *PostgresStore) upsertUserStatTx(ctx context.Context, tx *sql.Tx, stat *models.UserMonthlyStat) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO user_analytics (
			repository, user_id, year, month,
			additions, deletions,
			pull_requests_merged, pull_requests_reviews, pull_requests_comments,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (user_id, repository, year, month) DO UPDATE SET
			additions = user_analytics.additions + EXCLUDED.additions,
			deletions = user_analytics.deletions + EXCLUDED.deletions,
			pull_requests_merged = user_analytics.pull_requests_merged + EXCLUDED.pull_requests_merged,
			pull_requests_reviews = user_analytics.pull_requests_reviews + EXCLUDED.pull_requests_reviews,
			pull_requests_comments = user_analytics.pull_requests_comments + EXCLUDED.pull_requests_comments,
			updated_at = NOW()
	`, stat.Repository, stat.UserID, stat.Year, stat.Month,
		stat.Additions, stat.Deletions, stat.MergedCount, stat.Reviews, stat.Comments)

	if err != nil {
		return fmt.Errorf("failed to upsert user stats for %s in %s %d-%02d: %w", stat.UserID, stat.Repository, stat.Year, stat.Month, err)
	}

	return nil
}

// GetRepoMonthlyStats retrieves a repository's accumulator rows for a year.
func (s *PostgresStore) GetRepoMonthlyStats(ctx context.Context, repository string, year int) ([]*models.RepoMonthlyStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT repository, year, month,
			total_pull_requests_merged, total_cycle_time, total_first_review_time
		FROM repository_analytics
		WHERE repository = $1 AND year = $2
		ORDER BY month
	`, repository, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query repository stats: %w", err)
	}
	defer rows.Close()

	var stats []*models.RepoMonthlyStat
	for rows.Next() {
		var stat models.RepoMonthlyStat
		if err := rows.Scan(
			&stat.Repository,
			&stat.Year,
			&stat.Month,
			&stat.MergedCount,
			&stat.TotalCycleTime,
			&stat.TotalFirstReviewTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan repository stat row: %w", err)
		}
		stats = append(stats, &stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating repository stat rows: %w", err)
	}

	return stats, nil
}

// GetUserMonthlyStats retrieves the contributor accumulator rows for a
// repository and year.
func (s *PostgresStore) GetUserMonthlyStats(ctx context.Context, repository string, year int) ([]*models.UserMonthlyStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT repository, user_id, year, month,
			additions, deletions,
			pull_requests_merged, pull_requests_reviews, pull_requests_comments
		FROM user_analytics
		WHERE repository = $1 AND year = $2
		ORDER BY user_id, month
	`, repository, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query user stats: %w", err)
	}
	defer rows.Close()

	var stats []*models.UserMonthlyStat
	for rows.Next() {
		var stat models.UserMonthlyStat
		if err := rows.Scan(
			&stat.Repository,
			&stat.UserID,
			&stat.Year,
			&stat.Month,
			&stat.Additions,
			&stat.Deletions,
			&stat.MergedCount,
			&stat.Reviews,
			&stat.Comments,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user stat row: %w", err)
		}
		stats = append(stats, &stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user stat rows: %w", err)
	}

	return stats, nil
}
