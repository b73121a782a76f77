package analytics

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/config"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/errors"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/models"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/utils"
)

// Store is the full persistence surface of the analytics service.
type Store interface {
	CursorStore
	StatsReader

	ListUserRepositories(ctx context.Context, userID string) ([]*models.UserRepository, error)
	SeedUserRepositories(ctx context.Context, userID string, repositories []string) error
	AddUserRepository(ctx context.Context, userID, repository string) error
	RemoveUserRepository(ctx context.Context, userID, repository string) error
	ListTrackedRepositories(ctx context.Context) ([]string, error)

	GetPullRequestProps(ctx context.Context, pullRequestID string) (*models.PullRequestProps, error)
	SetPullRequestPriority(ctx context.Context, pullRequestID, priority string) error
	SetPullRequestDescription(ctx context.Context, pullRequestID, description, updatedBy string) error
}

// Service ties the ingestion driver and report builder together behind the
// API surface, and owns the per-user dashboard flows.
type Service struct {
	source  EventSource
	store   Store
	driver  *IngestionDriver
	reports *ReportBuilder
	cfg     *config.IngestConfig
	logger  *logrus.Logger
}

// NewService creates a new analytics service
func NewService(source EventSource, store Store, cfg *config.IngestConfig, logger *logrus.Logger) *Service {
	return &Service{
		source:  source,
		store:   store,
		driver:  NewIngestionDriver(source, store, cfg, logger),
		reports: NewReportBuilder(store, logger),
		cfg:     cfg,
		logger:  logger,
	}
}

// IngestRepository runs one ingestion call for a repository.
func (s *Service) IngestRepository(ctx context.Context, repository string) error {
	return s.driver.Ingest(ctx, repository)
}

// GetRepositoryReport builds the analytics report for a repository without
// triggering ingestion.
func (s *Service) GetRepositoryReport(ctx context.Context, repository string, yearsBack int) (*models.AnalyticsReport, error) {
	if yearsBack <= 0 {
		yearsBack = s.cfg.ReportYearsBack
	}
	return s.reports.BuildReport(ctx, repository, yearsBack)
}

// GetUserAnalytics refreshes and reports every repository the user tracks
// with display enabled. Ingestion runs concurrently, bounded by the
// configured repository limit; a repository whose ingestion fails is logged
// and skipped so the rest of the dashboard still loads.
func (s *Service) GetUserAnalytics(ctx context.Context, userID string) (map[string]*models.AnalyticsReport, error) {
	repos, err := s.store.ListUserRepositories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories for user %s: %w", userID, err)
	}

	tracked := make([]string, 0, len(repos))
	for _, repo := range repos {
		if repo.Display {
			tracked = append(tracked, repo.Repository)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrentRepos)
	for _, repository := range tracked {
		repository := repository
		g.Go(func() error {
			if err := s.driver.Ingest(gctx, repository); err != nil {
				s.logger.WithFields(logrus.Fields{
					"repository": repository,
					"user":       userID,
				}).WithError(err).Error("Failed to ingest repository, serving stale analytics")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]*models.AnalyticsReport, len(tracked))
	for _, repository := range tracked {
		report, err := s.reports.BuildReport(ctx, repository, s.cfg.ReportYearsBack)
		if err != nil {
			return nil, err
		}
		result[repository] = report
	}
	return result, nil
}

// TrackRepository adds a repository to a user's dashboard after checking it
// exists and is not archived.
func (s *Service) TrackRepository(ctx context.Context, userID, repository string) error {
	if err := utils.ValidateRepoName(repository); err != nil {
		return errors.NewValidationError("invalid repository name", err)
	}

	valid, err := s.source.ValidRepository(ctx, repository)
	if err != nil {
		return errors.NewSourceError(fmt.Sprintf("failed to validate repository %s", repository), err)
	}
	if !valid {
		return errors.NewNotFoundError(fmt.Sprintf("repository not found or archived: %s", repository), nil)
	}

	return s.store.AddUserRepository(ctx, userID, repository)
}

// UntrackRepository removes a repository from a user's dashboard.
func (s *Service) UntrackRepository(ctx context.Context, userID, repository string) error {
	return s.store.RemoveUserRepository(ctx, userID, repository)
}

// ListUserRepositories lists the repositories on a user's dashboard, first
// seeding it with the repositories of the organization teams the user
// belongs to. Seeding never re-enables a repository the user hid. When the
// team lookup fails the stored list is served as-is.
func (s *Service) ListUserRepositories(ctx context.Context, userID string) ([]*models.UserRepository, error) {
	teamRepos, err := s.source.TeamRepositories(ctx, userID)
	if err != nil {
		s.logger.WithField("user", userID).WithError(err).Warn("Team repository lookup failed, serving stored list")
	} else if len(teamRepos) > 0 {
		if err := s.store.SeedUserRepositories(ctx, userID, teamRepos); err != nil {
			return nil, errors.NewStorageError(fmt.Sprintf("failed to seed repositories for user %s", userID), err)
		}
	}

	return s.store.ListUserRepositories(ctx, userID)
}

// SetPullRequestPriority upserts the priority property of a pull request.
func (s *Service) SetPullRequestPriority(ctx context.Context, pullRequestID, priority string) error {
	if !models.ValidPriority(priority) {
		return errors.NewValidationError(fmt.Sprintf("invalid priority: %s", priority), nil)
	}
	return s.store.SetPullRequestPriority(ctx, pullRequestID, priority)
}

// SetPullRequestDescription upserts the description property of a pull
// request, recording who changed it.
func (s *Service) SetPullRequestDescription(ctx context.Context, pullRequestID, description, updatedBy string) error {
	if pullRequestID == "" {
		return errors.NewValidationError("pull request id cannot be empty", nil)
	}
	return s.store.SetPullRequestDescription(ctx, pullRequestID, description, updatedBy)
}

// GetPullRequestProps returns the stored properties of a pull request, with
// defaults when none were ever set.
func (s *Service) GetPullRequestProps(ctx context.Context, pullRequestID string) (*models.PullRequestProps, error) {
	props, err := s.store.GetPullRequestProps(ctx, pullRequestID)
	if err != nil {
		return nil, err
	}
	if props == nil {
		return &models.PullRequestProps{
			PullRequestID: pullRequestID,
			Priority:      models.PriorityNone,
		}, nil
	}
	return props, nil
}

// RefreshAll ingests every tracked repository. Used by the background
// refresh ticker; failures are logged and do not stop the sweep.
func (s *Service) RefreshAll(ctx context.Context) error {
	repos, err := s.store.ListTrackedRepositories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tracked repositories: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrentRepos)
	for _, repository := range repos {
		repository := repository
		g.Go(func() error {
			if err := s.driver.Ingest(gctx, repository); err != nil {
				s.logger.WithField("repository", repository).WithError(err).Error("Refresh failed")
			}
			return nil
		})
	}
	return g.Wait()
}
