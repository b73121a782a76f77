package github

import (
	"context"
	"math"
	"time"

	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/analytics"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/config"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/models"
)

// Source implements analytics.EventSource against the GitHub GraphQL API
// for repositories of a single organization.
type Source struct {
	client       *githubv4.Client
	organization string
	pageSize     int
	rateLimit    config.RateLimitConfig
	logger       *logrus.Logger
}

// NewSource creates a new GraphQL-backed event source with the given token
// and organization.
func NewSource(token, organization string, ghCfg *config.GitHubConfig, ingestCfg *config.IngestConfig, logger *logrus.Logger) *Source {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = 120 * time.Second

	return &Source{
		client:       githubv4.NewEnterpriseClient(ghCfg.APIBaseURL, httpClient),
		organization: organization,
		pageSize:     ingestCfg.PageSize,
		rateLimit:    ghCfg.RateLimit,
		logger:       logger,
	}
}

type prConnection struct {
	PageInfo struct {
		HasPreviousPage bool
		HasNextPage     bool
		StartCursor     *githubv4.String
		EndCursor       *githubv4.String
	}
	Nodes []prNode
}

type prNode struct {
	ID        string
	Number    int
	Title     string
	Additions int
	Deletions int
	CreatedAt githubv4.DateTime
	MergedAt  githubv4.DateTime
	Author    actor
	Reviews   struct {
		Nodes []prReview
	} `graphql:"reviews(first: 10)"`
}

// prReview carries the first ten reviews per pull request. Reviews come
// back in chronological order, so the first node is the first review.
type prReview struct {
	Author    actor
	State     githubv4.PullRequestReviewState
	CreatedAt githubv4.DateTime
	Comments  struct {
		Nodes []prComment
	} `graphql:"comments(first: 10)"`
}

type prComment struct {
	Author    actor
	CreatedAt githubv4.DateTime
}

type actor struct {
	Login string
}

type backwardPageQuery struct {
	Repository struct {
		PullRequests prConnection `graphql:"pullRequests(last: $pageSize, before: $cursor, states: MERGED)"`
	} `graphql:"repository(owner: $organization, name: $repository)"`
}

type forwardPageQuery struct {
	Repository struct {
		PullRequests prConnection `graphql:"pullRequests(first: $pageSize, after: $cursor, states: MERGED)"`
	} `graphql:"repository(owner: $organization, name: $repository)"`
}

type archivedQuery struct {
	Repository struct {
		IsArchived bool
	} `graphql:"repository(owner: $organization, name: $repository)"`
}

type teamReposQuery struct {
	Organization struct {
		Teams struct {
			Nodes []struct {
				Repositories struct {
					Nodes []struct {
						Name       string
						IsArchived bool
					}
				} `graphql:"repositories(first: 100)"`
			}
		} `graphql:"teams(first: 100, userLogins: [$user])"`
	} `graphql:"organization(login: $organization)"`
}

// FetchPage fetches one page of merged pull requests. Backward fetches use
// last/before semantics (bootstrap walks), forward fetches first/after
// (steady state).
func (s *Source) FetchPage(ctx context.Context, repository string, token *string, direction analytics.Direction) (*analytics.EventPage, error) {
	variables := map[string]interface{}{
		"organization": githubv4.String(s.organization),
		"repository":   githubv4.String(repository),
		"pageSize":     githubv4.Int(s.pageSize),
		"cursor":       (*githubv4.String)(nil),
	}
	if token != nil {
		variables["cursor"] = githubv4.NewString(githubv4.String(*token))
	}

	var conn prConnection
	if direction == analytics.Backward {
		var q backwardPageQuery
		if err := s.queryWithBackoff(ctx, &q, variables); err != nil {
			return nil, NewQueryError(repository, "backward page query", err)
		}
		conn = q.Repository.PullRequests
	} else {
		var q forwardPageQuery
		if err := s.queryWithBackoff(ctx, &q, variables); err != nil {
			return nil, NewQueryError(repository, "forward page query", err)
		}
		conn = q.Repository.PullRequests
	}

	page := &analytics.EventPage{
		Events:       make([]*models.MergeEvent, 0, len(conn.Nodes)),
		HasMore:      conn.PageInfo.HasNextPage,
		HasMoreOlder: conn.PageInfo.HasPreviousPage,
	}
	if conn.PageInfo.StartCursor != nil {
		start := string(*conn.PageInfo.StartCursor)
		page.StartToken = &start
	}
	if conn.PageInfo.EndCursor != nil {
		end := string(*conn.PageInfo.EndCursor)
		page.EndToken = &end
	}

	for i := range conn.Nodes {
		page.Events = append(page.Events, nodeToEvent(&conn.Nodes[i]))
	}

	s.logger.WithFields(logrus.Fields{
		"repository": repository,
		"direction":  direction.String(),
		"events":     len(page.Events),
	}).Debug("Fetched merged pull request page")

	return page, nil
}

// ValidRepository reports whether the repository is accessible and not
// archived. Inaccessible repositories count as invalid.
func (s *Source) ValidRepository(ctx context.Context, repository string) (bool, error) {
	variables := map[string]interface{}{
		"organization": githubv4.String(s.organization),
		"repository":   githubv4.String(repository),
	}

	var q archivedQuery
	if err := s.queryWithBackoff(ctx, &q, variables); err != nil {
		s.logger.WithField("repository", repository).WithError(err).Warn("Repository validity check failed")
		return false, nil
	}

	return !q.Repository.IsArchived, nil
}

// TeamRepositories lists the repositories owned by the organization teams
// the user belongs to. Archived repositories are skipped and duplicates
// across teams are collapsed.
func (s *Source) TeamRepositories(ctx context.Context, userID string) ([]string, error) {
	variables := map[string]interface{}{
		"organization": githubv4.String(s.organization),
		"user":         githubv4.String(userID),
	}

	var q teamReposQuery
	if err := s.queryWithBackoff(ctx, &q, variables); err != nil {
		return nil, NewQueryError(userID, "team repositories query", err)
	}

	seen := make(map[string]bool)
	var repositories []string
	for _, team := range q.Organization.Teams.Nodes {
		for _, repo := range team.Repositories.Nodes {
			if repo.IsArchived || seen[repo.Name] {
				continue
			}
			seen[repo.Name] = true
			repositories = append(repositories, repo.Name)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"user":         userID,
		"repositories": len(repositories),
	}).Debug("Fetched team repositories")

	return repositories, nil
}

// queryWithBackoff runs a GraphQL query with exponential backoff on
// transient failures.
func (s *Source) queryWithBackoff(ctx context.Context, q interface{}, variables map[string]interface{}) error {
	var lastErr error
	backoff := s.rateLimit.InitialBackoff

	for attempt := 0; attempt < s.rateLimit.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = time.Duration(math.Min(float64(backoff)*s.rateLimit.RetryMultiplier, float64(s.rateLimit.MaxBackoff)))
		}

		lastErr = s.client.Query(ctx, q, variables)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
		s.logger.Warnf("GraphQL query attempt %d failed: %v", attempt+1, lastErr)
	}

	return lastErr
}

func nodeToEvent(node *prNode) *models.MergeEvent {
	event := &models.MergeEvent{
		ID:        node.ID,
		Number:    node.Number,
		Title:     node.Title,
		CreatedAt: node.CreatedAt.Time,
		MergedAt:  node.MergedAt.Time,
		Additions: node.Additions,
		Deletions: node.Deletions,
		Author:    node.Author.Login,
		Reviews:   make([]models.Review, 0, len(node.Reviews.Nodes)),
	}

	for _, r := range node.Reviews.Nodes {
		review := models.Review{
			Author:    r.Author.Login,
			State:     string(r.State),
			CreatedAt: r.CreatedAt.Time,
			Comments:  make([]models.ReviewComment, 0, len(r.Comments.Nodes)),
		}
		for _, c := range r.Comments.Nodes {
			review.Comments = append(review.Comments, models.ReviewComment{
				Author:    c.Author.Login,
				CreatedAt: c.CreatedAt.Time,
			})
		}
		event.Reviews = append(event.Reviews, review)
	}

	return event
}
