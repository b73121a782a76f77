package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/errors"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/models"
)

// StatsReader is the read-only persistence surface of the report builder.
// It runs outside the ingestion transaction and may observe a recent but
// not necessarily latest commit.
type StatsReader interface {
	GetRepoMonthlyStats(ctx context.Context, repository string, year int) ([]*models.RepoMonthlyStat, error)
	GetUserMonthlyStats(ctx context.Context, repository string, year int) ([]*models.UserMonthlyStat, error)
}

// ReportBuilder derives the dashboard report from the accumulator tables.
type ReportBuilder struct {
	store  StatsReader
	logger *logrus.Logger
}

// NewReportBuilder creates a new report builder
func NewReportBuilder(store StatsReader, logger *logrus.Logger) *ReportBuilder {
	return &ReportBuilder{
		store:  store,
		logger: logger,
	}
}

// Score is the leaderboard ranking weight of a contributor's yearly totals.
func Score(e *models.LeaderboardEntry) float64 {
	return float64(e.MergedCount) + 0.375*float64(e.Reviews) + 0.15*float64(e.Comments)
}

// BuildReport produces series rows for the current year down to
// current-(yearsBack-1), most recent first, plus a ranked leaderboard per
// year. Months without merged pull requests carry the -1 sentinel.
func (b *ReportBuilder) BuildReport(ctx context.Context, repository string, yearsBack int) (*models.AnalyticsReport, error) {
	if yearsBack <= 0 {
		yearsBack = 1
	}

	report := &models.AnalyticsReport{
		Repository:  repository,
		CycleTime:   make([]models.YearSeries, 0, yearsBack),
		FirstReview: make([]models.YearSeries, 0, yearsBack),
		MergedPRs:   make([]models.YearSeries, 0, yearsBack),
		Leaderboard: make([]models.LeaderboardYear, 0, yearsBack),
	}

	currentYear := time.Now().Year()
	for diff := 0; diff < yearsBack; diff++ {
		year := currentYear - diff

		cycle, firstReview, merged, err := b.buildYearSeries(ctx, repository, year)
		if err != nil {
			return nil, err
		}
		report.CycleTime = append(report.CycleTime, cycle)
		report.FirstReview = append(report.FirstReview, firstReview)
		report.MergedPRs = append(report.MergedPRs, merged)

		leaderboard, err := b.buildLeaderboard(ctx, repository, year)
		if err != nil {
			return nil, err
		}
		report.Leaderboard = append(report.Leaderboard, leaderboard)
	}

	return report, nil
}

func (b *ReportBuilder) buildYearSeries(ctx context.Context, repository string, year int) (cycle, firstReview, merged models.YearSeries, err error) {
	cycle[0] = float64(year)
	firstReview[0] = float64(year)
	merged[0] = float64(year)
	for m := 1; m <= 12; m++ {
		cycle[m] = models.NoDataSentinel
		firstReview[m] = models.NoDataSentinel
		merged[m] = models.NoDataSentinel
	}

	stats, err := b.store.GetRepoMonthlyStats(ctx, repository, year)
	if err != nil {
		return cycle, firstReview, merged, errors.NewStorageError(fmt.Sprintf("failed to get repository stats for %s/%d", repository, year), err)
	}

	for _, stat := range stats {
		if stat.Month < 1 || stat.Month > 12 || stat.MergedCount <= 0 {
			continue
		}
		cycle[stat.Month] = Round2(float64(stat.TotalCycleTime) / float64(stat.MergedCount))
		firstReview[stat.Month] = Round2(float64(stat.TotalFirstReviewTime) / float64(stat.MergedCount))
		merged[stat.Month] = float64(stat.MergedCount)
	}

	return cycle, firstReview, merged, nil
}

// buildLeaderboard sums each contributor's monthly rows for the year and
// ranks by score. Ties order by user id so repeated calls return the same
// ranking.
func (b *ReportBuilder) buildLeaderboard(ctx context.Context, repository string, year int) (models.LeaderboardYear, error) {
	leaderboard := models.LeaderboardYear{Year: year, Entries: []models.LeaderboardEntry{}}

	stats, err := b.store.GetUserMonthlyStats(ctx, repository, year)
	if err != nil {
		return leaderboard, errors.NewStorageError(fmt.Sprintf("failed to get user stats for %s/%d", repository, year), err)
	}

	totals := make(map[string]*models.LeaderboardEntry)
	order := make([]string, 0, len(stats))
	for _, stat := range stats {
		entry, ok := totals[stat.UserID]
		if !ok {
			entry = &models.LeaderboardEntry{UserID: stat.UserID}
			totals[stat.UserID] = entry
			order = append(order, stat.UserID)
		}
		entry.Additions += stat.Additions
		entry.Deletions += stat.Deletions
		entry.MergedCount += stat.MergedCount
		entry.Reviews += stat.Reviews
		entry.Comments += stat.Comments
	}

	for _, userID := range order {
		entry := totals[userID]
		entry.Score = Score(entry)
		leaderboard.Entries = append(leaderboard.Entries, *entry)
	}

	sort.Slice(leaderboard.Entries, func(i, j int) bool {
		a, b := leaderboard.Entries[i], leaderboard.Entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.UserID < b.UserID
	})

	return leaderboard, nil
}
