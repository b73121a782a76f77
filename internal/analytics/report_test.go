package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/errors"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/models"
)

const reportTestRepo = "test-repo"

// MockStatsReader implements StatsReader for testing
type MockStatsReader struct {
	mock.Mock
}

func (m *MockStatsReader) GetRepoMonthlyStats(ctx context.Context, repository string, year int) ([]*models.RepoMonthlyStat, error) {
	args := m.Called(ctx, repository, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RepoMonthlyStat), args.Error(1)
}

func (m *MockStatsReader) GetUserMonthlyStats(ctx context.Context, repository string, year int) ([]*models.UserMonthlyStat, error) {
	args := m.Called(ctx, repository, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserMonthlyStat), args.Error(1)
}

func newTestReportBuilder(store StatsReader) *ReportBuilder {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return NewReportBuilder(store, logger)
}

func TestBuildReportUnknownRepository(t *testing.T) {
	store := new(MockStatsReader)
	store.On("GetRepoMonthlyStats", mock.Anything, reportTestRepo, mock.Anything).Return([]*models.RepoMonthlyStat{}, nil)
	store.On("GetUserMonthlyStats", mock.Anything, reportTestRepo, mock.Anything).Return([]*models.UserMonthlyStat{}, nil)

	builder := newTestReportBuilder(store)
	report, err := builder.BuildReport(context.Background(), reportTestRepo, 2)
	require.NoError(t, err)

	currentYear := time.Now().Year()
	require.Len(t, report.CycleTime, 2)
	require.Len(t, report.FirstReview, 2)
	require.Len(t, report.MergedPRs, 2)
	require.Len(t, report.Leaderboard, 2)

	// Rows run from the current year backward, all months empty.
	assert.Equal(t, float64(currentYear), report.CycleTime[0][0])
	assert.Equal(t, float64(currentYear-1), report.CycleTime[1][0])
	for m := 1; m <= 12; m++ {
		assert.Equal(t, float64(models.NoDataSentinel), report.CycleTime[0][m])
		assert.Equal(t, float64(models.NoDataSentinel), report.FirstReview[0][m])
		assert.Equal(t, float64(models.NoDataSentinel), report.MergedPRs[0][m])
	}

	assert.Equal(t, currentYear, report.Leaderboard[0].Year)
	assert.Empty(t, report.Leaderboard[0].Entries)
}

func TestBuildReportAverages(t *testing.T) {
	currentYear := time.Now().Year()
	store := new(MockStatsReader)
	store.On("GetRepoMonthlyStats", mock.Anything, reportTestRepo, currentYear).Return([]*models.RepoMonthlyStat{
		{Repository: reportTestRepo, Year: currentYear, Month: 3, MergedCount: 3, TotalCycleTime: 100, TotalFirstReviewTime: 32},
	}, nil)
	store.On("GetUserMonthlyStats", mock.Anything, reportTestRepo, currentYear).Return([]*models.UserMonthlyStat{}, nil)

	builder := newTestReportBuilder(store)
	report, err := builder.BuildReport(context.Background(), reportTestRepo, 1)
	require.NoError(t, err)

	require.Len(t, report.CycleTime, 1)
	assert.Equal(t, 33.33, report.CycleTime[0][3])
	assert.Equal(t, 10.67, report.FirstReview[0][3])
	assert.Equal(t, 3.0, report.MergedPRs[0][3])

	assert.Equal(t, float64(models.NoDataSentinel), report.CycleTime[0][4])
}

func TestBuildReportZeroHoursDistinctFromNoData(t *testing.T) {
	currentYear := time.Now().Year()
	store := new(MockStatsReader)
	store.On("GetRepoMonthlyStats", mock.Anything, reportTestRepo, currentYear).Return([]*models.RepoMonthlyStat{
		{Repository: reportTestRepo, Year: currentYear, Month: 7, MergedCount: 2, TotalCycleTime: 0, TotalFirstReviewTime: 0},
	}, nil)
	store.On("GetUserMonthlyStats", mock.Anything, reportTestRepo, currentYear).Return([]*models.UserMonthlyStat{}, nil)

	builder := newTestReportBuilder(store)
	report, err := builder.BuildReport(context.Background(), reportTestRepo, 1)
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.CycleTime[0][7])
	assert.Equal(t, 0.0, report.FirstReview[0][7])
	assert.Equal(t, 2.0, report.MergedPRs[0][7])
}

func TestBuildReportLeaderboardRanking(t *testing.T) {
	currentYear := time.Now().Year()
	store := new(MockStatsReader)
	store.On("GetRepoMonthlyStats", mock.Anything, reportTestRepo, currentYear).Return([]*models.RepoMonthlyStat{}, nil)
	// A merged two pull requests, B wrote four reviews: merges outweigh
	// reviews at the configured weights.
	store.On("GetUserMonthlyStats", mock.Anything, reportTestRepo, currentYear).Return([]*models.UserMonthlyStat{
		{Repository: reportTestRepo, UserID: "a", Year: currentYear, Month: 1, MergedCount: 1},
		{Repository: reportTestRepo, UserID: "a", Year: currentYear, Month: 2, MergedCount: 1},
		{Repository: reportTestRepo, UserID: "b", Year: currentYear, Month: 1, Reviews: 4},
	}, nil)

	builder := newTestReportBuilder(store)
	report, err := builder.BuildReport(context.Background(), reportTestRepo, 1)
	require.NoError(t, err)

	require.Len(t, report.Leaderboard, 1)
	entries := report.Leaderboard[0].Entries
	require.Len(t, entries, 2)

	assert.Equal(t, "a", entries[0].UserID)
	assert.Equal(t, 2.0, entries[0].Score)
	assert.Equal(t, 2, entries[0].MergedCount)

	assert.Equal(t, "b", entries[1].UserID)
	assert.Equal(t, 1.5, entries[1].Score)
	assert.Equal(t, 4, entries[1].Reviews)
}

func TestBuildReportLeaderboardTieBreak(t *testing.T) {
	currentYear := time.Now().Year()
	store := new(MockStatsReader)
	store.On("GetRepoMonthlyStats", mock.Anything, reportTestRepo, currentYear).Return([]*models.RepoMonthlyStat{}, nil)
	store.On("GetUserMonthlyStats", mock.Anything, reportTestRepo, currentYear).Return([]*models.UserMonthlyStat{
		{Repository: reportTestRepo, UserID: "zoe", Year: currentYear, Month: 1, MergedCount: 1},
		{Repository: reportTestRepo, UserID: "amy", Year: currentYear, Month: 1, MergedCount: 1},
	}, nil)

	builder := newTestReportBuilder(store)
	report, err := builder.BuildReport(context.Background(), reportTestRepo, 1)
	require.NoError(t, err)

	entries := report.Leaderboard[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, "amy", entries[0].UserID)
	assert.Equal(t, "zoe", entries[1].UserID)
}

func TestBuildReportCommentWeight(t *testing.T) {
	entry := &models.LeaderboardEntry{MergedCount: 1, Reviews: 2, Comments: 10}
	assert.Equal(t, 3.25, Score(entry))
}

func TestBuildReportStoreError(t *testing.T) {
	store := new(MockStatsReader)
	store.On("GetRepoMonthlyStats", mock.Anything, reportTestRepo, mock.Anything).Return(nil, errors.New("connection refused"))

	builder := newTestReportBuilder(store)
	_, err := builder.BuildReport(context.Background(), reportTestRepo, 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
	assert.Contains(t, err.Error(), "failed to get repository stats")
}

func TestBuildReportIgnoresOutOfRangeMonths(t *testing.T) {
	currentYear := time.Now().Year()
	store := new(MockStatsReader)
	store.On("GetRepoMonthlyStats", mock.Anything, reportTestRepo, currentYear).Return([]*models.RepoMonthlyStat{
		{Repository: reportTestRepo, Year: currentYear, Month: 0, MergedCount: 1, TotalCycleTime: 10},
		{Repository: reportTestRepo, Year: currentYear, Month: 13, MergedCount: 1, TotalCycleTime: 10},
	}, nil)
	store.On("GetUserMonthlyStats", mock.Anything, reportTestRepo, currentYear).Return([]*models.UserMonthlyStat{}, nil)

	builder := newTestReportBuilder(store)
	report, err := builder.BuildReport(context.Background(), reportTestRepo, 1)
	require.NoError(t, err)

	for m := 1; m <= 12; m++ {
		assert.Equal(t, float64(models.NoDataSentinel), report.CycleTime[0][m])
	}
}
